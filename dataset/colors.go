package dataset

import (
	"image/color"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// AssignColors returns n random but repeatable colors for seed.
func AssignColors(n int, seed int64) []color.NRGBA {
	rng := rand.New(rand.NewSource(seed))
	out := make([]color.NRGBA, n)
	for i := range out {
		c := colorful.Hsv(rng.Float64()*360, 0.45+rng.Float64()*0.4, 0.75+rng.Float64()*0.2)
		out[i] = toRGBA(c)
	}
	return out
}

// Colors returns one color per row. A hex value in the Color column wins;
// other rows get a generated color.
func (ds *Dataset) Colors(seed int64) []color.NRGBA {
	out := AssignColors(len(ds.rows), seed)
	if _, ok := ds.byName[ColorColumn]; !ok {
		return out
	}
	for r := range ds.rows {
		if c, err := colorful.Hex(ds.Value(r, ColorColumn)); err == nil {
			out[r] = toRGBA(c)
		}
	}
	return out
}

func toRGBA(c colorful.Color) color.NRGBA {
	r, g, b := c.Clamped().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}
