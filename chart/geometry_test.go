package chart

import (
	"image/color"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeBounds(t *testing.T) {
	maxX, maxY := ComputeBounds([]DataPoint{{X: 3, Y: -2}, {X: 7.5, Y: -1}})
	assert.Equal(t, 7.5, maxX)
	assert.Equal(t, 0.0, maxY, "bounds never go negative")

	maxX, maxY = ComputeBounds(nil)
	assert.Zero(t, maxX)
	assert.Zero(t, maxY)
}

func TestClampDivider(t *testing.T) {
	assert.Equal(t, 99.0, ClampDivider(120, 100))
	assert.Equal(t, 99.0, ClampDivider(100, 100))
	assert.Equal(t, 49.5, ClampDivider(49.5, 50))
	assert.Equal(t, 2.9, ClampDivider(3, 3))
}

func TestClampToAxis_IdempotentInsideRange(t *testing.T) {
	for _, max := range []float64{1, 20, 37.5} {
		for v := 0.0; v <= max; v += max / 16 {
			assert.Equal(t, v, ClampToAxis(v, 0, max, false))
			assert.Equal(t, v, ClampToAxis(v, 0, max, true))
		}
	}
}

func TestClampToAxis_OutsideGoesToNearerEndpoint(t *testing.T) {
	for _, reversed := range []bool{false, true} {
		assert.Equal(t, 0.0, ClampToAxis(-4, 0, 30, reversed))
		assert.Equal(t, 30.0, ClampToAxis(31, 0, 30, reversed))
		assert.Equal(t, 30.0, ClampToAxis(math.Inf(1), 0, 30, reversed))
	}
	assert.Equal(t, 0.0, ClampToAxis(math.NaN(), 0, 30, false))
	assert.Equal(t, 30.0, ClampToAxis(math.NaN(), 0, 30, true))
}

func TestRoundTenth(t *testing.T) {
	assert.Equal(t, 15.0, RoundTenth(15.04))
	assert.Equal(t, 18.0, RoundTenth(17.96))
	assert.Equal(t, 0.1, RoundTenth(0.05))
}

func TestProjection_RoundTrip(t *testing.T) {
	p := Projection{OriginX: 2, OriginY: 1, Width: 60, Height: 20, XLim: [2]float64{30, 0}, YLim: [2]float64{0, 20}}

	sx, sy := p.ToScreen(7.5, 5)
	assert.InDelta(t, 2+45.0, sx, 1e-9)
	assert.InDelta(t, 1+15.0, sy, 1e-9)

	x, y := p.ToData(sx, sy)
	assert.InDelta(t, 7.5, x, 1e-9)
	assert.InDelta(t, 5, y, 1e-9)

	assert.True(t, p.Contains(2, 1))
	assert.True(t, p.Contains(62, 21))
	assert.False(t, p.Contains(1.9, 5))

	dx, dy := p.DataPerUnit()
	assert.Equal(t, 0.5, dx)
	assert.Equal(t, 1.0, dy)
}

func TestDivider_EnsureValid(t *testing.T) {
	var d Divider
	d.SetX(3)
	d.EnsureValid(100, 50)
	x, _ := d.X()
	y, _ := d.Y()
	assert.Equal(t, 50.0, x, "a half-set divider takes both defaults")
	assert.Equal(t, 25.0, y)

	d.SetX(120)
	d.EnsureValid(100, 50)
	x, _ = d.X()
	assert.Equal(t, 99.0, x)

	d.Swap()
	x, _ = d.X()
	y, _ = d.Y()
	assert.Equal(t, 25.0, x)
	assert.Equal(t, 99.0, y)

	d.Reset()
	_, ok := d.X()
	assert.False(t, ok)
}

func TestHitTest(t *testing.T) {
	points := []ScenePoint{
		{Key: "first", LabelBox: Rect{MinX: 0, MinY: 0, MaxX: 4, MaxY: 2}},
		{Key: "second", LabelBox: Rect{MinX: 1, MinY: 1, MaxX: 5, MaxY: 3}},
	}
	tol := Tolerance{X: 0.25, Y: 0.5}

	h := HitTest(1.5, 1.5, 10, 10, tol, points)
	assert.Equal(t, Hit{PointKey: "first", HasPoint: true}, h, "first in draw order wins")

	h = HitTest(4.5, 10.4, 10, 10, tol, points)
	assert.Equal(t, Hit{Line: HorizontalLine}, h)

	h = HitTest(9.8, 2.5, 10, 10, tol, points)
	assert.Equal(t, Hit{Line: VerticalLine}, h)

	h = HitTest(3, 1.8, 3.1, 10, tol, points)
	assert.Equal(t, Hit{Line: VerticalLine, PointKey: "first", HasPoint: true}, h)

	h = HitTest(9.7, 7, 10, 10, tol, points)
	assert.Equal(t, Hit{}, h)
}

func TestPointSet(t *testing.T) {
	calls := 0
	s := NewPointSet(func(int) color.NRGBA {
		calls++
		return color.NRGBA{G: 0xff, A: 0xff}
	})
	s.SetAll([]DataPoint{
		{Key: "a", X: 1, Y: 2, Color: color.NRGBA{R: 1, A: 0xff}},
		{Key: "b", X: 3, Y: 4},
	})
	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, 1, s.IndexOf("b"))
	assert.Equal(t, -1, s.IndexOf("zz"))

	s.Update("b", 9, 8)
	b, ok := s.Find("b")
	assert.True(t, ok)
	assert.Equal(t, 9.0, b.X)
	assert.Equal(t, uint8(0xff), b.Color.G)

	s.Update("missing", 1, 1)
	_, ok = s.Get("missing")
	assert.False(t, ok)

	_, ok = s.At(2)
	assert.False(t, ok)
}
