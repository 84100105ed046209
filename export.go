package main

import (
	"errors"
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"

	"quadrant/chart"
)

const (
	pngWidth    = 1000
	pngHeight   = 750
	pngMargin   = 80.0
	pngFontSize = 12.0
	pngRadius   = 5.0
)

var errNotPlotted = errors.New("nothing plotted")

type pngFonts struct {
	font *truetype.Font
}

func loadFonts() (*pngFonts, error) {
	ttfFont, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return &pngFonts{font: ttfFont}, nil
}

func (f *pngFonts) face(size float64) font.Face {
	return truetype.NewFace(f.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// exportPNG draws the chart's current scene at a fixed image size.
func exportPNG(scene chart.Scene, filename string) error {
	if len(scene.Points) == 0 && scene.XLabel == "" {
		return errNotPlotted
	}
	fonts, err := loadFonts()
	if err != nil {
		return err
	}

	proj := chart.Projection{
		OriginX: pngMargin,
		OriginY: pngMargin / 2,
		Width:   pngWidth - 1.5*pngMargin,
		Height:  pngHeight - 1.75*pngMargin,
		XLim:    scene.XLim,
		YLim:    scene.YLim,
	}

	dc := gg.NewContext(pngWidth, pngHeight)
	dc.SetColor(color.White)
	dc.Clear()

	for _, r := range scene.Regions {
		x0, y0 := proj.ToScreen(r.Rect.MinX, r.Rect.MinY)
		x1, y1 := proj.ToScreen(r.Rect.MaxX, r.Rect.MaxY)
		dc.DrawRectangle(math.Min(x0, x1), math.Min(y0, y1), math.Abs(x1-x0), math.Abs(y1-y0))
		dc.SetColor(r.Color)
		dc.Fill()
	}

	dc.SetColor(color.Black)
	dc.SetLineWidth(1)
	dc.DrawRectangle(proj.OriginX, proj.OriginY, proj.Width, proj.Height)
	dc.Stroke()

	drawDividersPNG(dc, proj, scene.DividerX, scene.DividerY)
	drawTicksPNG(dc, fonts, proj)

	for _, p := range scene.Points {
		drawPointPNG(dc, fonts, proj, p)
	}

	dc.SetColor(color.NRGBA{G: 0x80, A: 0xff})
	dc.SetFontFace(fonts.face(pngFontSize * 1.5))
	dc.DrawStringAnchored(scene.Title, proj.OriginX+proj.Width/2, proj.OriginY/2, 0.5, 0.5)

	dc.SetFontFace(fonts.face(pngFontSize * 1.25))
	dc.SetColor(color.NRGBA{R: 0xff, A: 0xff})
	dc.DrawStringAnchored(scene.XLabel, proj.OriginX+proj.Width/2, pngHeight-pngMargin/3, 0.5, 0.5)

	dc.SetColor(color.NRGBA{B: 0xff, A: 0xff})
	cx, cy := pngMargin/4, proj.OriginY+proj.Height/2
	dc.Push()
	dc.RotateAbout(gg.Radians(-90), cx, cy)
	dc.DrawStringAnchored(scene.YLabel, cx, cy, 0.5, 0.5)
	dc.Pop()

	return dc.SavePNG(filename)
}

func drawDividersPNG(dc *gg.Context, proj chart.Projection, dx, dy float64) {
	sx, sy := proj.ToScreen(dx, dy)
	dc.SetColor(color.Black)
	dc.SetLineWidth(1.5)
	dc.SetDash(6, 4)
	dc.DrawLine(sx, proj.OriginY, sx, proj.OriginY+proj.Height)
	dc.Stroke()
	dc.DrawLine(proj.OriginX, sy, proj.OriginX+proj.Width, sy)
	dc.Stroke()
	dc.SetDash()
}

func drawTicksPNG(dc *gg.Context, fonts *pngFonts, proj chart.Projection) {
	dc.SetFontFace(fonts.face(pngFontSize))
	dc.SetColor(color.Black)
	for i := 0; i < numTicks; i++ {
		xv := tickValue(proj.XLim, i)
		sx, _ := proj.ToScreen(xv, proj.YLim[0])
		bottom := proj.OriginY + proj.Height
		dc.DrawLine(sx, bottom, sx, bottom+4)
		dc.Stroke()
		dc.DrawStringAnchored(formatTick(xv), sx, bottom+8, 0.5, 1)

		yv := tickValue(proj.YLim, i)
		_, sy := proj.ToScreen(proj.XLim[0], yv)
		dc.DrawLine(proj.OriginX-4, sy, proj.OriginX, sy)
		dc.Stroke()
		dc.DrawStringAnchored(formatTick(yv), proj.OriginX-8, sy, 1, 0.5)
	}
}

// drawPointPNG draws the marker and a tinted label box to its right.
func drawPointPNG(dc *gg.Context, fonts *pngFonts, proj chart.Projection, p chart.ScenePoint) {
	sx, sy := proj.ToScreen(p.X, p.Y)
	radius := pngRadius * p.Scale

	c := p.Color
	c.A = 0xff
	dc.SetColor(c)
	dc.DrawCircle(sx, sy, radius)
	dc.Fill()

	dc.SetFontFace(fonts.face(pngFontSize * p.Scale))
	w, h := dc.MeasureString(p.Key)
	pad := 3 * p.Scale
	left := sx + radius + 2
	dc.SetColor(p.LabelColor)
	dc.DrawRoundedRectangle(left, sy-h/2-pad, w+2*pad, h+2*pad, 3)
	dc.Fill()

	dc.SetColor(color.Black)
	dc.DrawStringAnchored(p.Key, left+pad, sy, 0, 0.35)
}
