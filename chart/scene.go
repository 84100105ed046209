package chart

import (
	"image/color"
	"math"
)

const (
	Title = "Quadrant Chart"

	regionAlpha = 0x1a // ~0.1 opacity
	labelAlpha  = 0x80 // 0.5 opacity

	HighlightScale = 1.5
)

// Quadrant tints, top-left, top-right, bottom-left, bottom-right.
var regionColors = [4]color.NRGBA{
	{R: 0xff, A: regionAlpha},
	{B: 0xff, A: regionAlpha},
	{G: 0x80, A: regionAlpha},
	{R: 0xff, G: 0xff, A: regionAlpha},
}

// Metrics describes the surface the scene is drawn on, in screen units.
type Metrics struct {
	OriginX, OriginY float64
	Width, Height    float64
	CharWidth        float64
	CharHeight       float64
	LineWidth        float64
}

// TerminalMetrics covers a plot area of cols x rows character cells. The
// first and last cell of each axis sit exactly on the axis limits.
func TerminalMetrics(cols, rows int) Metrics {
	return Metrics{
		Width:      float64(max(cols-1, 1)),
		Height:     float64(max(rows-1, 1)),
		CharWidth:  1,
		CharHeight: 1,
		LineWidth:  1,
	}
}

// Rect is an axis-aligned box in data coordinates with Min <= Max.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

func rectFrom(x0, y0, x1, y1 float64) Rect {
	return Rect{
		MinX: math.Min(x0, x1), MinY: math.Min(y0, y1),
		MaxX: math.Max(x0, x1), MaxY: math.Max(y0, y1),
	}
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

type Region struct {
	Rect  Rect
	Color color.NRGBA
}

// ScenePoint is a marker plus its label. LabelBox is the clickable area
// of marker and label in data coordinates.
type ScenePoint struct {
	Key        string
	X, Y       float64
	Color      color.NRGBA
	LabelColor color.NRGBA
	Scale      float64
	LabelBox   Rect
}

func (p ScenePoint) Highlighted() bool {
	return p.Scale > 1
}

// Scene is everything a renderer needs to draw the chart.
type Scene struct {
	Title          string
	XLabel, YLabel string
	XLim, YLim     [2]float64
	Regions        [4]Region
	DividerX       float64
	DividerY       float64
	Points         []ScenePoint
	Projection     Projection
	Metrics        Metrics

	// Rebuilt is set when the scene came from a full redraw with bounds
	// recomputed.
	Rebuilt bool
}

func buildProjection(m Metrics, xlim, ylim [2]float64) Projection {
	return Projection{
		OriginX: m.OriginX, OriginY: m.OriginY,
		Width: m.Width, Height: m.Height,
		XLim: xlim, YLim: ylim,
	}
}

// labelBox is the marker and label area of a point: half a character
// around the marker plus the label text to its right.
func labelBox(proj Projection, m Metrics, p DataPoint, scale float64) Rect {
	sx, sy := proj.ToScreen(p.X, p.Y)
	cw, ch := m.CharWidth*scale, m.CharHeight*scale
	left := sx - cw/2
	right := sx + float64(len([]rune(p.Key))+1)*cw
	top := sy - ch/2
	bottom := sy + ch/2
	x0, y0 := proj.ToData(left, top)
	x1, y1 := proj.ToData(right, bottom)
	return rectFrom(x0, y0, x1, y1)
}

func tint(c color.NRGBA, alpha uint8) color.NRGBA {
	c.A = alpha
	return c
}

func quadrantRegions(maxX, maxY, midX, midY float64) [4]Region {
	return [4]Region{
		{Rect: rectFrom(0, midY, midX, maxY), Color: regionColors[0]},
		{Rect: rectFrom(midX, midY, maxX, maxY), Color: regionColors[1]},
		{Rect: rectFrom(0, 0, midX, midY), Color: regionColors[2]},
		{Rect: rectFrom(midX, 0, maxX, midY), Color: regionColors[3]},
	}
}
