// Package chart implements an interactive quadrant chart: a scatter plot
// split into four regions by a movable horizontal and vertical divider,
// whose points and dividers can be dragged with a pointer.
//
// The package has no rendering or input dependencies. A front end feeds it
// pointer events in data coordinates, reads back a Scene to draw, and
// receives selection and drop notifications through a Listener.
package chart

import (
	"image/color"
	"log/slog"
)

// Row is one dataset row as supplied by the dataset provider. Values holds
// the numeric attributes by column name.
type Row struct {
	Key     string
	Summary string
	Values  map[string]float64
}

type ChartParams struct {
	Listener Listener
	Logger   *slog.Logger
	Colors   ColorFunc
	Metrics  Metrics
}

// Chart owns the plotted points, the dividers, the axis flags and the
// gesture state. It is not safe for concurrent use; every call is expected
// to come from a single event loop.
type Chart struct {
	points  *PointSet
	divider Divider

	xLabel, yLabel       string
	maxX, maxY           float64
	xReversed, yReversed bool
	plotted              bool

	metrics     Metrics
	scene       Scene
	highlighted string
	redraws     int

	gesture

	listener Listener
	logger   *slog.Logger
}

func NewChart(params *ChartParams) *Chart {
	if params == nil {
		params = &ChartParams{}
	}
	c := &Chart{
		points:   NewPointSet(params.Colors),
		metrics:  params.Metrics,
		listener: params.Listener,
		logger:   params.Logger,
	}
	if c.listener == nil {
		c.listener = nopListener{}
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.metrics == (Metrics{}) {
		c.metrics = TerminalMetrics(80, 24)
	}
	return c
}

// SetListener replaces the listener; nil silences notifications.
func (c *Chart) SetListener(l Listener) {
	if l == nil {
		l = nopListener{}
	}
	c.listener = l
}

// Plot replaces all points and rebuilds the chart. colors[i] is the color
// of rows[i]; missing or transparent entries get a fallback color.
func (c *Chart) Plot(rows []Row, xLabel, yLabel string, colors []color.NRGBA) {
	// A gesture started on the old points has nothing left to commit.
	c.gesture = gesture{}

	points := make([]DataPoint, len(rows))
	for i, r := range rows {
		points[i] = DataPoint{
			Key:     r.Key,
			X:       r.Values[xLabel],
			Y:       r.Values[yLabel],
			Summary: r.Summary,
		}
		if i < len(colors) {
			points[i].Color = colors[i]
		}
	}
	c.xLabel, c.yLabel = xLabel, yLabel
	c.points.SetAll(points)
	c.plotted = true
	c.logger.Debug("chart: plot", "points", len(points), "x", xLabel, "y", yLabel)
	c.redraw(true)
}

// Initialize prepares the divider for the next Plot: an axis swap
// exchanges the two divider values, anything else clears them.
func (c *Chart) Initialize(isSwap bool) {
	if isSwap {
		c.divider.Swap()
		return
	}
	c.divider.Reset()
}

func (c *Chart) ReverseXAxis() {
	c.xReversed = !c.xReversed
	c.redraw(false)
}

func (c *Chart) ReverseYAxis() {
	c.yReversed = !c.yReversed
	c.redraw(false)
}

// HighlightPoint enlarges the label of the point at rowIndex and resets
// every other label. Out-of-range indexes clear the highlight.
func (c *Chart) HighlightPoint(rowIndex int) {
	p, ok := c.points.At(rowIndex)
	if !ok {
		c.ObscurePoint()
		return
	}
	c.highlighted = p.Key
	c.applyHighlight()
}

// ObscurePoint resets every label to its default size.
func (c *Chart) ObscurePoint() {
	c.highlighted = ""
	c.applyHighlight()
}

// MovePoint sets a point's coordinates from outside, as undo does. The
// values are stored as given; a point beyond the current maximum grows the
// bounds. Unknown keys are ignored.
func (c *Chart) MovePoint(key string, x, y float64) {
	if _, ok := c.points.Get(key); !ok {
		return
	}
	c.points.Update(key, x, y)
	c.redraw(x > c.maxX || y > c.maxY)
}

// SetDivider commits both divider values, as undo does. Ignored while a
// gesture is in progress.
func (c *Chart) SetDivider(x, y float64) {
	if c.state != Idle {
		return
	}
	c.divider.SetX(x)
	c.divider.SetY(y)
	c.redraw(false)
}

// SetViewport changes the drawing surface. Bounds are kept.
func (c *Chart) SetViewport(m Metrics) {
	c.metrics = m
	c.redraw(false)
}

func (c *Chart) Scene() Scene                 { return c.scene }
func (c *Chart) Labels() (x, y string)        { return c.xLabel, c.yLabel }
func (c *Chart) Bounds() (maxX, maxY float64) { return c.maxX, c.maxY }
func (c *Chart) Reversed() (x, y bool)        { return c.xReversed, c.yReversed }
func (c *Chart) Points() []DataPoint          { return c.points.All() }
func (c *Chart) Highlighted() string          { return c.highlighted }

// Redraws counts scene rebuilds.
func (c *Chart) Redraws() int { return c.redraws }

func (c *Chart) Point(key string) (DataPoint, bool) {
	return c.points.Find(key)
}

// Divider returns the committed divider values. ok is false until the
// first full redraw.
func (c *Chart) Divider() (x, y float64, ok bool) {
	x, okX := c.divider.X()
	y, okY := c.divider.Y()
	return x, y, okX && okY
}

// redraw rebuilds the scene. Bounds are recomputed and dividers resolved
// only when full is set, so the scale stays put during a drag.
func (c *Chart) redraw(full bool) {
	if full {
		c.maxX, c.maxY = ComputeBounds(c.points.All())
		c.divider.EnsureValid(c.maxX, c.maxY)
	}

	xlim := limits(c.maxX, c.xReversed)
	ylim := limits(c.maxY, c.yReversed)
	proj := buildProjection(c.metrics, xlim, ylim)

	dx, _ := c.divider.X()
	dy, _ := c.divider.Y()
	if c.state == DraggingDivider {
		switch c.activeLine {
		case VerticalLine:
			dx = c.liveValue
		case HorizontalLine:
			dy = c.liveValue
		}
	}

	points := c.points.All()
	scenePoints := make([]ScenePoint, len(points))
	for i, p := range points {
		scale := 1.0
		if p.Key == c.highlighted {
			scale = HighlightScale
		}
		scenePoints[i] = ScenePoint{
			Key:        p.Key,
			X:          p.X,
			Y:          p.Y,
			Color:      p.Color,
			LabelColor: tint(p.Color, labelAlpha),
			Scale:      scale,
			LabelBox:   labelBox(proj, c.metrics, p, scale),
		}
	}

	c.scene = Scene{
		Title:      Title,
		XLabel:     c.xLabel,
		YLabel:     c.yLabel,
		XLim:       xlim,
		YLim:       ylim,
		Regions:    quadrantRegions(c.maxX, c.maxY, dx, dy),
		DividerX:   dx,
		DividerY:   dy,
		Points:     scenePoints,
		Projection: proj,
		Metrics:    c.metrics,
		Rebuilt:    full,
	}
	c.redraws++
}

// applyHighlight touches only label sizes.
func (c *Chart) applyHighlight() {
	for i := range c.scene.Points {
		sp := &c.scene.Points[i]
		sp.Scale = 1
		if sp.Key == c.highlighted {
			sp.Scale = HighlightScale
		}
		p := DataPoint{Key: sp.Key, X: sp.X, Y: sp.Y}
		sp.LabelBox = labelBox(c.scene.Projection, c.scene.Metrics, p, sp.Scale)
	}
}

// limits returns rendered axis limits: [0, max] or [max, 0] when reversed.
func limits(max float64, reversed bool) [2]float64 {
	lo, hi := renderedLimits(0, max, reversed)
	return [2]float64{lo, hi}
}
