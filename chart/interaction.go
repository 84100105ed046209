package chart

// State is the gesture the chart is tracking.
type State int

const (
	Idle State = iota
	DraggingPoint
	DraggingDivider
)

func (s State) String() string {
	switch s {
	case DraggingPoint:
		return "dragging-point"
	case DraggingDivider:
		return "dragging-divider"
	default:
		return "idle"
	}
}

// Pointer is a pointer position in data coordinates. Inside is false when
// the pointer is outside the plot area or its position is unknown; such
// events carry no usable coordinates.
type Pointer struct {
	X, Y   float64
	Inside bool
}

func At(x, y float64) Pointer {
	return Pointer{X: x, Y: y, Inside: true}
}

var Outside = Pointer{}

type gesture struct {
	state     State
	selection *Snapshot

	activeLine Line
	preDrag    float64
	liveValue  float64

	pressX, pressY float64
	origin         DataPoint
}

func (c *Chart) State() State {
	return c.state
}

func (c *Chart) Selection() (Snapshot, bool) {
	if c.selection == nil {
		return Snapshot{}, false
	}
	return *c.selection, true
}

// ActiveLine reports the divider being dragged, if any.
func (c *Chart) ActiveLine() Line {
	return c.activeLine
}

// PointerDown hit-tests the press. A divider hit starts a divider drag; a
// label hit selects the point and fires PointSelected and PointClicked.
// Both may happen for the same press. Empty space changes nothing.
func (c *Chart) PointerDown(p Pointer) {
	if !p.Inside || !c.plotted || c.state != Idle {
		return
	}
	hit := HitTest(p.X, p.Y, c.scene.DividerX, c.scene.DividerY, c.scene.tolerance(), c.scene.Points)
	if hit.Line == NoLine && !hit.HasPoint {
		return
	}
	c.pressX, c.pressY = p.X, p.Y

	if hit.Line != NoLine {
		c.state = DraggingDivider
		c.activeLine = hit.Line
		if hit.Line == VerticalLine {
			c.preDrag, _ = c.divider.X()
		} else {
			c.preDrag, _ = c.divider.Y()
		}
		c.liveValue = c.preDrag
		c.logger.Debug("chart: divider grabbed", "line", hit.Line, "value", c.preDrag)
	}

	if hit.HasPoint {
		pt, _ := c.points.Get(hit.PointKey)
		snap := pt.Snapshot()
		c.selection = &snap
		c.origin = pt
		c.logger.Debug("chart: point selected", "key", pt.Key)
		c.listener.PointSelected(snap)
		c.listener.PointClicked(snap.Key)
	}
}

// PointerMove drags whatever the press grabbed. A divider drag only moves
// the line in the scene; a point drag writes the clamped position through
// the point model and redraws without touching the bounds.
func (c *Chart) PointerMove(p Pointer) {
	if !p.Inside {
		return
	}
	switch {
	case c.state == DraggingDivider:
		if c.activeLine == VerticalLine {
			c.liveValue = ClampToAxis(p.X, 0, c.maxX, c.xReversed)
			c.scene.DividerX = c.liveValue
		} else {
			c.liveValue = ClampToAxis(p.Y, 0, c.maxY, c.yReversed)
			c.scene.DividerY = c.liveValue
		}
		c.redraws++
	case c.selection != nil:
		x := ClampToAxis(p.X, 0, c.maxX, c.xReversed)
		y := ClampToAxis(p.Y, 0, c.maxY, c.yReversed)
		c.points.Update(c.selection.Key, x, y)
		c.state = DraggingPoint
		c.redraw(false)
	}
}

// PointerUp finishes the gesture.
func (c *Chart) PointerUp(p Pointer) {
	switch {
	case c.state == DraggingDivider:
		c.releaseDivider(p)
	case c.selection != nil:
		c.releasePoint(p)
	}
}

func (c *Chart) releaseDivider(p Pointer) {
	line := c.activeLine
	value := c.liveValue
	if p.Inside {
		if p.X == c.pressX && p.Y == c.pressY {
			value = c.preDrag
		} else if line == VerticalLine {
			value = ClampToAxis(p.X, 0, c.maxX, c.xReversed)
		} else {
			value = ClampToAxis(p.Y, 0, c.maxY, c.yReversed)
		}
	}
	if line == VerticalLine {
		c.divider.SetX(value)
	} else {
		c.divider.SetY(value)
	}

	// A point selected by the same press does not move with the line.
	c.selection = nil
	c.activeLine = NoLine
	c.state = Idle
	c.logger.Debug("chart: divider dropped", "line", line, "value", value)
	c.redraw(false)
}

func (c *Chart) releasePoint(p Pointer) {
	key := c.selection.Key
	dragged := c.state == DraggingPoint

	if (p.Inside && p.X == c.pressX && p.Y == c.pressY) || (!p.Inside && !dragged) {
		// A click: nothing to commit. Undo any intermediate moves.
		c.selection = nil
		c.state = Idle
		if dragged {
			c.points.Update(key, c.origin.X, c.origin.Y)
			c.redraw(false)
		}
		return
	}

	rawX, rawY := p.X, p.Y
	if !p.Inside {
		cur, _ := c.points.Get(key)
		rawX, rawY = cur.X, cur.Y
	}
	x := ClampToAxis(RoundTenth(rawX), 0, c.maxX, c.xReversed)
	y := ClampToAxis(RoundTenth(rawY), 0, c.maxY, c.yReversed)
	c.points.Update(key, x, y)
	c.redraw(false)

	// Clear before notifying so a re-entrant call sees an idle chart.
	c.selection = nil
	c.state = Idle

	updated, ok := c.points.Get(key)
	if !ok {
		return
	}
	c.logger.Debug("chart: point dropped", "key", key, "x", x, "y", y)
	c.listener.PointDropped(key, x, y)
	c.listener.PointSelected(updated.Snapshot())
}
