package chart

import "math"

// ComputeBounds returns the largest x and y across points, never below 0.
func ComputeBounds(points []DataPoint) (maxX, maxY float64) {
	for _, p := range points {
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return maxX, maxY
}

func DefaultDivider(maxX, maxY float64) (float64, float64) {
	return maxX / 2, maxY / 2
}

// ClampDivider pulls a divider that sits at or past the axis maximum back to
// 99% of it, truncated to one decimal.
func ClampDivider(value, max float64) float64 {
	if value >= max {
		return math.Floor(max*0.99*10) / 10
	}
	return value
}

// ClampToAxis keeps value inside the visible range of an axis. When the axis
// is reversed the rendered limits are swapped, but the visible interval is
// the same, so the result is the nearer rendered endpoint for any value
// outside it. NaN lands on the rendered low limit.
func ClampToAxis(value, axisMin, axisMax float64, reversed bool) float64 {
	lo, hi := renderedLimits(axisMin, axisMax, reversed)
	if math.IsNaN(value) {
		return lo
	}
	low, high := math.Min(lo, hi), math.Max(lo, hi)
	if value < low {
		return low
	}
	if value > high {
		return high
	}
	return value
}

// RoundTenth rounds to one decimal place.
func RoundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// renderedLimits returns the axis limits in the order they are drawn:
// low end first (left or bottom).
func renderedLimits(axisMin, axisMax float64, reversed bool) (float64, float64) {
	if reversed {
		return axisMax, axisMin
	}
	return axisMin, axisMax
}

// Projection maps between screen units (pixels or terminal cells) and data
// coordinates. The plot area starts at (OriginX, OriginY) and spans Width x
// Height; screen y grows downward. XLim and YLim are the rendered limits,
// so a reversed axis mirrors the mapping.
type Projection struct {
	OriginX, OriginY float64
	Width, Height    float64
	XLim, YLim       [2]float64
}

func (p Projection) Contains(sx, sy float64) bool {
	return sx >= p.OriginX && sx <= p.OriginX+p.Width &&
		sy >= p.OriginY && sy <= p.OriginY+p.Height
}

func (p Projection) ToData(sx, sy float64) (x, y float64) {
	fx, fy := 0.0, 0.0
	if p.Width > 0 {
		fx = (sx - p.OriginX) / p.Width
	}
	if p.Height > 0 {
		fy = 1 - (sy-p.OriginY)/p.Height
	}
	x = p.XLim[0] + fx*(p.XLim[1]-p.XLim[0])
	y = p.YLim[0] + fy*(p.YLim[1]-p.YLim[0])
	return x, y
}

func (p Projection) ToScreen(x, y float64) (sx, sy float64) {
	fx, fy := 0.0, 0.0
	if span := p.XLim[1] - p.XLim[0]; span != 0 {
		fx = (x - p.XLim[0]) / span
	}
	if span := p.YLim[1] - p.YLim[0]; span != 0 {
		fy = (y - p.YLim[0]) / span
	}
	return p.OriginX + fx*p.Width, p.OriginY + (1-fy)*p.Height
}

// DataPerUnit reports how many data units one screen unit covers on each
// axis. Always non-negative.
func (p Projection) DataPerUnit() (dx, dy float64) {
	if p.Width > 0 {
		dx = math.Abs(p.XLim[1]-p.XLim[0]) / p.Width
	}
	if p.Height > 0 {
		dy = math.Abs(p.YLim[1]-p.YLim[0]) / p.Height
	}
	return dx, dy
}
