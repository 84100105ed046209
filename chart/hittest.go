package chart

// Line identifies a divider line.
type Line int

const (
	NoLine Line = iota
	HorizontalLine
	VerticalLine
)

func (l Line) String() string {
	switch l {
	case HorizontalLine:
		return "horizontal"
	case VerticalLine:
		return "vertical"
	default:
		return "none"
	}
}

// Hit is the result of testing one pointer position. The divider and the
// point are found independently; a single press may report both.
type Hit struct {
	Line     Line
	PointKey string
	HasPoint bool
}

// Tolerance is the half-thickness of a divider line in data units.
type Tolerance struct {
	X, Y float64
}

// HitTest checks the horizontal divider, then the vertical divider, then
// the label boxes in draw order. The first label that contains the
// position wins.
func HitTest(x, y float64, dividerX, dividerY float64, tol Tolerance, points []ScenePoint) Hit {
	var h Hit
	switch {
	case abs(y-dividerY) <= tol.Y:
		h.Line = HorizontalLine
	case abs(x-dividerX) <= tol.X:
		h.Line = VerticalLine
	}
	for _, p := range points {
		if p.LabelBox.Contains(x, y) {
			h.PointKey = p.Key
			h.HasPoint = true
			break
		}
	}
	return h
}

// tolerance converts the scene's line width into data units.
func (s *Scene) tolerance() Tolerance {
	dx, dy := s.Projection.DataPerUnit()
	half := s.Metrics.LineWidth / 2
	return Tolerance{X: half * dx, Y: half * dy}
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
