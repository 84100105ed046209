package chart

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// DataPoint is one plotted row. A zero Color (alpha 0) means no color has
// been assigned yet.
type DataPoint struct {
	Key     string
	X, Y    float64
	Summary string
	Color   color.NRGBA
}

func (p DataPoint) hasColor() bool {
	return p.Color.A != 0
}

// Snapshot is the fixed-shape view of a selected point handed to listeners.
type Snapshot struct {
	Key     string
	X, Y    float64
	Summary string
}

func (p DataPoint) Snapshot() Snapshot {
	return Snapshot{Key: p.Key, X: p.X, Y: p.Y, Summary: p.Summary}
}

// ColorFunc supplies a fallback color for the i-th point.
type ColorFunc func(i int) color.NRGBA

// HappyColor picks a random pleasant color.
func HappyColor(int) color.NRGBA {
	r, g, b := colorful.FastHappyColor().RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 0xff}
}

// PointSet holds points in dataset order with a key index. Lookups are by
// key; order only matters for drawing and index-based highlighting.
type PointSet struct {
	points   []DataPoint
	index    map[string]int
	fallback ColorFunc
}

func NewPointSet(fallback ColorFunc) *PointSet {
	if fallback == nil {
		fallback = HappyColor
	}
	return &PointSet{index: map[string]int{}, fallback: fallback}
}

// SetAll replaces the working set. Points arriving without a color get one
// from the fallback.
func (s *PointSet) SetAll(points []DataPoint) {
	s.points = make([]DataPoint, len(points))
	s.index = make(map[string]int, len(points))
	for i, p := range points {
		if !p.hasColor() {
			p.Color = s.fallback(i)
		}
		s.points[i] = p
		s.index[p.Key] = i
	}
}

func (s *PointSet) Get(key string) (DataPoint, bool) {
	i, ok := s.index[key]
	if !ok {
		return DataPoint{}, false
	}
	return s.points[i], true
}

// Find is the lookup used by external highlight requests.
func (s *PointSet) Find(key string) (DataPoint, bool) {
	return s.Get(key)
}

func (s *PointSet) IndexOf(key string) int {
	if i, ok := s.index[key]; ok {
		return i
	}
	return -1
}

// Update moves a point. Unknown keys are ignored.
func (s *PointSet) Update(key string, x, y float64) {
	i, ok := s.index[key]
	if !ok {
		return
	}
	s.points[i].X = x
	s.points[i].Y = y
}

func (s *PointSet) Len() int {
	return len(s.points)
}

func (s *PointSet) At(i int) (DataPoint, bool) {
	if i < 0 || i >= len(s.points) {
		return DataPoint{}, false
	}
	return s.points[i], true
}

// All returns a copy of the points in draw order.
func (s *PointSet) All() []DataPoint {
	out := make([]DataPoint, len(s.points))
	copy(out, s.points)
	return out
}
