package chart

// Listener receives the chart's outward notifications. Calls happen
// synchronously on the goroutine that fed the pointer event; a listener
// may call back into the chart.
type Listener interface {
	// PointSelected fires on click-select and after a completed drag.
	PointSelected(p Snapshot)
	// PointClicked fires once per click-select.
	PointClicked(key string)
	// PointDropped fires once per completed drag with the rounded
	// coordinates.
	PointDropped(key string, x, y float64)
}

// ListenerFuncs adapts plain functions to Listener. Nil fields are skipped.
type ListenerFuncs struct {
	OnSelected func(Snapshot)
	OnClicked  func(string)
	OnDropped  func(string, float64, float64)
}

func (f ListenerFuncs) PointSelected(p Snapshot) {
	if f.OnSelected != nil {
		f.OnSelected(p)
	}
}

func (f ListenerFuncs) PointClicked(key string) {
	if f.OnClicked != nil {
		f.OnClicked(key)
	}
}

func (f ListenerFuncs) PointDropped(key string, x, y float64) {
	if f.OnDropped != nil {
		f.OnDropped(key, x, y)
	}
}

type nopListener struct{}

func (nopListener) PointSelected(Snapshot)                {}
func (nopListener) PointClicked(string)                   {}
func (nopListener) PointDropped(string, float64, float64) {}
