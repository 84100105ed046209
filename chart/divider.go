package chart

// Divider holds the positions of the two quadrant lines in data
// coordinates. Either value may be unset until the first full redraw.
type Divider struct {
	x, y       float64
	hasX, hasY bool
}

func (d *Divider) X() (float64, bool) { return d.x, d.hasX }
func (d *Divider) Y() (float64, bool) { return d.y, d.hasY }

func (d *Divider) SetX(v float64) {
	d.x, d.hasX = v, true
}

func (d *Divider) SetY(v float64) {
	d.y, d.hasY = v, true
}

// Swap exchanges the two values, following an axis swap.
func (d *Divider) Swap() {
	d.x, d.y = d.y, d.x
	d.hasX, d.hasY = d.hasY, d.hasX
}

// Reset clears both values for a new dataset.
func (d *Divider) Reset() {
	*d = Divider{}
}

// EnsureValid fills unset values with the chart midpoint and pulls values
// at or past an axis maximum back inside. Call it only on a full redraw so a
// line being dragged does not jump.
func (d *Divider) EnsureValid(maxX, maxY float64) {
	if !d.hasX || !d.hasY {
		d.x, d.y = DefaultDivider(maxX, maxY)
		d.hasX, d.hasY = true, true
	}
	d.x = ClampDivider(d.x, maxX)
	d.y = ClampDivider(d.y, maxY)
}
