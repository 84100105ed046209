package main

func (m *model) handleRowNavigation(key string) {
	if m.table == nil || m.data.Len() == 0 {
		return
	}
	row := m.table.selectedRow
	switch key {
	case "j", "down":
		row++
	case "k", "up":
		row--
	case "J", "pgdown":
		row += m.table.visibleRows
	case "K", "pgup":
		row -= m.table.visibleRows
	case "g", "home":
		row = 0
	case "G", "end":
		row = m.data.Len() - 1
	default:
		return
	}
	if m.table.selectedRow < 0 && row < 0 {
		row = 0
	}
	m.table.SelectRow(row)
}

// cycleAxis moves the x or y axis to the next candidate column. The
// chart is not replotted until p or s is pressed.
func (m *model) cycleAxis(key string) {
	if len(m.axes) == 0 {
		m.errorMessage = "Open a dataset first"
		return
	}
	switch key {
	case "x":
		m.xIndex = (m.xIndex + 1) % len(m.axes)
		m.successMessage = "X axis: " + m.axes[m.xIndex]
	case "y":
		m.yIndex = (m.yIndex + 1) % len(m.axes)
		m.successMessage = "Y axis: " + m.axes[m.yIndex]
	}
	m.errorMessage = ""
}
