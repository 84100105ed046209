package main

import (
	"image/color"
	"log/slog"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"quadrant/chart"
	"quadrant/dataset"
)

type cellRef struct {
	row    int
	column string
}

// Table is the row view of the dataset. It listens to the chart and keeps
// its cells in step with dragged points.
type Table struct {
	data         *dataset.Dataset
	colors       []color.NRGBA
	xColumn      string
	yColumn      string
	edited       map[cellRef]bool
	loaded       map[cellRef]string
	saved        map[cellRef]string
	selectedRow  int
	offset       int
	visibleRows  int
	lastSelected *chart.Snapshot
	history      *History
	highlight    func(row int)
	dirty        bool
	logger       *slog.Logger
}

func NewTable(data *dataset.Dataset, colorSeed int64, history *History, logger *slog.Logger) *Table {
	return &Table{
		data:        data,
		colors:      data.Colors(colorSeed),
		edited:      map[cellRef]bool{},
		loaded:      map[cellRef]string{},
		saved:       map[cellRef]string{},
		selectedRow: -1,
		visibleRows: 1,
		history:     history,
		highlight:   func(int) {},
		logger:      logger,
	}
}

func (t *Table) SetAxes(x, y string) {
	t.xColumn, t.yColumn = x, y
}

// Rows returns the dataset as chart rows carrying the current axes.
func (t *Table) Rows() []chart.Row {
	rows := make([]chart.Row, t.data.Len())
	for r := range rows {
		rows[r] = chart.Row{
			Key:     t.data.Key(r),
			Summary: t.data.Summary(r),
			Values: map[string]float64{
				t.xColumn: t.data.Float(r, t.xColumn),
				t.yColumn: t.data.Float(r, t.yColumn),
			},
		}
	}
	return rows
}

func (t *Table) PointSelected(p chart.Snapshot) {
	t.lastSelected = &p
}

func (t *Table) PointClicked(key string) {
	row := t.data.RowByKey(key)
	if row < 0 {
		return
	}
	t.SelectRow(row)
}

// PointDropped writes the new coordinates into the row and records the
// move for undo.
func (t *Table) PointDropped(key string, x, y float64) {
	row := t.data.RowByKey(key)
	if row < 0 {
		t.logger.Warn("dropped point has no row", "key", key)
		return
	}
	old := MovePointData{
		Key:     key,
		XColumn: t.xColumn,
		YColumn: t.yColumn,
		X:       t.data.Float(row, t.xColumn),
		Y:       t.data.Float(row, t.yColumn),
	}
	moved := old
	moved.X, moved.Y = x, y
	if !t.setPoint(moved) {
		return
	}
	t.history.Record(ActionMovePoint, moved, old)
	t.logger.Info("point dropped", "key", key, "x", x, "y", y)
}

// setPoint writes d into the named cells of d.Key's row.
func (t *Table) setPoint(d MovePointData) bool {
	row := t.data.RowByKey(d.Key)
	if row < 0 {
		t.logger.Warn("point has no row", "key", d.Key)
		return false
	}
	for _, c := range []struct {
		column string
		value  float64
	}{{d.XColumn, d.X}, {d.YColumn, d.Y}} {
		ref := cellRef{row, c.column}
		before := t.data.Value(row, c.column)
		if _, ok := t.loaded[ref]; !ok {
			t.loaded[ref] = before
		}
		if _, ok := t.saved[ref]; !ok {
			t.saved[ref] = before
		}
		if err := t.data.Set(row, c.column, c.value); err != nil {
			t.logger.Error("update cell", "key", d.Key, "column", c.column, "err", err)
			return false
		}
		t.edited[ref] = t.data.Value(row, c.column) != t.loaded[ref]
	}
	t.updateDirty()
	return true
}

// updateDirty compares every touched cell with its value at the last save.
func (t *Table) updateDirty() {
	t.dirty = false
	for ref, v := range t.saved {
		if t.data.Value(ref.row, ref.column) != v {
			t.dirty = true
			return
		}
	}
}

// MarkSaved makes the current cell values the clean state.
func (t *Table) MarkSaved() {
	t.saved = map[cellRef]string{}
	t.dirty = false
}

func (t *Table) SetHeight(rows int) {
	t.visibleRows = max(rows-1, 1) // header
	t.ensureVisible()
}

// SelectRow selects a row, scrolls it into view and asks the chart to
// highlight it.
func (t *Table) SelectRow(row int) {
	if t.data.Len() == 0 {
		return
	}
	row = min(max(row, 0), t.data.Len()-1)
	t.selectedRow = row
	t.ensureVisible()
	t.highlight(row)
}

func (t *Table) ClearSelection() {
	t.selectedRow = -1
}

func (t *Table) ensureVisible() {
	if t.selectedRow < 0 {
		return
	}
	if t.selectedRow < t.offset {
		t.offset = t.selectedRow
	}
	if t.selectedRow >= t.offset+t.visibleRows {
		t.offset = t.selectedRow - t.visibleRows + 1
	}
}

// RowAt maps a panel line (0 is the header) to a dataset row, or -1.
func (t *Table) RowAt(line int) int {
	if line < 1 {
		return -1
	}
	row := t.offset + line - 1
	if row >= t.data.Len() {
		return -1
	}
	return row
}

var (
	tableHeaderStyle   = lipgloss.NewStyle().Bold(true).Underline(true)
	tableSelectedStyle = lipgloss.NewStyle().Reverse(true)
	tableEditedStyle   = lipgloss.NewStyle().Background(lipgloss.Color("#ffff00")).Foreground(lipgloss.Color("#000000"))
)

// Render draws the table into width x height cells.
func (t *Table) Render(width, height int) []string {
	keyW, numW := 8, 9
	sumW := max(width-keyW-2*numW-3, 4)
	columns := []struct {
		name  string
		width int
	}{
		{dataset.KeyColumn, keyW},
		{t.xColumn, numW},
		{t.yColumn, numW},
		{dataset.SummaryColumn, sumW},
	}

	lines := make([]string, 0, height)
	var header []string
	for _, c := range columns {
		header = append(header, tableHeaderStyle.Render(fit(c.name, c.width)))
	}
	lines = append(lines, strings.Join(header, " "))

	for row := t.offset; row < t.data.Len() && len(lines) < height; row++ {
		var cells []string
		for _, c := range columns {
			text := fit(t.data.Value(row, c.name), c.width)
			switch {
			case t.edited[cellRef{row, c.name}]:
				text = tableEditedStyle.Render(text)
			case row == t.selectedRow:
				text = tableSelectedStyle.Render(text)
			}
			cells = append(cells, text)
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	for len(lines) < height {
		lines = append(lines, strings.Repeat(" ", width))
	}
	return lines
}

func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}
