package main

import (
	"log/slog"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"quadrant/chart"
	"quadrant/dataset"
)

// A 107x25 terminal gives a 61x21 cell plot starting at (45, 1). With
// Impact up to 30 and Effort up to 20 every cell is 0.5 by 1 data units.
const (
	testWidth  = 107
	testHeight = 25
	testPlotX  = 45
	testPlotY  = 1
)

func writeFixture(t *testing.T) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	rows := [][]interface{}{
		{"Key", "Summary", "Impact", "Effort"},
		{"A", "alpha", 10, 20},
		{"B", "beta", 30, 5},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	path := filepath.Join(t.TempDir(), "points.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func newTestModel(t *testing.T) model {
	t.Helper()
	config := defaultConfig()
	config.LogFile = ""
	m := initialModel(config, slog.New(slog.DiscardHandler))
	require.NoError(t, m.openDataset(writeFixture(t)))
	t.Cleanup(func() { m.data.Close() })

	m = update(t, m, tea.WindowSizeMsg{Width: testWidth, Height: testHeight})
	return update(t, m, key("p"))
}

func update(t *testing.T, m model, msgs ...tea.Msg) model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		var ok bool
		m, ok = next.(model)
		require.True(t, ok)
	}
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress}
}

func motion(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonLeft, Action: tea.MouseActionMotion}
}

func release(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Button: tea.MouseButtonNone, Action: tea.MouseActionRelease}
}

func TestLayoutMatchesPlotGrid(t *testing.T) {
	m := newTestModel(t)
	lay := m.layout()
	assert.Equal(t, testPlotX, lay.plotX)
	assert.Equal(t, testPlotY, lay.plotY)
	assert.Equal(t, 61, lay.plotW)
	assert.Equal(t, 21, lay.plotH)

	p := m.pointerAt(testPlotX+20, testPlotY)
	require.True(t, p.Inside)
	assert.InDelta(t, 10, p.X, 1e-9)
	assert.InDelta(t, 20, p.Y, 1e-9)

	assert.False(t, m.pointerAt(2, 2).Inside)
	assert.False(t, m.pointerAt(testPlotX+61, testPlotY).Inside)
}

func TestPlot_SelectsFirstTwoAxes(t *testing.T) {
	m := newTestModel(t)
	require.True(t, m.plotted)
	x, y := m.chart.Labels()
	assert.Equal(t, "Impact", x)
	assert.Equal(t, "Effort", y)

	dx, dy, ok := m.chart.Divider()
	require.True(t, ok)
	assert.Equal(t, 15.0, dx)
	assert.Equal(t, 10.0, dy)
}

func TestPlot_RejectsIdenticalAxes(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("y"), key("p"))
	assert.Equal(t, "X and Y axes must be different.", m.errorMessage)
	x, y := m.chart.Labels()
	assert.Equal(t, "Impact", x)
	assert.Equal(t, "Effort", y)
}

func TestSwapAxes_SwapsDivider(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("s"))

	x, y := m.chart.Labels()
	assert.Equal(t, "Effort", x)
	assert.Equal(t, "Impact", y)
	dx, dy, _ := m.chart.Divider()
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, 15.0, dy)
}

func TestMouseDragPoint_UpdatesRowAndUndo(t *testing.T) {
	m := newTestModel(t)

	m = update(t, m,
		press(testPlotX+20, testPlotY),
		motion(testPlotX+30, testPlotY+8),
		motion(testPlotX+40, testPlotY+16),
		release(testPlotX+40, testPlotY+16),
	)

	assert.Equal(t, chart.Idle, m.chart.State())
	p, ok := m.chart.Point("A")
	require.True(t, ok)
	assert.Equal(t, 20.0, p.X)
	assert.Equal(t, 4.0, p.Y)

	assert.Equal(t, "20", m.data.Value(0, "Impact"))
	assert.Equal(t, "4", m.data.Value(0, "Effort"))
	assert.True(t, m.dirty())
	assert.Equal(t, 0, m.table.selectedRow)
	require.NotNil(t, m.table.lastSelected)
	assert.Equal(t, 20.0, m.table.lastSelected.X)
	assert.Contains(t, m.statusLine(), "Selected Point: Key=A, X=20, Y=4, Summary=alpha")

	m = update(t, m, key("u"))
	p, _ = m.chart.Point("A")
	assert.Equal(t, 10.0, p.X)
	assert.Equal(t, 20.0, p.Y)
	assert.Equal(t, "10", m.data.Value(0, "Impact"))
	assert.Equal(t, "20", m.data.Value(0, "Effort"))

	m = update(t, m, key("U"))
	p, _ = m.chart.Point("A")
	assert.Equal(t, 20.0, p.X)
	assert.Equal(t, "4", m.data.Value(0, "Effort"))
}

func TestUndoAfterSwap_RestoresRecordedColumns(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m,
		press(testPlotX+20, testPlotY),
		motion(testPlotX+40, testPlotY+16),
		release(testPlotX+40, testPlotY+16),
		key("s"),
	)
	p, _ := m.chart.Point("A")
	assert.Equal(t, 4.0, p.X)
	assert.Equal(t, 20.0, p.Y)

	m = update(t, m, key("u"))
	assert.Equal(t, "10", m.data.Value(0, "Impact"))
	assert.Equal(t, "20", m.data.Value(0, "Effort"))
	p, _ = m.chart.Point("A")
	assert.Equal(t, 20.0, p.X, "Effort on the x axis")
	assert.Equal(t, 10.0, p.Y, "Impact on the y axis")
	assert.False(t, m.dirty())

	m = update(t, m, key("U"))
	assert.Equal(t, "20", m.data.Value(0, "Impact"))
	assert.Equal(t, "4", m.data.Value(0, "Effort"))
	p, _ = m.chart.Point("A")
	assert.Equal(t, 4.0, p.X)
	assert.Equal(t, 20.0, p.Y)
	assert.True(t, m.dirty())
}

func TestUndoDividerAfterSwap(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m,
		press(testPlotX+30, testPlotY+5),
		motion(testPlotX+35, testPlotY+5),
		release(testPlotX+40, testPlotY+5),
		key("s"),
	)
	dx, dy, _ := m.chart.Divider()
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, 20.0, dy)

	m = update(t, m, key("u"))
	dx, dy, _ = m.chart.Divider()
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, 15.0, dy)
}

func TestReplotDuringDrag_DropsGesture(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m,
		press(testPlotX+30, testPlotY+5),
		motion(testPlotX+35, testPlotY+5),
		key("s"),
		release(testPlotX+50, testPlotY+5),
	)
	assert.Equal(t, chart.Idle, m.chart.State())
	dx, dy, _ := m.chart.Divider()
	assert.Equal(t, 10.0, dx)
	assert.Equal(t, 15.0, dy)
	assert.False(t, m.history.CanUndo())
}

func TestMouseClickPoint_SelectsRowWithoutEdit(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m,
		press(testPlotX+60, testPlotY+15),
		release(testPlotX+60, testPlotY+15),
	)

	assert.Equal(t, 1, m.table.selectedRow)
	assert.Equal(t, "B", m.chart.Highlighted())
	assert.False(t, m.dirty())
	assert.False(t, m.history.CanUndo())
}

func TestMouseDragDivider_RecordsUndo(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m,
		press(testPlotX+30, testPlotY+5),
		motion(testPlotX+35, testPlotY+5),
	)
	assert.Equal(t, chart.DraggingDivider, m.chart.State())
	assert.Equal(t, chart.VerticalLine, m.chart.ActiveLine())

	m = update(t, m, release(testPlotX+40, testPlotY+5))
	dx, dy, _ := m.chart.Divider()
	assert.Equal(t, 20.0, dx)
	assert.Equal(t, 10.0, dy)
	require.True(t, m.history.CanUndo())

	m = update(t, m, key("u"))
	dx, _, _ = m.chart.Divider()
	assert.Equal(t, 15.0, dx)
}

func TestMouseDividerClick_RecordsNothing(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m,
		press(testPlotX+30, testPlotY+5),
		release(testPlotX+30, testPlotY+5),
	)
	assert.False(t, m.history.CanUndo())
}

func TestMouseTableClick_HighlightsPoint(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, press(2, 2))
	assert.Equal(t, 1, m.table.selectedRow)
	assert.Equal(t, "B", m.chart.Highlighted())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEscape})
	assert.Equal(t, "", m.chart.Highlighted())
	assert.Equal(t, -1, m.table.selectedRow)
}

func TestRowNavigation(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("j"))
	assert.Equal(t, 0, m.table.selectedRow)
	assert.Equal(t, "A", m.chart.Highlighted())

	m = update(t, m, key("j"), key("j"))
	assert.Equal(t, 1, m.table.selectedRow)

	m = update(t, m, key("g"))
	assert.Equal(t, 0, m.table.selectedRow)
}

func TestReverseAxisKeys(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m, key("X"))
	x, y := m.chart.Reversed()
	assert.True(t, x)
	assert.False(t, y)
	assert.Equal(t, [2]float64{30, 0}, m.chart.Scene().XLim)
}

func TestQuit_ConfirmsUnsavedEdits(t *testing.T) {
	m := newTestModel(t)
	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)

	m = update(t, m,
		press(testPlotX+20, testPlotY),
		motion(testPlotX+40, testPlotY+16),
		release(testPlotX+40, testPlotY+16),
	)
	next, cmd := m.Update(key("q"))
	assert.Nil(t, cmd)
	assert.Equal(t, ModeConfirm, next.(model).mode)

	next, _ = next.Update(key("n"))
	assert.Equal(t, ModeNormal, next.(model).mode)
}

func TestSaveDataset_WritesMovedPoint(t *testing.T) {
	m := newTestModel(t)
	m = update(t, m,
		press(testPlotX+20, testPlotY),
		motion(testPlotX+40, testPlotY+16),
		release(testPlotX+40, testPlotY+16),
	)

	out := filepath.Join(t.TempDir(), "saved.xlsx")
	require.NoError(t, m.saveDataset(out))
	assert.False(t, m.dirty())

	reloaded, err := dataset.Load(out, "")
	require.NoError(t, err)
	defer reloaded.Close()
	assert.Equal(t, 20.0, reloaded.Float(0, "Impact"))
	assert.Equal(t, 4.0, reloaded.Float(0, "Effort"))
}

func TestSaveFlow_FileInput(t *testing.T) {
	m := newTestModel(t)
	m.config.SaveDirectory = t.TempDir()

	m = update(t, m, key("w"))
	require.Equal(t, ModeFileInput, m.mode)
	assert.Equal(t, "points", m.filename)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace}, key("x"), tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ModeNormal, m.mode)
	assert.Empty(t, m.errorMessage)
	assert.Equal(t, filepath.Join(m.config.SaveDirectory, "pointx.xlsx"), m.currentFile)
}

func TestCopySelectedPoint(t *testing.T) {
	var copied string
	orig := writeClipboard
	writeClipboard = func(s string) error {
		copied = s
		return nil
	}
	defer func() { writeClipboard = orig }()

	m := newTestModel(t)
	m = update(t, m, key("c"))
	assert.Equal(t, "No point selected", m.errorMessage)

	m = update(t, m,
		press(testPlotX+20, testPlotY),
		release(testPlotX+20, testPlotY),
		key("c"),
	)
	assert.Equal(t, "Key\tImpact\tEffort\tSummary\nA\t10\t20\talpha", copied)
}

func TestView_RendersPanels(t *testing.T) {
	m := newTestModel(t)
	view := m.View()
	assert.Contains(t, view, chart.Title)
	assert.Contains(t, view, "alpha")
	assert.Contains(t, view, "? for help")

	m = update(t, m, key("?"))
	assert.Contains(t, m.View(), "Quadrant Chart Help")
}
