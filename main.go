// Package main is the terminal front end for the quadrant chart: a row
// table next to an interactive chart of two dataset columns.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"quadrant/chart"
	"quadrant/dataset"
)

var (
	xAxis     string
	yAxis     string
	sheetName string
	logFile   string
	logLevel  string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "quadrant [file.xlsx]",
		Short: "Plot two columns of a spreadsheet on a quadrant chart",
		Long: `quadrant shows the rows of an xlsx sheet as points on a quadrant chart.
Points and dividers can be dragged with the mouse; dropped points are
written back to the row and can be saved.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         run,
	}

	rootCmd.Flags().StringVar(&xAxis, "x", "", "Column for the X axis")
	rootCmd.Flags().StringVar(&yAxis, "y", "", "Column for the Y axis")
	rootCmd.Flags().StringVar(&sheetName, "sheet", "", "Sheet to load (default: first sheet)")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Log file path (default from ~/.quadrantrc or app.log)")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	config := loadConfig()
	if cmd.Flags().Changed("log-file") {
		config.LogFile = logFile
	}
	if logLevel != "" {
		config.LogLevel = logLevel
	}

	logger, closer, err := newLogger(config.LogFile, config.LogLevel)
	if err != nil {
		return err
	}
	defer closer.Close()

	m := initialModel(config, logger)
	m.sheet = sheetName
	if len(args) == 1 {
		if err := m.openDataset(args[0]); err != nil {
			return err
		}
		if xAxis != "" || yAxis != "" {
			if err := m.selectAxes(xAxis, yAxis); err != nil {
				return err
			}
			m.plot()
		}
	}

	p := tea.NewProgram(
		m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	final, err := p.Run()
	if err != nil {
		return fmt.Errorf("run: %w", err)
	}
	if fm, ok := final.(model); ok && fm.data != nil {
		fm.data.Close()
	}
	return nil
}

func initialModel(config *Config, logger *slog.Logger) model {
	return model{
		mode: ModeNormal,
		chart: chart.NewChart(&chart.ChartParams{
			Logger: logger,
			Colors: chart.HappyColor,
		}),
		history:           NewHistory(),
		selectedFileIndex: -1,
		config:            config,
		logger:            logger,
	}
}

// openDataset replaces the current dataset. The divider is reset for the
// next plot.
func (m *model) openDataset(path string) error {
	data, err := dataset.Load(path, m.sheet)
	if err != nil {
		return err
	}
	if m.data != nil {
		m.data.Close()
	}

	m.data = data
	m.history = NewHistory()
	m.table = NewTable(data, m.config.ColorSeed, m.history, m.logger)
	m.table.highlight = m.chart.HighlightPoint
	m.chart.SetListener(m.table)
	m.chart.Initialize(false)

	m.axes = data.AxisCandidates()
	m.xIndex, m.yIndex = 0, min(1, max(len(m.axes)-1, 0))
	m.plotted = false
	m.plottedX, m.plottedY = "", ""
	m.currentFile = path
	m.resize()

	m.logger.Info("dataset opened", "path", path, "rows", data.Len(), "axes", len(m.axes))
	return nil
}

func (m *model) selectAxes(x, y string) error {
	find := func(name string) (int, error) {
		for i, a := range m.axes {
			if a == name {
				return i, nil
			}
		}
		return 0, fmt.Errorf("%w: %q", dataset.ErrUnknownColumn, name)
	}
	if x != "" {
		i, err := find(x)
		if err != nil {
			return err
		}
		m.xIndex = i
	}
	if y != "" {
		i, err := find(y)
		if err != nil {
			return err
		}
		m.yIndex = i
	}
	return nil
}

// plot draws the selected axes. Replotting the same axes keeps the
// divider, swapped axes swap it and any other change resets it.
func (m *model) plot() {
	if m.data == nil || len(m.axes) == 0 {
		m.errorMessage = "Open a dataset first"
		return
	}
	x, y := m.axes[m.xIndex], m.axes[m.yIndex]
	if x == y {
		m.errorMessage = "X and Y axes must be different."
		return
	}

	switch {
	case !m.plotted:
	case x == m.plottedX && y == m.plottedY:
	case x == m.plottedY && y == m.plottedX:
		m.chart.Initialize(true)
	default:
		m.chart.Initialize(false)
	}

	m.table.SetAxes(x, y)
	m.chart.Plot(m.table.Rows(), x, y, m.table.colors)
	m.plotted = true
	m.plottedX, m.plottedY = x, y
	if m.table.selectedRow >= 0 {
		m.chart.HighlightPoint(m.table.selectedRow)
	}
	m.errorMessage = ""
}

func (m *model) resize() {
	lay := m.layout()
	m.chart.SetViewport(chart.TerminalMetrics(lay.plotW, lay.plotH))
	if m.table != nil {
		m.table.SetHeight(m.height - statusRows)
	}
}

func (m *model) dirty() bool {
	return m.table != nil && m.table.dirty
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.help {
			return m.handleHelpKey(msg)
		}
		switch m.mode {
		case ModeFileInput:
			return m.handleFileInput(msg)
		case ModeConfirm:
			return m.handleConfirm(msg)
		default:
			return m.handleNormalKey(msg)
		}
	}
	return m, nil
}

// handleMouse feeds left-button gestures inside the chart to the chart
// and row clicks to the table.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != ModeNormal || m.help {
		return m, nil
	}
	lay := m.layout()

	if msg.Action == tea.MouseActionPress && msg.X < lay.tableWidth {
		if msg.Button == tea.MouseButtonLeft && m.table != nil {
			if row := m.table.RowAt(msg.Y); row >= 0 {
				m.table.SelectRow(row)
			}
		}
		return m, nil
	}
	if !m.plotted {
		return m, nil
	}

	p := m.pointerAt(msg.X, msg.Y)
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		if x, y, ok := m.chart.Divider(); ok {
			m.dividerBeforeDrag = MoveDividerData{XColumn: m.plottedX, YColumn: m.plottedY, X: x, Y: y}
		}
		m.chart.PointerDown(p)
	case tea.MouseActionMotion:
		m.chart.PointerMove(p)
	case tea.MouseActionRelease:
		wasDivider := m.chart.State() == chart.DraggingDivider
		m.chart.PointerUp(p)
		if wasDivider {
			m.recordDividerMove()
		}
	}
	return m, nil
}

func (m *model) recordDividerMove() {
	x, y, ok := m.chart.Divider()
	if !ok {
		return
	}
	after := MoveDividerData{XColumn: m.plottedX, YColumn: m.plottedY, X: x, Y: y}
	if after == m.dividerBeforeDrag {
		return
	}
	m.history.Record(ActionMoveDivider, after, m.dividerBeforeDrag)
	m.logger.Info("divider moved", "x", x, "y", y)
}

func (m model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.successMessage = ""
	key := msg.String()
	switch key {
	case "ctrl+c":
		return m, tea.Quit
	case "q":
		if m.dirty() && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmQuit
			return m, nil
		}
		return m, tea.Quit
	case "?":
		m.help = true
		m.helpScroll = 0
	case "o":
		if m.dirty() && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOpenDiscard
			return m, nil
		}
		m.startOpen()
	case "w":
		if m.data == nil {
			m.errorMessage = "Nothing to save"
			return m, nil
		}
		m.mode = ModeFileInput
		m.fileOp = FileOpSave
		m.filename = strings.TrimSuffix(filepath.Base(m.currentFile), filepath.Ext(m.currentFile))
		m.errorMessage = ""
	case "e":
		if !m.plotted {
			m.errorMessage = "Plot a chart first"
			return m, nil
		}
		m.mode = ModeFileInput
		m.fileOp = FileOpSavePNG
		m.filename = strings.TrimSuffix(defaultPNG, filepath.Ext(defaultPNG))
		m.errorMessage = ""
	case "x", "y":
		m.cycleAxis(key)
	case "p":
		m.plot()
	case "s":
		m.xIndex, m.yIndex = m.yIndex, m.xIndex
		m.plot()
	case "X":
		if m.plotted {
			m.chart.ReverseXAxis()
		}
	case "Y":
		if m.plotted {
			m.chart.ReverseYAxis()
		}
	case "esc":
		m.chart.ObscurePoint()
		if m.table != nil {
			m.table.ClearSelection()
		}
	case "u":
		m.undo()
	case "U", "ctrl+r":
		m.redo()
	case "c":
		m.copySelectedPoint()
	default:
		m.handleRowNavigation(key)
	}
	return m, nil
}

func (m *model) startOpen() {
	m.mode = ModeFileInput
	m.fileOp = FileOpOpen
	m.filename = ""
	m.errorMessage = ""
	m.scanXlsxFiles()
}

func (m *model) copySelectedPoint() {
	if m.table == nil || m.table.lastSelected == nil {
		m.errorMessage = "No point selected"
		return
	}
	x, y := m.chart.Labels()
	if err := writeClipboard(pointClipboardText(*m.table.lastSelected, x, y)); err != nil {
		m.errorMessage = fmt.Sprintf("Error copying point: %s", err.Error())
		return
	}
	m.successMessage = "Copied " + m.table.lastSelected.Key
	m.errorMessage = ""
}

func (m model) handleFileInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyEscape:
		m.mode = ModeNormal
		m.filename = ""
		m.errorMessage = ""
		return m, nil
	case msg.String() == "up" || msg.String() == "down":
		if m.fileOp == FileOpOpen && len(m.fileList) > 0 {
			step := 1
			if msg.String() == "up" {
				step = -1
			}
			m.selectedFileIndex = (m.selectedFileIndex + step + len(m.fileList)) % len(m.fileList)
			m.filename = m.fileList[m.selectedFileIndex]
		}
		return m, nil
	case msg.Type == tea.KeyEnter:
		if strings.TrimSpace(m.filename) == "" {
			m.errorMessage = "Please enter a filename"
			return m, nil
		}
		return m.runFileOp()
	case msg.Type == tea.KeyBackspace:
		if len(m.filename) > 0 {
			m.filename = m.filename[:len(m.filename)-1]
			m.selectedFileIndex = -1
		}
		return m, nil
	default:
		keyStr := msg.String()
		if len(keyStr) == 1 {
			m.filename += keyStr
			m.selectedFileIndex = -1
		}
		return m, nil
	}
}

func (m model) runFileOp() (tea.Model, tea.Cmd) {
	switch m.fileOp {
	case FileOpOpen:
		filename := withExtension(m.filename, ".xlsx")
		if err := m.openDataset(filename); err != nil {
			m.errorMessage = fmt.Sprintf("Error opening file: %s", err.Error())
			return m, nil
		}
		m.successMessage = "Opened " + filename
	case FileOpSave:
		filename := m.config.GetSavePath(withExtension(m.filename, ".xlsx"))
		if _, err := os.Stat(filename); err == nil && m.config.Confirmations {
			m.mode = ModeConfirm
			m.confirmAction = ConfirmOverwriteFile
			m.filename = filename
			return m, nil
		}
		if err := m.saveDataset(filename); err != nil {
			m.errorMessage = fmt.Sprintf("Error saving file: %s", err.Error())
			return m, nil
		}
	case FileOpSavePNG:
		filename := m.config.GetSavePath(withExtension(m.filename, ".png"))
		if err := exportPNG(m.chart.Scene(), filename); err != nil {
			m.errorMessage = fmt.Sprintf("Error exporting PNG: %s", err.Error())
			return m, nil
		}
		absPath, _ := filepath.Abs(filename)
		m.successMessage = fmt.Sprintf("Exported to %s", absPath)
	}
	m.errorMessage = ""
	m.mode = ModeNormal
	m.filename = ""
	return m, nil
}

func (m *model) saveDataset(filename string) error {
	if err := m.data.Save(filename); err != nil {
		return err
	}
	m.table.MarkSaved()
	m.currentFile = filename
	absPath, _ := filepath.Abs(filename)
	m.successMessage = fmt.Sprintf("Saved to %s", absPath)
	m.logger.Info("dataset saved", "path", absPath)
	return nil
}

func (m model) handleConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		switch m.confirmAction {
		case ConfirmQuit:
			return m, tea.Quit
		case ConfirmOpenDiscard:
			m.startOpen()
			return m, nil
		case ConfirmOverwriteFile:
			if err := m.saveDataset(m.filename); err != nil {
				m.errorMessage = fmt.Sprintf("Error saving file: %s", err.Error())
				m.mode = ModeFileInput
				return m, nil
			}
			m.errorMessage = ""
		}
		m.mode = ModeNormal
		m.filename = ""
		return m, nil
	case "n", "N", "esc":
		if m.confirmAction == ConfirmOverwriteFile {
			m.mode = ModeFileInput
			m.fileOp = FileOpSave
		} else {
			m.mode = ModeNormal
		}
		return m, nil
	default:
		return m, nil
	}
}

func (m model) handleHelpKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.help = false
		m.helpScroll = 0
	case "j", "down":
		maxScroll := max(len(helpLines)-max(m.height-1, 1), 0)
		if m.helpScroll < maxScroll {
			m.helpScroll++
		}
	case "k", "up":
		if m.helpScroll > 0 {
			m.helpScroll--
		}
	default:
		m.help = false
		m.helpScroll = 0
	}
	return m, nil
}
