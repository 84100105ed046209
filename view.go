package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"quadrant/chart"
)

var helpLines = []string{
	"Quadrant Chart Help",
	"===================",
	"",
	"Mouse:",
	"------",
	"  Drag a point label      Move the point; the row is updated on release",
	"  Click a point label     Select the row in the table",
	"  Drag a dashed divider   Move the divider",
	"  Click a table row       Highlight its point",
	"",
	"Chart:",
	"------",
	"  x / y            Cycle the X / Y axis column",
	"  p                Plot the selected axes",
	"  s                Swap the axes and replot",
	"  X / Y            Reverse the X / Y axis",
	"",
	"Table:",
	"------",
	"  j/↓ k/↑          Select next / previous row",
	"  J K              Page down / up",
	"  g G              First / last row",
	"  Esc              Clear the highlighted point",
	"  c                Copy the selected point to the clipboard",
	"",
	"Files:",
	"------",
	"  o                Open an xlsx file",
	"  w                Save the dataset as xlsx",
	"  e                Export the chart as PNG",
	"",
	"General:",
	"  u                Undo last move",
	"  U / Ctrl+R       Redo last undone move",
	"  ?                Toggle this help screen",
	"  q/Ctrl+C         Quit",
}

var separatorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#666666"))

func (m model) View() string {
	if m.help {
		return m.helpView()
	}

	height := max(m.height-statusRows, 1)
	var body string
	if m.mode == ModeFileInput && m.fileOp == FileOpOpen {
		body = m.fileListView(height)
	} else {
		body = m.panelsView(height)
	}
	return body + "\n" + m.statusLine()
}

func (m model) panelsView(height int) string {
	lay := m.layout()

	var table []string
	if m.table != nil {
		table = m.table.Render(lay.tableWidth, height)
	} else {
		table = emptyChart(lay.tableWidth, height, "o to open")
	}

	var plot []string
	if m.plotted {
		plot = renderChart(m.chart.Scene(), lay, height)
	} else {
		plot = emptyChart(lay.chartWidth, height, "x/y pick axes, p to plot")
	}

	sep := separatorStyle.Render(strings.TrimSuffix(strings.Repeat("│\n", height), "\n"))
	return lipgloss.JoinHorizontal(lipgloss.Top,
		lipgloss.NewStyle().Width(lay.tableWidth).Render(strings.Join(table, "\n")),
		sep,
		strings.Join(plot, "\n"),
	)
}

func (m model) fileListView(height int) string {
	width := max(m.width, 1)
	var result strings.Builder
	result.WriteString("Select a dataset:\n")
	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")

	if len(m.fileList) == 0 {
		result.WriteString("(No .xlsx files found in current directory)\n")
	} else {
		maxFiles := max(height-4, 1)
		startIdx := 0
		if m.selectedFileIndex >= maxFiles {
			startIdx = m.selectedFileIndex - maxFiles + 1
		}
		endIdx := min(startIdx+maxFiles, len(m.fileList))
		for i := startIdx; i < endIdx; i++ {
			if i == m.selectedFileIndex {
				result.WriteString("> " + m.fileList[i] + " <")
			} else {
				result.WriteString("  " + m.fileList[i])
			}
			result.WriteString("\n")
		}
	}

	result.WriteString(strings.Repeat("─", width))
	result.WriteString("\n")
	result.WriteString("Filename: ")
	result.WriteString(m.filename)
	result.WriteString("█")
	return result.String()
}

func (m model) statusLine() string {
	switch m.mode {
	case ModeFileInput:
		prompt := "Save as"
		switch m.fileOp {
		case FileOpSavePNG:
			prompt = "Export PNG as"
		case FileOpOpen:
			prompt = "Open"
		}
		status := fmt.Sprintf("%s: %s█ | Enter to confirm, Esc to cancel", prompt, m.filename)
		if m.errorMessage != "" {
			status += " | ERROR: " + m.errorMessage
		}
		return status
	case ModeConfirm:
		switch m.confirmAction {
		case ConfirmQuit:
			return "Unsaved changes. Quit anyway? (y/n)"
		case ConfirmOpenDiscard:
			return "Unsaved changes. Discard and open another file? (y/n)"
		case ConfirmOverwriteFile:
			return fmt.Sprintf("%s exists. Overwrite? (y/n)", filepath.Base(m.filename))
		}
	}

	status := "Mode: " + m.modeString()
	if m.currentFile != "" {
		name := filepath.Base(m.currentFile)
		if m.dirty() {
			name += "*"
		}
		status += " | " + name
	}
	if m.chart.State() != chart.Idle {
		status += " | " + m.chart.State().String()
		if line := m.chart.ActiveLine(); line != chart.NoLine {
			status += " " + line.String()
		}
	} else if m.table != nil && m.table.lastSelected != nil {
		status += " | " + selectedPointText(*m.table.lastSelected)
	}
	if m.successMessage != "" {
		status += " | " + m.successMessage
	}
	if m.errorMessage != "" {
		status += " | ERROR: " + m.errorMessage
	} else if m.successMessage == "" {
		status += " | ? for help | q to quit"
	}
	return status
}

func (m model) modeString() string {
	switch m.mode {
	case ModeNormal:
		return "NORMAL"
	case ModeFileInput:
		return "FILE"
	case ModeConfirm:
		return "CONFIRM"
	default:
		return "UNKNOWN"
	}
}

func (m model) helpView() string {
	visibleHeight := max(m.height-1, 1)

	startLine := m.helpScroll
	if startLine >= len(helpLines) {
		startLine = max(len(helpLines)-visibleHeight, 0)
	}
	endLine := min(startLine+visibleHeight, len(helpLines))

	result := strings.Join(helpLines[startLine:endLine], "\n")
	statusLine := fmt.Sprintf("Help (%d-%d of %d lines) | j/k to scroll, Esc to close",
		startLine+1, endLine, len(helpLines))
	return result + "\n" + statusLine
}
