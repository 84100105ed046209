package main

import (
	"log/slog"

	"quadrant/chart"
	"quadrant/dataset"
)

type model struct {
	width             int
	height            int
	mode              Mode
	help              bool
	helpScroll        int
	data              *dataset.Dataset
	chart             *chart.Chart
	table             *Table
	history           *History
	axes              []string
	xIndex            int
	yIndex            int
	plotted           bool
	plottedX          string
	plottedY          string
	dividerBeforeDrag MoveDividerData
	currentFile       string
	sheet             string
	filename          string
	fileList          []string
	selectedFileIndex int
	fileOp            FileOperation
	confirmAction     ConfirmAction
	errorMessage      string
	successMessage    string
	config            *Config
	logger            *slog.Logger
}

// layout is where the panels sit on screen, in terminal cells.
type layout struct {
	tableWidth int
	chartX     int
	chartWidth int
	plotX      int
	plotY      int
	plotW      int
	plotH      int
}

type Action struct {
	Type    ActionType
	Data    interface{}
	Inverse interface{}
}

// MovePointData is the state of one row's two plotted cells. The column
// names pin the values to the cells they came from.
type MovePointData struct {
	Key              string
	XColumn, YColumn string
	X, Y             float64
}

// MoveDividerData is a divider position on the XColumn/YColumn plot.
type MoveDividerData struct {
	XColumn, YColumn string
	X, Y             float64
}
