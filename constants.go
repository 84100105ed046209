package main

type Mode int

const (
	ModeNormal Mode = iota
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpSavePNG
	FileOpOpen
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmOpenDiscard
	ConfirmOverwriteFile
)

type ActionType int

const (
	ActionMovePoint ActionType = iota
	ActionMoveDivider
)

const (
	minTableWidth = 36
	yGutterWidth  = 8 // tick labels left of the plot
	chartTopRows  = 1 // title line
	chartBotRows  = 2 // x ticks and x label
	statusRows    = 1

	defaultLogFile = "app.log"
	defaultPNG     = "quadrant.png"
)
