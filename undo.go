package main

// History holds undo and redo stacks for one open dataset.
type History struct {
	undoStack []Action
	redoStack []Action
}

func NewHistory() *History {
	return &History{
		undoStack: []Action{},
		redoStack: []Action{},
	}
}

func (h *History) Record(actionType ActionType, data, inverse interface{}) {
	h.undoStack = append(h.undoStack, Action{
		Type:    actionType,
		Data:    data,
		Inverse: inverse,
	})
	h.redoStack = h.redoStack[:0]
}

func (h *History) CanUndo() bool { return len(h.undoStack) > 0 }
func (h *History) CanRedo() bool { return len(h.redoStack) > 0 }

func (m *model) undo() {
	if m.history == nil || len(m.history.undoStack) == 0 {
		return
	}

	lastIndex := len(m.history.undoStack) - 1
	action := m.history.undoStack[lastIndex]
	m.history.undoStack = m.history.undoStack[:lastIndex]

	m.applyAction(action.Type, action.Inverse)

	m.history.redoStack = append(m.history.redoStack, action)
	m.logger.Debug("undo", "action", action.Type)
}

func (m *model) redo() {
	if m.history == nil || len(m.history.redoStack) == 0 {
		return
	}

	lastIndex := len(m.history.redoStack) - 1
	action := m.history.redoStack[lastIndex]
	m.history.redoStack = m.history.redoStack[:lastIndex]

	m.applyAction(action.Type, action.Data)

	m.history.undoStack = append(m.history.undoStack, action)
	m.logger.Debug("redo", "action", action.Type)
}

// applyAction puts dataset, table and chart into the state described by
// data without recording anything. Cells are written to the columns the
// action was recorded on, whatever is plotted now.
func (m *model) applyAction(actionType ActionType, data interface{}) {
	switch actionType {
	case ActionMovePoint:
		d := data.(MovePointData)
		if !m.table.setPoint(d) {
			return
		}
		m.syncPoint(d)
	case ActionMoveDivider:
		d := data.(MoveDividerData)
		switch {
		case !m.plotted:
		case d.XColumn == m.plottedX && d.YColumn == m.plottedY:
			m.chart.SetDivider(d.X, d.Y)
		case d.XColumn == m.plottedY && d.YColumn == m.plottedX:
			m.chart.SetDivider(d.Y, d.X)
		default:
			m.logger.Debug("divider move skipped", "x", d.XColumn, "y", d.YColumn)
		}
	}
}

// syncPoint refreshes the plotted point of d.Key from the dataset when
// either written column is on screen.
func (m *model) syncPoint(d MovePointData) {
	if !m.plotted {
		return
	}
	onScreen := func(column string) bool {
		return column == m.plottedX || column == m.plottedY
	}
	if !onScreen(d.XColumn) && !onScreen(d.YColumn) {
		return
	}
	row := m.data.RowByKey(d.Key)
	m.chart.MovePoint(d.Key, m.data.Float(row, m.plottedX), m.data.Float(row, m.plottedY))
}

func (a ActionType) String() string {
	switch a {
	case ActionMovePoint:
		return "move-point"
	case ActionMoveDivider:
		return "move-divider"
	default:
		return "unknown"
	}
}
