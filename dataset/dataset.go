// Package dataset reads and writes the tabular data behind a quadrant
// chart: one xlsx sheet whose first row is the header and whose remaining
// rows are items identified by a Key column.
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const (
	KeyColumn     = "Key"
	SummaryColumn = "Summary"
	ColorColumn   = "Color"
)

// Column describes one header column. IsFormula is decided from the first
// data row.
type Column struct {
	Index     int
	Letter    string
	Name      string
	IsFormula bool
	Formula   string
}

// Dataset is an open sheet. Values are kept as display text; empty cells
// read as "0".
type Dataset struct {
	Path  string
	Sheet string

	file    *excelize.File
	columns []Column
	byName  map[string]int
	rows    [][]string
	byKey   map[string]int
}

// Load opens path and reads sheet, or the first sheet when sheet is empty.
func Load(path, sheet string) (*Dataset, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	ds, err := fromFile(f, sheet)
	if err != nil {
		f.Close()
		return nil, &LoadError{Path: path, Err: err}
	}
	ds.Path = path
	return ds, nil
}

func fromFile(f *excelize.File, sheet string) (*Dataset, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrNoSheets
	}
	if sheet == "" {
		sheet = sheets[0]
	}
	raw, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(raw) == 0 {
		return nil, ErrNoKeyColumn
	}

	ds := &Dataset{
		Sheet:  sheet,
		file:   f,
		byName: map[string]int{},
		byKey:  map[string]int{},
	}
	header := raw[0]
	for i, name := range header {
		letter, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, err
		}
		ds.columns = append(ds.columns, Column{Index: i, Letter: letter, Name: name})
		ds.byName[name] = i
	}
	if _, ok := ds.byName[KeyColumn]; !ok {
		return nil, ErrNoKeyColumn
	}

	for r, src := range raw[1:] {
		row := make([]string, len(header))
		for c := range row {
			row[c] = "0"
			if c < len(src) && src[c] != "" {
				row[c] = src[c]
			}
		}
		key := row[ds.byName[KeyColumn]]
		if first, ok := ds.byKey[key]; ok {
			return nil, fmt.Errorf("%w: %q in rows %d and %d", ErrDuplicateKey, key, first+2, r+2)
		}
		ds.rows = append(ds.rows, row)
		ds.byKey[key] = r
	}

	if err := ds.detectFormulas(); err != nil {
		return nil, err
	}
	for r := range ds.rows {
		ds.recalculate(r)
	}
	return ds, nil
}

// detectFormulas marks columns whose first data cell holds a formula.
func (ds *Dataset) detectFormulas() error {
	if len(ds.rows) == 0 {
		return nil
	}
	for i := range ds.columns {
		formula, err := ds.file.GetCellFormula(ds.Sheet, cellName(i, 0))
		if err != nil {
			return fmt.Errorf("read formula in column %s: %w", ds.columns[i].Letter, err)
		}
		if formula != "" {
			ds.columns[i].IsFormula = true
			ds.columns[i].Formula = "=" + strings.TrimPrefix(formula, "=")
		}
	}
	return nil
}

// recalculate evaluates every formula cell of row on its own. There is no
// dependency ordering between formula cells.
func (ds *Dataset) recalculate(row int) {
	for c := range ds.columns {
		cell := cellName(c, row)
		formula, err := ds.file.GetCellFormula(ds.Sheet, cell)
		if err != nil || formula == "" {
			continue
		}
		v, err := ds.file.CalcCellValue(ds.Sheet, cell)
		if err != nil || v == "" {
			continue
		}
		ds.rows[row][c] = v
	}
}

// cellName converts zero-based column and data row indexes to an A1 name,
// skipping the header row.
func cellName(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row+2)
	return name
}

func (ds *Dataset) Close() error {
	return ds.file.Close()
}

func (ds *Dataset) Len() int {
	return len(ds.rows)
}

func (ds *Dataset) Columns() []Column {
	out := make([]Column, len(ds.columns))
	copy(out, ds.columns)
	return out
}

func (ds *Dataset) Column(name string) (Column, bool) {
	i, ok := ds.byName[name]
	if !ok {
		return Column{}, false
	}
	return ds.columns[i], true
}

// AxisCandidates lists the columns that can be plotted: everything whose
// name does not mention Key or Summary.
func (ds *Dataset) AxisCandidates() []string {
	var out []string
	for _, c := range ds.columns {
		if strings.Contains(c.Name, KeyColumn) || strings.Contains(c.Name, SummaryColumn) ||
			c.Name == ColorColumn {
			continue
		}
		out = append(out, c.Name)
	}
	return out
}

func (ds *Dataset) Value(row int, column string) string {
	c, ok := ds.byName[column]
	if !ok || row < 0 || row >= len(ds.rows) {
		return ""
	}
	return ds.rows[row][c]
}

// Float parses a cell as a number; non-numeric text reads as 0.
func (ds *Dataset) Float(row int, column string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(ds.Value(row, column)), 64)
	if err != nil {
		return 0
	}
	return v
}

func (ds *Dataset) Key(row int) string {
	return ds.Value(row, KeyColumn)
}

func (ds *Dataset) Summary(row int) string {
	return ds.Value(row, SummaryColumn)
}

// RowByKey returns the row index for key, or -1.
func (ds *Dataset) RowByKey(key string) int {
	if r, ok := ds.byKey[key]; ok {
		return r
	}
	return -1
}

// Set writes a number into a cell and recomputes the row's formula cells.
func (ds *Dataset) Set(row int, column string, value float64) error {
	c, ok := ds.byName[column]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownColumn, column)
	}
	if row < 0 || row >= len(ds.rows) {
		return fmt.Errorf("%w: %d", ErrRowRange, row)
	}
	if err := ds.file.SetCellValue(ds.Sheet, cellName(c, row), value); err != nil {
		return fmt.Errorf("set %s: %w", cellName(c, row), err)
	}
	ds.rows[row][c] = strconv.FormatFloat(value, 'f', -1, 64)
	ds.recalculate(row)
	return nil
}

// Save writes the workbook, formulas included, to path.
func (ds *Dataset) Save(path string) error {
	if err := ds.file.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
