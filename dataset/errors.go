package dataset

import (
	"errors"
	"fmt"
)

// ErrNoSheets indicates the workbook has no worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// ErrNoKeyColumn indicates the header row lacks a Key column.
var ErrNoKeyColumn = errors.New("no Key column in header row")

// ErrDuplicateKey indicates two data rows share a Key value.
var ErrDuplicateKey = errors.New("duplicate key")

// ErrUnknownColumn indicates a column name that is not in the header row.
var ErrUnknownColumn = errors.New("unknown column")

// ErrRowRange indicates a row index outside the dataset.
var ErrRowRange = errors.New("row out of range")

// LoadError reports a failure to read a dataset file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
