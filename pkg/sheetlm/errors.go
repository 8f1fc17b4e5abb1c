package sheetlm

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates the input file does not exist.
var ErrFileNotFound = errors.New("file not found")

// ErrConfiguration indicates an invalid option value. It is surfaced
// before any sheet processing starts.
var ErrConfiguration = errors.New("invalid configuration")

// SheetError represents a failure while compressing one sheet. Failures
// are local: the caller logs them and continues with sibling sheets.
type SheetError struct {
	SheetName string
	Stage     string // "load", "anchors", "index", "formats"
	Err       error
}

func (e *SheetError) Error() string {
	return fmt.Sprintf("compression error in sheet %q (%s): %v", e.SheetName, e.Stage, e.Err)
}

func (e *SheetError) Unwrap() error {
	return e.Err
}

// NewSheetError creates a new SheetError.
func NewSheetError(sheetName, stage string, err error) *SheetError {
	return &SheetError{
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}
