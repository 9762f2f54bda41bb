
package parser

import (
	"errors"
	"fmt"
)

// ErrMalformedCell matches any *MalformedCellError via errors.Is.
var ErrMalformedCell = errors.New("malformed cell")

// MalformedCellError reports a cell whose text could not be normalized for its
// field. It aborts the whole extraction.
type MalformedCellError struct {
	Row    int // 1-based row within the captured body
	Column int
	Field  string
	Raw    string
	Err    error
}

func (e *MalformedCellError) Error() string {
	return fmt.Sprintf("row %d column %d (%s): malformed value %q: %v", e.Row, e.Column, e.Field, e.Raw, e.Err)
}

func (e *MalformedCellError) Unwrap() error { return e.Err }

func (e *MalformedCellError) Is(target error) bool { return target == ErrMalformedCell }
