package dotosu

import (
	"errors"
	"fmt"
)

var (
	ErrMissingField      = errors.New("missing field")
	ErrMalformedNumber   = errors.New("malformed number")
	ErrUnknownObjectType = errors.New("unknown hit object type")
)

// LineError describes a single input line that was rejected.
type LineError struct {
	Line    int // 1-based
	Section Section
	Text    string
	Err     error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d [%s]: %v", e.Line, e.Section, e.Err)
}

func (e *LineError) Unwrap() error { return e.Err }

func missingField(name string, have, want int) error {
	return fmt.Errorf("%w: %s needs %d fields, got %d", ErrMissingField, name, want, have)
}
