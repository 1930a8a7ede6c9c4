package collision

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedCollisionFile indicates a collision file whose preamble,
	// header or rows do not follow the expected layout. Parsing never
	// recovers partially from it.
	ErrMalformedCollisionFile = errors.New("collision: malformed collision file")

	// ErrDuplicateKey indicates two rows with the same (upper, lower, partner).
	ErrDuplicateKey = errors.New("collision: duplicate (upper, lower, partner) key")

	// ErrBadGrid indicates a temperature grid that is not strictly ascending
	// or does not match the rate grid.
	ErrBadGrid = errors.New("collision: invalid temperature grid")
)

// MalformedFileError locates a layout violation. It unwraps to
// ErrMalformedCollisionFile.
type MalformedFileError struct {
	Path   string
	Line   int // 1-based; 0 when the problem is not tied to a line
	Reason string
}

func (e *MalformedFileError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v: %s:%d: %s", ErrMalformedCollisionFile, e.Path, e.Line, e.Reason)
	}
	return fmt.Sprintf("%v: %s: %s", ErrMalformedCollisionFile, e.Path, e.Reason)
}

func (e *MalformedFileError) Unwrap() error { return ErrMalformedCollisionFile }

func malformed(path string, line int, format string, args ...any) error {
	return &MalformedFileError{Path: path, Line: line, Reason: fmt.Sprintf(format, args...)}
}
