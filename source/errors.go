package source

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingSource indicates that no file matches the requested species.
	ErrMissingSource = errors.New("source: no file matches species")

	// ErrAmbiguousSource indicates that more than one file matches where exactly one is required.
	ErrAmbiguousSource = errors.New("source: more than one file matches species")

	// ErrNotDirectory indicates that a data root is missing or is not a directory.
	ErrNotDirectory = errors.New("source: not a directory")
)

// SourceError describes a failed species lookup. It unwraps to
// ErrMissingSource or ErrAmbiguousSource.
type SourceError struct {
	Dir     string   // directory that was searched
	Species []string // requested species names
	Matches []string // files found (empty for a missing source)
	Err     error    // sentinel
}

func (e *SourceError) Error() string {
	msg := fmt.Sprintf("%v in %s (species %s)", e.Err, e.Dir, strings.Join(e.Species, ", "))
	if len(e.Matches) > 0 {
		msg += ": " + strings.Join(e.Matches, ", ")
	}

	return msg
}

func (e *SourceError) Unwrap() error { return e.Err }
