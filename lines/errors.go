package lines

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedLineFile indicates a line file that does not follow the
	// "# <count>" / header / rows layout.
	ErrMalformedLineFile = errors.New("lines: malformed line file")

	// ErrMissingColumn indicates that a required column (nu, nl or an Einstein
	// coefficient spelling) is absent from the header.
	ErrMissingColumn = errors.New("lines: required column missing")

	// ErrColumnType indicates a required column whose cells do not have the
	// expected type (integer levels, numeric coefficients).
	ErrColumnType = errors.New("lines: column has unexpected type")
)

// parseErrorf wraps err with the file and 1-based line number.
func parseErrorf(source string, line int, err error, format string, args ...any) error {
	return fmt.Errorf("%s:%d: %s: %w", source, line, fmt.Sprintf(format, args...), err)
}
