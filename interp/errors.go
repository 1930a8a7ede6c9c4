package interp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteColliderData marks a temperature column that could not be
// reconstructed for every row and was dropped. It is a diagnostic, never a
// fatal error.
var ErrIncompleteColliderData = errors.New("interp: incomplete collider data")

// IncompleteColliderDataError reports one dropped temperature column.
type IncompleteColliderDataError struct {
	Temperature float64
	Partners    []string // partners with at least one unfillable row, sorted
	Rows        int      // number of rows that could not be filled
}

func (e IncompleteColliderDataError) Error() string {
	return fmt.Sprintf("%v: T=%g dropped, %d row(s) unfilled for %s",
		ErrIncompleteColliderData, e.Temperature, e.Rows, strings.Join(e.Partners, ", "))
}

func (e IncompleteColliderDataError) Unwrap() error { return ErrIncompleteColliderData }
