// SPDX-License-Identifier: MIT

package table

import "errors"

// Every message is prefixed with "table: ..." so it can be grepped in logs.
// Wrap with fmt.Errorf("ctx: %w", ErrX) when context matters; callers match
// with errors.Is.
var (
	// ErrBadShape is returned when a requested shape has a negative dimension.
	ErrBadShape = errors.New("table: invalid shape")

	// ErrOutOfRange indicates a row or column index outside valid bounds.
	ErrOutOfRange = errors.New("table: index out of range")

	// ErrDimensionMismatch indicates a slice whose length does not match the grid.
	ErrDimensionMismatch = errors.New("table: dimension mismatch")
)
