package abundance

import "errors"

var (
	// ErrMissingIndex indicates a header without the collider index column.
	ErrMissingIndex = errors.New("abundance: missing collider index column")

	// ErrDuplicatePartner indicates a partner listed twice.
	ErrDuplicatePartner = errors.New("abundance: duplicate partner")

	// ErrMalformed indicates an empty file or a ragged row.
	ErrMalformed = errors.New("abundance: malformed table")
)
