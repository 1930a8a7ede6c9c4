package critical

import "errors"

var (
	// ErrUnknownLevel indicates an upper level with no radiative transition.
	ErrUnknownLevel = errors.New("critical: no radiative transition from level")

	// ErrNoCollisionRates indicates an upper level with no collision row.
	ErrNoCollisionRates = errors.New("critical: no collision rates from level")

	// ErrUnknownKind indicates a medium kind missing from the abundance table.
	ErrUnknownKind = errors.New("critical: unknown medium kind")

	// ErrNilInput indicates a nil table passed to the engine.
	ErrNilInput = errors.New("critical: nil input table")
)
