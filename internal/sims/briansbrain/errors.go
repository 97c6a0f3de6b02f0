package briansbrain

import "errors"

var (
	// ErrInvalidDimension is returned when a grid dimension is not positive.
	ErrInvalidDimension = errors.New("briansbrain: invalid dimension")
	// ErrInvalidProbability is returned when a probability lies outside [0, 1].
	ErrInvalidProbability = errors.New("briansbrain: invalid probability")
	// ErrOutOfBounds is returned for coordinates outside the grid.
	ErrOutOfBounds = errors.New("briansbrain: coordinate out of bounds")
	// ErrInvalidState is returned for values outside the CellState enumeration.
	ErrInvalidState = errors.New("briansbrain: invalid cell state")
	// ErrSizeMismatch is returned when a committed generation has the wrong length.
	ErrSizeMismatch = errors.New("briansbrain: generation size mismatch")
	// ErrInvalidInterval is returned when the generation interval is not positive.
	ErrInvalidInterval = errors.New("briansbrain: invalid generation interval")
)
