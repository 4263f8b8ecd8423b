package canvas

import (
	"errors"
	"fmt"
)

// Canvas errors.
var (
	// ErrInvalidDimensions indicates a zero or negative width or height.
	ErrInvalidDimensions = errors.New("invalid canvas dimensions")

	// ErrOutOfBounds indicates a coordinate outside the canvas.
	ErrOutOfBounds = errors.New("coordinate out of bounds")

	// ErrInvalidColor indicates a color string that could not be parsed.
	ErrInvalidColor = errors.New("invalid color")
)

// BoundsError describes a rejected pixel access.
type BoundsError struct {
	Op   string // e.g. "set", "get", "select"
	X, Y int
	Size Size
}

func (e *BoundsError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s pixel (%d,%d): %v for %s canvas", e.Op, e.X, e.Y, ErrOutOfBounds, e.Size)
}

// Unwrap returns ErrOutOfBounds.
func (e *BoundsError) Unwrap() error {
	return ErrOutOfBounds
}

func dimensionsError(width, height int) error {
	return fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
}
