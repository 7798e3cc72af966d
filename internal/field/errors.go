package field

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSurface indicates the host could not provide a drawing surface.
	ErrNoSurface = errors.New("field: drawing surface unavailable")

	// ErrInvalidBounds indicates a viewport with negative or non-finite size.
	ErrInvalidBounds = errors.New("field: invalid viewport bounds")

	// ErrStopped indicates the frame loop was stopped explicitly.
	ErrStopped = errors.New("field: frame loop stopped")
)

// BoundsError wraps ErrInvalidBounds with the rejected dimensions.
type BoundsError struct {
	Width, Height float64
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("%s: %gx%g", ErrInvalidBounds, e.Width, e.Height)
}

func (e *BoundsError) Unwrap() error {
	return ErrInvalidBounds
}
