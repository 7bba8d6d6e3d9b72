package envmap

import "errors"

var (
	// ErrUnsupportedFormat is returned when an operation has no
	// implementation for a projection format.
	ErrUnsupportedFormat = errors.New("unsupported projection format")

	// ErrZeroGamma is returned by Gamma when asked to take the reciprocal of 0.
	ErrZeroGamma = errors.New("gamma must be nonzero")

	// ErrEmptyImage is returned when a buffer holds no pixels
	ErrEmptyImage = errors.New("empty image")

	// ErrOutsideProjection marks image coordinates that map to no direction
	ErrOutsideProjection = errors.New("coordinates outside projection")
)
