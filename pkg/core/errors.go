package core

import "errors"

var (
	// ErrZeroDirection is returned when a ray direction has zero length or is not finite
	ErrZeroDirection = errors.New("ray direction must be non-zero and finite")

	// ErrInvalidRay is returned when a ray origin is not finite
	ErrInvalidRay = errors.New("ray origin must be finite")

	// ErrInvalidScene is returned by scene validation
	ErrInvalidScene = errors.New("invalid scene")
)
