package integrator

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Integrator defines the interface for light transport algorithms
type Integrator interface {
	// Trace returns the color and coverage seen along ray. Implementations
	// must be safe for concurrent use with a shared, unmodified scene.
	Trace(scene *scene.Scene, ray core.Ray) (core.RGBA, error)
}
