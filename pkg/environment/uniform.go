// Package environment provides the background lookups used when a ray escapes
// the scene: constant colors, vertical gradients and image cube maps.
package environment

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Uniform returns the same color in every direction
type Uniform struct {
	Color core.Vec3
}

// NewUniform creates a uniform environment
func NewUniform(color core.Vec3) *Uniform {
	return &Uniform{Color: color}
}

// Lookup implements core.Environment
func (u *Uniform) Lookup(direction core.Vec3) core.Vec3 {
	return u.Color
}

// Black is the environment used when a scene does not provide one
var Black core.Environment = NewUniform(core.Vec3{})

// OrBlack returns env, or Black when env is nil
func OrBlack(env core.Environment) core.Environment {
	if env == nil {
		return Black
	}
	return env
}
