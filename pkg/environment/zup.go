package environment

import "github.com/df07/go-whitted-raytracer/pkg/core"

// ZUp adapts a Y-up environment to a Z-up scene by swapping the Y and Z
// components of every lookup direction.
type ZUp struct {
	Env core.Environment
}

// NewZUp wraps env so that scene +Z maps to environment +Y
func NewZUp(env core.Environment) *ZUp {
	return &ZUp{Env: env}
}

// Lookup implements core.Environment
func (z *ZUp) Lookup(direction core.Vec3) core.Vec3 {
	return OrBlack(z.Env).Lookup(core.NewVec3(direction.X, direction.Z, direction.Y))
}
