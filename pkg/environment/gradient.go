package environment

import "github.com/df07/go-whitted-raytracer/pkg/core"

// Gradient blends between Bottom (looking straight down) and Top (looking
// straight up) based on the Y component of the normalized direction.
type Gradient struct {
	Top    core.Vec3
	Bottom core.Vec3
}

// NewGradient creates a new gradient environment
func NewGradient(top, bottom core.Vec3) *Gradient {
	return &Gradient{Top: top, Bottom: bottom}
}

// Lookup implements core.Environment
func (g *Gradient) Lookup(direction core.Vec3) core.Vec3 {
	unit := direction.Normalize()
	if unit.IsZero() {
		return g.Top
	}
	t := 0.5 * (unit.Y + 1.0) // Map Y from [-1,1] to [0,1]
	return g.Bottom.Lerp(g.Top, t)
}
