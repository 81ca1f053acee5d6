package lights

import "github.com/df07/go-whitted-raytracer/pkg/core"

// LightSample contains the geometry between a shading point and a light
type LightSample struct {
	Direction core.Vec3 // Unit direction from shading point to light
	Distance  float64   // Distance from shading point to light
	Intensity core.Vec3 // Light intensity reaching the point (no falloff)
}
