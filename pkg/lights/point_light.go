package lights

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
)

// PointLight is an infinitesimal light. Its intensity is applied as given,
// with no attenuation by distance.
type PointLight struct {
	Position  core.Vec3
	Intensity core.Vec3
}

// NewPointLight creates a new point light
func NewPointLight(position, intensity core.Vec3) PointLight {
	return PointLight{Position: position, Intensity: intensity}
}

// Sample returns the direction and distance from point to the light. ok is
// false when the point coincides with the light position.
func (pl PointLight) Sample(point core.Vec3) (LightSample, bool) {
	toLight := pl.Position.Subtract(point)
	distance := toLight.Length()
	if distance == 0 {
		return LightSample{}, false
	}

	return LightSample{
		Direction: toLight.Multiply(1.0 / distance),
		Distance:  distance,
		Intensity: pl.Intensity,
	}, true
}

// IsValid reports whether position and intensity are finite and intensity is non-negative
func (pl PointLight) IsValid() bool {
	return pl.Position.IsFinite() && pl.Intensity.IsFinite() &&
		pl.Intensity.X >= 0 && pl.Intensity.Y >= 0 && pl.Intensity.Z >= 0
}
