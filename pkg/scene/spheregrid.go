package scene

import (
	"math"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// oklchToRGB converts OKLCH color values to RGB
// L: lightness (0-1), C: chroma (0-0.4+), H: hue (0-360 degrees)
func oklchToRGB(l, c, h float64) core.Vec3 {
	// Convert hue from degrees to radians
	hRad := h * math.Pi / 180.0

	// Convert from OKLCH to OKLAB
	a := c * math.Cos(hRad)
	b := c * math.Sin(hRad)

	// OKLAB to LMS
	l_ := l + 0.3963377774*a + 0.2158037573*b
	m_ := l - 0.1055613458*a - 0.0638541728*b
	s_ := l - 0.0894841775*a - 1.2914855480*b

	// Cube the values
	l_ = l_ * l_ * l_
	m_ = m_ * m_ * m_
	s_ = s_ * s_ * s_

	// Convert LMS to linear RGB
	r := +4.0767416621*l_ - 3.3077115913*m_ + 0.2309699292*s_
	g := -1.2684380046*l_ + 2.6097574011*m_ - 0.3413193965*s_
	blue := -0.0041960863*l_ - 0.7034186147*m_ + 1.7076147010*s_

	// Clamp to [0, 1] range
	r = math.Max(0, math.Min(1, r))
	g = math.Max(0, math.Min(1, g))
	blue = math.Max(0, math.Min(1, blue))

	return core.NewVec3(r, g, blue)
}

// NewSphereGridScene creates a grid of spheres on a ground sphere. Hue varies
// along X and chroma along Z; the specular tint grows along Z so the far rows
// mirror their neighbours more strongly.
func NewSphereGridScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := &Scene{
		Environment: environment.NewGradient(
			core.NewVec3(0.5, 0.7, 1.0), // blue sky (same as default scene)
			core.NewVec3(1.0, 1.0, 1.0), // white horizon
		),
		BounceLimit: 4,
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:    16,
			AdaptiveMinSamples: 0.25,
			AdaptiveThreshold:  0.015,
		},
	}
	s.applyCamera(geometry.CameraConfig{
		Center:      core.NewVec3(4.5, 6, 18),
		LookAt:      core.NewVec3(4.5, 0.8, 4.5),
		Up:          core.NewVec3(0, 1, 0),
		Width:       800,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}, cameraOverrides)

	s.AddSphere(core.NewVec3(4.5, -10000, 4.5), 10000, material.NewDiffuse(core.NewVec3(0.5, 0.5, 0.5)))
	s.AddLight(core.NewVec3(20, 25, 20), core.NewVec3(0.8, 0.78, 0.72))
	s.AddLight(core.NewVec3(-10, 15, 25), core.NewVec3(0.2, 0.2, 0.25))

	gridSize := 10
	targetArea := 9.0
	spacing := targetArea / float64(gridSize-1)
	sphereRadius := math.Max(0.02, math.Min(0.35, spacing*0.35))

	baseLightness := 0.65
	minChroma := 0.05
	maxChroma := 0.25

	for i := 0; i < gridSize; i++ {
		for j := 0; j < gridSize; j++ {
			x := float64(i)*spacing - targetArea/2.0 + 4.5 // Center around x=4.5
			z := float64(j)*spacing - targetArea/2.0 + 4.5 // Center around z=4.5
			position := core.NewVec3(x, sphereRadius, z)

			hue := (float64(i) / float64(gridSize-1)) * 360.0
			chroma := minChroma + (float64(j)/float64(gridSize-1))*(maxChroma-minChroma)
			lightness := baseLightness + 0.1*math.Sin(float64(i+j)*0.5)
			color := oklchToRGB(lightness, chroma, hue)

			reflectance := 0.1 + 0.6*float64(j)/float64(gridSize-1)
			shininess := 16.0 * float64(1+(i+j)%4)
			mat := material.NewMaterial(
				color.Multiply(1-reflectance),
				color.Lerp(core.NewVec3(1, 1, 1), 0.5).Multiply(reflectance),
				shininess,
			)
			s.AddSphere(position, sphereRadius, mat)
		}
	}

	return s
}
