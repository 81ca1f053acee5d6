package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewDefaultScene creates three spheres (diffuse, mirror and gold) resting on
// a large ground sphere under a sky gradient.
func NewDefaultScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := &Scene{
		Environment: environment.NewGradient(
			core.NewVec3(0.5, 0.7, 1.0), // blue sky
			core.NewVec3(1.0, 1.0, 1.0), // white horizon
		),
		BounceLimit: 5,
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:    16,
			AdaptiveMinSamples: 0.25,
			AdaptiveThreshold:  0.01,
		},
	}
	s.applyCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0.75, 2),
		LookAt:      core.NewVec3(0, 0.5, -1),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}, cameraOverrides)

	ground := material.NewMaterial(core.NewVec3(0.8, 0.8, 0.0).Multiply(0.6), core.NewVec3(0.05, 0.05, 0.05), 8)
	red := material.NewMaterial(core.NewVec3(0.65, 0.25, 0.2), core.NewVec3(0.2, 0.2, 0.2), 64)
	silver := material.NewMirror(core.NewVec3(0.8, 0.8, 0.8), 256)
	gold := material.NewMaterial(core.NewVec3(0.2, 0.15, 0.05), core.NewVec3(0.8, 0.6, 0.2), 32)
	blue := material.NewMaterial(core.NewVec3(0.1, 0.2, 0.5), core.NewVec3(0.3, 0.3, 0.3), 128)

	s.AddSphere(core.NewVec3(0, -1000, -1), 1000, ground)
	s.AddSphere(core.NewVec3(0, 0.5, -1), 0.5, red)
	s.AddSphere(core.NewVec3(-1, 0.5, -1), 0.5, silver)
	s.AddSphere(core.NewVec3(1, 0.5, -1), 0.5, gold)
	s.AddSphere(core.NewVec3(0.5, 0.25, -0.5), 0.25, blue)

	s.AddLight(core.NewVec3(30, 30.5, 15), core.NewVec3(0.9, 0.85, 0.8))
	s.AddLight(core.NewVec3(-10, 10, 10), core.NewVec3(0.25, 0.25, 0.3))

	return s
}
