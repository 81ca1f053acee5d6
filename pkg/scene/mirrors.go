package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewMirrorsScene places a small diffuse sphere between two huge facing
// mirror spheres, so reflections keep bouncing until the bounce limit.
func NewMirrorsScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := &Scene{
		Environment: environment.NewGradient(core.NewVec3(0.2, 0.3, 0.6), core.NewVec3(0.05, 0.05, 0.05)),
		BounceLimit: 12,
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:    8,
			AdaptiveMinSamples: 0.25,
			AdaptiveThreshold:  0.01,
		},
	}
	s.applyCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 1.5, 6),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        50.0,
	}, cameraOverrides)

	mirror := material.NewMirror(core.NewVec3(0.9, 0.92, 0.95), 512)
	s.AddSphere(core.NewVec3(-1003, 0, 0), 1000, mirror)
	s.AddSphere(core.NewVec3(1003, 0, 0), 1000, mirror)
	s.AddSphere(core.NewVec3(0, -1001, 0), 1000, material.NewDiffuse(core.NewVec3(0.4, 0.4, 0.4)))
	s.AddSphere(core.NewVec3(0, 0, 0), 0.6, material.NewMaterial(core.NewVec3(0.1, 0.6, 0.2), core.NewVec3(0.1, 0.1, 0.1), 64))

	s.AddLight(core.NewVec3(0, 5, 3), core.NewVec3(0.8, 0.8, 0.8))

	return s
}
