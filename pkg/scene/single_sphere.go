package scene

import (
	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// NewSingleSphereScene creates one red unit sphere at the origin lit head-on
// by a white light at (0,0,5). There is no environment, so misses are black.
func NewSingleSphereScene(cameraOverrides ...geometry.CameraConfig) *Scene {
	s := &Scene{
		BounceLimit: 4,
		SamplingConfig: SamplingConfig{
			SamplesPerPixel:    4,
			AdaptiveMinSamples: 0.5,
			AdaptiveThreshold:  0.01,
		},
	}
	s.applyCamera(geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       256,
		AspectRatio: 1.0,
		VFov:        30.0,
	}, cameraOverrides)

	s.AddSphere(core.NewVec3(0, 0, 0), 1, material.NewDiffuse(core.NewVec3(1, 0, 0)))
	s.AddLight(core.NewVec3(0, 0, 5), core.NewVec3(1, 1, 1))

	return s
}
