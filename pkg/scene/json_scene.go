package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/loaders"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// defaultJSONBounceLimit is used when a scene file does not set bounceLimit
const defaultJSONBounceLimit = 4

// NewJSONScene creates a scene from a JSON scene file
func NewJSONScene(path string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	sf, err := loaders.LoadSceneFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load scene file: %w", err)
	}
	return NewSceneFromFile(sf, cameraOverrides...)
}

// NewSceneFromFile converts a parsed scene file into a validated scene
func NewSceneFromFile(sf *loaders.SceneFile, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	env, err := loaders.BuildEnvironment(sf.Environment, sf.Dir)
	if err != nil {
		return nil, fmt.Errorf("failed to build environment: %w", err)
	}

	s := &Scene{
		Environment:    env,
		BounceLimit:    defaultJSONBounceLimit,
		SamplingConfig: convertRender(sf.Render),
	}
	if sf.BounceLimit != nil {
		s.BounceLimit = *sf.BounceLimit
	}
	s.applyCamera(convertCamera(sf.Camera, s.SamplingConfig), cameraOverrides)

	for _, sphere := range sf.Spheres {
		mat := material.NewMaterial(
			sphere.Material.Diffuse.Vec3(),
			sphere.Material.Specular.Vec3(),
			sphere.Material.Shininess,
		)
		s.AddSphere(sphere.Center.Vec3(), sphere.Radius, mat)
	}
	for _, light := range sf.Lights {
		s.AddLight(light.Position.Vec3(), light.Intensity.Vec3())
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func convertRender(spec *loaders.RenderSpec) SamplingConfig {
	config := SamplingConfig{
		SamplesPerPixel:    16,
		AdaptiveMinSamples: 0.25,
		AdaptiveThreshold:  0.01,
	}
	if spec == nil {
		return config
	}
	config.Width = spec.Width
	config.Height = spec.Height
	if spec.SamplesPerPixel > 0 {
		config.SamplesPerPixel = spec.SamplesPerPixel
	}
	if spec.AdaptiveMinSamples > 0 {
		config.AdaptiveMinSamples = spec.AdaptiveMinSamples
	}
	if spec.AdaptiveThreshold > 0 {
		config.AdaptiveThreshold = spec.AdaptiveThreshold
	}
	return config
}

func convertCamera(spec *loaders.CameraSpec, sampling SamplingConfig) geometry.CameraConfig {
	config := geometry.CameraConfig{
		Center:      core.NewVec3(0, 0, 5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		Width:       400,
		AspectRatio: 16.0 / 9.0,
		VFov:        40.0,
	}
	if sampling.Width > 0 {
		config.Width = sampling.Width
		if sampling.Height > 0 {
			config.AspectRatio = float64(sampling.Width) / float64(sampling.Height)
		}
	}
	if spec == nil {
		return config
	}

	config.Center = spec.Center.Vec3()
	config.LookAt = spec.LookAt.Vec3()
	if spec.Up != nil {
		config.Up = spec.Up.Vec3()
	}
	if spec.VFov > 0 {
		config.VFov = spec.VFov
	}
	if spec.AspectRatio > 0 {
		config.AspectRatio = spec.AspectRatio
	}
	return config
}
