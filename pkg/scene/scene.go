package scene

import (
	"fmt"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/lights"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

// Scene contains all the elements needed for rendering. A scene is not
// modified once rendering starts and may be shared by concurrent workers.
type Scene struct {
	Camera         *geometry.Camera
	Spheres        []geometry.Sphere   // Objects in the scene, in intersection order
	Lights         []lights.PointLight // Lights in the scene
	Environment    core.Environment    // Background lookup, nil renders black
	BounceLimit    int                 // Maximum reflection bounces per primary ray
	SamplingConfig SamplingConfig
	CameraConfig   geometry.CameraConfig
}

// SamplingConfig contains rendering configuration
type SamplingConfig struct {
	Width              int     // Image width
	Height             int     // Image height
	SamplesPerPixel    int     // Number of rays per pixel
	AdaptiveMinSamples float64 // Minimum samples as percentage of max samples (0.0-1.0)
	AdaptiveThreshold  float64 // Relative error threshold for adaptive convergence (0.01 = 1%)
}

// AddSphere appends a sphere to the scene
func (s *Scene) AddSphere(center core.Vec3, radius float64, mat material.Material) {
	s.Spheres = append(s.Spheres, geometry.NewSphere(center, radius, mat))
}

// AddLight appends a point light to the scene
func (s *Scene) AddLight(position, intensity core.Vec3) {
	s.Lights = append(s.Lights, lights.NewPointLight(position, intensity))
}

// EnvironmentColor returns the background color seen along direction
func (s *Scene) EnvironmentColor(direction core.Vec3) core.Vec3 {
	return environment.OrBlack(s.Environment).Lookup(direction)
}

// GetPrimitiveCount returns the number of spheres in the scene
func (s *Scene) GetPrimitiveCount() int {
	return len(s.Spheres)
}

// Validate checks that every sphere and light is well formed. Zero-radius
// spheres are allowed; they are never hit.
func (s *Scene) Validate() error {
	if s.BounceLimit < 0 {
		return fmt.Errorf("%w: bounce limit must be non-negative, got %d", core.ErrInvalidScene, s.BounceLimit)
	}
	for i, sphere := range s.Spheres {
		if !sphere.IsValid() {
			return fmt.Errorf("%w: sphere %d has center %v radius %g", core.ErrInvalidScene, i, sphere.Center, sphere.Radius)
		}
	}
	for i, light := range s.Lights {
		if !light.IsValid() {
			return fmt.Errorf("%w: light %d has position %v intensity %v", core.ErrInvalidScene, i, light.Position, light.Intensity)
		}
	}
	return nil
}

// applyCamera merges any override into defaults and builds the camera
func (s *Scene) applyCamera(defaults geometry.CameraConfig, cameraOverrides []geometry.CameraConfig) {
	cameraConfig := defaults
	if len(cameraOverrides) > 0 {
		cameraConfig = geometry.MergeCameraConfig(defaults, cameraOverrides[0])
	}
	s.Camera = geometry.NewCamera(cameraConfig)
	s.CameraConfig = s.Camera.Config()
}
