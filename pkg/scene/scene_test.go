package scene

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/material"
)

func TestBuiltInScenes_AreValid(t *testing.T) {
	for _, name := range BuiltInSceneNames() {
		t.Run(name, func(t *testing.T) {
			s, err := Load(name)
			if err != nil {
				t.Fatalf("Load(%q) error: %v", name, err)
			}
			if err := s.Validate(); err != nil {
				t.Errorf("Scene %q failed validation: %v", name, err)
			}
			if s.Camera == nil {
				t.Error("Expected camera to be created")
			}
			if len(s.Spheres) == 0 || len(s.Lights) == 0 {
				t.Errorf("Expected spheres and lights, got %d and %d", len(s.Spheres), len(s.Lights))
			}
			if s.SamplingConfig.SamplesPerPixel <= 0 {
				t.Errorf("Expected positive samples per pixel, got %d", s.SamplingConfig.SamplesPerPixel)
			}
		})
	}
}

func TestLoad_CameraOverride(t *testing.T) {
	s, err := Load("single-sphere", geometry.CameraConfig{Width: 64, AspectRatio: 2})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	width, height := s.Camera.Size()
	if width != 64 || height != 32 {
		t.Errorf("Expected 64x32 camera, got %dx%d", width, height)
	}
	if s.CameraConfig.Center != core.NewVec3(0, 0, 5) {
		t.Errorf("Expected default center to be kept, got %v", s.CameraConfig.Center)
	}
}

func TestLoad_UnknownScene(t *testing.T) {
	if _, err := Load("no-such-scene"); err == nil {
		t.Error("Expected error for unknown scene")
	}
}

func TestLoad_JSONPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lit.json")
	content := `{
  "name": "Lit",
  "bounceLimit": 2,
  "render": {"width": 100, "height": 50},
  "environment": {"type": "uniform", "color": [0.1, 0.1, 0.1]},
  "spheres": [{"center": [0, 0, -3], "radius": 1, "material": {"diffuse": [0, 1, 0], "specular": [0.5, 0.5, 0.5], "shininess": 10}}],
  "lights": [{"position": [0, 3, 0], "intensity": [1, 1, 1]}]
}`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if s.BounceLimit != 2 {
		t.Errorf("Expected bounce limit 2, got %d", s.BounceLimit)
	}
	if width, height := s.Camera.Size(); width != 100 || height != 50 {
		t.Errorf("Expected 100x50 camera from render settings, got %dx%d", width, height)
	}
	if len(s.Spheres) != 1 || s.Spheres[0].Material.Shininess != 10 {
		t.Errorf("Expected one sphere with shininess 10, got %+v", s.Spheres)
	}
	if got := s.EnvironmentColor(core.NewVec3(1, 0, 0)); got != core.NewVec3(0.1, 0.1, 0.1) {
		t.Errorf("Expected uniform environment, got %v", got)
	}
}

func TestNewJSONScene_DefaultBounceLimit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.json")
	if err := os.WriteFile(path, []byte(`{"spheres": [], "lights": []}`), 0644); err != nil {
		t.Fatalf("Failed to write scene: %v", err)
	}
	s, err := NewJSONScene(path)
	if err != nil {
		t.Fatalf("NewJSONScene error: %v", err)
	}
	if s.BounceLimit != defaultJSONBounceLimit {
		t.Errorf("Expected default bounce limit %d, got %d", defaultJSONBounceLimit, s.BounceLimit)
	}
	if s.Environment != nil {
		t.Errorf("Expected nil environment, got %v", s.Environment)
	}
	if got := s.EnvironmentColor(core.NewVec3(0, 1, 0)); !got.IsZero() {
		t.Errorf("Expected black background, got %v", got)
	}
}

func TestScene_Validate(t *testing.T) {
	mat := material.NewDiffuse(core.NewVec3(1, 1, 1))

	tests := []struct {
		name  string
		build func(s *Scene)
		valid bool
	}{
		{"empty scene", func(s *Scene) {}, true},
		{"zero radius sphere", func(s *Scene) { s.AddSphere(core.Vec3{}, 0, mat) }, true},
		{"negative radius", func(s *Scene) { s.AddSphere(core.Vec3{}, -1, mat) }, false},
		{"NaN center", func(s *Scene) { s.AddSphere(core.NewVec3(math.NaN(), 0, 0), 1, mat) }, false},
		{"infinite light", func(s *Scene) { s.AddLight(core.NewVec3(math.Inf(1), 0, 0), core.NewVec3(1, 1, 1)) }, false},
		{"negative intensity", func(s *Scene) { s.AddLight(core.Vec3{}, core.NewVec3(-1, 0, 0)) }, false},
		{"negative bounce limit", func(s *Scene) { s.BounceLimit = -1 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &Scene{}
			tt.build(s)
			err := s.Validate()
			if tt.valid && err != nil {
				t.Errorf("Expected valid scene, got %v", err)
			}
			if !tt.valid && !errors.Is(err, core.ErrInvalidScene) {
				t.Errorf("Expected ErrInvalidScene, got %v", err)
			}
		})
	}
}

func TestOklchToRGB_InRange(t *testing.T) {
	for h := 0.0; h < 360; h += 30 {
		c := oklchToRGB(0.65, 0.25, h)
		if c.X < 0 || c.X > 1 || c.Y < 0 || c.Y > 1 || c.Z < 0 || c.Z > 1 {
			t.Errorf("Expected color in [0,1] for hue %f, got %v", h, c)
		}
	}
}
