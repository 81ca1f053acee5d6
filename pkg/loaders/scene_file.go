package loaders

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/environment"
)

// Vec is a JSON triple, written as [x, y, z]
type Vec [3]float64

// Vec3 converts to core.Vec3
func (v Vec) Vec3() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

// SceneFile is the parsed content of a JSON scene file
type SceneFile struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Group       string           `json:"group,omitempty"`
	Camera      *CameraSpec      `json:"camera,omitempty"`
	Render      *RenderSpec      `json:"render,omitempty"`
	BounceLimit *int             `json:"bounceLimit,omitempty"`
	Environment *EnvironmentSpec `json:"environment,omitempty"`
	Spheres     []SphereSpec     `json:"spheres"`
	Lights      []LightSpec      `json:"lights"`

	Dir string `json:"-"` // Directory of the file, used to resolve image paths
}

// MaterialSpec describes a Blinn-Phong material
type MaterialSpec struct {
	Diffuse   Vec     `json:"diffuse"`
	Specular  Vec     `json:"specular"`
	Shininess float64 `json:"shininess"`
}

// SphereSpec describes one sphere
type SphereSpec struct {
	Center   Vec          `json:"center"`
	Radius   float64      `json:"radius"`
	Material MaterialSpec `json:"material"`
}

// LightSpec describes one point light
type LightSpec struct {
	Position  Vec `json:"position"`
	Intensity Vec `json:"intensity"`
}

// CameraSpec describes the pinhole camera
type CameraSpec struct {
	Center      Vec     `json:"center"`
	LookAt      Vec     `json:"lookAt"`
	Up          *Vec    `json:"up,omitempty"`
	VFov        float64 `json:"vfov"`
	AspectRatio float64 `json:"aspectRatio"`
}

// RenderSpec holds default sampling settings for the scene
type RenderSpec struct {
	Width              int     `json:"width"`
	Height             int     `json:"height"`
	SamplesPerPixel    int     `json:"samplesPerPixel"`
	AdaptiveMinSamples float64 `json:"adaptiveMinSamples"`
	AdaptiveThreshold  float64 `json:"adaptiveThreshold"`
}

// EnvironmentSpec describes the background lookup. Type is one of "uniform",
// "gradient" or "cubemap". A cube map is given either as six face paths
// (+X, -X, +Y, -Y, +Z, -Z) or as a single horizontal cross image.
type EnvironmentSpec struct {
	Type    string   `json:"type"`
	Color   Vec      `json:"color"`
	Top     Vec      `json:"top"`
	Bottom  Vec      `json:"bottom"`
	Faces   []string `json:"faces,omitempty"`
	Cross   string   `json:"cross,omitempty"`
	MaxEdge int      `json:"maxEdge,omitempty"`
	Gamma   float64  `json:"gamma,omitempty"`
	ZUp     bool     `json:"zUp,omitempty"`
}

// LoadSceneFile reads and parses a JSON scene file
func LoadSceneFile(path string) (*SceneFile, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open scene file: %w", err)
	}
	defer file.Close()

	sf, err := ParseSceneFile(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	sf.Dir = filepath.Dir(path)
	return sf, nil
}

// ParseSceneFile parses JSON scene content from an io.Reader. Unknown fields
// are rejected so typos in scene files surface as errors.
func ParseSceneFile(reader io.Reader) (*SceneFile, error) {
	decoder := json.NewDecoder(reader)
	decoder.DisallowUnknownFields()

	var sf SceneFile
	if err := decoder.Decode(&sf); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	if sf.BounceLimit != nil && *sf.BounceLimit < 0 {
		return nil, fmt.Errorf("%w: bounceLimit must be non-negative, got %d", core.ErrInvalidScene, *sf.BounceLimit)
	}
	for i, s := range sf.Spheres {
		if s.Radius < 0 {
			return nil, fmt.Errorf("%w: sphere %d has negative radius %g", core.ErrInvalidScene, i, s.Radius)
		}
	}
	return &sf, nil
}

// BuildEnvironment constructs the environment described by spec. Relative
// image paths are resolved against baseDir. A nil spec yields a nil
// environment, which renders black.
func BuildEnvironment(spec *EnvironmentSpec, baseDir string) (core.Environment, error) {
	if spec == nil {
		return nil, nil
	}

	var env core.Environment
	switch strings.ToLower(spec.Type) {
	case "", "uniform":
		env = environment.NewUniform(spec.Color.Vec3())
	case "gradient":
		env = environment.NewGradient(spec.Top.Vec3(), spec.Bottom.Vec3())
	case "cubemap":
		options := environment.CubeMapOptions{MaxEdge: spec.MaxEdge, Gamma: spec.Gamma}
		switch {
		case spec.Cross != "":
			cm, err := LoadCubeMapCross(resolvePath(baseDir, spec.Cross), options)
			if err != nil {
				return nil, err
			}
			env = cm
		case len(spec.Faces) == 6:
			var paths [6]string
			for i, face := range spec.Faces {
				paths[i] = resolvePath(baseDir, face)
			}
			cm, err := LoadCubeMap(paths, options)
			if err != nil {
				return nil, err
			}
			env = cm
		default:
			return nil, fmt.Errorf("cubemap environment needs a cross image or 6 faces, got %d faces", len(spec.Faces))
		}
	default:
		return nil, fmt.Errorf("unknown environment type %q", spec.Type)
	}

	if spec.ZUp {
		env = environment.NewZUp(env)
	}
	return env, nil
}

func resolvePath(baseDir, path string) string {
	if filepath.IsAbs(path) || baseDir == "" {
		return path
	}
	return filepath.Join(baseDir, path)
}
