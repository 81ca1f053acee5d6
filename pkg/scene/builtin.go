package scene

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/df07/go-whitted-raytracer/pkg/geometry"
)

// builtInScenes maps scene IDs to their constructors
var builtInScenes = map[string]func(...geometry.CameraConfig) *Scene{
	"default":       NewDefaultScene,
	"spheregrid":    NewSphereGridScene,
	"single-sphere": NewSingleSphereScene,
	"mirrors":       NewMirrorsScene,
}

// Load creates a scene by built-in ID, "json:<name>" discovered file ID,
// scenes/ file name, or path to a .json file.
func Load(name string, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	if build, ok := builtInScenes[name]; ok {
		return build(cameraOverrides...), nil
	}

	path, err := resolveSceneFile(strings.TrimPrefix(name, "json:"))
	if err != nil {
		return nil, err
	}
	return NewJSONScene(path, cameraOverrides...)
}

// BuiltInSceneNames returns the IDs accepted by Load for built-in scenes
func BuiltInSceneNames() []string {
	return []string{"default", "spheregrid", "single-sphere", "mirrors"}
}

func resolveSceneFile(name string) (string, error) {
	if strings.HasSuffix(name, ".json") {
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}
	}

	if dir := findScenesDir(); dir != "" {
		candidate := filepath.Join(dir, strings.TrimSuffix(filepath.Base(name), ".json")+".json")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
	}

	return "", fmt.Errorf("unknown scene %q", name)
}
