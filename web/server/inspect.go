package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/core"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/material"
	"github.com/df07/go-whitted-raytracer/pkg/renderer"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType,omitempty"`
	SphereIndex  int                    `json:"sphereIndex"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	Color        string                 `json:"color"` // Traced pixel-center color as #rrggbb
	Alpha        float64                `json:"alpha"`
	Bounces      int                    `json:"bounces"`
	Escaped      bool                   `json:"escaped"` // A reflection chain ended in the environment
	Properties   map[string]interface{} `json:"properties,omitempty"`
}

// InspectResult contains the primary hit and the traced color for one pixel
type InspectResult struct {
	Hit         bool
	HitRecord   geometry.HitInfo
	SphereIndex int // -1 on a miss
	Color       core.RGBA
	Stats       integrator.TraceStats
}

// extractMaterialInfo describes a Blinn-Phong material
func (s *Server) extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := map[string]interface{}{
		"diffuse":   vec3Array(mat.Diffuse),
		"specular":  vec3Array(mat.Specular),
		"shininess": mat.Shininess,
		"color":     hexColor(mat.Diffuse),
	}

	switch {
	case mat.IsReflective() && mat.Diffuse.IsZero():
		return "mirror", properties
	case mat.IsReflective():
		return "glossy", properties
	default:
		return "diffuse", properties
	}
}

// extractGeometryInfo describes the hit sphere
func (s *Server) extractGeometryInfo(sphere geometry.Sphere) map[string]interface{} {
	return map[string]interface{}{
		"center": vec3Array(sphere.Center),
		"radius": sphere.Radius,
	}
}

// inspectPixel casts the ray through the pixel center and traces it the
// same way the renderer does
func inspectPixel(sceneObj *scene.Scene, pixelX, pixelY int) (InspectResult, error) {
	ray := sceneObj.Camera.GetRay(pixelX, pixelY, 0.5, 0.5)

	color, stats, err := integrator.NewWhittedIntegrator().TraceWithStats(sceneObj, ray)
	if err != nil {
		return InspectResult{}, err
	}

	hit, index, ok := geometry.Nearest(sceneObj.Spheres, ray, core.Epsilon)
	return InspectResult{
		Hit:         ok,
		HitRecord:   hit,
		SphereIndex: index,
		Color:       color,
		Stats:       stats,
	}, nil
}

// handleInspect handles ray casting inspection requests
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	inspectReq := SceneRequest{}
	if err := s.parseCommonSceneParams(r, &inspectReq); err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid scene parameters: "+err.Error())
		return
	}

	pixelX, err := strconv.Atoi(r.URL.Query().Get("x"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid x coordinate")
		return
	}
	pixelY, err := strconv.Atoi(r.URL.Query().Get("y"))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "Invalid y coordinate")
		return
	}

	sceneObj, err := s.createScene(inspectReq)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return
	}

	// The camera may round the height, so bound against its actual size
	width, height := sceneObj.Camera.Size()
	if pixelX < 0 || pixelX >= width || pixelY < 0 || pixelY >= height {
		writeJSONError(w, http.StatusBadRequest, "Pixel coordinates out of bounds")
		return
	}

	result, err := inspectPixel(sceneObj, pixelX, pixelY)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, err.Error())
		return
	}

	response := InspectResponse{
		Hit:         result.Hit,
		SphereIndex: result.SphereIndex,
		Color:       hexColor(result.Color.Color),
		Alpha:       result.Color.Alpha,
		Bounces:     result.Stats.Bounces,
		Escaped:     result.Stats.Escaped,
	}
	if result.Hit {
		materialType, materialProps := s.extractMaterialInfo(result.HitRecord.Material)
		response.MaterialType = materialType
		response.Point = vec3Array(result.HitRecord.Position)
		response.Normal = vec3Array(result.HitRecord.Normal)
		response.Distance = result.HitRecord.T
		response.Properties = map[string]interface{}{
			"material": materialProps,
			"geometry": s.extractGeometryInfo(sceneObj.Spheres[result.SphereIndex]),
		}
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}

func vec3Array(v core.Vec3) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

// hexColor formats a linear color the way it would appear in the output image
func hexColor(c core.Vec3) string {
	rgba := renderer.ColorToRGBA(c)
	return fmt.Sprintf("#%02x%02x%02x", rgba.R, rgba.G, rgba.B)
}
