package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"

	"github.com/df07/go-whitted-raytracer/pkg/config"
	"github.com/df07/go-whitted-raytracer/pkg/geometry"
	"github.com/df07/go-whitted-raytracer/pkg/integrator"
	"github.com/df07/go-whitted-raytracer/pkg/output"
	"github.com/df07/go-whitted-raytracer/pkg/scene"
)

// Uploader stores a finished render and returns its object key
type Uploader interface {
	Upload(ctx context.Context, name string, data []byte) (string, error)
}

// Server handles web requests for the Whitted raytracer
type Server struct {
	port     int
	tileSize int
	workers  int
	uploader Uploader // nil when S3 is not configured
}

// NewServer creates a web server from the shared configuration. An S3
// uploader is attached when the S3 settings are complete.
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{
		port:     cfg.Port,
		tileSize: cfg.TileSize,
		workers:  cfg.Workers,
	}
	if cfg.UploadEnabled() {
		uploader, err := output.NewS3Uploader(cfg.S3)
		if err != nil {
			return nil, err
		}
		s.uploader = uploader
	}
	return s, nil
}

// SetUploader replaces the uploader used for render uploads
func (s *Server) SetUploader(u Uploader) {
	s.uploader = u
}

// SceneRequest holds the parameters shared by render and inspect requests
type SceneRequest struct {
	Scene   string `json:"scene"`   // Scene ID as listed by /api/scenes
	Width   int    `json:"width"`   // Image width
	Height  int    `json:"height"`  // Image height
	Bounces int    `json:"bounces"` // Reflection bounce limit, -1 keeps the scene's
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	SceneRequest
	MaxSamples         int     `json:"maxSamples"`         // Maximum samples per pixel
	MaxPasses          int     `json:"maxPasses"`          // Maximum number of passes
	AdaptiveMinSamples float64 `json:"adaptiveMinSamples"` // Adaptive sampling minimum, fraction of max samples
	AdaptiveThreshold  float64 `json:"adaptiveThreshold"`  // Adaptive sampling relative error threshold, 0 disables
	Alpha              bool    `json:"alpha"`              // Write coverage into the alpha channel
	Upload             bool    `json:"upload"`             // Upload the final image to S3
}

// Handler returns the HTTP routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

// Start starts the web server and blocks until it fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	log.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status": "ok",
		"upload": s.uploader != nil,
	})
}

// handleScenes returns the scenes a client may request, grouped for display
func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Printf("Error encoding scenes response: %v", err)
	}
}

// parseCommonSceneParams fills the scene, size and bounce parameters
func (s *Server) parseCommonSceneParams(r *http.Request, req *SceneRequest) error {
	query := r.URL.Query()

	req.Scene = query.Get("scene")
	if req.Scene == "" {
		req.Scene = "default"
	}

	var err error
	if req.Width, err = parseIntParam(query, "width", 400, 1, 4096); err != nil {
		return err
	}
	if req.Height, err = parseIntParam(query, "height", 225, 1, 4096); err != nil {
		return err
	}
	if req.Bounces, err = parseIntParam(query, "bounces", -1, -1, integrator.MaxBounces); err != nil {
		return err
	}
	return nil
}

// createScene builds the requested scene at the requested size. Only listed
// scene IDs are accepted so requests cannot name arbitrary files.
func (s *Server) createScene(req SceneRequest) (*scene.Scene, error) {
	if !isKnownScene(req.Scene) {
		return nil, fmt.Errorf("unknown scene: %s", req.Scene)
	}

	sceneObj, err := scene.Load(req.Scene, geometry.CameraConfig{
		Width:       req.Width,
		AspectRatio: float64(req.Width) / float64(req.Height),
	})
	if err != nil {
		return nil, err
	}

	if req.Bounces >= 0 {
		sceneObj.BounceLimit = req.Bounces
	}
	sceneObj.SamplingConfig.Width, sceneObj.SamplingConfig.Height = sceneObj.Camera.Size()
	return sceneObj, nil
}

func isKnownScene(id string) bool {
	scenes, err := scene.ListAllScenes()
	if err != nil {
		return false
	}
	for _, group := range scenes.Groups {
		for _, info := range group.Scenes {
			if info.ID == id {
				return true
			}
		}
	}
	return false
}

// parseIntParam parses an integer query parameter with default and bounds
func parseIntParam(query url.Values, name string, defaultValue, min, max int) (int, error) {
	str := query.Get(name)
	if str == "" {
		return defaultValue, nil
	}

	value, err := strconv.Atoi(str)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %s", name, str)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %d and %d", name, min, max)
	}
	return value, nil
}

// parseFloatParam parses a float query parameter with default and bounds
func parseFloatParam(query url.Values, name string, defaultValue, min, max float64) (float64, error) {
	str := query.Get(name)
	if str == "" {
		return defaultValue, nil
	}

	value, err := strconv.ParseFloat(str, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s parameter: %s", name, str)
	}
	if value < min || value > max {
		return 0, fmt.Errorf("%s must be between %g and %g", name, min, max)
	}
	return value, nil
}

// parseBoolParam parses a boolean query parameter, false when absent
func parseBoolParam(query url.Values, name string) (bool, error) {
	str := query.Get(name)
	if str == "" {
		return false, nil
	}

	value, err := strconv.ParseBool(str)
	if err != nil {
		return false, fmt.Errorf("invalid %s parameter: %s", name, str)
	}
	return value, nil
}
