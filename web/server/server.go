package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("server")

// Server renders built-in scenes over HTTP
type Server struct {
	port int
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string  `json:"scene"`
	Width           int     `json:"width"`
	Height          int     `json:"height"`
	SamplesPerPixel int     `json:"spp"`
	RussianRoulette float64 `json:"rr"`
	Seed            int64   `json:"seed"`
	Split           string  `json:"split"`
}

// SceneInfo is one entry of the scene list
type SceneInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Handler returns the API routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/render", s.handleRender)
	mux.HandleFunc("/api/inspect", s.handleInspect)
	return mux
}

// Start serves the API until the listener fails
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	logger.Noticef("starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	var scenes []SceneInfo
	for _, info := range scene.ListScenes() {
		scenes = append(scenes, SceneInfo{Name: info.Name, Description: info.Description})
	}
	writeJSON(w, http.StatusOK, scenes)
}

// handleRender renders one frame and responds with a PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.RussianRoulette = req.RussianRoulette
	rt, err := renderer.NewRaytracer(sc, integrator.NewPathTracingIntegrator(integratorConfig), renderer.Config{
		Width:           req.Width,
		Height:          req.Height,
		SamplesPerPixel: req.SamplesPerPixel,
		BandHeight:      8,
		Seed:            req.Seed,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	// The request context cancels the render when the client goes away
	fb, stats, err := rt.Render(r.Context())
	if err != nil {
		logger.Warningf("render of %q aborted: %v", req.Scene, err)
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("X-Render-Time", stats.Duration.Round(time.Millisecond).String())
	w.Header().Set("X-Mean-Luminance", strconv.FormatFloat(stats.MeanLuminance, 'f', 6, 64))
	if err := renderer.WritePNG(w, fb); err != nil {
		logger.Errorf("failed to write PNG: %v", err)
	}
}

// parseRenderRequest parses and validates the query parameters
func parseRenderRequest(values url.Values) (*RenderRequest, error) {
	req := &RenderRequest{Scene: "cornell", Split: "middle"}
	if name := values.Get("scene"); name != "" {
		req.Scene = name
	}
	if split := values.Get("split"); split != "" {
		req.Split = split
	}

	var err error
	if req.Width, err = parseIntParam(values, "width", 256, 1, 2000); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", 256, 1, 2000); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", 8, 1, 10000); err != nil {
		return nil, err
	}
	if req.RussianRoulette, err = parseFloatParam(values, "rr", 0.8, 0, 1); err != nil {
		return nil, err
	}
	seed, err := parseIntParam(values, "seed", 1, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)
	return req, nil
}

// createScene builds the requested scene with the requested split method
func createScene(req *RenderRequest) (*scene.Scene, error) {
	method, err := geometry.ParseSplitMethod(req.Split)
	if err != nil {
		return nil, err
	}
	options := scene.DefaultOptions()
	options.BVH.SplitMethod = method
	return scene.Build(req.Scene, options)
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

// parseFloatParam parses a float parameter from URL query with validation
func parseFloatParam(values url.Values, key string, defaultValue, min, max float64) (float64, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %g and %g, got: %g", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Errorf("failed to encode response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
