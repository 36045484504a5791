package server

import (
	"fmt"
	"net/http"
	"net/url"

	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// InspectResponse represents the JSON response for object inspection
type InspectResponse struct {
	Hit          bool                   `json:"hit"`
	MaterialType string                 `json:"materialType"`
	Point        [3]float64             `json:"point"`
	Normal       [3]float64             `json:"normal"`
	Distance     float64                `json:"distance"`
	FrontFace    bool                   `json:"frontFace"`
	Properties   map[string]interface{} `json:"properties"`
}

// extractMaterialInfo describes a material for the inspector
func extractMaterialInfo(mat material.Material) (string, map[string]interface{}) {
	properties := make(map[string]interface{})

	switch m := mat.(type) {
	case *material.Lambertian:
		properties["albedo"] = [3]float64{m.Albedo.X, m.Albedo.Y, m.Albedo.Z}
		properties["color"] = hexColor(m.Albedo.X, m.Albedo.Y, m.Albedo.Z)
		return "lambertian", properties

	case *material.Emissive:
		properties["emission"] = [3]float64{m.Emit.X, m.Emit.Y, m.Emit.Z}
		properties["color"] = hexColor(m.Emit.X, m.Emit.Y, m.Emit.Z)
		return "emissive", properties

	default:
		if mat != nil && mat.HasEmission() {
			e := mat.Emission()
			properties["emission"] = [3]float64{e.X, e.Y, e.Z}
			return "emissive", properties
		}
		return "unknown", properties
	}
}

func hexColor(r, g, b float64) string {
	clamp := func(v float64) int {
		return int(255 * min(1, max(0, v)))
	}
	return fmt.Sprintf("#%02x%02x%02x", clamp(r), clamp(g), clamp(b))
}

// inspectPixel casts a ray through the center of the pixel and returns the
// first surface it hits
func inspectPixel(sc *scene.Scene, width, height, pixelX, pixelY int) geometry.Intersection {
	camera := renderer.NewCamera(sc.Camera, width, height)
	return sc.Intersect(camera.GetPixelRay(pixelX, pixelY, nil))
}

func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	values := r.URL.Query()
	req, err := parseRenderRequest(values)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	x, y, err := parsePixel(values, req.Width, req.Height)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	sc, err := createScene(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	hit := inspectPixel(sc, req.Width, req.Height, x, y)
	response := InspectResponse{Hit: hit.Happened, Properties: map[string]interface{}{}}
	if hit.Happened {
		response.MaterialType, response.Properties = extractMaterialInfo(hit.Material)
		response.Point = [3]float64{hit.Point.X, hit.Point.Y, hit.Point.Z}
		response.Normal = [3]float64{hit.Normal.X, hit.Normal.Y, hit.Normal.Z}
		response.Distance = hit.Distance
		response.FrontFace = hit.FrontFace
	}
	writeJSON(w, http.StatusOK, response)
}

func parsePixel(values url.Values, width, height int) (int, int, error) {
	x, err := parseIntParam(values, "x", width/2, 0, width-1)
	if err != nil {
		return 0, 0, err
	}
	y, err := parseIntParam(values, "y", height/2, 0, height-1)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}
