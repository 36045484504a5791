package loaders

import (
	"errors"
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrUnsupportedFormat is returned for model files with an unknown extension
var ErrUnsupportedFormat = errors.New("loaders: unsupported model format")

var logger = log.New("loaders")

// MeshData is an indexed triangle list as read from a model file
type MeshData struct {
	Vertices []core.Vec3
	Faces    []int // Triangle indices (3 per triangle)
}

// TriangleCount returns the number of triangles in the face list
func (m *MeshData) TriangleCount() int {
	return len(m.Faces) / 3
}

// Fit uniformly scales and translates a model so its largest extent equals
// Size and its bounding box is centered on Center
type Fit struct {
	Center core.Vec3
	Size   float64
}

// Options controls how a model file becomes a mesh
type Options struct {
	Fit *Fit                 // Optional placement; nil keeps file coordinates
	BVH *geometry.BVHOptions // Optional nested BVH settings
}

// FitVertices returns a transformed copy of vertices placed according to fit
func FitVertices(vertices []core.Vec3, fit Fit) []core.Vec3 {
	bounds := core.NewAABBFromPoints(vertices...)
	size := bounds.Diagonal()
	extent := math.Max(size.X, math.Max(size.Y, size.Z))

	scale := 1.0
	if extent > 0 && fit.Size > 0 {
		scale = fit.Size / extent
	}
	center := bounds.Centroid()

	out := make([]core.Vec3, len(vertices))
	for i, v := range vertices {
		out[i] = v.Subtract(center).Multiply(scale).Add(fit.Center)
	}
	return out
}

// ReadMesh reads the model at path into an indexed triangle list. The format
// is chosen by extension: .obj, .ply, .gltf or .glb.
func ReadMesh(path string) (*MeshData, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".obj":
		return LoadOBJ(path)
	case ".ply":
		return LoadPLY(path)
	case ".gltf", ".glb":
		return LoadGLTF(path)
	}
	return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
}

// LoadMesh reads a model file and builds a single-material triangle mesh
func LoadMesh(path string, mat material.Material, options *Options) (*geometry.TriangleMesh, error) {
	start := time.Now()

	data, err := ReadMesh(path)
	if err != nil {
		return nil, err
	}

	vertices := data.Vertices
	meshOptions := &geometry.TriangleMeshOptions{}
	if options != nil {
		if options.Fit != nil {
			vertices = FitVertices(vertices, *options.Fit)
		}
		meshOptions.BVH = options.BVH
	}

	mesh, err := geometry.NewTriangleMesh(vertices, data.Faces, mat, meshOptions)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Infof("loaded %s: %d vertices, %d triangles in %s", path, len(data.Vertices), mesh.GetTriangleCount(), time.Since(start))
	return mesh, nil
}

// appendFan triangulates a convex polygon given as vertex indices
func appendFan(faces []int, polygon []int) []int {
	for i := 1; i+1 < len(polygon); i++ {
		faces = append(faces, polygon[0], polygon[i], polygon[i+1])
	}
	return faces
}
