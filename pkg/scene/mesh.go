package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/material"
)

// octahedron is the stand-in model when no mesh file is given
var (
	octahedronVertices = []core.Vec3{
		core.NewVec3(1, 0, 0), core.NewVec3(-1, 0, 0),
		core.NewVec3(0, 1, 0), core.NewVec3(0, -1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(0, 0, -1),
	}
	octahedronFaces = []int{
		0, 2, 4, 4, 2, 1, 1, 2, 5, 5, 2, 0,
		4, 3, 0, 1, 3, 4, 5, 3, 1, 0, 3, 5,
	}
)

// NewMeshScene places a mesh on a floor under a square area light. The mesh
// is loaded from options.MeshPath and fitted into a 2-unit box resting on
// the floor.
func NewMeshScene(options Options) (*Scene, error) {
	meshMat := material.NewLambertian(core.NewVec3(0.8, 0.6, 0.4))
	fit := loaders.Fit{Center: core.NewVec3(0, 1, 0), Size: 2}

	var (
		mesh *geometry.TriangleMesh
		err  error
	)
	if options.MeshPath != "" {
		mesh, err = loaders.LoadMesh(options.MeshPath, meshMat, &loaders.Options{Fit: &fit, BVH: &options.BVH})
	} else {
		mesh, err = geometry.NewTriangleMesh(loaders.FitVertices(octahedronVertices, fit), octahedronFaces, meshMat,
			&geometry.TriangleMeshOptions{BVH: &options.BVH})
	}
	if err != nil {
		return nil, wrapPart("mesh", err)
	}

	floor, err := geometry.NewQuad(
		core.NewVec3(-10, 0, 10), core.NewVec3(20, 0, 0), core.NewVec3(0, 0, -20),
		material.NewLambertian(core.NewVec3(0.6, 0.6, 0.6)),
	)
	if err != nil {
		return nil, wrapPart("floor", err)
	}

	// (s,0,0) × (0,0,s) points down
	light, err := geometry.NewQuad(
		core.NewVec3(-1.5, 5, -1.5), core.NewVec3(3, 0, 0), core.NewVec3(0, 0, 3),
		material.NewEmissive(core.NewVec3(8, 8, 8)),
	)
	if err != nil {
		return nil, wrapPart("light", err)
	}

	prims := append([]geometry.Primitive{mesh, floor, light}, options.Extra...)
	camera := CameraConfig{Eye: core.NewVec3(0, 1.5, -6), FOV: 45}
	return NewScene("mesh", camera, prims, options.BVH)
}
