package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewQuad creates a parallelogram from a corner point and two edge vectors.
// It is split into the triangles (c, c+u, c+u+v) and (c, c+u+v, c+v), so the
// face normal is u × v.
func NewQuad(corner, u, v core.Vec3, material material.Material) (*TriangleMesh, error) {
	vertices := []core.Vec3{
		corner,
		corner.Add(u),
		corner.Add(u).Add(v),
		corner.Add(v),
	}
	faces := []int{0, 1, 2, 0, 2, 3}
	return NewTriangleMesh(vertices, faces, material, nil)
}

// NewQuadFromCorners creates a quad from four corners given in winding order
func NewQuadFromCorners(c0, c1, c2, c3 core.Vec3, material material.Material) (*TriangleMesh, error) {
	return NewTriangleMesh([]core.Vec3{c0, c1, c2, c3}, []int{0, 1, 2, 0, 2, 3}, material, nil)
}
