package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// boxFaces lists the corner indices of each face as a cycle
var boxFaces = [6][4]int{
	{0, 1, 2, 3}, // Z-
	{4, 5, 6, 7}, // Z+
	{0, 1, 5, 4}, // Y-
	{3, 2, 6, 7}, // Y+
	{0, 3, 7, 4}, // X-
	{1, 2, 6, 5}, // X+
}

// NewBox creates a closed box mesh of 12 triangles with outward normals.
// Size represents half-extents (so a size of (1,1,1) creates a 2x2x2 box)
// Rotation is in radians around X, Y, Z axes (applied in that order)
func NewBox(center, size, rotation core.Vec3, material material.Material) (*TriangleMesh, error) {
	corners := []core.Vec3{
		core.NewVec3(-1, -1, -1), // 0: left-bottom-back
		core.NewVec3(1, -1, -1),  // 1: right-bottom-back
		core.NewVec3(1, 1, -1),   // 2: right-top-back
		core.NewVec3(-1, 1, -1),  // 3: left-top-back
		core.NewVec3(-1, -1, 1),  // 4: left-bottom-front
		core.NewVec3(1, -1, 1),   // 5: right-bottom-front
		core.NewVec3(1, 1, 1),    // 6: right-top-front
		core.NewVec3(-1, 1, 1),   // 7: left-top-front
	}
	for i := range corners {
		corners[i] = rotateVertex(corners[i].MultiplyVec(size), rotation).Add(center)
	}

	faces := make([]int, 0, 36)
	for _, f := range boxFaces {
		a, b, c, d := f[0], f[1], f[2], f[3]

		// Flip the cycle when it winds inward
		faceCenter := corners[a].Add(corners[b]).Add(corners[c]).Add(corners[d]).Multiply(0.25)
		normal := corners[b].Subtract(corners[a]).Cross(corners[c].Subtract(corners[a]))
		if normal.Dot(faceCenter.Subtract(center)) < 0 {
			b, d = d, b
		}
		faces = append(faces, a, b, c, a, c, d)
	}

	return NewTriangleMesh(corners, faces, material, nil)
}

// NewAxisAlignedBox creates a new axis-aligned box (no rotation)
func NewAxisAlignedBox(center, size core.Vec3, material material.Material) (*TriangleMesh, error) {
	return NewBox(center, size, core.Vec3{}, material)
}
