package geometry

import (
	"errors"
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// ErrBadFaceIndex is returned when a face list is not a multiple of three or
// references a vertex that does not exist
var ErrBadFaceIndex = errors.New("geometry: bad face index")

// TriangleMesh represents a collection of triangles sharing one material.
// It uses an internal BVH for intersection and for area-uniform sampling.
type TriangleMesh struct {
	triangles []Primitive
	bvh       *BVH
	bbox      core.AABB
	area      float64
	material  material.Material
}

// TriangleMeshOptions contains optional parameters for triangle mesh creation
type TriangleMeshOptions struct {
	Rotation *core.Vec3 // Optional rotation (radians, X then Y then Z)
	Center   *core.Vec3 // Optional center point for rotation
	BVH      *BVHOptions
}

// NewTriangleMesh creates a new triangle mesh from vertices and face indices
// vertices: array of 3D points
// faces: array of triangle indices (each group of 3 indices forms a triangle)
// material: material for all triangles
// options: optional parameters (can be nil for basic mesh)
//
// Zero-area triangles are dropped; a mesh with nothing left is ErrNoPrimitives.
func NewTriangleMesh(vertices []core.Vec3, faces []int, material material.Material, options *TriangleMeshOptions) (*TriangleMesh, error) {
	if len(faces)%3 != 0 {
		return nil, fmt.Errorf("%d indices is not a multiple of 3: %w", len(faces), ErrBadFaceIndex)
	}

	workingVertices := vertices
	if options != nil && options.Rotation != nil {
		workingVertices = make([]core.Vec3, len(vertices))
		for i, vertex := range vertices {
			if options.Center != nil {
				vertex = vertex.Subtract(*options.Center)
			}
			vertex = rotateVertex(vertex, *options.Rotation)
			if options.Center != nil {
				vertex = vertex.Add(*options.Center)
			}
			workingVertices[i] = vertex
		}
	}

	triangles := make([]Primitive, 0, len(faces)/3)
	area := 0.0
	for i := 0; i < len(faces); i += 3 {
		i0, i1, i2 := faces[i], faces[i+1], faces[i+2]
		if !validIndex(i0, len(workingVertices)) || !validIndex(i1, len(workingVertices)) || !validIndex(i2, len(workingVertices)) {
			return nil, fmt.Errorf("face %d (%d, %d, %d) with %d vertices: %w", i/3, i0, i1, i2, len(workingVertices), ErrBadFaceIndex)
		}

		triangle := NewTriangle(workingVertices[i0], workingVertices[i1], workingVertices[i2], material)
		if triangle.Area() <= 0 {
			continue
		}
		triangles = append(triangles, triangle)
		area += triangle.Area()
	}

	bvhOptions := DefaultBVHOptions()
	if options != nil && options.BVH != nil {
		bvhOptions = *options.BVH
	}
	bvh, err := NewBVH(triangles, bvhOptions)
	if err != nil {
		return nil, fmt.Errorf("building mesh BVH: %w", err)
	}

	return &TriangleMesh{
		triangles: triangles,
		bvh:       bvh,
		bbox:      bvh.BoundingBox(),
		area:      area,
		material:  material,
	}, nil
}

func validIndex(i, n int) bool {
	return i >= 0 && i < n
}

// Intersect tests the ray against the mesh's triangles
func (tm *TriangleMesh) Intersect(ray core.Ray) Intersection {
	return tm.bvh.Intersect(ray)
}

// IntersectP reports whether the ray hits any triangle of the mesh
func (tm *TriangleMesh) IntersectP(ray core.Ray) bool {
	return tm.bvh.IntersectP(ray)
}

// Sample draws a point uniformly over the whole mesh. The nested BVH picks
// the point; emission comes from the mesh material afterwards.
func (tm *TriangleMesh) Sample(sampler core.Sampler) SurfaceSample {
	s, ok := tm.bvh.Sample(sampler)
	if !ok {
		return SurfaceSample{}
	}

	s.PDF = s.AreaPDF()
	s.SelectionProb = 1
	s.Emission = core.Vec3{}
	if tm.HasEmit() {
		s.Emission = tm.material.Emission()
	}
	return s
}

// BoundingBox returns the axis-aligned bounding box for the entire mesh
func (tm *TriangleMesh) BoundingBox() core.AABB {
	return tm.bbox
}

// Area returns the summed area of the mesh's triangles
func (tm *TriangleMesh) Area() float64 {
	return tm.area
}

// HasEmit reports whether the mesh material emits light
func (tm *TriangleMesh) HasEmit() bool {
	return tm.material != nil && tm.material.HasEmission()
}

// GetMaterial returns the mesh material
func (tm *TriangleMesh) GetMaterial() material.Material {
	return tm.material
}

// GetTriangleCount returns the number of triangles in this mesh
func (tm *TriangleMesh) GetTriangleCount() int {
	return len(tm.triangles)
}

// GetTriangles returns the individual triangles (for debugging or special operations)
func (tm *TriangleMesh) GetTriangles() []Primitive {
	return tm.triangles
}

// BVHStats returns the build statistics of the nested BVH
func (tm *TriangleMesh) BVHStats() BuildStats {
	return tm.bvh.Stats()
}

// rotateVertex applies rotation around X, Y, Z axes (in that order)
func rotateVertex(vertex, rotation core.Vec3) core.Vec3 {
	if rotation.X != 0 {
		cos := math.Cos(rotation.X)
		sin := math.Sin(rotation.X)
		y := vertex.Y*cos - vertex.Z*sin
		z := vertex.Y*sin + vertex.Z*cos
		vertex = core.NewVec3(vertex.X, y, z)
	}

	if rotation.Y != 0 {
		cos := math.Cos(rotation.Y)
		sin := math.Sin(rotation.Y)
		x := vertex.X*cos + vertex.Z*sin
		z := -vertex.X*sin + vertex.Z*cos
		vertex = core.NewVec3(x, vertex.Y, z)
	}

	if rotation.Z != 0 {
		cos := math.Cos(rotation.Z)
		sin := math.Sin(rotation.Z)
		x := vertex.X*cos - vertex.Y*sin
		y := vertex.X*sin + vertex.Y*cos
		vertex = core.NewVec3(x, y, vertex.Z)
	}

	return vertex
}
