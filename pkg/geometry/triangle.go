package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// triangleEpsilon bounds both the determinant and the barycentric margin of
// the Möller-Trumbore test
const triangleEpsilon = 1e-6

// Triangle represents a single triangle defined by three counter-clockwise vertices
type Triangle struct {
	V0, V1, V2 core.Vec3 // The three vertices
	E1, E2     core.Vec3 // Edges V1-V0 and V2-V0
	Normal     core.Vec3 // Unit face normal E1 x E2
	area       float64
	material   material.Material
	bbox       core.AABB
}

// NewTriangle creates a new triangle from three vertices
func NewTriangle(v0, v1, v2 core.Vec3, material material.Material) *Triangle {
	e1 := v1.Subtract(v0)
	e2 := v2.Subtract(v0)
	cross := e1.Cross(e2)

	return &Triangle{
		V0:       v0,
		V1:       v1,
		V2:       v2,
		E1:       e1,
		E2:       e2,
		Normal:   cross.Normalize(),
		area:     0.5 * cross.Length(),
		material: material,
		bbox:     core.NewAABBFromPoints(v0, v1, v2),
	}
}

// IntersectTriangle tests a ray against the triangle (v0, v1, v2) using the
// Möller-Trumbore formulation. It returns the hit distance and the
// barycentric coordinates (u, v) of the hit.
//
// Near-parallel rays (|det| <= 1e-6), hits behind the origin or outside
// [ray.TMin, ray.TMax], and hits on or past the u+v = 1 epsilon boundary
// report ok = false.
func IntersectTriangle(v0, v1, v2 core.Vec3, ray core.Ray) (t, u, v float64, ok bool) {
	return intersectEdges(v0, v1.Subtract(v0), v2.Subtract(v0), ray)
}

func intersectEdges(v0, e1, e2 core.Vec3, ray core.Ray) (float64, float64, float64, bool) {
	s1 := ray.Direction.Cross(e2)
	det := e1.Dot(s1)
	if math.Abs(det) <= triangleEpsilon {
		return 0, 0, 0, false
	}
	invDet := 1.0 / det

	s := ray.Origin.Subtract(v0)
	u := s.Dot(s1) * invDet
	if u < 0 {
		return 0, 0, 0, false
	}

	s2 := s.Cross(e1)
	v := ray.Direction.Dot(s2) * invDet
	if v < 0 || 1-u-v <= triangleEpsilon {
		return 0, 0, 0, false
	}

	t := e2.Dot(s2) * invDet
	if t < 0 || t < ray.TMin || t > ray.TMax {
		return 0, 0, 0, false
	}

	return t, u, v, true
}

// Intersect implements Primitive
func (t *Triangle) Intersect(ray core.Ray) Intersection {
	dist, u, v, ok := intersectEdges(t.V0, t.E1, t.E2, ray)
	if !ok {
		return Intersection{}
	}

	hit := Intersection{
		Happened: true,
		Distance: dist,
		Point:    ray.At(dist),
		U:        u,
		V:        v,
		Material: t.material,
	}
	hit.SetFaceNormal(ray, t.Normal)
	return hit
}

// IntersectP implements Primitive
func (t *Triangle) IntersectP(ray core.Ray) bool {
	_, _, _, ok := intersectEdges(t.V0, t.E1, t.E2, ray)
	return ok
}

// Sample draws a point uniformly over the triangle
func (t *Triangle) Sample(sampler core.Sampler) SurfaceSample {
	b0, b1, b2 := core.SampleTriangleBarycentric(sampler.Get2D())
	sample := SurfaceSample{
		Point:         t.V0.Multiply(b0).Add(t.V1.Multiply(b1)).Add(t.V2.Multiply(b2)),
		Normal:        t.Normal,
		SelectionProb: 1,
	}
	if t.area > 0 {
		sample.PDF = 1.0 / t.area
	}
	if t.HasEmit() {
		sample.Emission = t.material.Emission()
	}
	return sample
}

// BoundingBox returns the axis-aligned bounding box for this triangle
func (t *Triangle) BoundingBox() core.AABB {
	return t.bbox
}

// Area returns the surface area of the triangle
func (t *Triangle) Area() float64 {
	return t.area
}

// HasEmit reports whether the triangle's material emits light
func (t *Triangle) HasEmit() bool {
	return t.material != nil && t.material.HasEmission()
}

// GetMaterial returns the triangle's material
func (t *Triangle) GetMaterial() material.Material {
	return t.material
}
