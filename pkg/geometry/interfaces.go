package geometry

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Primitive is a surface element that can be stored in a BVH: a single
// triangle or a mesh of triangles
type Primitive interface {
	BoundingBox() core.AABB
	Area() float64
	HasEmit() bool
	Intersect(ray core.Ray) Intersection
	IntersectP(ray core.Ray) bool
	// Sample draws a point uniformly over the primitive's area
	Sample(sampler core.Sampler) SurfaceSample
	GetMaterial() material.Material
}

// Intersection contains information about a ray-surface intersection.
// The zero value means "no hit".
type Intersection struct {
	Happened        bool
	Distance        float64           // Parameter t along the (unit direction) ray
	Point           core.Vec3         // World-space hit point
	Normal          core.Vec3         // Surface normal facing the incoming ray
	GeometricNormal core.Vec3         // Outward normal from the vertex winding
	FrontFace       bool              // Whether ray hit the front face
	U, V            float64           // Barycentric coordinates of the hit
	Material        material.Material // Material of the hit surface (not owned)
}

// SetFaceNormal sets the normal vector and determines front/back face
func (h *Intersection) SetFaceNormal(ray core.Ray, outwardNormal core.Vec3) {
	h.GeometricNormal = outwardNormal
	h.FrontFace = ray.Direction.Dot(outwardNormal) < 0
	if h.FrontFace {
		h.Normal = outwardNormal
	} else {
		h.Normal = outwardNormal.Negate()
	}
}

// SurfaceSample is a point drawn on a surface, as used for light sampling
type SurfaceSample struct {
	Point    core.Vec3
	Normal   core.Vec3 // Outward geometric normal at Point
	Emission core.Vec3 // Emitted radiance at Point (zero for non-emitters)

	// PDF is the area density of the sampling primitive itself: 1/area
	PDF float64

	// SelectionProb is the probability of having picked the sampling
	// primitive; 1 when a primitive is sampled directly
	SelectionProb float64
}

// AreaPDF returns the density of the sample with respect to area over
// everything the sample could have been drawn from
func (s SurfaceSample) AreaPDF() float64 {
	return s.PDF * s.SelectionProb
}
