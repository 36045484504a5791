package core

import "math"

// Ray represents a ray with an origin, a unit direction and a valid
// parametric interval [TMin, TMax]. Because the direction is normalized,
// t values are distances.
type Ray struct {
	Origin    Vec3
	Direction Vec3
	TMin      float64
	TMax      float64

	// Cached for the slab test
	InvDir   Vec3
	DirIsNeg [3]int
}

// NewRay creates a ray over [0, +Inf). The direction is normalized.
func NewRay(origin, direction Vec3) Ray {
	return NewRaySegment(origin, direction, 0, math.Inf(1))
}

// NewRaySegment creates a ray restricted to [tMin, tMax]
func NewRaySegment(origin, direction Vec3, tMin, tMax float64) Ray {
	dir := direction.Normalize()
	// -0 would give a -Inf inverse with the entry corner picked for +0
	if dir.X == 0 {
		dir.X = 0
	}
	if dir.Y == 0 {
		dir.Y = 0
	}
	if dir.Z == 0 {
		dir.Z = 0
	}
	r := Ray{
		Origin:    origin,
		Direction: dir,
		TMin:      tMin,
		TMax:      tMax,
		InvDir:    Vec3{1 / dir.X, 1 / dir.Y, 1 / dir.Z},
	}
	if dir.X < 0 {
		r.DirIsNeg[0] = 1
	}
	if dir.Y < 0 {
		r.DirIsNeg[1] = 1
	}
	if dir.Z < 0 {
		r.DirIsNeg[2] = 1
	}
	return r
}

// At returns the point at parameter t along the ray
func (r Ray) At(t float64) Vec3 {
	return r.Origin.Add(r.Direction.Multiply(t))
}

// WithTMax returns a copy of the ray with a shortened interval
func (r Ray) WithTMax(tMax float64) Ray {
	r.TMax = tMax
	return r
}
