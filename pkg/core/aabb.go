package core

import "math"

// AABB represents an axis-aligned bounding box
type AABB struct {
	Min Vec3 // Minimum corner
	Max Vec3 // Maximum corner
}

// NewAABB creates a new AABB from min and max points
func NewAABB(min, max Vec3) AABB {
	return AABB{Min: min, Max: max}
}

// EmptyAABB returns a box that contains nothing; unioning anything into it
// yields that thing's bounds
func EmptyAABB() AABB {
	inf := math.Inf(1)
	return AABB{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// NewAABBFromPoints creates an AABB that bounds all given points
func NewAABBFromPoints(points ...Vec3) AABB {
	box := EmptyAABB()
	for _, point := range points {
		box = box.UnionPoint(point)
	}
	return box
}

// Union returns an AABB that bounds both this AABB and another
func (aabb AABB) Union(other AABB) AABB {
	return AABB{Min: aabb.Min.Min(other.Min), Max: aabb.Max.Max(other.Max)}
}

// UnionPoint returns an AABB that bounds this AABB and the point
func (aabb AABB) UnionPoint(p Vec3) AABB {
	return AABB{Min: aabb.Min.Min(p), Max: aabb.Max.Max(p)}
}

// Diagonal returns the extent of the AABB along each axis
func (aabb AABB) Diagonal() Vec3 {
	return aabb.Max.Subtract(aabb.Min)
}

// Centroid returns the center point of the AABB
func (aabb AABB) Centroid() Vec3 {
	return aabb.Min.Add(aabb.Max).Multiply(0.5)
}

// SurfaceArea returns the surface area of the AABB
func (aabb AABB) SurfaceArea() float64 {
	if !aabb.IsValid() {
		return 0
	}
	size := aabb.Diagonal()
	return 2.0 * (size.X*size.Y + size.Y*size.Z + size.Z*size.X)
}

// LongestAxis returns the axis (0=X, 1=Y, 2=Z) with the longest extent
func (aabb AABB) LongestAxis() int {
	size := aabb.Diagonal()
	if size.X > size.Y && size.X > size.Z {
		return 0
	}
	if size.Y > size.Z {
		return 1
	}
	return 2
}

// Offset returns the position of p relative to the box corners, 0 at Min and
// 1 at Max on each axis. Degenerate axes map to 0.
func (aabb AABB) Offset(p Vec3) Vec3 {
	o := p.Subtract(aabb.Min)
	size := aabb.Diagonal()
	if size.X > 0 {
		o.X /= size.X
	} else {
		o.X = 0
	}
	if size.Y > 0 {
		o.Y /= size.Y
	} else {
		o.Y = 0
	}
	if size.Z > 0 {
		o.Z /= size.Z
	} else {
		o.Z = 0
	}
	return o
}

// IsValid returns true if this is a valid AABB (min <= max for all axes)
func (aabb AABB) IsValid() bool {
	return aabb.Min.X <= aabb.Max.X &&
		aabb.Min.Y <= aabb.Max.Y &&
		aabb.Min.Z <= aabb.Max.Z
}

// Contains reports whether other lies entirely inside this box
func (aabb AABB) Contains(other AABB) bool {
	return aabb.Min.X <= other.Min.X && aabb.Min.Y <= other.Min.Y && aabb.Min.Z <= other.Min.Z &&
		aabb.Max.X >= other.Max.X && aabb.Max.Y >= other.Max.Y && aabb.Max.Z >= other.Max.Z
}

// corner returns Min for 0 and Max for 1
func (aabb AABB) corner(i int) Vec3 {
	if i == 0 {
		return aabb.Min
	}
	return aabb.Max
}

// IntersectP tests the ray against the box with the slab method. invDir is
// the component-wise inverse of the ray direction and dirIsNeg selects which
// corner is the entry plane on each axis. The per-axis intervals are clipped
// against the ray's [TMin, TMax]; the box is hit iff the result is non-empty
// and the exit is not behind the origin.
//
// Zero direction components give infinite inverses; a 0*Inf product is NaN
// and every comparison with it is false, so such an axis leaves the interval
// unchanged.
func (aabb AABB) IntersectP(ray Ray, invDir Vec3, dirIsNeg [3]int) bool {
	tEnter := ray.TMin
	tExit := ray.TMax

	for axis := 0; axis < 3; axis++ {
		origin := ray.Origin.Axis(axis)
		inv := invDir.Axis(axis)
		t0 := (aabb.corner(dirIsNeg[axis]).Axis(axis) - origin) * inv
		t1 := (aabb.corner(1-dirIsNeg[axis]).Axis(axis) - origin) * inv

		if t0 > tEnter {
			tEnter = t0
		}
		if t1 < tExit {
			tExit = t1
		}
		if tEnter > tExit {
			return false
		}
	}

	return tExit >= 0
}

// Hit is shorthand for IntersectP with the ray's cached inverse direction
func (aabb AABB) Hit(ray Ray) bool {
	return aabb.IntersectP(ray, ray.InvDir, ray.DirIsNeg)
}
