package core

import (
	"math"
	"math/rand"
	"testing"
)

func randomBox(random *rand.Rand) AABB {
	p := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	q := NewVec3(random.Float64()*10-5, random.Float64()*10-5, random.Float64()*10-5)
	return NewAABBFromPoints(p, q)
}

func TestAABB_UnionProperties(t *testing.T) {
	random := rand.New(rand.NewSource(7))

	for i := 0; i < 1000; i++ {
		a := randomBox(random)
		b := randomBox(random)
		u := a.Union(b)

		if !u.Contains(a) || !u.Contains(b) {
			t.Fatalf("Union %v does not contain %v and %v", u, a, b)
		}
		if u.SurfaceArea() < math.Max(a.SurfaceArea(), b.SurfaceArea()) {
			t.Fatalf("Union area %f smaller than inputs %f, %f", u.SurfaceArea(), a.SurfaceArea(), b.SurfaceArea())
		}
		if !u.IsValid() {
			t.Fatalf("Union %v is not valid", u)
		}
	}
}

func TestAABB_UnionPointAndEmpty(t *testing.T) {
	box := EmptyAABB()
	if box.IsValid() {
		t.Error("Expected empty box to be invalid")
	}
	if box.SurfaceArea() != 0 {
		t.Errorf("Expected empty box area 0, got %f", box.SurfaceArea())
	}

	box = box.UnionPoint(NewVec3(1, 2, 3))
	if box.Min != NewVec3(1, 2, 3) || box.Max != NewVec3(1, 2, 3) {
		t.Errorf("Expected degenerate box at point, got %v", box)
	}

	box = box.UnionPoint(NewVec3(-1, 4, 3))
	if box.Min != NewVec3(-1, 2, 3) || box.Max != NewVec3(1, 4, 3) {
		t.Errorf("Unexpected box after second point: %v", box)
	}
	if box.Centroid() != NewVec3(0, 3, 3) {
		t.Errorf("Unexpected centroid %v", box.Centroid())
	}
}

func TestAABB_SurfaceAreaAndAxis(t *testing.T) {
	box := NewAABB(NewVec3(0, 0, 0), NewVec3(1, 2, 3))

	if got := box.SurfaceArea(); got != 22 {
		t.Errorf("Expected surface area 22, got %f", got)
	}
	if axis := box.LongestAxis(); axis != 2 {
		t.Errorf("Expected longest axis Z, got %d", axis)
	}
	if o := box.Offset(NewVec3(0.5, 1, 3)); o != NewVec3(0.5, 0.5, 1) {
		t.Errorf("Unexpected offset %v", o)
	}
}

func TestAABB_IntersectP(t *testing.T) {
	box := NewAABB(NewVec3(-1, -1, -1), NewVec3(1, 1, 1))

	tests := []struct {
		name     string
		ray      Ray
		expected bool
	}{
		{
			name:     "Ray through center",
			ray:      NewRay(NewVec3(-5, 0, 0), NewVec3(1, 0, 0)),
			expected: true,
		},
		{
			name:     "Ray pointing away",
			ray:      NewRay(NewVec3(-5, 0, 0), NewVec3(-1, 0, 0)),
			expected: false,
		},
		{
			name:     "Ray starting inside",
			ray:      NewRay(NewVec3(0, 0, 0), NewVec3(0, 1, 0)),
			expected: true,
		},
		{
			name:     "Axis-parallel ray outside slab",
			ray:      NewRay(NewVec3(-5, 2, 0), NewVec3(1, 0, 0)),
			expected: false,
		},
		{
			name:     "Axis-parallel ray on slab boundary",
			ray:      NewRay(NewVec3(-5, 1, 0), NewVec3(1, 0, 0)),
			expected: true,
		},
		{
			name:     "Diagonal miss",
			ray:      NewRay(NewVec3(-5, 3, 0), NewVec3(1, 0.1, 0)),
			expected: false,
		},
		{
			name:     "Segment ends before box",
			ray:      NewRaySegment(NewVec3(-5, 0, 0), NewVec3(1, 0, 0), 0, 3),
			expected: false,
		},
		{
			name:     "Negative zero direction component inside slab",
			ray:      NewRay(NewVec3(-5, 0, 0), NewVec3(1, math.Copysign(0, -1), 0)),
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := box.IntersectP(tt.ray, tt.ray.InvDir, tt.ray.DirIsNeg); got != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, got)
			}
		})
	}
}
