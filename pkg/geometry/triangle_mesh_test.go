package geometry

import (
	"errors"
	"math"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
)

func TestNewTriangleMesh_Errors(t *testing.T) {
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0),
		core.NewVec3(1, 0, 0),
		core.NewVec3(0, 1, 0),
	}

	tests := []struct {
		name     string
		faces    []int
		expected error
	}{
		{"Indices not a multiple of three", []int{0, 1}, ErrBadFaceIndex},
		{"Index past the vertex list", []int{0, 1, 3}, ErrBadFaceIndex},
		{"Negative index", []int{0, -1, 2}, ErrBadFaceIndex},
		{"No faces", []int{}, ErrNoPrimitives},
		{"Only degenerate faces", []int{0, 1, 1}, ErrNoPrimitives},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mesh, err := NewTriangleMesh(vertices, tt.faces, nil, nil)
			if !errors.Is(err, tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, err)
			}
			if mesh != nil {
				t.Error("Expected nil mesh on error")
			}
		})
	}
}

func TestTriangleMesh_Intersect(t *testing.T) {
	lambertian := material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))
	// Two stacked squares facing +Z at z=0 and z=1
	vertices := []core.Vec3{
		core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(1, 1, 0), core.NewVec3(0, 1, 0),
		core.NewVec3(0, 0, 1), core.NewVec3(1, 0, 1), core.NewVec3(1, 1, 1), core.NewVec3(0, 1, 1),
	}
	faces := []int{0, 1, 2, 0, 2, 3, 4, 5, 6, 4, 6, 7}
	mesh, err := NewTriangleMesh(vertices, faces, lambertian, nil)
	if err != nil {
		t.Fatalf("NewTriangleMesh failed: %v", err)
	}

	if mesh.GetTriangleCount() != 4 {
		t.Errorf("Expected 4 triangles, got %d", mesh.GetTriangleCount())
	}
	if math.Abs(mesh.Area()-2) > 1e-12 {
		t.Errorf("Expected area 2, got %f", mesh.Area())
	}

	hit := mesh.Intersect(core.NewRay(core.NewVec3(0.3, 0.6, 5), core.NewVec3(0, 0, -1)))
	if !hit.Happened || math.Abs(hit.Distance-4) > 1e-9 {
		t.Fatalf("Expected the nearer square at distance 4, got %+v", hit)
	}
	if hit.Material != lambertian {
		t.Error("Expected the mesh material on the hit")
	}
	if !mesh.IntersectP(core.NewRay(core.NewVec3(0.3, 0.6, -5), core.NewVec3(0, 0, 1))) {
		t.Error("Expected IntersectP hit from below")
	}
	if mesh.IntersectP(core.NewRay(core.NewVec3(3, 3, 5), core.NewVec3(0, 0, -1))) {
		t.Error("Expected IntersectP miss")
	}
}

func TestTriangleMesh_Rotation(t *testing.T) {
	vertices := []core.Vec3{core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(1, 1, 0)}
	rotation := core.NewVec3(0, 0, math.Pi/2)
	center := core.NewVec3(1, 0, 0)
	mesh, err := NewTriangleMesh(vertices, []int{0, 1, 2}, nil, &TriangleMeshOptions{Rotation: &rotation, Center: &center})
	if err != nil {
		t.Fatalf("NewTriangleMesh failed: %v", err)
	}

	// A quarter turn about z through (1,0,0) maps (2,0,0) to (1,1,0) and (1,1,0) to (0,0,0)
	box := mesh.BoundingBox()
	expectedMin := core.NewVec3(0, 0, 0)
	expectedMax := core.NewVec3(1, 1, 0)
	if box.Min.Subtract(expectedMin).Length() > 1e-9 || box.Max.Subtract(expectedMax).Length() > 1e-9 {
		t.Errorf("Unexpected rotated bounds %v", box)
	}
	// Vertex input is left untouched
	if vertices[1] != core.NewVec3(2, 0, 0) {
		t.Error("Rotation modified the caller's vertices")
	}
}

func TestTriangleMesh_Sample(t *testing.T) {
	emission := core.NewVec3(5, 5, 5)
	light := material.NewEmissive(emission)
	quad, err := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(2, 0, 0), core.NewVec3(0, 0, 3), light)
	if err != nil {
		t.Fatalf("NewQuad failed: %v", err)
	}
	if !quad.HasEmit() {
		t.Fatal("Expected emissive quad")
	}

	sampler := core.NewSeededSampler(9)
	for i := 0; i < 500; i++ {
		s := quad.Sample(sampler)
		if s.Emission != emission {
			t.Fatalf("Expected emission %v, got %v", emission, s.Emission)
		}
		// Uniform over the whole mesh
		if math.Abs(s.PDF-1.0/6) > 1e-12 || s.SelectionProb != 1 {
			t.Fatalf("Expected pdf 1/6 with selection 1, got %f and %f", s.PDF, s.SelectionProb)
		}
		if s.Point.X < 0 || s.Point.X > 2 || s.Point.Z < 0 || s.Point.Z > 3 || s.Point.Y != 0 {
			t.Fatalf("Sample %v outside the quad", s.Point)
		}
		// u × v = (2,0,0) × (0,0,3) points down
		if s.Normal.Subtract(core.NewVec3(0, -1, 0)).Length() > 1e-12 {
			t.Fatalf("Expected normal (0,-1,0), got %v", s.Normal)
		}
	}

	dark, err := NewQuad(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(0, 1, 0), material.NewLambertian(core.NewVec3(1, 1, 1)))
	if err != nil {
		t.Fatalf("NewQuad failed: %v", err)
	}
	if s := dark.Sample(sampler); !s.Emission.IsZero() {
		t.Errorf("Expected no emission from a diffuse quad, got %v", s.Emission)
	}
}

func TestNewBox(t *testing.T) {
	lambertian := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	center := core.NewVec3(1, 2, 3)
	box, err := NewAxisAlignedBox(center, core.NewVec3(1, 2, 3), lambertian)
	if err != nil {
		t.Fatalf("NewAxisAlignedBox failed: %v", err)
	}

	if box.GetTriangleCount() != 12 {
		t.Errorf("Expected 12 triangles, got %d", box.GetTriangleCount())
	}
	// 2·(2·4 + 4·6 + 2·6)
	if math.Abs(box.Area()-88) > 1e-9 {
		t.Errorf("Expected area 88, got %f", box.Area())
	}

	bounds := box.BoundingBox()
	if bounds.Min != core.NewVec3(0, 0, 0) || bounds.Max != core.NewVec3(2, 4, 6) {
		t.Errorf("Unexpected bounds %v", bounds)
	}

	// Every face winds outward
	for _, p := range box.GetTriangles() {
		tri := p.(*Triangle)
		centroid := tri.V0.Add(tri.V1).Add(tri.V2).Multiply(1.0 / 3)
		if tri.Normal.Dot(centroid.Subtract(center)) <= 0 {
			t.Errorf("Triangle with normal %v winds inward", tri.Normal)
		}
	}

	// A ray from outside hits the front face
	hit := box.Intersect(core.NewRay(core.NewVec3(0.5, 2.5, -10), core.NewVec3(0, 0, 1)))
	if !hit.Happened || math.Abs(hit.Distance-10) > 1e-9 || !hit.FrontFace {
		t.Errorf("Expected front face hit at distance 10, got %+v", hit)
	}
}

func TestNewBox_Rotated(t *testing.T) {
	box, err := NewBox(core.Vec3{}, core.NewVec3(1, 1, 1), core.NewVec3(0, math.Pi/4, 0), nil)
	if err != nil {
		t.Fatalf("NewBox failed: %v", err)
	}

	// Rotating 45° about Y widens the X and Z extent to √2
	bounds := box.BoundingBox()
	if math.Abs(bounds.Max.X-math.Sqrt2) > 1e-9 || math.Abs(bounds.Max.Z-math.Sqrt2) > 1e-9 || math.Abs(bounds.Max.Y-1) > 1e-9 {
		t.Errorf("Unexpected rotated bounds %v", bounds)
	}
}
