package geometry

import (
	"errors"
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"gonum.org/v1/gonum/stat"
)

// randomTriangles scatters n small triangles over a 10x10x10 cube
func randomTriangles(random *rand.Rand, n int) []Primitive {
	mat := material.NewLambertian(core.NewVec3(0.5, 0.5, 0.5))
	randomPoint := func(scale float64) core.Vec3 {
		return core.NewVec3(random.Float64()*scale, random.Float64()*scale, random.Float64()*scale)
	}

	prims := make([]Primitive, 0, n)
	for len(prims) < n {
		base := randomPoint(10)
		tri := NewTriangle(base, base.Add(randomPoint(2)), base.Add(randomPoint(2)), mat)
		if tri.Area() < 1e-3 {
			continue
		}
		prims = append(prims, tri)
	}
	return prims
}

func randomRay(random *rand.Rand) core.Ray {
	origin := core.NewVec3(random.Float64()*14-2, random.Float64()*14-2, random.Float64()*14-2)
	target := core.NewVec3(random.Float64()*10, random.Float64()*10, random.Float64()*10)
	return core.NewRay(origin, target.Subtract(origin))
}

// bruteForce intersects every primitive and keeps the closest hit
func bruteForce(prims []Primitive, ray core.Ray) Intersection {
	var closest Intersection
	for _, p := range prims {
		if hit := p.Intersect(ray); hit.Happened && (!closest.Happened || hit.Distance < closest.Distance) {
			closest = hit
		}
	}
	return closest
}

func TestBVH_MatchesBruteForce(t *testing.T) {
	random := rand.New(rand.NewSource(1))
	prims := randomTriangles(random, 300)

	tests := []struct {
		name    string
		options BVHOptions
	}{
		{"Middle split, one primitive per leaf", BVHOptions{MaxPrimsInNode: 1, SplitMethod: SplitMiddle}},
		{"Middle split, four primitives per leaf", BVHOptions{MaxPrimsInNode: 4, SplitMethod: SplitMiddle}},
		{"SAH split, one primitive per leaf", BVHOptions{MaxPrimsInNode: 1, SplitMethod: SplitSAH}},
		{"SAH split, eight primitives per leaf", BVHOptions{MaxPrimsInNode: 8, SplitMethod: SplitSAH}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bvh, err := NewBVH(prims, tt.options)
			if err != nil {
				t.Fatalf("NewBVH failed: %v", err)
			}

			hits := 0
			for i := 0; i < 2000; i++ {
				ray := randomRay(random)
				expected := bruteForce(prims, ray)
				got := bvh.Intersect(ray)

				if got.Happened != expected.Happened {
					t.Fatalf("Ray %d: BVH hit=%v, brute force hit=%v", i, got.Happened, expected.Happened)
				}
				if bvh.IntersectP(ray) != expected.Happened {
					t.Fatalf("Ray %d: IntersectP disagrees with brute force", i)
				}
				if !expected.Happened {
					continue
				}
				hits++
				if got.Distance > expected.Distance+1e-9 {
					t.Fatalf("Ray %d: BVH distance %f farther than brute force %f", i, got.Distance, expected.Distance)
				}
			}
			if hits == 0 {
				t.Fatal("Expected some rays to hit the scene")
			}
		})
	}
}

func TestBVH_Empty(t *testing.T) {
	bvh, err := NewBVH(nil, DefaultBVHOptions())
	if !errors.Is(err, ErrNoPrimitives) {
		t.Fatalf("Expected ErrNoPrimitives, got %v", err)
	}
	if bvh != nil {
		t.Error("Expected nil BVH")
	}

	// Queries on a nil tree are misses
	ray := core.NewRay(core.Vec3{}, core.NewVec3(0, 0, 1))
	if bvh.Intersect(ray).Happened || bvh.IntersectP(ray) {
		t.Error("Expected nil BVH to report misses")
	}
	if _, ok := bvh.Sample(core.NewSeededSampler(1)); ok {
		t.Error("Expected nil BVH sampling to fail")
	}
}

func TestBVH_NodeInvariants(t *testing.T) {
	random := rand.New(rand.NewSource(2))
	prims := randomTriangles(random, 100)

	for _, method := range []SplitMethod{SplitMiddle, SplitSAH} {
		bvh, err := NewBVH(prims, BVHOptions{MaxPrimsInNode: 3, SplitMethod: method})
		if err != nil {
			t.Fatalf("NewBVH failed: %v", err)
		}

		var walk func(node *BVHNode) int
		walk = func(node *BVHNode) int {
			if node.IsLeaf() {
				if len(node.Primitives) == 0 || len(node.Primitives) > 3 {
					t.Fatalf("%s: leaf with %d primitives", method, len(node.Primitives))
				}
				area := 0.0
				for _, p := range node.Primitives {
					if !node.Bounds.Contains(p.BoundingBox()) {
						t.Fatalf("%s: leaf bounds do not contain primitive", method)
					}
					area += p.Area()
				}
				if math.Abs(area-node.Area) > 1e-9 {
					t.Fatalf("%s: leaf area %f, primitives sum to %f", method, node.Area, area)
				}
				return len(node.Primitives)
			}

			if !node.Bounds.Contains(node.Left.Bounds) || !node.Bounds.Contains(node.Right.Bounds) {
				t.Fatalf("%s: interior bounds do not contain children", method)
			}
			if node.Area != node.Left.Area+node.Right.Area {
				t.Fatalf("%s: interior area %f is not the sum of children", method, node.Area)
			}
			return walk(node.Left) + walk(node.Right)
		}

		if count := walk(bvh.Root); count != len(prims) {
			t.Errorf("%s: tree holds %d primitives, expected %d", method, count, len(prims))
		}

		stats := bvh.Stats()
		if stats.TotalPrimitives != len(prims) {
			t.Errorf("%s: stats count %d primitives", method, stats.TotalPrimitives)
		}
		if stats.InteriorNodes != stats.LeafNodes-1 {
			t.Errorf("%s: %d interior nodes for %d leaves", method, stats.InteriorNodes, stats.LeafNodes)
		}
	}
}

func TestBVH_SingleLeafStats(t *testing.T) {
	prims := randomTriangles(rand.New(rand.NewSource(3)), 16)
	bvh, err := NewBVH(prims, DefaultBVHOptions())
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	stats := bvh.Stats()
	if stats.LeafNodes != 16 || stats.InteriorNodes != 15 {
		t.Errorf("Expected 16 leaves and 15 interior nodes, got %d and %d", stats.LeafNodes, stats.InteriorNodes)
	}
	// Median splits of 16 primitives give a perfectly balanced tree
	if stats.MaxDepth != 4 {
		t.Errorf("Expected depth 4, got %d", stats.MaxDepth)
	}
}

func TestBVH_Parent(t *testing.T) {
	prims := randomTriangles(rand.New(rand.NewSource(4)), 8)
	bvh, err := NewBVH(prims, DefaultBVHOptions())
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}

	if parent := bvh.Parent(bvh.Root); parent != nil {
		t.Error("Root should have no parent")
	}
	if recordParents {
		if bvh.Parent(bvh.Root.Left) != bvh.Root || bvh.Parent(bvh.Root.Right) != bvh.Root {
			t.Error("Expected root children to link back to the root")
		}
	} else if bvh.Parent(bvh.Root.Left) != nil {
		t.Error("Parent links should only be recorded with the bvhdebug tag")
	}
}

func TestBVH_SampleDistribution(t *testing.T) {
	// Three disjoint triangles with areas 1, 2 and 3, identified by x offset
	mat := material.NewEmissive(core.NewVec3(1, 1, 1))
	areas := []float64{1, 2, 3}
	var prims []Primitive
	for i, area := range areas {
		x := float64(i * 10)
		side := math.Sqrt(2 * area)
		prims = append(prims, NewTriangle(
			core.NewVec3(x, 0, 0), core.NewVec3(x+side, 0, 0), core.NewVec3(x, side, 0), mat,
		))
	}

	for _, method := range []SplitMethod{SplitMiddle, SplitSAH} {
		bvh, err := NewBVH(prims, BVHOptions{MaxPrimsInNode: 1, SplitMethod: method})
		if err != nil {
			t.Fatalf("NewBVH failed: %v", err)
		}
		if math.Abs(bvh.Area()-6) > 1e-12 {
			t.Fatalf("Expected total area 6, got %f", bvh.Area())
		}

		const count = 60000
		sampler := core.NewSeededSampler(11)
		indicators := make([][]float64, len(areas))
		for i := range indicators {
			indicators[i] = make([]float64, count)
		}

		for n := 0; n < count; n++ {
			s, ok := bvh.Sample(sampler)
			if !ok {
				t.Fatal("Sampling failed")
			}
			which := int(s.Point.X / 10)
			indicators[which][n] = 1

			// Exact per-call densities
			if s.PDF != 1.0/prims[which].Area() {
				t.Fatalf("Expected pdf %f, got %f", 1.0/prims[which].Area(), s.PDF)
			}
			if math.Abs(s.AreaPDF()-1.0/6) > 1e-12 {
				t.Fatalf("Expected area pdf 1/6, got %f", s.AreaPDF())
			}
		}

		for i, area := range areas {
			mean, std := stat.MeanStdDev(indicators[i], nil)
			stdErr := std / math.Sqrt(count)
			expected := area / 6
			if math.Abs(mean-expected) > 5*stdErr {
				t.Errorf("%s: triangle %d sampled with frequency %f, expected %f (stderr %f)", method, i, mean, expected, stdErr)
			}
		}
	}
}

func TestBVH_SampleSkipsZeroArea(t *testing.T) {
	mat := material.NewEmissive(core.NewVec3(1, 1, 1))
	degenerate := NewTriangle(core.NewVec3(0, 0, 0), core.NewVec3(1, 0, 0), core.NewVec3(2, 0, 0), mat)
	lit := NewTriangle(core.NewVec3(5, 0, 0), core.NewVec3(6, 0, 0), core.NewVec3(5, 1, 0), mat)

	bvh, err := NewBVH([]Primitive{degenerate, lit}, DefaultBVHOptions())
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}
	sampler := core.NewSeededSampler(3)
	for i := 0; i < 200; i++ {
		s, ok := bvh.Sample(sampler)
		if !ok || s.Point.X < 5 {
			t.Fatalf("Expected samples only on the non-degenerate triangle, got %v", s.Point)
		}
	}

	zero, err := NewBVH([]Primitive{degenerate}, DefaultBVHOptions())
	if err != nil {
		t.Fatalf("NewBVH failed: %v", err)
	}
	if _, ok := zero.Sample(sampler); ok {
		t.Error("Expected sampling a zero-area tree to fail")
	}
}

func TestParseSplitMethod(t *testing.T) {
	tests := []struct {
		input    string
		expected SplitMethod
		wantErr  bool
	}{
		{"middle", SplitMiddle, false},
		{"naive", SplitMiddle, false},
		{"SAH", SplitSAH, false},
		{"hlbvh", SplitMiddle, true},
	}

	for _, tt := range tests {
		got, err := ParseSplitMethod(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseSplitMethod(%q) error = %v", tt.input, err)
		}
		if got != tt.expected {
			t.Errorf("ParseSplitMethod(%q) = %v, expected %v", tt.input, got, tt.expected)
		}
	}
}
