package geometry

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/log"
)

// ErrNoPrimitives is returned when a BVH is requested for an empty primitive list
var ErrNoPrimitives = errors.New("geometry: no primitives to build a BVH from")

var logger = log.New("bvh")

// SplitMethod selects how an interior node partitions its primitives
type SplitMethod int

const (
	// SplitMiddle sorts by centroid and splits at the median index
	SplitMiddle SplitMethod = iota
	// SplitSAH uses a bucketed surface area heuristic
	SplitSAH
)

func (m SplitMethod) String() string {
	switch m {
	case SplitSAH:
		return "sah"
	default:
		return "middle"
	}
}

// ParseSplitMethod maps "middle" (or "naive") and "sah" to a SplitMethod
func ParseSplitMethod(name string) (SplitMethod, error) {
	switch strings.ToLower(name) {
	case "middle", "naive", "":
		return SplitMiddle, nil
	case "sah":
		return SplitSAH, nil
	}
	return SplitMiddle, fmt.Errorf("geometry: unknown split method %q", name)
}

// BVHOptions controls BVH construction
type BVHOptions struct {
	MaxPrimsInNode int // Leaf size; values below 1 are treated as 1
	SplitMethod    SplitMethod
}

// DefaultBVHOptions returns one primitive per leaf with median splits
func DefaultBVHOptions() BVHOptions {
	return BVHOptions{MaxPrimsInNode: 1, SplitMethod: SplitMiddle}
}

// BVHNode represents a node in the Bounding Volume Hierarchy.
// Area is the summed primitive area below the node; it weights light
// sampling and is unrelated to the surface area of Bounds.
type BVHNode struct {
	Bounds     core.AABB
	Left       *BVHNode
	Right      *BVHNode
	Primitives []Primitive // Leaf nodes only
	Area       float64
	SplitAxis  int
}

// IsLeaf reports whether the node stores primitives directly
func (n *BVHNode) IsLeaf() bool {
	return n.Left == nil && n.Right == nil
}

// BuildStats describes the shape of a built tree
type BuildStats struct {
	LeafNodes       int
	InteriorNodes   int
	TotalPrimitives int
	MaxDepth        int
	BuildTime       time.Duration
}

// BVH represents a Bounding Volume Hierarchy over primitives. It is
// immutable after NewBVH returns and safe for concurrent queries.
type BVH struct {
	Root    *BVHNode
	options BVHOptions
	stats   BuildStats
	parents map[*BVHNode]*BVHNode
}

// bvhBuilder carries the state of a single build
type bvhBuilder struct {
	options BVHOptions
	stats   BuildStats
	parents map[*BVHNode]*BVHNode
}

// NewBVH constructs a BVH from a slice of primitives
func NewBVH(prims []Primitive, options BVHOptions) (*BVH, error) {
	if len(prims) == 0 {
		return nil, ErrNoPrimitives
	}
	if options.MaxPrimsInNode < 1 {
		options.MaxPrimsInNode = 1
	}

	// Make a copy of the slice; the build reorders it
	work := make([]Primitive, len(prims))
	copy(work, prims)

	builder := &bvhBuilder{options: options}
	if recordParents {
		builder.parents = make(map[*BVHNode]*BVHNode)
	}

	start := time.Now()
	root := builder.build(work, 0)
	builder.stats.BuildTime = time.Since(start)

	logger.Debugf(
		"built BVH over %d primitives in %s (%s split, %d leaves, %d interior, depth %d)",
		builder.stats.TotalPrimitives, builder.stats.BuildTime, options.SplitMethod,
		builder.stats.LeafNodes, builder.stats.InteriorNodes, builder.stats.MaxDepth,
	)

	return &BVH{
		Root:    root,
		options: options,
		stats:   builder.stats,
		parents: builder.parents,
	}, nil
}

func (b *bvhBuilder) build(prims []Primitive, depth int) *BVHNode {
	if depth > b.stats.MaxDepth {
		b.stats.MaxDepth = depth
	}

	bounds := core.EmptyAABB()
	centroidBounds := core.EmptyAABB()
	area := 0.0
	for _, p := range prims {
		box := p.BoundingBox()
		bounds = bounds.Union(box)
		centroidBounds = centroidBounds.UnionPoint(box.Centroid())
		area += p.Area()
	}

	if len(prims) <= b.options.MaxPrimsInNode {
		b.stats.LeafNodes++
		b.stats.TotalPrimitives += len(prims)
		return &BVHNode{Bounds: bounds, Primitives: prims, Area: area}
	}

	axis := centroidBounds.LongestAxis()
	mid := -1
	if b.options.SplitMethod == SplitSAH {
		if m, ok := partitionSAH(prims, centroidBounds, axis); ok {
			mid = m
		}
	}
	if mid < 0 {
		sortByCentroid(prims, axis)
		mid = len(prims) / 2
	}

	b.stats.InteriorNodes++
	node := &BVHNode{SplitAxis: axis}
	node.Left = b.build(prims[:mid], depth+1)
	node.Right = b.build(prims[mid:], depth+1)
	node.Bounds = node.Left.Bounds.Union(node.Right.Bounds)
	node.Area = node.Left.Area + node.Right.Area

	if recordParents {
		b.parents[node.Left] = node
		b.parents[node.Right] = node
	}
	return node
}

// sortByCentroid sorts primitives by their bounding box centroid along axis
func sortByCentroid(prims []Primitive, axis int) {
	sort.SliceStable(prims, func(i, j int) bool {
		return prims[i].BoundingBox().Centroid().Axis(axis) < prims[j].BoundingBox().Centroid().Axis(axis)
	})
}

// Intersect returns the closest intersection along the ray
func (bvh *BVH) Intersect(ray core.Ray) Intersection {
	if bvh == nil || bvh.Root == nil {
		return Intersection{}
	}
	return intersectNode(bvh.Root, ray)
}

func intersectNode(node *BVHNode, ray core.Ray) Intersection {
	if !node.Bounds.IntersectP(ray, ray.InvDir, ray.DirIsNeg) {
		return Intersection{}
	}

	if node.IsLeaf() {
		var closest Intersection
		for _, p := range node.Primitives {
			if hit := p.Intersect(ray); hit.Happened && (!closest.Happened || hit.Distance < closest.Distance) {
				closest = hit
				ray = ray.WithTMax(hit.Distance)
			}
		}
		return closest
	}

	left := intersectNode(node.Left, ray)
	if left.Happened {
		ray = ray.WithTMax(left.Distance)
	}
	right := intersectNode(node.Right, ray)
	if right.Happened && (!left.Happened || right.Distance < left.Distance) {
		return right
	}
	return left
}

// IntersectP reports whether the ray hits anything, stopping at the first hit
func (bvh *BVH) IntersectP(ray core.Ray) bool {
	if bvh == nil || bvh.Root == nil {
		return false
	}
	return intersectNodeP(bvh.Root, ray)
}

func intersectNodeP(node *BVHNode, ray core.Ray) bool {
	if !node.Bounds.IntersectP(ray, ray.InvDir, ray.DirIsNeg) {
		return false
	}
	if node.IsLeaf() {
		for _, p := range node.Primitives {
			if p.IntersectP(ray) {
				return true
			}
		}
		return false
	}
	return intersectNodeP(node.Left, ray) || intersectNodeP(node.Right, ray)
}

// Sample draws a point with probability proportional to area over every
// primitive in the tree. The returned SelectionProb is the chosen
// primitive's share of the total area, so AreaPDF is 1/Area(). ok is false
// when the tree has no area to sample.
func (bvh *BVH) Sample(sampler core.Sampler) (SurfaceSample, bool) {
	if bvh == nil || bvh.Root == nil || bvh.Root.Area <= 0 {
		return SurfaceSample{}, false
	}

	v := sampler.Get1D() * bvh.Root.Area
	node := bvh.Root
	for !node.IsLeaf() {
		if v < node.Left.Area {
			node = node.Left
		} else {
			v -= node.Left.Area
			node = node.Right
		}
	}

	prim := node.Primitives[len(node.Primitives)-1]
	for _, p := range node.Primitives {
		if v < p.Area() {
			prim = p
			break
		}
		v -= p.Area()
	}

	s := prim.Sample(sampler)
	s.SelectionProb *= prim.Area() / bvh.Root.Area
	return s, true
}

// Area returns the summed area of all primitives
func (bvh *BVH) Area() float64 {
	if bvh == nil || bvh.Root == nil {
		return 0
	}
	return bvh.Root.Area
}

// BoundingBox returns the bounds of the whole tree
func (bvh *BVH) BoundingBox() core.AABB {
	if bvh == nil || bvh.Root == nil {
		return core.EmptyAABB()
	}
	return bvh.Root.Bounds
}

// Stats returns the statistics gathered while building the tree
func (bvh *BVH) Stats() BuildStats {
	return bvh.stats
}

// Options returns the options the tree was built with
func (bvh *BVH) Options() BVHOptions {
	return bvh.options
}

// Parent returns the parent of node, or nil for the root. Parent links are
// only recorded in builds with the bvhdebug tag; otherwise Parent is always nil.
func (bvh *BVH) Parent(node *BVHNode) *BVHNode {
	if bvh.parents == nil {
		return nil
	}
	return bvh.parents[node]
}
