package geometry

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// sahBuckets is the number of centroid buckets evaluated per split
const sahBuckets = 12

type sahBucket struct {
	count  int
	bounds core.AABB
}

// partitionSAH partitions prims in place at the bucket boundary with the
// lowest surface area cost along axis and returns the split index. ok is
// false when the centroids do not spread along axis or every candidate
// boundary leaves one side empty.
func partitionSAH(prims []Primitive, centroidBounds core.AABB, axis int) (int, bool) {
	if centroidBounds.Diagonal().Axis(axis) <= 0 {
		return 0, false
	}

	bucketIndex := func(p Primitive) int {
		b := int(sahBuckets * centroidBounds.Offset(p.BoundingBox().Centroid()).Axis(axis))
		if b >= sahBuckets {
			b = sahBuckets - 1
		}
		if b < 0 {
			b = 0
		}
		return b
	}

	var buckets [sahBuckets]sahBucket
	for i := range buckets {
		buckets[i].bounds = core.EmptyAABB()
	}
	for _, p := range prims {
		b := bucketIndex(p)
		buckets[b].count++
		buckets[b].bounds = buckets[b].bounds.Union(p.BoundingBox())
	}

	best := -1
	bestCost := math.Inf(1)
	for split := 0; split < sahBuckets-1; split++ {
		left, right := core.EmptyAABB(), core.EmptyAABB()
		leftCount, rightCount := 0, 0
		for i := 0; i <= split; i++ {
			left = left.Union(buckets[i].bounds)
			leftCount += buckets[i].count
		}
		for i := split + 1; i < sahBuckets; i++ {
			right = right.Union(buckets[i].bounds)
			rightCount += buckets[i].count
		}
		if leftCount == 0 || rightCount == 0 {
			continue
		}

		cost := float64(leftCount)*left.SurfaceArea() + float64(rightCount)*right.SurfaceArea()
		if cost < bestCost {
			bestCost = cost
			best = split
		}
	}
	if best < 0 {
		return 0, false
	}

	mid := 0
	for i := range prims {
		if bucketIndex(prims[i]) <= best {
			prims[i], prims[mid] = prims[mid], prims[i]
			mid++
		}
	}
	return mid, mid > 0 && mid < len(prims)
}
