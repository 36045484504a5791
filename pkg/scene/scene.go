package scene

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/log"
)

var logger = log.New("scene")

// CameraConfig places the pinhole camera. The camera sits at Eye and looks
// down +Z; FOV is the vertical field of view in degrees.
type CameraConfig struct {
	Eye core.Vec3
	FOV float64
}

// Scene contains all the elements needed for rendering. It has no mutating
// methods and is safe to share between render workers.
type Scene struct {
	Name       string
	Camera     CameraConfig
	Primitives []geometry.Primitive
	BVH        *geometry.BVH // Acceleration structure for ray-object intersection

	// Lights indexes the emissive primitives for area-weighted sampling;
	// nil when nothing emits
	Lights      *geometry.BVH
	EmitAreaSum float64
}

// NewScene builds the intersection BVH over all primitives and the light
// BVH over the emissive ones
func NewScene(name string, camera CameraConfig, prims []geometry.Primitive, options geometry.BVHOptions) (*Scene, error) {
	bvh, err := geometry.NewBVH(prims, options)
	if err != nil {
		return nil, fmt.Errorf("scene %q: %w", name, err)
	}

	var emitters []geometry.Primitive
	emitAreaSum := 0.0
	for _, p := range prims {
		if p.HasEmit() {
			emitters = append(emitters, p)
			emitAreaSum += p.Area()
		}
	}

	s := &Scene{
		Name:        name,
		Camera:      camera,
		Primitives:  prims,
		BVH:         bvh,
		EmitAreaSum: emitAreaSum,
	}
	if len(emitters) > 0 {
		s.Lights, err = geometry.NewBVH(emitters, options)
		if err != nil {
			return nil, fmt.Errorf("scene %q lights: %w", name, err)
		}
	}

	logger.Infof("scene %q: %d primitives (%d triangles), %d emitters with area %.3f",
		name, len(prims), s.GetPrimitiveCount(), len(emitters), emitAreaSum)
	return s, nil
}

// Intersect returns the closest intersection along the ray
func (s *Scene) Intersect(ray core.Ray) geometry.Intersection {
	return s.BVH.Intersect(ray)
}

// IntersectP reports whether anything lies along the ray
func (s *Scene) IntersectP(ray core.Ray) bool {
	return s.BVH.IntersectP(ray)
}

// SampleLight picks a point on the emissive surfaces with probability
// proportional to area. The returned pdf is 1/EmitAreaSum. ok is false when
// the scene has no emitters.
func (s *Scene) SampleLight(sampler core.Sampler) (geometry.SurfaceSample, float64, bool) {
	if s.Lights == nil || s.EmitAreaSum <= 0 {
		return geometry.SurfaceSample{}, 0, false
	}
	sample, ok := s.Lights.Sample(sampler)
	if !ok {
		return geometry.SurfaceSample{}, 0, false
	}
	return sample, 1.0 / s.EmitAreaSum, true
}

// GetPrimitiveCount returns the total number of triangles in the scene
func (s *Scene) GetPrimitiveCount() int {
	count := 0
	for _, p := range s.Primitives {
		switch obj := p.(type) {
		case *geometry.TriangleMesh:
			count += obj.GetTriangleCount()
		default:
			count++
		}
	}
	return count
}
