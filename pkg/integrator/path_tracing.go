package integrator

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// pdfEpsilon rejects samples whose density would blow up the estimate
const pdfEpsilon = 1e-10

// Config holds the tunables of the path tracer
type Config struct {
	// RussianRoulette is the probability of continuing a path past each
	// bounce; surviving contributions are divided by it
	RussianRoulette float64

	// LightVisibilityEpsilon is the slack allowed between the shadow ray
	// hit distance and the distance to the sampled light point
	LightVisibilityEpsilon float64

	// MaxDepth caps the recursion depth; 0 disables the cap
	MaxDepth int

	// RayEpsilon is the TMin of secondary rays, keeping them off the
	// surface they start on
	RayEpsilon float64
}

// DefaultConfig returns the reference settings
func DefaultConfig() Config {
	return Config{
		RussianRoulette:        0.8,
		LightVisibilityEpsilon: 0.005,
		MaxDepth:               50,
		RayEpsilon:             1e-4,
	}
}

// PathTracingIntegrator implements unidirectional path tracing with
// next-event estimation on area lights and Russian roulette termination
type PathTracingIntegrator struct {
	config Config
}

// NewPathTracingIntegrator creates a new path tracing integrator
func NewPathTracingIntegrator(config Config) *PathTracingIntegrator {
	return &PathTracingIntegrator{config: config}
}

// Config returns the integrator settings
func (pt *PathTracingIntegrator) Config() Config {
	return pt.config
}

// RayColor implements Integrator
func (pt *PathTracingIntegrator) RayColor(ray core.Ray, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	return pt.CastRay(ray, scene, sampler, 0)
}

// CastRay returns the radiance arriving at the ray origin from direction
// -ray.Direction. Emitters seen directly return their emission; any other
// surface returns one light sample plus a Russian-roulette continued
// indirect bounce. Misses are black.
func (pt *PathTracingIntegrator) CastRay(ray core.Ray, scene *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	if pt.exceedsDepth(depth) {
		return core.Vec3{}
	}

	hit := scene.Intersect(ray)
	if !hit.Happened || hit.Material == nil {
		return core.Vec3{}
	}
	if hit.Material.HasEmission() {
		return hit.Material.Emission()
	}

	return pt.shade(ray, hit, scene, sampler, depth)
}

func (pt *PathTracingIntegrator) exceedsDepth(depth int) bool {
	return pt.config.MaxDepth > 0 && depth > pt.config.MaxDepth
}

// shade computes the light leaving a non-emissive hit towards the ray origin
func (pt *PathTracingIntegrator) shade(ray core.Ray, hit geometry.Intersection, scene *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	if pt.exceedsDepth(depth) {
		return core.Vec3{}
	}

	wo := ray.Direction.Negate()
	direct := pt.directLight(hit, wo, scene, sampler)
	indirect := pt.indirectLight(hit, wo, scene, sampler, depth)
	return direct.Add(indirect)
}

// directLight samples one point on the emitters and returns its unoccluded
// contribution
func (pt *PathTracingIntegrator) directLight(hit geometry.Intersection, wo core.Vec3, scene *scene.Scene, sampler core.Sampler) core.Vec3 {
	light, pdf, ok := scene.SampleLight(sampler)
	if !ok || pdf <= pdfEpsilon {
		return core.Vec3{}
	}

	toLight := light.Point.Subtract(hit.Point)
	distance2 := toLight.LengthSquared()
	if distance2 <= pdfEpsilon {
		return core.Vec3{}
	}
	distance := math.Sqrt(distance2)
	wi := toLight.Multiply(1.0 / distance)

	cosSurface := wi.Dot(hit.Normal)
	cosLight := wi.Negate().Dot(light.Normal)
	if cosSurface <= 0 || cosLight <= 0 {
		return core.Vec3{}
	}

	// Visible when the first thing along wi is (about) the light point itself
	shadow := scene.Intersect(core.NewRaySegment(hit.Point, wi, pt.config.RayEpsilon, math.Inf(1)))
	if !shadow.Happened || shadow.Distance-distance <= -pt.config.LightVisibilityEpsilon {
		return core.Vec3{}
	}

	f := hit.Material.Eval(wo, wi, hit.Normal)
	return light.Emission.MultiplyVec(f).Multiply(cosSurface * cosLight / distance2 / pdf)
}

// indirectLight continues the path through a material-sampled direction.
// Paths that reach an emitter contribute nothing here; that light was
// already counted by directLight.
func (pt *PathTracingIntegrator) indirectLight(hit geometry.Intersection, wo core.Vec3, scene *scene.Scene, sampler core.Sampler, depth int) core.Vec3 {
	rr := pt.config.RussianRoulette
	if rr <= 0 || sampler.Get1D() > rr {
		return core.Vec3{}
	}

	wi := hit.Material.Sample(wo, hit.Normal, sampler)
	pdf := hit.Material.PDF(wo, wi, hit.Normal)
	if pdf <= pdfEpsilon {
		return core.Vec3{}
	}
	cosSurface := wi.Dot(hit.Normal)
	if cosSurface <= 0 {
		return core.Vec3{}
	}

	next := core.NewRaySegment(hit.Point, wi, pt.config.RayEpsilon, math.Inf(1))
	nextHit := scene.Intersect(next)
	if !nextHit.Happened || nextHit.Material == nil || nextHit.Material.HasEmission() {
		return core.Vec3{}
	}

	f := hit.Material.Eval(wo, wi, hit.Normal)
	incoming := pt.shade(next, nextHit, scene, sampler, depth+1)
	return incoming.MultiplyVec(f).Multiply(cosSurface / pdf / rr)
}
