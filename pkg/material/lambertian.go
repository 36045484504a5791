package material

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
)

// HemisphereSampling selects the direction distribution used by Lambertian.Sample
type HemisphereSampling int

const (
	// CosineWeighted draws directions with density cos(θ)/π
	CosineWeighted HemisphereSampling = iota
	// UniformHemisphere draws directions with density 1/2π
	UniformHemisphere
)

// Lambertian represents a perfectly diffuse material
type Lambertian struct {
	Albedo   core.Vec3 // Diffuse reflectance
	Sampling HemisphereSampling
}

// NewLambertian creates a new lambertian material with cosine-weighted sampling
func NewLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo, Sampling: CosineWeighted}
}

// NewUniformLambertian creates a lambertian material that samples the
// hemisphere uniformly
func NewUniformLambertian(albedo core.Vec3) *Lambertian {
	return &Lambertian{Albedo: albedo, Sampling: UniformHemisphere}
}

// HasEmission implements Material
func (l *Lambertian) HasEmission() bool {
	return false
}

// Emission implements Material
func (l *Lambertian) Emission() core.Vec3 {
	return core.Vec3{}
}

// Eval returns albedo/π above the surface and zero below it
func (l *Lambertian) Eval(wo, wi, normal core.Vec3) core.Vec3 {
	if wi.Dot(normal) <= 0 {
		return core.Vec3{}
	}
	return l.Albedo.Multiply(1.0 / math.Pi)
}

// Sample implements Material
func (l *Lambertian) Sample(wo, normal core.Vec3, sampler core.Sampler) core.Vec3 {
	if l.Sampling == UniformHemisphere {
		return core.SampleUniformHemisphere(normal, sampler.Get2D())
	}
	return core.SampleCosineHemisphere(normal, sampler.Get2D())
}

// PDF implements Material
func (l *Lambertian) PDF(wo, wi, normal core.Vec3) float64 {
	cosTheta := wi.Dot(normal)
	if cosTheta <= 0 {
		return 0
	}
	if l.Sampling == UniformHemisphere {
		return 0.5 / math.Pi
	}
	return cosTheta / math.Pi
}
