package material

import (
	"math"
	"math/rand"
	"testing"

	"github.com/df07/go-pathtracer/pkg/core"
)

func TestLambertian_PDFMatchesSampling(t *testing.T) {
	normal := core.NewVec3(0, 0, 1)
	wo := core.NewVec3(0, 0, 1)
	sampler := core.NewRandomSampler(rand.New(rand.NewSource(42)))

	tests := []struct {
		name     string
		material *Lambertian
		pdf      func(cos float64) float64
	}{
		{
			name:     "Cosine weighted",
			material: NewLambertian(core.NewVec3(0.8, 0.8, 0.8)),
			pdf:      func(cos float64) float64 { return cos / math.Pi },
		},
		{
			name:     "Uniform hemisphere",
			material: NewUniformLambertian(core.NewVec3(0.8, 0.8, 0.8)),
			pdf:      func(cos float64) float64 { return 0.5 / math.Pi },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 100; i++ {
				wi := tt.material.Sample(wo, normal, sampler)
				cos := wi.Dot(normal)
				if cos < 0 {
					t.Fatalf("Sampled direction %v below the surface", wi)
				}
				if cos == 0 {
					continue
				}
				expected := tt.pdf(cos)
				if got := tt.material.PDF(wo, wi, normal); math.Abs(got-expected) > 1e-10 {
					t.Errorf("PDF mismatch: got %f, expected %f", got, expected)
				}
			}
		})
	}
}

func TestLambertian_Eval(t *testing.T) {
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	lambertian := NewLambertian(albedo)
	normal := core.NewVec3(0, 0, 1)
	wo := core.NewVec3(0, 0, 1)

	// BRDF should be albedo/π
	got := lambertian.Eval(wo, core.NewVec3(0.6, 0, 0.8), normal)
	expected := albedo.Multiply(1.0 / math.Pi)
	if got.Subtract(expected).Length() > 1e-12 {
		t.Errorf("BRDF mismatch: got %v, expected %v", got, expected)
	}

	below := lambertian.Eval(wo, core.NewVec3(0, 0, -1), normal)
	if !below.IsZero() {
		t.Errorf("Expected zero BRDF below the surface, got %v", below)
	}
	if pdf := lambertian.PDF(wo, core.NewVec3(0, 0, -1), normal); pdf != 0 {
		t.Errorf("Expected zero pdf below the surface, got %f", pdf)
	}
}

func TestLambertian_EnergyConservation(t *testing.T) {
	// The estimator f·cos/pdf averages to the albedo
	albedo := core.NewVec3(0.5, 0.7, 0.9)
	normal := core.NewVec3(0, 1, 0)
	sampler := core.NewSeededSampler(5)

	for _, m := range []*Lambertian{NewLambertian(albedo), NewUniformLambertian(albedo)} {
		var sum core.Vec3
		const count = 50000
		for i := 0; i < count; i++ {
			wi := m.Sample(normal, normal, sampler)
			pdf := m.PDF(normal, wi, normal)
			if pdf <= 0 {
				continue
			}
			sum = sum.Add(m.Eval(normal, wi, normal).Multiply(wi.Dot(normal) / pdf))
		}
		mean := sum.Multiply(1.0 / count)
		if mean.Subtract(albedo).Length() > 0.02 {
			t.Errorf("Sampling %d: expected reflectance %v, got %v", m.Sampling, albedo, mean)
		}
	}
}
