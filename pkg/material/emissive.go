package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Emissive represents a light-emitting material
type Emissive struct {
	Emit core.Vec3 // Emitted radiance
}

// NewEmissive creates a new emissive material
func NewEmissive(emission core.Vec3) *Emissive {
	return &Emissive{Emit: emission}
}

// HasEmission reports true unless the emission is black
func (e *Emissive) HasEmission() bool {
	return !e.Emit.IsZero()
}

// Emission returns the emitted radiance
func (e *Emissive) Emission() core.Vec3 {
	return e.Emit
}

// Eval returns zero: lights don't reflect, they only emit
func (e *Emissive) Eval(wo, wi, normal core.Vec3) core.Vec3 {
	return core.Vec3{}
}

// Sample returns the normal; the path ends at an emitter before it is used
func (e *Emissive) Sample(wo, normal core.Vec3, sampler core.Sampler) core.Vec3 {
	return normal
}

// PDF is zero since emissive materials don't scatter
func (e *Emissive) PDF(wo, wi, normal core.Vec3) float64 {
	return 0
}
