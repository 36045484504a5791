package material

import (
	"github.com/df07/go-pathtracer/pkg/core"
)

// Material describes how a surface emits and reflects light.
//
// Direction convention: wo points from the surface towards the viewer and
// wi points from the surface towards the light; normal is the unit shading
// normal on the viewer's side.
type Material interface {
	// HasEmission reports whether the surface is a light source
	HasEmission() bool

	// Emission returns the emitted radiance
	Emission() core.Vec3

	// Eval evaluates the BRDF for the pair of directions
	Eval(wo, wi, normal core.Vec3) core.Vec3

	// Sample draws an incoming direction wi from the material's importance
	// distribution
	Sample(wo, normal core.Vec3, sampler core.Sampler) core.Vec3

	// PDF returns the solid-angle density with which Sample produces wi
	PDF(wo, wi, normal core.Vec3) float64
}
