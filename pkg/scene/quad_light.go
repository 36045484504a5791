package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// Quad light scene layout
const (
	QuadLightHeight   = 2.0
	QuadLightSize     = 1.0
	QuadReceiverSize  = 10.0
	QuadLightRadiance = 10.0
)

// QuadLightAlbedo is the reflectance of the receiver under the quad light
var QuadLightAlbedo = core.NewVec3(0.5, 0.5, 0.5)

// NewQuadLightScene creates a unit square light facing down, QuadLightHeight
// above the center of a large diffuse floor at y=0. The scene is small
// enough to reason about by hand.
func NewQuadLightScene(options Options) (*Scene, error) {
	floorMat := material.NewLambertian(QuadLightAlbedo)
	lightMat := material.NewEmissive(core.NewVec3(QuadLightRadiance, QuadLightRadiance, QuadLightRadiance))

	half := QuadReceiverSize / 2
	// (size,0,0) × (0,0,-size) points up
	floor, err := geometry.NewQuad(
		core.NewVec3(-half, 0, half),
		core.NewVec3(QuadReceiverSize, 0, 0),
		core.NewVec3(0, 0, -QuadReceiverSize),
		floorMat,
	)
	if err != nil {
		return nil, wrapPart("floor", err)
	}

	// (size,0,0) × (0,0,size) points down
	lightHalf := QuadLightSize / 2
	light, err := geometry.NewQuad(
		core.NewVec3(-lightHalf, QuadLightHeight, -lightHalf),
		core.NewVec3(QuadLightSize, 0, 0),
		core.NewVec3(0, 0, QuadLightSize),
		lightMat,
	)
	if err != nil {
		return nil, wrapPart("light", err)
	}

	prims := append([]geometry.Primitive{floor, light}, options.Extra...)
	camera := CameraConfig{Eye: core.NewVec3(0, 1, -6), FOV: 60}
	return NewScene("quad-light", camera, prims, options.BVH)
}
