package scene

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// NewBoxesScene places a grid of rotated boxes on a floor under two area
// lights of different size. It exercises mesh primitives, multiple
// emitters and a deeper BVH.
func NewBoxesScene(options Options) (*Scene, error) {
	floorMat := material.NewLambertian(core.NewVec3(0.7, 0.7, 0.7))
	prims := make([]geometry.Primitive, 0, 32)

	floor, err := geometry.NewQuad(core.NewVec3(-20, 0, 20), core.NewVec3(40, 0, 0), core.NewVec3(0, 0, -40), floorMat)
	if err != nil {
		return nil, wrapPart("floor", err)
	}
	prims = append(prims, floor)

	const grid = 5
	for i := 0; i < grid; i++ {
		for j := 0; j < grid; j++ {
			t := float64(i*grid+j) / float64(grid*grid)
			albedo := core.NewVec3(0.2+0.6*t, 0.3+0.4*float64(i)/grid, 0.8-0.6*t)
			height := 0.5 + 1.5*math.Abs(math.Sin(float64(i*7+j*3)))
			center := core.NewVec3(float64(i-grid/2)*3, height, float64(j-grid/2)*3+4)
			box, err := geometry.NewBox(
				center,
				core.NewVec3(0.8, height, 0.8),
				core.NewVec3(0, float64(i+j)*0.3, 0),
				material.NewLambertian(albedo),
			)
			if err != nil {
				return nil, wrapPart("box", err)
			}
			prims = append(prims, box)
		}
	}

	// (s,0,0) × (0,0,s) points down
	lights := []struct {
		corner   core.Vec3
		size     float64
		emission core.Vec3
	}{
		{core.NewVec3(-6, 10, 0), 3, core.NewVec3(12, 11, 9)},
		{core.NewVec3(5, 8, 6), 1.5, core.NewVec3(20, 24, 30)},
	}
	for _, l := range lights {
		light, err := geometry.NewQuad(l.corner, core.NewVec3(l.size, 0, 0), core.NewVec3(0, 0, l.size), material.NewEmissive(l.emission))
		if err != nil {
			return nil, wrapPart("light", err)
		}
		prims = append(prims, light)
	}

	prims = append(prims, options.Extra...)
	camera := CameraConfig{Eye: core.NewVec3(0, 6, -14), FOV: 50}
	return NewScene("boxes", camera, prims, options.BVH)
}
