package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// CornellLightEmission is the radiance of the Cornell box ceiling light: a
// sum of three blackbody-like spectral peaks folded into RGB
var CornellLightEmission = core.NewVec3(0.747+0.058, 0.747+0.258, 0.747).Multiply(8.0).
	Add(core.NewVec3(0.740+0.287, 0.740+0.160, 0.740).Multiply(15.6)).
	Add(core.NewVec3(0.737+0.642, 0.737+0.159, 0.737).Multiply(18.4))

// CornellCamera looks into the open side of the box
var CornellCamera = CameraConfig{Eye: core.NewVec3(278, 273, -800), FOV: 40}

type quadCorners [4]core.Vec3

var (
	cornellFloor = quadCorners{
		core.NewVec3(552.8, 0, 0), core.NewVec3(0, 0, 0), core.NewVec3(0, 0, 559.2), core.NewVec3(549.6, 0, 559.2),
	}
	cornellCeiling = quadCorners{
		core.NewVec3(556, 548.8, 0), core.NewVec3(556, 548.8, 559.2), core.NewVec3(0, 548.8, 559.2), core.NewVec3(0, 548.8, 0),
	}
	cornellBackWall = quadCorners{
		core.NewVec3(549.6, 0, 559.2), core.NewVec3(0, 0, 559.2), core.NewVec3(0, 548.8, 559.2), core.NewVec3(556, 548.8, 559.2),
	}
	// Seen from the camera x runs right to left, so x=0 is the right wall
	cornellRightWall = quadCorners{
		core.NewVec3(0, 0, 559.2), core.NewVec3(0, 0, 0), core.NewVec3(0, 548.8, 0), core.NewVec3(0, 548.8, 559.2),
	}
	cornellLeftWall = quadCorners{
		core.NewVec3(552.8, 0, 0), core.NewVec3(549.6, 0, 559.2), core.NewVec3(556, 548.8, 559.2), core.NewVec3(556, 548.8, 0),
	}
	// Winds so the normal faces down into the box
	cornellLight = quadCorners{
		core.NewVec3(343, 548.7, 227), core.NewVec3(343, 548.7, 332), core.NewVec3(213, 548.7, 332), core.NewVec3(213, 548.7, 227),
	}

	cornellShortBlock = []quadCorners{
		{core.NewVec3(130, 165, 65), core.NewVec3(82, 165, 225), core.NewVec3(240, 165, 272), core.NewVec3(290, 165, 114)},
		{core.NewVec3(290, 0, 114), core.NewVec3(290, 165, 114), core.NewVec3(240, 165, 272), core.NewVec3(240, 0, 272)},
		{core.NewVec3(130, 0, 65), core.NewVec3(130, 165, 65), core.NewVec3(290, 165, 114), core.NewVec3(290, 0, 114)},
		{core.NewVec3(82, 0, 225), core.NewVec3(82, 165, 225), core.NewVec3(130, 165, 65), core.NewVec3(130, 0, 65)},
		{core.NewVec3(240, 0, 272), core.NewVec3(240, 165, 272), core.NewVec3(82, 165, 225), core.NewVec3(82, 0, 225)},
	}
	cornellTallBlock = []quadCorners{
		{core.NewVec3(423, 330, 247), core.NewVec3(265, 330, 296), core.NewVec3(314, 330, 456), core.NewVec3(472, 330, 406)},
		{core.NewVec3(423, 0, 247), core.NewVec3(423, 330, 247), core.NewVec3(472, 330, 406), core.NewVec3(472, 0, 406)},
		{core.NewVec3(472, 0, 406), core.NewVec3(472, 330, 406), core.NewVec3(314, 330, 456), core.NewVec3(314, 0, 456)},
		{core.NewVec3(314, 0, 456), core.NewVec3(314, 330, 456), core.NewVec3(265, 330, 296), core.NewVec3(265, 0, 296)},
		{core.NewVec3(265, 0, 296), core.NewVec3(265, 330, 296), core.NewVec3(423, 330, 247), core.NewVec3(423, 0, 247)},
	}
)

// quadsMesh merges a list of quads into one mesh
func quadsMesh(quads []quadCorners, mat material.Material, options geometry.BVHOptions) (*geometry.TriangleMesh, error) {
	vertices := make([]core.Vec3, 0, 4*len(quads))
	faces := make([]int, 0, 6*len(quads))
	for _, q := range quads {
		base := len(vertices)
		vertices = append(vertices, q[0], q[1], q[2], q[3])
		faces = append(faces, base, base+1, base+2, base, base+2, base+3)
	}
	return geometry.NewTriangleMesh(vertices, faces, mat, &geometry.TriangleMeshOptions{BVH: &options})
}

// NewCornellScene creates the classic Cornell box: white floor, ceiling and
// back wall, red and green side walls, two white blocks and a ceiling light
func NewCornellScene(options Options) (*Scene, error) {
	red := material.NewLambertian(core.NewVec3(0.63, 0.065, 0.05))
	green := material.NewLambertian(core.NewVec3(0.14, 0.45, 0.091))
	white := material.NewLambertian(core.NewVec3(0.725, 0.71, 0.68))
	light := material.NewEmissive(CornellLightEmission)

	parts := []struct {
		name  string
		quads []quadCorners
		mat   material.Material
	}{
		{"floor", []quadCorners{cornellFloor}, white},
		{"ceiling", []quadCorners{cornellCeiling}, white},
		{"back wall", []quadCorners{cornellBackWall}, white},
		{"short block", cornellShortBlock, white},
		{"tall block", cornellTallBlock, white},
		{"left wall", []quadCorners{cornellLeftWall}, red},
		{"right wall", []quadCorners{cornellRightWall}, green},
		{"light", []quadCorners{cornellLight}, light},
	}

	prims := make([]geometry.Primitive, 0, len(parts)+len(options.Extra))
	for _, part := range parts {
		mesh, err := quadsMesh(part.quads, part.mat, options.BVH)
		if err != nil {
			return nil, wrapPart(part.name, err)
		}
		prims = append(prims, mesh)
	}
	prims = append(prims, options.Extra...)

	return NewScene("cornell", CornellCamera, prims, options.BVH)
}
