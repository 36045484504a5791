package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/urfave/cli"
)

// parseVec3 parses "x,y,z"
func parseVec3(value string) (core.Vec3, error) {
	parts := strings.Split(value, ",")
	if len(parts) != 3 {
		return core.Vec3{}, fmt.Errorf("expected x,y,z, got %q", value)
	}

	var xyz [3]float64
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return core.Vec3{}, fmt.Errorf("bad coordinate %q: %w", part, err)
		}
		xyz[i] = v
	}
	return core.NewVec3(xyz[0], xyz[1], xyz[2]), nil
}

// sceneOptions reads the scene and BVH flags
func sceneOptions(ctx *cli.Context) (scene.Options, error) {
	method, err := geometry.ParseSplitMethod(ctx.String("split"))
	if err != nil {
		return scene.Options{}, err
	}

	options := scene.DefaultOptions()
	options.BVH = geometry.BVHOptions{
		MaxPrimsInNode: ctx.Int("leaf-size"),
		SplitMethod:    method,
	}
	options.MeshPath = ctx.String("mesh")
	return options, nil
}

// sceneName returns the first argument, falling back to the --scene flag
func sceneName(ctx *cli.Context) string {
	if ctx.NArg() > 0 {
		return ctx.Args().First()
	}
	return ctx.String("scene")
}

// loadScene builds the selected scene and applies camera overrides
func loadScene(ctx *cli.Context) (*scene.Scene, error) {
	options, err := sceneOptions(ctx)
	if err != nil {
		return nil, err
	}

	sc, err := scene.Build(sceneName(ctx), options)
	if err != nil {
		return nil, err
	}

	if eye := ctx.String("eye"); eye != "" {
		sc.Camera.Eye, err = parseVec3(eye)
		if err != nil {
			return nil, fmt.Errorf("--eye: %w", err)
		}
	}
	if fov := ctx.Float64("fov"); fov > 0 {
		sc.Camera.FOV = fov
	}
	return sc, nil
}
