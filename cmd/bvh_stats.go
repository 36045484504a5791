package cmd

import (
	"fmt"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// BVHStats builds the selected scene with every split method and reports
// the shape of each tree and its primary ray throughput.
func BVHStats(ctx *cli.Context) error {
	setupLogging(ctx)

	options, err := sceneOptions(ctx)
	if err != nil {
		return err
	}
	name := sceneName(ctx)
	rays := ctx.Int("rays")

	table := tablewriter.NewWriter(ctx.App.Writer)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Split", "Leaf size", "Primitives", "Leaves", "Interior", "Depth", "Build time", "Hit rate", "Rays/s"})

	for _, method := range []geometry.SplitMethod{geometry.SplitMiddle, geometry.SplitSAH} {
		options.BVH.SplitMethod = method
		sc, err := scene.Build(name, options)
		if err != nil {
			return err
		}

		stats := sc.BVH.Stats()
		hitRate, raysPerSecond := traceProbe(sc, rays)
		table.Append([]string{
			method.String(),
			fmt.Sprintf("%d", sc.BVH.Options().MaxPrimsInNode),
			fmt.Sprintf("%d", stats.TotalPrimitives),
			fmt.Sprintf("%d", stats.LeafNodes),
			fmt.Sprintf("%d", stats.InteriorNodes),
			fmt.Sprintf("%d", stats.MaxDepth),
			stats.BuildTime.String(),
			fmt.Sprintf("%02.1f %%", 100*hitRate),
			fmt.Sprintf("%.0f", raysPerSecond),
		})
	}

	table.Render()
	return nil
}

// traceProbe intersects random primary rays against the scene BVH
func traceProbe(sc *scene.Scene, rays int) (hitRate, raysPerSecond float64) {
	if rays <= 0 {
		return 0, 0
	}

	const size = 256
	camera := renderer.NewCamera(sc.Camera, size, size)
	sampler := core.NewSeededSampler(1)

	hits := 0
	start := time.Now()
	for i := 0; i < rays; i++ {
		p := sampler.Get2D()
		if sc.Intersect(camera.GetRay(p.X*size, p.Y*size)).Happened {
			hits++
		}
	}
	elapsed := time.Since(start)

	hitRate = float64(hits) / float64(rays)
	if elapsed > 0 {
		raysPerSecond = float64(rays) / elapsed.Seconds()
	}
	return hitRate, raysPerSecond
}
