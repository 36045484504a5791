package main

import (
	"os"

	"github.com/df07/go-pathtracer/cmd"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/urfave/cli"
)

func sceneFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   "scene, s",
			Value:  "cornell",
			Usage:  "built-in scene to use when no scene argument is given",
			EnvVar: "PATHTRACER_SCENE",
		},
		cli.StringFlag{
			Name:   "mesh",
			Usage:  "model file (.obj, .ply, .gltf, .glb) for the mesh scene",
			EnvVar: "PATHTRACER_MESH",
		},
		cli.IntFlag{
			Name:   "leaf-size",
			Value:  1,
			Usage:  "maximum primitives per BVH leaf",
			EnvVar: "PATHTRACER_LEAF_SIZE",
		},
	}
}

func newApp() *cli.App {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "pathtracer"
	app.Usage = "render triangle scenes with Monte Carlo path tracing"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}

	renderFlags := append(sceneFlags(),
		cli.StringFlag{
			Name:   "split",
			Value:  "middle",
			Usage:  "BVH split method: middle or sah",
			EnvVar: "PATHTRACER_SPLIT",
		},
		cli.IntFlag{
			Name:   "width",
			Value:  784,
			Usage:  "frame width",
			EnvVar: "PATHTRACER_WIDTH",
		},
		cli.IntFlag{
			Name:   "height",
			Value:  784,
			Usage:  "frame height",
			EnvVar: "PATHTRACER_HEIGHT",
		},
		cli.IntFlag{
			Name:   "spp",
			Value:  16,
			Usage:  "samples per pixel",
			EnvVar: "PATHTRACER_SPP",
		},
		cli.Float64Flag{
			Name:   "fov",
			Usage:  "vertical field of view in degrees (default: the scene's)",
			EnvVar: "PATHTRACER_FOV",
		},
		cli.StringFlag{
			Name:   "eye",
			Usage:  "camera position as x,y,z (default: the scene's)",
			EnvVar: "PATHTRACER_EYE",
		},
		cli.Float64Flag{
			Name:   "rr",
			Value:  0.8,
			Usage:  "Russian roulette continuation probability",
			EnvVar: "PATHTRACER_RR",
		},
		cli.IntFlag{
			Name:   "max-depth",
			Value:  50,
			Usage:  "path depth ceiling (0 for none)",
			EnvVar: "PATHTRACER_MAX_DEPTH",
		},
		cli.Float64Flag{
			Name:   "light-epsilon",
			Value:  0.005,
			Usage:  "distance slack for the light visibility test",
			EnvVar: "PATHTRACER_LIGHT_EPSILON",
		},
		cli.Int64Flag{
			Name:   "seed",
			Value:  1,
			Usage:  "random seed",
			EnvVar: "PATHTRACER_SEED",
		},
		cli.IntFlag{
			Name:   "workers, w",
			Usage:  "parallel workers (default: one per CPU)",
			EnvVar: "PATHTRACER_WORKERS",
		},
		cli.IntFlag{
			Name:   "band-height",
			Value:  8,
			Usage:  "image rows per work unit",
			EnvVar: "PATHTRACER_BAND_HEIGHT",
		},
		cli.BoolFlag{
			Name:   "jitter",
			Usage:  "sample random points inside each pixel instead of its center",
			EnvVar: "PATHTRACER_JITTER",
		},
		cli.StringFlag{
			Name:   "out, o",
			Value:  "binary.ppm",
			Usage:  "image filename for the rendered frame",
			EnvVar: "PATHTRACER_OUT",
		},
		cli.StringFlag{
			Name:   "format",
			Usage:  "output format: ppm or png (default: from the file extension)",
			EnvVar: "PATHTRACER_FORMAT",
		},
		cli.StringFlag{
			Name:  "reference",
			Usage: "image to compare the render against",
		},
	)

	app.Commands = []cli.Command{
		{
			Name:  "render",
			Usage: "render a scene",
			Description: `
Render a built-in scene with unidirectional path tracing. Every bounce takes
one area-light sample and continues with probability --rr. The frame is
written as a binary PPM or a PNG.`,
			ArgsUsage: "[scene]",
			Flags:     renderFlags,
			Action:    cmd.RenderFrame,
		},
		{
			Name:   "scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:      "bvh-stats",
			Usage:     "compare BVH split methods on a scene",
			ArgsUsage: "[scene]",
			Flags: append(sceneFlags(),
				cli.IntFlag{
					Name:  "rays",
					Value: 100000,
					Usage: "primary rays to trace for the throughput probe",
				},
			),
			Action: cmd.BVHStats,
		},
		{
			Name:  "serve",
			Usage: "serve the render API over HTTP",
			Description: `
Endpoints: /api/health, /api/scenes, /api/render (PNG) and /api/inspect
(JSON description of the surface under a pixel).`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:   "port, p",
					Value:  8080,
					Usage:  "port to serve on",
					EnvVar: "PATHTRACER_PORT",
				},
			},
			Action: cmd.Serve,
		},
	}
	return app
}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		log.New("pathtracer").Error(err)
		os.Exit(1)
	}
}
