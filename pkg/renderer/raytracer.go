package renderer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/pkg/scene"
)

var logger = log.New("renderer")

// Config contains rendering configuration
type Config struct {
	Width           int
	Height          int
	SamplesPerPixel int  // Number of rays per pixel
	Workers         int  // Parallel workers; 0 uses one per CPU
	BandHeight      int  // Rows per work unit; 0 renders one row per unit
	Seed            int64
	Jitter          bool // Sample random points inside each pixel instead of its center
}

// DefaultConfig returns the settings of the reference renderer
func DefaultConfig() Config {
	return Config{
		Width:           784,
		Height:          784,
		SamplesPerPixel: 16,
		BandHeight:      8,
		Seed:            1,
	}
}

// Raytracer renders a scene into a framebuffer using an integrator
type Raytracer struct {
	scene      *scene.Scene
	integrator integrator.Integrator
	camera     *Camera
	config     Config
	pool       *WorkerPool
}

// NewRaytracer creates a new raytracer
func NewRaytracer(s *scene.Scene, integ integrator.Integrator, config Config) (*Raytracer, error) {
	if config.Width <= 0 || config.Height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", config.Width, config.Height, ErrBadResolution)
	}
	if config.SamplesPerPixel <= 0 {
		return nil, fmt.Errorf("%d: %w", config.SamplesPerPixel, ErrBadSampleCount)
	}
	if config.BandHeight <= 0 {
		config.BandHeight = 1
	}

	return &Raytracer{
		scene:      s,
		integrator: integ,
		camera:     NewCamera(s.Camera, config.Width, config.Height),
		config:     config,
		pool:       NewWorkerPool(config.Workers),
	}, nil
}

// Config returns the render settings
func (rt *Raytracer) Config() Config {
	return rt.config
}

// bandCount returns the number of row bands covering the image
func (rt *Raytracer) bandCount() int {
	return (rt.config.Height + rt.config.BandHeight - 1) / rt.config.BandHeight
}

// bandSeed derives the sampler seed of a band. The result depends only on
// the render seed and the band index, so the image does not depend on the
// number of workers.
func bandSeed(seed int64, band int) int64 {
	return seed*1_000_003 + int64(band)
}

// Render traces SamplesPerPixel paths through every pixel and returns the
// averaged radiance. It stops early with ctx.Err() when ctx is cancelled.
func (rt *Raytracer) Render(ctx context.Context) (*Framebuffer, RenderStats, error) {
	fb, err := NewFramebuffer(rt.config.Width, rt.config.Height)
	if err != nil {
		return nil, RenderStats{}, err
	}

	bands := rt.bandCount()
	progressStep := max(1, bands/10)
	var done atomic.Int64

	logger.Infof("rendering %q at %dx%d, %d spp, %d bands on %d workers",
		rt.scene.Name, rt.config.Width, rt.config.Height, rt.config.SamplesPerPixel, bands, rt.pool.GetNumWorkers())

	start := time.Now()
	err = rt.pool.Run(ctx, bands, func(ctx context.Context, band int) error {
		rt.renderBand(band, fb)

		finished := done.Add(1)
		if finished%int64(progressStep) == 0 || finished == int64(bands) {
			logger.Infof("progress %3.0f%% (%d/%d bands)", 100*float64(finished)/float64(bands), finished, bands)
		}
		return nil
	})
	if err != nil {
		return nil, RenderStats{}, err
	}

	stats := RenderStats{
		Width:           rt.config.Width,
		Height:          rt.config.Height,
		SamplesPerPixel: rt.config.SamplesPerPixel,
		TotalSamples:    int64(rt.config.Width) * int64(rt.config.Height) * int64(rt.config.SamplesPerPixel),
		Bands:           bands,
		Workers:         rt.pool.GetNumWorkers(),
		Duration:        time.Since(start),
	}
	stats.addImageStats(fb)
	return fb, stats, nil
}

// renderBand renders rows [band*BandHeight, (band+1)*BandHeight) with a
// sampler owned by the band. Bands never share rows.
func (rt *Raytracer) renderBand(band int, fb *Framebuffer) {
	sampler := core.NewSeededSampler(bandSeed(rt.config.Seed, band))
	invSpp := 1.0 / float64(rt.config.SamplesPerPixel)

	y0 := band * rt.config.BandHeight
	y1 := min(rt.config.Height, y0+rt.config.BandHeight)
	for j := y0; j < y1; j++ {
		for i := 0; i < rt.config.Width; i++ {
			var colorAccum core.Vec3
			for s := 0; s < rt.config.SamplesPerPixel; s++ {
				colorAccum = colorAccum.Add(rt.integrator.RayColor(rt.pixelRay(i, j, sampler), rt.scene, sampler))
			}
			fb.Set(i, j, colorAccum.Multiply(invSpp))
		}
	}
}

func (rt *Raytracer) pixelRay(i, j int, sampler core.Sampler) core.Ray {
	if !rt.config.Jitter {
		return rt.camera.GetPixelRay(i, j, nil)
	}
	jitter := sampler.Get2D()
	return rt.camera.GetPixelRay(i, j, &jitter)
}
