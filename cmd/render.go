package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/df07/go-pathtracer/pkg/integrator"
	"github.com/df07/go-pathtracer/pkg/loaders"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"
)

// RenderFrame renders a still frame of a built-in scene.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, err := loadScene(ctx)
	if err != nil {
		return err
	}

	out := ctx.String("out")
	format, err := outputFormat(out, ctx.String("format"))
	if err != nil {
		return err
	}

	integratorConfig := integrator.DefaultConfig()
	integratorConfig.RussianRoulette = ctx.Float64("rr")
	integratorConfig.MaxDepth = ctx.Int("max-depth")
	integratorConfig.LightVisibilityEpsilon = ctx.Float64("light-epsilon")
	if integratorConfig.RussianRoulette > 1 {
		logger.Warningf("clamping Russian roulette probability %.2f to 1", integratorConfig.RussianRoulette)
		integratorConfig.RussianRoulette = 1
	}
	if integratorConfig.RussianRoulette <= 0 {
		logger.Notice("Russian roulette disabled; only direct lighting is rendered")
	}

	rt, err := renderer.NewRaytracer(sc, integrator.NewPathTracingIntegrator(integratorConfig), renderer.Config{
		Width:           ctx.Int("width"),
		Height:          ctx.Int("height"),
		SamplesPerPixel: ctx.Int("spp"),
		Workers:         ctx.Int("workers"),
		BandHeight:      ctx.Int("band-height"),
		Seed:            ctx.Int64("seed"),
		Jitter:          ctx.Bool("jitter"),
	})
	if err != nil {
		return err
	}

	renderCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fb, stats, err := rt.Render(renderCtx)
	if err != nil {
		return fmt.Errorf("render aborted: %w", err)
	}

	if err := renderer.SaveImage(out, fb, format); err != nil {
		return err
	}
	logger.Noticef("wrote %s", out)

	displayFrameStats(sc.Name, stats)

	if ref := ctx.String("reference"); ref != "" {
		reference, err := loaders.LoadImage(ref)
		if err != nil {
			return fmt.Errorf("reference image: %w", err)
		}
		rmse, err := renderer.CompareToReference(fb, reference)
		if err != nil {
			return err
		}
		logger.Noticef("RMSE against %s: %.5f", ref, rmse)
	}
	return nil
}

// outputFormat uses the explicit format when given, otherwise the file
// extension, otherwise PPM
func outputFormat(out, name string) (renderer.Format, error) {
	if name != "" {
		return renderer.ParseFormat(name)
	}
	if format, err := renderer.FormatFromPath(out); err == nil {
		return format, nil
	}
	return renderer.FormatPPM, nil
}

func displayFrameStats(sceneName string, stats renderer.RenderStats) {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Scene", "Resolution", "SPP", "Bands", "Workers", "Mean lum.", "Std dev", "Black px", "Samples/s"})
	table.Append([]string{
		sceneName,
		fmt.Sprintf("%dx%d", stats.Width, stats.Height),
		fmt.Sprintf("%d", stats.SamplesPerPixel),
		fmt.Sprintf("%d", stats.Bands),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.4f", stats.MeanLuminance),
		fmt.Sprintf("%.4f", stats.StdDevLuminance),
		fmt.Sprintf("%d", stats.BlackPixels),
		fmt.Sprintf("%.0f", stats.SamplesPerSecond()),
	})
	table.SetFooter([]string{"", "", "", "", "", "", "", "TOTAL", stats.Duration.String()})

	table.Render()
	logger.Noticef("frame statistics\n%s", buf.String())
}
