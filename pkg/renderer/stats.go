package renderer

import (
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// RenderStats contains statistics about a finished render
type RenderStats struct {
	Width           int
	Height          int
	SamplesPerPixel int
	TotalSamples    int64 // Camera paths traced
	Bands           int
	Workers         int
	Duration        time.Duration

	MeanLuminance   float64
	StdDevLuminance float64
	MaxLuminance    float64
	BlackPixels     int // Pixels that received no light
}

// SamplesPerSecond returns the camera path throughput
func (s RenderStats) SamplesPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.TotalSamples) / s.Duration.Seconds()
}

// addImageStats fills in the luminance statistics of the framebuffer
func (s *RenderStats) addImageStats(fb *Framebuffer) {
	luminances := fb.Luminances()
	if len(luminances) == 0 {
		return
	}

	s.MeanLuminance, s.StdDevLuminance = stat.MeanStdDev(luminances, nil)
	s.MaxLuminance = floats.Max(luminances)
	s.BlackPixels = 0
	for _, l := range luminances {
		if l == 0 {
			s.BlackPixels++
		}
	}
}

// ImageStats computes the luminance statistics of a framebuffer
func ImageStats(fb *Framebuffer) RenderStats {
	stats := RenderStats{Width: fb.Width, Height: fb.Height}
	stats.addImageStats(fb)
	return stats
}
