package renderer

import (
	"fmt"

	"github.com/df07/go-pathtracer/pkg/core"
)

// Framebuffer holds linear radiance per pixel in row-major order, top row
// first
type Framebuffer struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// NewFramebuffer allocates a black width x height framebuffer
func NewFramebuffer(width, height int) (*Framebuffer, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%dx%d: %w", width, height, ErrBadResolution)
	}
	return &Framebuffer{
		Width:  width,
		Height: height,
		Pixels: make([]core.Vec3, width*height),
	}, nil
}

// At returns the radiance stored for pixel (x, y)
func (fb *Framebuffer) At(x, y int) core.Vec3 {
	return fb.Pixels[y*fb.Width+x]
}

// Set stores the radiance for pixel (x, y). Distinct rows may be written
// from different goroutines.
func (fb *Framebuffer) Set(x, y int, c core.Vec3) {
	fb.Pixels[y*fb.Width+x] = c
}

// Luminances returns the luminance of every pixel
func (fb *Framebuffer) Luminances() []float64 {
	values := make([]float64, len(fb.Pixels))
	for i, p := range fb.Pixels {
		values[i] = p.Luminance()
	}
	return values
}
