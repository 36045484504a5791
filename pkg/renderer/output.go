package renderer

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
)

// DisplayGamma is the exponent applied to clamped radiance before
// quantizing to 8 bits
const DisplayGamma = 0.6

// Format is an output image encoding
type Format int

const (
	FormatPPM Format = iota // binary P6
	FormatPNG
)

func (f Format) String() string {
	if f == FormatPNG {
		return "png"
	}
	return "ppm"
}

// Extension returns the file extension for the format, including the dot
func (f Format) Extension() string {
	return "." + f.String()
}

// ParseFormat maps "ppm" and "png" to a Format
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimPrefix(name, ".")) {
	case "ppm":
		return FormatPPM, nil
	case "png":
		return FormatPNG, nil
	}
	return FormatPPM, fmt.Errorf("%q: %w", name, ErrUnsupportedFormat)
}

// FormatFromPath picks the format from the file extension
func FormatFromPath(path string) (Format, error) {
	return ParseFormat(filepath.Ext(path))
}

// toByte maps one linear channel to its display value
func toByte(v float64) uint8 {
	return uint8(255 * math.Pow(math.Max(0, math.Min(1, v)), DisplayGamma))
}

// ToImage tone maps the framebuffer into an 8-bit image
func ToImage(fb *Framebuffer) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	for y := 0; y < fb.Height; y++ {
		for x := 0; x < fb.Width; x++ {
			c := fb.At(x, y)
			img.SetRGBA(x, y, color.RGBA{R: toByte(c.X), G: toByte(c.Y), B: toByte(c.Z), A: 255})
		}
	}
	return img
}

// WritePPM writes the framebuffer as a binary P6 PPM
func WritePPM(w io.Writer, fb *Framebuffer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "P6\n%d %d\n255\n", fb.Width, fb.Height); err != nil {
		return err
	}
	for _, c := range fb.Pixels {
		if _, err := bw.Write([]byte{toByte(c.X), toByte(c.Y), toByte(c.Z)}); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WritePNG writes the framebuffer as a PNG
func WritePNG(w io.Writer, fb *Framebuffer) error {
	return png.Encode(w, ToImage(fb))
}

// Encode writes the framebuffer in the given format
func Encode(w io.Writer, fb *Framebuffer, format Format) error {
	switch format {
	case FormatPPM:
		return WritePPM(w, fb)
	case FormatPNG:
		return WritePNG(w, fb)
	}
	return fmt.Errorf("%v: %w", format, ErrUnsupportedFormat)
}

// SaveImage writes the framebuffer to path, creating parent directories
func SaveImage(path string, fb *Framebuffer, format Format) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}
	if err := Encode(file, fb, format); err != nil {
		file.Close()
		return fmt.Errorf("failed to encode %s: %w", format, err)
	}
	return file.Close()
}
