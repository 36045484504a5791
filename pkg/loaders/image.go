package loaders

import (
	"bufio"
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // JPEG decoder
	_ "image/png"  // PNG decoder
	"io"
	"os"
	"strconv"

	"github.com/df07/go-pathtracer/pkg/core"
)

// ErrBadPPM is returned for malformed or unsupported PPM files
var ErrBadPPM = errors.New("loaders: bad PPM image")

func init() {
	image.RegisterFormat("ppm", "P6", decodePPM, decodePPMConfig)
}

// ImageData contains loaded image data as Vec3 color array, row-major with
// the top row first
type ImageData struct {
	Width  int
	Height int
	Pixels []core.Vec3
}

// LoadImage loads a PNG, JPEG or binary PPM image with channels scaled to [0, 1]
func LoadImage(filename string) (*ImageData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	// Format is detected from the file header
	img, format, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	pixels := make([]core.Vec3, width*height)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := img.At(x+bounds.Min.X, y+bounds.Min.Y).RGBA()
			// RGBA returns uint32 in [0, 65535]
			pixels[y*width+x] = core.NewVec3(
				float64(r)/65535.0,
				float64(g)/65535.0,
				float64(b)/65535.0,
			)
		}
	}

	logger.Debugf("loaded %s image %s (%dx%d)", format, filename, width, height)
	return &ImageData{
		Width:  width,
		Height: height,
		Pixels: pixels,
	}, nil
}

// readPPMHeader parses "P6 <width> <height> <maxval>" and the single
// whitespace byte before the pixel data. Comments run from # to end of line.
func readPPMHeader(r *bufio.Reader) (image.Config, error) {
	var fields [4]string
	for i := range fields {
		token, err := readPPMToken(r)
		if err != nil {
			return image.Config{}, fmt.Errorf("%w: %v", ErrBadPPM, err)
		}
		fields[i] = token
	}
	if fields[0] != "P6" {
		return image.Config{}, fmt.Errorf("%w: magic %q", ErrBadPPM, fields[0])
	}

	width, err1 := strconv.Atoi(fields[1])
	height, err2 := strconv.Atoi(fields[2])
	maxVal, err3 := strconv.Atoi(fields[3])
	if err1 != nil || err2 != nil || err3 != nil || width <= 0 || height <= 0 {
		return image.Config{}, fmt.Errorf("%w: header %v", ErrBadPPM, fields)
	}
	if maxVal != 255 {
		return image.Config{}, fmt.Errorf("%w: only 8-bit images are supported, maxval %d", ErrBadPPM, maxVal)
	}
	return image.Config{ColorModel: color.RGBAModel, Width: width, Height: height}, nil
}

func readPPMToken(r *bufio.Reader) (string, error) {
	var token []byte
	for {
		b, err := r.ReadByte()
		if err != nil {
			if err == io.EOF && len(token) > 0 {
				return string(token), nil
			}
			return "", err
		}
		switch {
		case b == '#' && len(token) == 0:
			if _, err := r.ReadString('\n'); err != nil {
				return "", err
			}
		case b == ' ' || b == '\t' || b == '\n' || b == '\r':
			if len(token) > 0 {
				return string(token), nil
			}
		default:
			token = append(token, b)
		}
	}
}

func decodePPMConfig(r io.Reader) (image.Config, error) {
	return readPPMHeader(bufio.NewReader(r))
}

func decodePPM(r io.Reader) (image.Image, error) {
	br := bufio.NewReader(r)
	config, err := readPPMHeader(br)
	if err != nil {
		return nil, err
	}

	img := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	rgb := make([]byte, 3*config.Width)
	for y := 0; y < config.Height; y++ {
		if _, err := io.ReadFull(br, rgb); err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrBadPPM, y, err)
		}
		for x := 0; x < config.Width; x++ {
			img.SetRGBA(x, y, color.RGBA{R: rgb[3*x], G: rgb[3*x+1], B: rgb[3*x+2], A: 255})
		}
	}
	return img, nil
}
