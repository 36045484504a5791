package renderer

import (
	"fmt"
	"math"

	"github.com/df07/go-pathtracer/pkg/loaders"
	"gonum.org/v1/gonum/floats"
)

// CompareToReference returns the root mean square difference between the
// tone-mapped framebuffer and a reference image, per channel on a 0..1 scale
func CompareToReference(fb *Framebuffer, reference *loaders.ImageData) (float64, error) {
	if fb.Width != reference.Width || fb.Height != reference.Height {
		return 0, fmt.Errorf("rendered %dx%d, reference %dx%d: %w",
			fb.Width, fb.Height, reference.Width, reference.Height, ErrSizeMismatch)
	}

	rendered := make([]float64, 0, 3*len(fb.Pixels))
	expected := make([]float64, 0, 3*len(fb.Pixels))
	for i, c := range fb.Pixels {
		ref := reference.Pixels[i]
		rendered = append(rendered, float64(toByte(c.X))/255, float64(toByte(c.Y))/255, float64(toByte(c.Z))/255)
		expected = append(expected, ref.X, ref.Y, ref.Z)
	}

	return floats.Distance(rendered, expected, 2) / math.Sqrt(float64(len(rendered))), nil
}
