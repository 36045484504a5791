package renderer

import (
	"math"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Camera generates primary rays for a pinhole camera looking down +Z.
// Image x runs towards -X in world space, so the Cornell box reads with the
// red wall on the left.
type Camera struct {
	origin      core.Vec3
	width       int
	height      int
	scale       float64 // tan(fov/2)
	aspectRatio float64
}

// NewCamera creates a camera for a width x height image
func NewCamera(config scene.CameraConfig, width, height int) *Camera {
	return &Camera{
		origin:      config.Eye,
		width:       width,
		height:      height,
		scale:       math.Tan(config.FOV * math.Pi / 180 * 0.5),
		aspectRatio: float64(width) / float64(height),
	}
}

// GetRay returns the primary ray through the image position (px, py),
// measured in pixels from the top-left corner. Pixel centers are at +0.5.
func (c *Camera) GetRay(px, py float64) core.Ray {
	x := (2*px/float64(c.width) - 1) * c.aspectRatio * c.scale
	y := (1 - 2*py/float64(c.height)) * c.scale
	return core.NewRay(c.origin, core.NewVec3(-x, y, 1))
}

// GetPixelRay returns the ray through the center of pixel (i, j), or through
// a point inside it offset by jitter in [0,1)² when jitter is non-nil
func (c *Camera) GetPixelRay(i, j int, jitter *core.Vec2) core.Ray {
	dx, dy := 0.5, 0.5
	if jitter != nil {
		dx, dy = jitter.X, jitter.Y
	}
	return c.GetRay(float64(i)+dx, float64(j)+dy)
}
