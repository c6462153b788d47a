package graphics

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Camera is an orthographic view of one slice that follows the player in x.
// Units are blocks.
type Camera struct {
	Columns float32
	Rows    float32
	CenterX float32
}

// NewCamera fits a window of the given pixel size at blockPixels per block
func NewCamera(width, height, blockPixels int) *Camera {
	return &Camera{
		Columns: float32(width) / float32(blockPixels),
		Rows:    float32(height) / float32(blockPixels),
	}
}

// Follow centers the view on x without showing past the world edges when the
// world is wider than the view
func (c *Camera) Follow(x float32, worldWidth int) {
	half := c.Columns / 2
	w := float32(worldWidth)
	switch {
	case w <= c.Columns:
		c.CenterX = w / 2
	case x < half:
		c.CenterX = half
	case x > w-half:
		c.CenterX = w - half
	default:
		c.CenterX = x
	}
}

// Projection maps block coordinates to clip space with y=0 at the bottom edge
func (c *Camera) Projection() mgl32.Mat4 {
	half := c.Columns / 2
	return mgl32.Ortho2D(c.CenterX-half, c.CenterX+half, 0, c.Rows)
}
