// Package snapshot rasterizes a game frame to an image, for headless runs and tests.
package snapshot

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"slicecraft/internal/game"
	"slicecraft/internal/meshing"
	"slicecraft/internal/palette"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options sizes the output: Columns x Rows blocks of BlockPixels each.
// Zero Columns or Rows default to the frame's slice size.
type Options struct {
	Columns     int
	Rows        int
	BlockPixels int
	Label       bool
}

// Render draws f with y pointing up: block row 0 is the bottom pixel row
func Render(f game.Frame, o Options) *image.RGBA {
	if o.Columns == 0 {
		o.Columns = f.Width
	}
	if o.Rows == 0 {
		o.Rows = f.Height
	}
	bp := o.BlockPixels
	img := image.NewRGBA(image.Rect(0, 0, o.Columns*bp, o.Rows*bp))
	draw.Draw(img, img.Bounds(), image.NewUniform(palette.Sky), image.Point{}, draw.Src)

	for _, r := range meshing.GreedyRects(f.Interior, o.Columns, o.Rows) {
		fill(img, pixelRect(r, o), palette.Backfill)
	}
	for _, r := range meshing.GreedyRects(f.Blocks, o.Columns, o.Rows) {
		fill(img, pixelRect(r, o), palette.Block(r.Type))
	}

	pos := f.Player.Position
	minX := pos.X() - f.Player.Width/2
	maxY := pos.Y() + f.Player.Height
	pr := image.Rect(
		int(math.Round(minX*float64(bp))),
		int(math.Round((float64(o.Rows)-maxY)*float64(bp))),
		int(math.Round((minX+f.Player.Width)*float64(bp))),
		int(math.Round((float64(o.Rows)-pos.Y())*float64(bp))),
	)
	fill(img, pr, palette.Player)

	if o.Label && f.Label != "" {
		DrawLabel(img, f.Label, 4, 4)
	}
	return img
}

func pixelRect(r meshing.Rect, o Options) image.Rectangle {
	bp := o.BlockPixels
	top := (o.Rows - r.Y - r.H) * bp
	return image.Rect(r.X*bp, top, (r.X+r.W)*bp, top+r.H*bp)
}

func fill(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	if c.A == 0 {
		return
	}
	op := draw.Over
	if c.A == 0xff {
		op = draw.Src
	}
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, op)
}

// LabelSize returns the pixel size DrawLabel needs for text
func LabelSize(text string) image.Point {
	face := basicfont.Face7x13
	d := font.Drawer{Face: face}
	m := face.Metrics()
	return image.Point{X: d.MeasureString(text).Ceil(), Y: (m.Ascent + m.Descent).Ceil()}
}

// DrawLabel writes one line of text with its top-left corner at (x, y)
func DrawLabel(img draw.Image, text string, x, y int) {
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(palette.Label),
		Face: face,
		Dot:  fixed.P(x, y+face.Metrics().Ascent.Ceil()),
	}
	d.DrawString(text)
}

// WritePNG encodes img as PNG
func WritePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}
