// Package palette holds the flat colors the viewers draw blocks with.
package palette

import (
	"image/color"

	"slicecraft/internal/world"
)

var (
	Sky      = color.RGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xff}
	Backfill = color.RGBA{A: 0xff}
	Player   = color.RGBA{G: 0xff, A: 0xff}
	Label    = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Colors are premultiplied, as color.RGBA requires
var blockColors = map[world.BlockType]color.RGBA{
	world.BlockGrass:  {R: 0x4c, G: 0xaf, B: 0x50, A: 0xff},
	world.BlockDirt:   {R: 0x8b, G: 0x5a, B: 0x2b, A: 0xff},
	world.BlockStone:  {R: 0x80, G: 0x80, B: 0x80, A: 0xff},
	world.BlockWood:   {R: 0x8b, G: 0x45, B: 0x13, A: 0xff},
	world.BlockLeaves: {R: 0x22, G: 0x8b, B: 0x22, A: 0xff},
	world.BlockWater:  {R: 0x13, G: 0x5a, B: 0xa0, A: 0xa0},
	world.BlockPlaced: {R: 0xff, G: 0xa5, B: 0x00, A: 0xff},
}

// Block returns the fill color of t. Air is fully transparent.
func Block(t world.BlockType) color.RGBA {
	return blockColors[t]
}

// Floats converts c to normalized RGBA components for GPU uploads
func Floats(c color.RGBA) [4]float32 {
	return [4]float32{
		float32(c.R) / 255,
		float32(c.G) / 255,
		float32(c.B) / 255,
		float32(c.A) / 255,
	}
}
