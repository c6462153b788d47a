package game

import (
	"fmt"

	"slicecraft/internal/player"
	"slicecraft/internal/world"
)

// Frame is what a renderer needs to draw one frame. Renderers make no game decisions.
type Frame struct {
	// Blocks are the non-air cells of the current slice
	Blocks []world.Cell
	// Interior are empty cells under a column top, drawn as solid backfill so
	// caves in the current slice do not show holes through to the background
	Interior []world.Cell
	Player   player.Pose
	Slice    int
	Label    string
	// Width and Height are the slice size in blocks
	Width  int
	Height int
}

// View builds the frame for the player's current slice
func (s *Session) View() Frame {
	slice := s.Player.SliceIndex()
	width, height, _ := s.World.Size()
	return Frame{
		Blocks:   s.World.Slice(slice),
		Interior: interior(s.World, slice),
		Player:   s.Player.Pose(),
		Slice:    slice,
		Label:    s.label(slice),
		Width:    width,
		Height:   height,
	}
}

func interior(w *world.World, slice int) []world.Cell {
	width, _, _ := w.Size()
	var cells []world.Cell
	for x := 0; x < width; x++ {
		top := w.ColumnTop(x, slice)
		for y := 0; y < top; y++ {
			if w.Get(x, y, slice) == world.BlockAir {
				cells = append(cells, world.Cell{X: x, Y: y, Z: slice, Type: world.BlockAir})
			}
		}
	}
	return cells
}

func (s *Session) label(slice int) string {
	_, _, depth := s.World.Size()
	p := s.Player
	return fmt.Sprintf("Slice %d/%d | x %.2f y %.2f | %s | seed %d",
		slice, depth-1, p.Position.X(), p.Position.Y(), p.State, s.Settings.World.Seed)
}
