package world

import (
	"errors"
	"fmt"
)

// ErrInvalidSize is returned for worlds with a non-positive dimension
var ErrInvalidSize = errors.New("invalid world size")

// World is a bounded, densely stored block grid.
// x runs to the right, y up from the bottom layer and z indexes the depth slice.
type World struct {
	width, height, depth int

	blocks []BlockType
	// columnTop[x*depth+z] is the topmost occupied y of a column, -1 if empty
	columnTop []int
}

// New creates an empty (all air) world
func New(width, height, depth int) (*World, error) {
	if width <= 0 || height <= 0 || depth <= 0 {
		return nil, fmt.Errorf("%w: %dx%dx%d", ErrInvalidSize, width, height, depth)
	}
	w := &World{
		width:     width,
		height:    height,
		depth:     depth,
		blocks:    make([]BlockType, width*height*depth),
		columnTop: make([]int, width*depth),
	}
	for i := range w.columnTop {
		w.columnTop[i] = -1
	}
	return w, nil
}

// FromBlocks rebuilds a world from a Blocks dump
func FromBlocks(width, height, depth int, blocks []BlockType) (*World, error) {
	w, err := New(width, height, depth)
	if err != nil {
		return nil, err
	}
	if len(blocks) != len(w.blocks) {
		return nil, fmt.Errorf("%w: %d blocks for %dx%dx%d", ErrInvalidSize, len(blocks), width, height, depth)
	}
	for i, t := range blocks {
		if !t.Valid() {
			return nil, fmt.Errorf("block %d: unknown type %d", i, t)
		}
	}
	copy(w.blocks, blocks)
	for x := 0; x < width; x++ {
		for z := 0; z < depth; z++ {
			w.recomputeColumnTop(x, z)
		}
	}
	return w, nil
}

// Size returns the world dimensions
func (w *World) Size() (width, height, depth int) {
	return w.width, w.height, w.depth
}

func (w *World) InBounds(x, y, z int) bool {
	return x >= 0 && x < w.width && y >= 0 && y < w.height && z >= 0 && z < w.depth
}

func (w *World) index(x, y, z int) int {
	return (x*w.height+y)*w.depth + z
}

// Get returns the block at a position; anything outside the world is air
func (w *World) Get(x, y, z int) BlockType {
	if !w.InBounds(x, y, z) {
		return BlockAir
	}
	return w.blocks[w.index(x, y, z)]
}

// Set stores a block; positions outside the world are ignored
func (w *World) Set(x, y, z int, t BlockType) {
	if !w.InBounds(x, y, z) || !t.Valid() {
		return
	}
	w.blocks[w.index(x, y, z)] = t

	col := x*w.depth + z
	switch top := w.columnTop[col]; {
	case t != BlockAir && y > top:
		w.columnTop[col] = y
	case t == BlockAir && y == top:
		w.recomputeColumnTop(x, z)
	}
}

func (w *World) recomputeColumnTop(x, z int) {
	top := -1
	for y := w.height - 1; y >= 0; y-- {
		if w.blocks[w.index(x, y, z)] != BlockAir {
			top = y
			break
		}
	}
	w.columnTop[x*w.depth+z] = top
}

// IsSolid reports whether a cell fully blocks movement.
// Out-of-bounds cells count as solid walls; semi-solid and non-solid blocks do not.
func (w *World) IsSolid(x, y, z int) bool {
	if !w.InBounds(x, y, z) {
		return true
	}
	return w.Get(x, y, z).IsSolid()
}

func (w *World) IsSemiSolid(x, y, z int) bool {
	return w.Get(x, y, z).IsSemiSolid()
}

// Place inserts t into an empty cell. It is a no-op outside the world,
// on an occupied cell or for air, and reports whether the block was placed.
func (w *World) Place(x, y, z int, t BlockType) bool {
	if t == BlockAir || !t.Valid() || !w.InBounds(x, y, z) || w.Get(x, y, z) != BlockAir {
		return false
	}
	w.Set(x, y, z, t)
	return true
}

// Break clears a cell and returns the removed block, if there was one
func (w *World) Break(x, y, z int) (BlockType, bool) {
	old := w.Get(x, y, z)
	if old == BlockAir {
		return BlockAir, false
	}
	w.Set(x, y, z, BlockAir)
	return old, true
}

// ColumnTop returns the topmost occupied y of column (x, z), or -1 for an empty or unknown column
func (w *World) ColumnTop(x, z int) int {
	if x < 0 || x >= w.width || z < 0 || z >= w.depth {
		return -1
	}
	return w.columnTop[x*w.depth+z]
}

// Slice returns every non-air block of slice z ordered by x, then y
func (w *World) Slice(z int) []Cell {
	if z < 0 || z >= w.depth {
		return nil
	}
	var cells []Cell
	for x := 0; x < w.width; x++ {
		for y := 0; y <= w.columnTop[x*w.depth+z]; y++ {
			if t := w.blocks[w.index(x, y, z)]; t != BlockAir {
				cells = append(cells, Cell{X: x, Y: y, Z: z, Type: t})
			}
		}
	}
	return cells
}

// Blocks returns a copy of the raw block array, see FromBlocks
func (w *World) Blocks() []BlockType {
	out := make([]BlockType, len(w.blocks))
	copy(out, w.blocks)
	return out
}

// Count returns the number of non-air blocks
func (w *World) Count() int {
	n := 0
	for _, t := range w.blocks {
		if t != BlockAir {
			n++
		}
	}
	return n
}
