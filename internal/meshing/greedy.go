package meshing

import (
	"slicecraft/internal/world"
)

// Rect is a merged run of same-typed cells in one slice, in block units
type Rect struct {
	X, Y int
	W, H int
	Type world.BlockType
}

// GreedyRects merges cells of a width x height slice into as few rectangles as the
// greedy sweep finds. Cells of different types never merge. Cells outside the
// slice bounds are dropped.
//
// The sweep walks rows bottom-up; each unvisited cell grows right as far as the
// type repeats, then up while the whole span matches.
func GreedyRects(cells []world.Cell, width, height int) []Rect {
	if width <= 0 || height <= 0 || len(cells) == 0 {
		return nil
	}

	// mask holds type+1 so the zero value means empty
	mask := make([]int, width*height)
	for _, c := range cells {
		if c.X < 0 || c.X >= width || c.Y < 0 || c.Y >= height {
			continue
		}
		mask[c.Y*width+c.X] = int(c.Type) + 1
	}

	var rects []Rect
	for i := 0; i < width*height; i++ {
		m := mask[i]
		if m == 0 {
			continue
		}
		x0 := i % width
		y0 := i / width

		// compute width
		w := 1
		for x1 := x0 + 1; x1 < width && mask[y0*width+x1] == m; x1++ {
			w++
		}
		// compute height
		h := 1
	outer:
		for y1 := y0 + 1; y1 < height; y1++ {
			for x1 := x0; x1 < x0+w; x1++ {
				if mask[y1*width+x1] != m {
					break outer
				}
			}
			h++
		}

		rects = append(rects, Rect{X: x0, Y: y0, W: w, H: h, Type: world.BlockType(m - 1)})

		// zero-out mask region
		for yy := y0; yy < y0+h; yy++ {
			for xx := x0; xx < x0+w; xx++ {
				mask[yy*width+xx] = 0
			}
		}
	}
	return rects
}
