package meshing

import (
	"testing"

	"slicecraft/internal/world"
)

func cell(x, y int, t world.BlockType) world.Cell {
	return world.Cell{X: x, Y: y, Type: t}
}

func TestSingleCell(t *testing.T) {
	rects := GreedyRects([]world.Cell{cell(2, 1, world.BlockStone)}, 4, 4)
	if len(rects) != 1 {
		t.Fatalf("single cell: got %d rects, want 1", len(rects))
	}
	want := Rect{X: 2, Y: 1, W: 1, H: 1, Type: world.BlockStone}
	if rects[0] != want {
		t.Fatalf("single cell: got %+v, want %+v", rects[0], want)
	}
}

func TestTwoCellsSeparated(t *testing.T) {
	rects := GreedyRects([]world.Cell{
		cell(0, 0, world.BlockStone),
		cell(2, 0, world.BlockStone),
	}, 4, 4)
	if len(rects) != 2 {
		t.Fatalf("two separated cells: got %d rects, want 2", len(rects))
	}
}

func TestFullLayersMerge(t *testing.T) {
	var cells []world.Cell
	for x := 0; x < 8; x++ {
		for y := 0; y < 3; y++ {
			cells = append(cells, cell(x, y, world.BlockStone))
		}
		cells = append(cells, cell(x, 3, world.BlockGrass))
	}
	rects := GreedyRects(cells, 8, 6)
	if len(rects) != 2 {
		t.Fatalf("layers: got %d rects, want 2: %+v", len(rects), rects)
	}
	if rects[0] != (Rect{X: 0, Y: 0, W: 8, H: 3, Type: world.BlockStone}) {
		t.Fatalf("stone layer: got %+v", rects[0])
	}
	if rects[1] != (Rect{X: 0, Y: 3, W: 8, H: 1, Type: world.BlockGrass}) {
		t.Fatalf("grass layer: got %+v", rects[1])
	}
}

func TestTypesDoNotMerge(t *testing.T) {
	rects := GreedyRects([]world.Cell{
		cell(0, 0, world.BlockDirt),
		cell(1, 0, world.BlockStone),
		cell(2, 0, world.BlockDirt),
	}, 3, 1)
	if len(rects) != 3 {
		t.Fatalf("mixed row: got %d rects, want 3", len(rects))
	}
}

// area is the number of cells a set of rectangles covers
func area(rects []Rect) int {
	n := 0
	for _, r := range rects {
		n += r.W * r.H
	}
	return n
}

func TestCoverageMatchesCells(t *testing.T) {
	// A staircase cannot merge into one rectangle but must still cover every cell once
	var cells []world.Cell
	for x := 0; x < 5; x++ {
		for y := 0; y <= x; y++ {
			cells = append(cells, cell(x, y, world.BlockDirt))
		}
	}
	rects := GreedyRects(cells, 5, 5)
	if got := area(rects); got != len(cells) {
		t.Fatalf("staircase coverage: got %d cells, want %d", got, len(cells))
	}
	if len(rects) >= len(cells) {
		t.Fatalf("staircase: %d rects did not merge %d cells", len(rects), len(cells))
	}
}

func TestOutOfBoundsCellsDropped(t *testing.T) {
	rects := GreedyRects([]world.Cell{cell(-1, 0, world.BlockStone), cell(0, 9, world.BlockStone)}, 2, 2)
	if len(rects) != 0 {
		t.Fatalf("got %d rects for out of bounds cells", len(rects))
	}
	if GreedyRects(nil, 4, 4) != nil {
		t.Fatal("no cells should give no rects")
	}
}

func BenchmarkGreedyRects(b *testing.B) {
	var cells []world.Cell
	for x := 0; x < 64; x++ {
		for y := 0; y < 40; y++ {
			cells = append(cells, cell(x, y, world.BlockType(1+(x/7+y/5)%3)))
		}
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = GreedyRects(cells, 64, 64)
	}
}
