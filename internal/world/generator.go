package world

import (
	"context"
	"math"
	"runtime"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"

	"slicecraft/internal/config"
)

// Generator builds a bounded world from a height field and a seed.
type Generator struct {
	settings config.WorldSettings
	field    HeightField
}

// NewGenerator picks the height field named in the settings
func NewGenerator(settings config.WorldSettings) *Generator {
	var field HeightField
	switch settings.Noise {
	case config.NoisePerlin:
		field = NewPerlinField(settings.Seed)
	default:
		field = NewSineField(settings.Seed)
	}
	return &Generator{settings: settings, field: field}
}

// WithHeightField replaces the height field, keeping every other setting
func (g *Generator) WithHeightField(f HeightField) *Generator {
	cp := *g
	cp.field = f
	return &cp
}

// HeightAt computes the terrain height (number of filled cells) of column (x, z).
// The top layer stays free so surface water and the spawn fit inside the world.
func (g *Generator) HeightAt(x, z int) int {
	n := g.field.Value(x, z)
	h := int(math.Floor(n*float64(g.settings.HeightRange))) + g.settings.BaseHeight
	return max(1, min(h, g.settings.Height-1))
}

// Generate runs the terrain pass over disjoint column bands in parallel, waits for
// all of them, then decorates the finished terrain with trees.
func (g *Generator) Generate(ctx context.Context) (*World, error) {
	s := g.settings
	w, err := New(s.Width, s.Height, s.Depth)
	if err != nil {
		return nil, err
	}

	heights := make([]int, s.Width*s.Depth)

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for x := 0; x < s.Width; x++ {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			// Each goroutine only writes column x, so bands never overlap.
			for z := 0; z < s.Depth; z++ {
				heights[x*s.Depth+z] = g.fillColumn(w, x, z)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for x := 0; x < s.Width; x++ {
		for z := 0; z < s.Depth; z++ {
			g.maybePlaceTree(w, x, z, heights[x*s.Depth+z])
		}
	}
	return w, nil
}

// fillColumn lays stone with two dirt layers and a grass cap, carves random cave
// gaps below the surface and floods low columns. It returns the column height.
func (g *Generator) fillColumn(w *World, x, z int) int {
	rng := columnRand(g.settings.Seed, x, z, streamTerrain)
	height := g.HeightAt(x, z)
	top := height - 1

	for y := 0; y < height; y++ {
		t := BlockStone
		switch {
		case y == top:
			t = BlockGrass
		case y >= top-2:
			t = BlockDirt
		}
		// y=0 stays filled so the world always has a floor
		if y > 0 && y != top && rng.Float64() < g.settings.CaveChance {
			continue
		}
		w.Set(x, y, z, t)
	}

	if height < g.settings.WaterLevel {
		w.Set(x, height, z, BlockWater)
	}
	return height
}

func (g *Generator) maybePlaceTree(w *World, x, z, height int) {
	rng := columnRand(g.settings.Seed, x, z, streamTrees)
	if rng.Float64() >= g.settings.TreeChance {
		return
	}
	if w.Get(x, height-1, z) != BlockGrass || w.Get(x, height, z) != BlockAir {
		return
	}

	trunk := 2 + rng.Intn(2)
	trunkTop := height + trunk - 1
	// leaves reach one cell above the trunk
	if trunkTop+1 >= g.settings.Height {
		return
	}

	for y := height; y <= trunkTop; y++ {
		if t := w.Get(x, y, z); t == BlockAir || t == BlockLeaves {
			w.Set(x, y, z, BlockWood)
		}
	}
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				lx, ly, lz := x+dx, trunkTop+dy, z+dz
				if w.InBounds(lx, ly, lz) && w.Get(lx, ly, lz) == BlockAir {
					w.Set(lx, ly, lz, BlockLeaves)
				}
			}
		}
	}
}

// SpawnPoint returns the feet position on top of the center column.
// x is the column center, z the slice index.
func SpawnPoint(w *World) mgl64.Vec3 {
	width, _, depth := w.Size()
	cx, cz := width/2, depth/2
	top := w.ColumnTop(cx, cz)
	return mgl64.Vec3{float64(cx) + 0.5, float64(top + 1), float64(cz)}
}
