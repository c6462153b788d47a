package game

import (
	"context"
	"testing"
	"time"

	"slicecraft/internal/config"
	"slicecraft/internal/input"
	"slicecraft/internal/player"
	"slicecraft/internal/profiling"
	"slicecraft/internal/storage"
	"slicecraft/internal/world"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = player.NominalFrame

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), *config.Default(), profiling.NewMetrics())
	require.NoError(t, err)
	return s
}

func TestNewSessionSpawnsOnGround(t *testing.T) {
	s := newSession(t)
	p := s.Player

	width, height, depth := s.World.Size()
	assert.Equal(t, [3]int{16, 20, 16}, [3]int{width, height, depth})
	assert.Equal(t, 8.5, p.Position.X())
	assert.Equal(t, 8.0, p.Position.Z())
	assert.Equal(t, 8, p.TargetZ)
	assert.NotEmpty(t, s.ID)

	// Standing still keeps the player where they spawned
	for i := 0; i < 30; i++ {
		f := s.Tick(input.Snapshot{}, frame)
		require.False(t, f.Player.Position.Y() < 0)
	}
	assert.True(t, s.Player.OnGround)
	assert.Equal(t, p.Spawn, s.Player.Position)
	assert.Equal(t, 30, s.Frames)
	assert.Equal(t, 30.0, testutil.ToFloat64(s.Metrics.Frames))
}

func TestSessionIsReproducible(t *testing.T) {
	a := newSession(t)
	b := newSession(t)
	assert.Equal(t, a.World.Blocks(), b.World.Blocks())
	assert.Equal(t, a.Player.Spawn, b.Player.Spawn)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestTickFrameView(t *testing.T) {
	s := newSession(t)
	f := s.Tick(input.Snapshot{}, frame)

	assert.Equal(t, 8, f.Slice)
	assert.Equal(t, s.World.Slice(8), f.Blocks)
	for _, c := range f.Blocks {
		require.Equal(t, 8, c.Z)
		require.NotEqual(t, world.BlockAir, c.Type)
	}
	for _, c := range f.Interior {
		require.Equal(t, world.BlockAir, s.World.Get(c.X, c.Y, c.Z))
		require.Less(t, c.Y, s.World.ColumnTop(c.X, c.Z))
	}
	assert.Equal(t, s.Player.Pose(), f.Player)
	width, height, _ := s.World.Size()
	assert.Equal(t, width, f.Width)
	assert.Equal(t, height, f.Height)
	assert.Contains(t, f.Label, "Slice 8/15")
	assert.Contains(t, f.Label, "grounded")
}

func TestInteriorBackfill(t *testing.T) {
	w, err := world.New(3, 5, 1)
	require.NoError(t, err)
	w.Set(0, 0, 0, world.BlockStone)
	w.Set(0, 3, 0, world.BlockGrass)
	w.Set(1, 1, 0, world.BlockDirt)

	cells := interior(w, 0)
	assert.Equal(t, []world.Cell{
		{X: 0, Y: 1, Z: 0},
		{X: 0, Y: 2, Z: 0},
		{X: 1, Y: 0, Z: 0},
	}, cells)
}

func TestTickCountsEdits(t *testing.T) {
	s := newSession(t)

	// Clear the cell in front of the player so placing always succeeds
	x, y, z := s.Player.PlaceTarget()
	s.World.Set(x, y, z, world.BlockAir)

	s.Tick(input.Snapshot{Place: true}, frame)
	assert.Equal(t, world.BlockPlaced, s.World.Get(x, y, z))
	s.Tick(input.Snapshot{Break: true}, frame)
	assert.Equal(t, world.BlockAir, s.World.Get(x, y, z))

	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.Edits.WithLabelValues(profiling.EditPlace)))
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.Edits.WithLabelValues(profiling.EditBreak)))
}

func TestTickCountsRespawns(t *testing.T) {
	s := newSession(t)
	s.Player.Position[1] = -3
	f := s.Tick(input.Snapshot{}, frame)
	assert.Equal(t, s.Player.Spawn, f.Player.Position)
	assert.Equal(t, 1.0, testutil.ToFloat64(s.Metrics.Respawns))
}

func TestResetRegenerates(t *testing.T) {
	s := newSession(t)
	before := s.World.Blocks()
	oldID := s.ID
	s.Tick(input.Snapshot{Right: true}, frame)

	require.NoError(t, s.Reset(context.Background(), 99))
	assert.Equal(t, int64(99), s.Settings.World.Seed)
	assert.NotEqual(t, before, s.World.Blocks())
	assert.NotEqual(t, oldID, s.ID)
	assert.Equal(t, 0, s.Frames)
	assert.Equal(t, s.Player.Spawn, s.Player.Position)
}

func TestResetKeepsWorldOnCancel(t *testing.T) {
	s := newSession(t)
	w := s.World
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Reset(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Same(t, w, s.World)
	assert.Equal(t, int64(1), s.Settings.World.Seed)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	defer store.Close()

	s := newSession(t)
	for i := 0; i < 5; i++ {
		s.Tick(input.Snapshot{Left: true, ScrollDelta: 1}, frame)
	}
	x, y, z := s.Player.PlaceTarget()
	s.World.Set(x, y, z, world.BlockPlaced)

	require.NoError(t, s.Save(ctx, store, "slot1"))

	other, err := NewSession(ctx, *config.Default(), nil)
	require.NoError(t, err)
	require.NoError(t, other.Load(ctx, store, "slot1"))

	assert.Equal(t, "slot1", other.ID)
	assert.Equal(t, s.World.Blocks(), other.World.Blocks())
	assert.Equal(t, s.Player.Position, other.Player.Position)
	assert.Equal(t, s.Player.TargetZ, other.Player.TargetZ)
	assert.Equal(t, s.Player.Facing, other.Player.Facing)
	assert.Equal(t, s.Player.Spawn, other.Player.Spawn)
	assert.Equal(t, s.Player.OnGround, other.Player.OnGround)
	assert.Equal(t, world.BlockPlaced, other.World.Get(x, y, z))

	// Both continue identically
	fa := s.Tick(input.Snapshot{Right: true}, frame)
	fb := other.Tick(input.Snapshot{Right: true}, frame)
	assert.Equal(t, fa.Player, fb.Player)
}

func TestLoadMissingLeavesSessionAlone(t *testing.T) {
	store, err := storage.OpenBadgerInMemory()
	require.NoError(t, err)
	defer store.Close()

	s := newSession(t)
	w := s.World
	err = s.Load(context.Background(), store, "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	assert.Same(t, w, s.World)
}

func TestFPSLimiterPaces(t *testing.T) {
	config.SetFPSLimit(100)
	defer config.SetFPSLimit(60)

	f := NewFPSLimiter()
	assert.Equal(t, time.Duration(0), f.Wait())

	start := time.Now()
	for i := 0; i < 5; i++ {
		f.Wait()
	}
	assert.GreaterOrEqual(t, time.Since(start), 40*time.Millisecond)
}

func TestFPSLimiterUnlimited(t *testing.T) {
	config.SetFPSLimit(0)
	defer config.SetFPSLimit(60)

	f := NewFPSLimiter()
	f.Wait()
	start := time.Now()
	for i := 0; i < 100; i++ {
		f.Wait()
	}
	assert.Less(t, time.Since(start), 50*time.Millisecond)
}
