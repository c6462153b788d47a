package player

import (
	"math"
	"testing"

	"slicecraft/internal/config"
	"slicecraft/internal/input"
	"slicecraft/internal/world"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frame = NominalFrame

// floorWorld is 8x8x8 with a two-block stone floor in every slice
func floorWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.New(8, 8, 8)
	require.NoError(t, err)
	for x := 0; x < 8; x++ {
		for z := 0; z < 8; z++ {
			w.Set(x, 0, z, world.BlockStone)
			w.Set(x, 1, z, world.BlockStone)
		}
	}
	return w
}

func newPlayer() *Player {
	return New(mgl64.Vec3{4.5, 2, 3}, config.DefaultPhysics())
}

func TestNewPlayerStartsGroundedAtSpawn(t *testing.T) {
	p := newPlayer()
	assert.Equal(t, mgl64.Vec3{4.5, 2, 3}, p.Position)
	assert.Equal(t, 3, p.TargetZ)
	assert.True(t, p.OnGround)
	assert.Equal(t, StateGrounded, p.State)
	assert.Equal(t, FacingRight, p.Facing)
	assert.Equal(t, 0.75, p.Width)
	assert.Equal(t, 1.5, p.Height)
}

func TestStandingStaysPut(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()
	for i := 0; i < 30; i++ {
		res := p.Step(w, input.Snapshot{}, frame)
		require.True(t, res.Grounded)
	}
	assert.Equal(t, 4.5, p.Position.X())
	assert.Equal(t, 2.0, p.Position.Y())
	assert.Equal(t, 0.0, p.VelocityY)
	assert.Equal(t, StateGrounded, p.State)
}

func TestSliceEasingConvergesWithoutOvershoot(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()

	p.Step(w, input.Snapshot{ScrollDelta: 3}, frame)
	require.Equal(t, 6, p.TargetZ)

	last := math.Abs(p.Position.Z() - 6)
	for i := 0; i < 150; i++ {
		p.Step(w, input.Snapshot{}, frame)
		dist := math.Abs(p.Position.Z() - 6)
		require.LessOrEqual(t, p.Position.Z(), 6.0, "overshoot at step %d", i)
		require.LessOrEqual(t, dist, last)
		last = dist
	}
	assert.InDelta(t, 6.0, p.Position.Z(), 1e-9)
	assert.Equal(t, 6, p.SliceIndex())
}

func TestSliceEaseFactorPerFrame(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()
	p.Step(w, input.Snapshot{ScrollDelta: 1}, frame)
	assert.InDelta(t, 3.2, p.Position.Z(), 1e-12)
}

func TestTargetSliceIsClamped(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()

	p.Step(w, input.Snapshot{ScrollDelta: -10}, frame)
	assert.Equal(t, 0, p.TargetZ)

	p.Step(w, input.Snapshot{ScrollDelta: 100}, frame)
	assert.Equal(t, 7, p.TargetZ)
}

func TestHorizontalMovement(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()

	for i := 0; i < 8; i++ {
		p.Step(w, input.Snapshot{Right: true}, frame)
	}
	assert.InDelta(t, 4.5+8*3.0/16, p.Position.X(), 1e-9)
	assert.Equal(t, FacingRight, p.Facing)

	for i := 0; i < 8; i++ {
		p.Step(w, input.Snapshot{Left: true}, frame)
	}
	assert.InDelta(t, 4.5, p.Position.X(), 1e-9)
	assert.Equal(t, FacingLeft, p.Facing)

	// Both held cancel out but the last one read wins the facing
	p.Step(w, input.Snapshot{Left: true, Right: true}, frame)
	assert.InDelta(t, 4.5, p.Position.X(), 1e-9)
	assert.Equal(t, FacingRight, p.Facing)
}

func TestWalkingIntoWallStops(t *testing.T) {
	w := floorWorld(t)
	w.Set(6, 2, 3, world.BlockStone)
	w.Set(6, 3, 3, world.BlockStone)
	p := newPlayer()

	for i := 0; i < 20; i++ {
		p.Step(w, input.Snapshot{Right: true}, frame)
	}
	assert.InDelta(t, 6-0.375, p.Position.X(), 1e-9)
	assert.Equal(t, 2.0, p.Position.Y())
	assert.True(t, p.OnGround)
}

func TestWallInOtherSliceDoesNotBlock(t *testing.T) {
	w := floorWorld(t)
	w.Set(6, 2, 4, world.BlockStone)
	w.Set(6, 3, 4, world.BlockStone)
	p := newPlayer()

	for i := 0; i < 20; i++ {
		p.Step(w, input.Snapshot{Right: true}, frame)
	}
	assert.Greater(t, p.Position.X(), 6.0)
}

func TestJumpAndLand(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()
	s := config.DefaultPhysics()

	res := p.Step(w, input.Snapshot{Jump: true}, frame)
	assert.False(t, res.Grounded)
	assert.Equal(t, StateAirborne, p.State)
	assert.Equal(t, s.JumpVelocity-s.Gravity, p.VelocityY)

	// Holding jump in the air does not add another impulse
	p.Step(w, input.Snapshot{Jump: true}, frame)
	assert.Equal(t, s.JumpVelocity-2*s.Gravity, p.VelocityY)

	landed := false
	for i := 0; i < 120 && !landed; i++ {
		landed = p.Step(w, input.Snapshot{}, frame).Grounded
	}
	require.True(t, landed)
	assert.Equal(t, 2.0, p.Position.Y())
	assert.Equal(t, 0.0, p.VelocityY)
	assert.Equal(t, StateGrounded, p.State)
}

func TestFallSpeedIsCapped(t *testing.T) {
	w, err := world.New(8, 64, 8)
	require.NoError(t, err)
	p := New(mgl64.Vec3{4.5, 60, 3}, config.DefaultPhysics())
	for i := 0; i < 40; i++ {
		p.Step(w, input.Snapshot{}, frame)
	}
	assert.Equal(t, -config.DefaultPhysics().TerminalVelocity, p.VelocityY)
}

func TestRespawnAfterFallingOut(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()
	p.Position = mgl64.Vec3{2.5, -0.5, 5.4}
	p.TargetZ = 5
	p.VelocityY = -0.3
	p.OnGround = false

	res := p.Step(w, input.Snapshot{}, frame)
	assert.True(t, res.Respawned)
	assert.True(t, res.Grounded)
	assert.Equal(t, p.Spawn, p.Position)
	assert.Equal(t, 0.0, p.VelocityY)
	assert.Equal(t, 3, p.TargetZ)
	assert.Equal(t, StateGrounded, p.State)
}

func TestWalkingOffTheWorldRespawns(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()

	respawned := false
	for i := 0; i < 300 && !respawned; i++ {
		respawned = p.Step(w, input.Snapshot{Left: true}, frame).Respawned
	}
	require.True(t, respawned)
	assert.Equal(t, p.Spawn, p.Position)
}

func TestSemiSolidLandingFromAbove(t *testing.T) {
	w := floorWorld(t)
	w.Set(4, 4, 3, world.BlockLeaves)
	p := New(mgl64.Vec3{4.5, 6, 3}, config.DefaultPhysics())
	p.OnGround = false

	landed := false
	for i := 0; i < 60 && !landed; i++ {
		landed = p.Step(w, input.Snapshot{}, frame).Grounded
	}
	require.True(t, landed)
	assert.Equal(t, 5.0, p.Position.Y())

	// Standing on the platform is stable
	for i := 0; i < 10; i++ {
		require.True(t, p.Step(w, input.Snapshot{}, frame).Grounded)
	}
	assert.Equal(t, 5.0, p.Position.Y())
}

func TestJumpingUpThroughSemiSolid(t *testing.T) {
	w := floorWorld(t)
	w.Set(4, 4, 3, world.BlockLeaves)
	p := newPlayer()

	p.Step(w, input.Snapshot{Jump: true}, frame)
	maxY := p.Position.Y()
	landed := false
	for i := 0; i < 120 && !landed; i++ {
		landed = p.Step(w, input.Snapshot{}, frame).Grounded
		maxY = math.Max(maxY, p.Position.Y())
	}
	require.True(t, landed)
	// The head went through the leaves and the feet reached into them
	assert.Greater(t, maxY, 4.0)
	// Coming down from inside the block does not land on it
	assert.Equal(t, 2.0, p.Position.Y())
}

func TestPlaceTarget(t *testing.T) {
	p := newPlayer()

	x, y, z := p.PlaceTarget()
	assert.Equal(t, [3]int{5, 2, 3}, [3]int{x, y, z})

	p.Facing = FacingLeft
	x, y, z = p.PlaceTarget()
	assert.Equal(t, [3]int{3, 2, 3}, [3]int{x, y, z})

	// Flush against a cell edge the adjacent cell is already outside
	p.Facing = FacingRight
	p.Position[0] = 6 - 0.375
	x, _, _ = p.PlaceTarget()
	assert.Equal(t, 6, x)
}

func TestPlaceBreakRoundTrip(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()

	before := w.Get(5, 2, 3)
	require.Equal(t, world.BlockAir, before)

	res := p.Step(w, input.Snapshot{Place: true}, frame)
	require.True(t, res.Placed)
	assert.Equal(t, world.Cell{X: 5, Y: 2, Z: 3, Type: world.BlockPlaced}, res.Edit)
	assert.True(t, w.IsSolid(5, 2, 3))

	res = p.Step(w, input.Snapshot{Break: true}, frame)
	require.True(t, res.Broken)
	assert.Equal(t, world.BlockPlaced, res.Edit.Type)
	assert.Equal(t, before, w.Get(5, 2, 3))
	assert.False(t, w.IsSolid(5, 2, 3))
}

func TestInvalidEditsAreIgnored(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()

	// Breaking air does nothing
	_, ok := p.Break(w)
	assert.False(t, ok)

	// Placing into an occupied cell does nothing
	w.Set(5, 2, 3, world.BlockDirt)
	_, ok = p.Place(w, world.BlockPlaced)
	assert.False(t, ok)
	assert.Equal(t, world.BlockDirt, w.Get(5, 2, 3))

	// Out of bounds targets are no-ops
	p.Position[0] = 7.5
	_, ok = p.Place(w, world.BlockPlaced)
	assert.False(t, ok)
}

func TestFrameScale(t *testing.T) {
	assert.Equal(t, 0.0, frameScale(0))
	assert.Equal(t, 0.0, frameScale(-1))
	assert.Equal(t, 0.0, frameScale(math.NaN()))
	assert.InDelta(t, 0.5, frameScale(NominalFrame/2), 1e-12)
	assert.Equal(t, 1.0, frameScale(NominalFrame))
	assert.Equal(t, 1.0, frameScale(1))
}

func TestZeroDtFreezesMotion(t *testing.T) {
	w := floorWorld(t)
	p := newPlayer()
	p.Step(w, input.Snapshot{Right: true, ScrollDelta: 2}, 0)
	assert.Equal(t, 4.5, p.Position.X())
	assert.Equal(t, 3.0, p.Position.Z())
	assert.Equal(t, 5, p.TargetZ)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "airborne", StateAirborne.String())
	assert.Equal(t, "grounded", StateGrounded.String())
	assert.Equal(t, "respawning", StateRespawning.String())
	assert.Equal(t, "unknown", State(9).String())
}

func TestScrollIntoHigherSliceLandsOnTop(t *testing.T) {
	w := floorWorld(t)
	// slice 4 is one block higher than slice 3
	for x := 0; x < 8; x++ {
		w.Set(x, 2, 4, world.BlockStone)
	}
	p := newPlayer()

	p.Step(w, input.Snapshot{ScrollDelta: 1}, frame)
	for i := 0; i < 40; i++ {
		p.Step(w, input.Snapshot{}, frame)
		if p.SliceIndex() == 4 {
			require.Equal(t, 3.0, p.Position.Y(), "frame %d", i)
			require.Equal(t, 4.5, p.Position.X(), "frame %d", i)
			require.True(t, p.OnGround)
		}
	}
	assert.Equal(t, 4, p.SliceIndex())
	assert.Equal(t, StateGrounded, p.State)
}

func TestScrollIntoBuriedSliceClimbsOut(t *testing.T) {
	w := floorWorld(t)
	for x := 0; x < 8; x++ {
		for y := 2; y < 6; y++ {
			w.Set(x, y, 4, world.BlockStone)
		}
	}
	p := newPlayer()

	p.Step(w, input.Snapshot{ScrollDelta: 1}, frame)
	for i := 0; i < 40; i++ {
		p.Step(w, input.Snapshot{}, frame)
	}
	require.Equal(t, 4, p.SliceIndex())
	assert.Equal(t, 6.0, p.Position.Y())
	assert.Equal(t, 4.5, p.Position.X())
	assert.True(t, p.OnGround)
	assert.Equal(t, 0.0, p.VelocityY)
}
