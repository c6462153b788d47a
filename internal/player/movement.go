package player

import (
	"math"

	"slicecraft/internal/input"
	"slicecraft/internal/physics"
	"slicecraft/internal/profiling"
	"slicecraft/internal/world"
)

// NominalFrame is the frame length the per-frame constants are tuned for
const NominalFrame = 1.0 / 60

// StepResult reports what happened during one Step
type StepResult struct {
	Grounded  bool
	Respawned bool
	Placed    bool
	Broken    bool
	// Edit is the cell changed by a place or break, valid when either flag is set
	Edit world.Cell
}

// Step advances the player by dt seconds against w.
//
// dt is measured in nominal frames and clamped to one frame, so a stalled loop
// cannot tunnel through blocks.
func (p *Player) Step(w *world.World, in input.Snapshot, dt float64) StepResult {
	defer profiling.Track("player.Step")()

	var res StepResult
	s := p.settings
	frames := frameScale(dt)

	// Target slice only moves on input
	_, _, depth := w.Size()
	p.TargetZ = clampInt(p.TargetZ+in.ScrollDelta, 0, depth-1)
	p.easeSlice(frames)

	prev := p.Box()

	var dx float64
	if in.Left {
		dx--
		p.Facing = FacingLeft
	}
	if in.Right {
		dx++
		p.Facing = FacingRight
	}
	p.Position[0] += dx * s.MoveSpeed * frames

	if in.Jump && p.OnGround {
		p.VelocityY = s.JumpVelocity
		p.OnGround = false
	}

	p.VelocityY -= s.Gravity * frames
	if p.VelocityY < -s.TerminalVelocity {
		p.VelocityY = -s.TerminalVelocity
	}
	p.Position[1] += p.VelocityY * frames

	slice := p.SliceIndex()
	c := physics.Resolve(w, slice, p.Box(), prev, p.VelocityY, s.SemiSolidBand)
	p.Position[0] = c.Box.CenterX()
	p.Position[1] = c.Box.MinY
	p.VelocityY = c.VelocityY

	p.OnGround = c.Grounded
	if !p.OnGround && p.VelocityY <= 0 && physics.Supported(w, slice, c.Box) {
		p.OnGround = true
		p.VelocityY = 0
	}

	if p.Position.Y() < 0 {
		p.Respawn()
		res.Respawned = true
	}
	p.settle()
	res.Grounded = p.OnGround

	if in.Place {
		if cell, ok := p.Place(w, world.BlockPlaced); ok {
			res.Placed, res.Edit = true, cell
		}
	}
	if in.Break {
		if cell, ok := p.Break(w); ok {
			res.Broken, res.Edit = true, cell
		}
	}
	return res
}

// settle derives State from contact; a respawn resolves to grounded right away
func (p *Player) settle() {
	if p.OnGround {
		p.State = StateGrounded
	} else {
		p.State = StateAirborne
	}
}

// easeSlice moves z toward TargetZ by the ease factor compounded over frames.
// The factor stays in (0,1] so z never overshoots.
func (p *Player) easeSlice(frames float64) {
	k := 1 - math.Pow(1-p.settings.SliceEase, frames)
	target := float64(p.TargetZ)
	p.Position[2] += (target - p.Position.Z()) * k
}

func frameScale(dt float64) float64 {
	f := dt / NominalFrame
	if f < 0 || math.IsNaN(f) {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
