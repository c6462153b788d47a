package player

import (
	"math"

	"slicecraft/internal/physics"
	"slicecraft/internal/world"
)

// PlaceTarget is the cell edits act on: the first cell on the facing side that lies
// fully outside the player's box, at feet level, in the current slice.
func (p *Player) PlaceTarget() (x, y, z int) {
	box := p.Box()
	if p.Facing == FacingLeft {
		x = int(math.Floor(box.MinX+physics.Epsilon)) - 1
	} else {
		x = int(math.Ceil(box.MaxX - physics.Epsilon))
	}
	y = int(math.Floor(p.Position.Y() + physics.Epsilon))
	return x, y, p.SliceIndex()
}

// Place puts a block of type t at PlaceTarget. Occupied or out-of-bounds targets
// are ignored.
func (p *Player) Place(w *world.World, t world.BlockType) (world.Cell, bool) {
	x, y, z := p.PlaceTarget()
	if !w.Place(x, y, z, t) {
		return world.Cell{}, false
	}
	return world.Cell{X: x, Y: y, Z: z, Type: t}, true
}

// Break removes whatever block sits at PlaceTarget
func (p *Player) Break(w *world.World) (world.Cell, bool) {
	x, y, z := p.PlaceTarget()
	t, ok := w.Break(x, y, z)
	if !ok {
		return world.Cell{}, false
	}
	return world.Cell{X: x, Y: y, Z: z, Type: t}, true
}
