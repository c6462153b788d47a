package physics

import (
	"math"

	"slicecraft/internal/world"
)

const (
	// Epsilon absorbs float error when comparing box edges
	Epsilon = 1e-9
	// MaxResolveIterations bounds the push-out loop of Resolve
	MaxResolveIterations = 8
)

// Box is an axis-aligned rectangle in the plane of a single slice
type Box struct {
	MinX, MinY, MaxX, MaxY float64
}

// BoxAt returns the box of a body whose feet are centered on (x, y)
func BoxAt(x, y, width, height float64) Box {
	return Box{MinX: x - width/2, MinY: y, MaxX: x + width/2, MaxY: y + height}
}

// BlockBox returns the unit box of the block at (bx, by)
func BlockBox(bx, by int) Box {
	return Box{MinX: float64(bx), MinY: float64(by), MaxX: float64(bx + 1), MaxY: float64(by + 1)}
}

func (b Box) Width() float64   { return b.MaxX - b.MinX }
func (b Box) Height() float64  { return b.MaxY - b.MinY }
func (b Box) CenterX() float64 { return (b.MinX + b.MaxX) / 2 }
func (b Box) CenterY() float64 { return (b.MinY + b.MaxY) / 2 }

// Overlap returns the extent of the intersection on each axis (<= 0 when apart)
func (b Box) Overlap(o Box) (x, y float64) {
	x = math.Min(b.MaxX, o.MaxX) - math.Max(b.MinX, o.MinX)
	y = math.Min(b.MaxY, o.MaxY) - math.Max(b.MinY, o.MinY)
	return x, y
}

// Overlaps reports a strictly positive intersection; touching edges do not overlap
func (b Box) Overlaps(o Box) bool {
	x, y := b.Overlap(o)
	return x > Epsilon && y > Epsilon
}

func (b Box) withMinX(v float64) Box {
	return Box{MinX: v, MinY: b.MinY, MaxX: v + b.Width(), MaxY: b.MaxY}
}
func (b Box) withMaxX(v float64) Box {
	return Box{MinX: v - b.Width(), MinY: b.MinY, MaxX: v, MaxY: b.MaxY}
}
func (b Box) withMinY(v float64) Box {
	return Box{MinX: b.MinX, MinY: v, MaxX: b.MaxX, MaxY: v + b.Height()}
}
func (b Box) withMaxY(v float64) Box {
	return Box{MinX: b.MinX, MinY: v - b.Height(), MaxX: b.MaxX, MaxY: v}
}

// Contact is the outcome of Resolve
type Contact struct {
	Box       Box
	VelocityY float64
	// Grounded is set when the body was pushed up onto a floor-like surface
	Grounded bool
}

type pushSide int

const (
	pushUp pushSide = iota
	pushDown
	pushLeft
	pushRight
)

type push struct {
	side  pushSide
	edge  float64 // the block edge the body is moved against
	depth float64
}

// Resolve moves box out of every colliding block of one slice.
//
// Only blocks with index slice take part; neighbouring slices never collide. Each
// iteration resolves the shallowest penetration first and rescans, so the result does
// not depend on block iteration order. The push axis is the one on which prev (the
// box before this frame's movement) was still separated from the block, falling back
// to the shallower axis.
//
// Semi-solid blocks only collide with a body that is not rising, whose previous bottom
// was at or above their top and whose bottom is now within band of the top.
//
// A prev that already overlaps solid blocks (after switching into a slice whose
// terrain is higher) has no separated axis, so the body is snapped up onto the first
// free space above it instead.
func Resolve(w *world.World, slice int, box, prev Box, velocityY, band float64) Contact {
	c := Contact{Box: box, VelocityY: velocityY}
	if overlapsSolid(w, slice, prev) {
		if lifted := liftOut(w, slice, c.Box); lifted != c.Box {
			c.Box = lifted
			c.Grounded = true
			if c.VelocityY < 0 {
				c.VelocityY = 0
			}
		}
		prev = c.Box
	}
	for i := 0; i < MaxResolveIterations; i++ {
		p, ok := shallowestPush(w, slice, c.Box, prev, c.VelocityY, band)
		if !ok {
			break
		}
		switch p.side {
		case pushUp:
			c.Box = c.Box.withMinY(p.edge)
			c.Grounded = true
			if c.VelocityY < 0 {
				c.VelocityY = 0
			}
		case pushDown:
			c.Box = c.Box.withMaxY(p.edge)
			if c.VelocityY > 0 {
				c.VelocityY = 0
			}
		case pushLeft:
			c.Box = c.Box.withMaxX(p.edge)
		case pushRight:
			c.Box = c.Box.withMinX(p.edge)
		}
	}
	return c
}

// solidTop returns the highest top among fully solid blocks overlapping box
func solidTop(w *world.World, slice int, box Box) (float64, bool) {
	top, found := math.Inf(-1), false
	for bx := int(math.Floor(box.MinX)); bx <= int(math.Ceil(box.MaxX))-1; bx++ {
		for by := int(math.Floor(box.MinY)); by <= int(math.Ceil(box.MaxY))-1; by++ {
			block := BlockBox(bx, by)
			if w.Get(bx, by, slice).Solidity() != world.SolidityFull || !box.Overlaps(block) {
				continue
			}
			top, found = math.Max(top, block.MaxY), true
		}
	}
	return top, found
}

func overlapsSolid(w *world.World, slice int, box Box) bool {
	_, found := solidTop(w, slice, box)
	return found
}

// liftOut raises box until it overlaps no fully solid block. Cells above the
// world are air, so the loop always ends.
func liftOut(w *world.World, slice int, box Box) Box {
	for {
		top, found := solidTop(w, slice, box)
		if !found {
			return box
		}
		box = box.withMinY(top)
	}
}

func shallowestPush(w *world.World, slice int, box, prev Box, velocityY, band float64) (push, bool) {
	var best push
	found := false

	minX, maxX := int(math.Floor(box.MinX)), int(math.Ceil(box.MaxX))-1
	minY, maxY := int(math.Floor(box.MinY)), int(math.Ceil(box.MaxY))-1
	for bx := minX; bx <= maxX; bx++ {
		for by := minY; by <= maxY; by++ {
			var (
				p  push
				ok bool
			)
			switch w.Get(bx, by, slice).Solidity() {
			case world.SolidityFull:
				p, ok = solidPush(box, prev, BlockBox(bx, by))
			case world.SoliditySemi:
				p, ok = platformPush(box, prev, BlockBox(bx, by), velocityY, band)
			}
			if ok && (!found || p.depth < best.depth) {
				best, found = p, true
			}
		}
	}
	return best, found
}

func solidPush(box, prev, block Box) (push, bool) {
	if !box.Overlaps(block) {
		return push{}, false
	}

	var vertical push
	if prev.MinY >= block.MaxY-Epsilon || (prev.MaxY > block.MinY+Epsilon && box.CenterY() >= block.CenterY()) {
		vertical = push{side: pushUp, edge: block.MaxY, depth: block.MaxY - box.MinY}
	} else {
		vertical = push{side: pushDown, edge: block.MinY, depth: box.MaxY - block.MinY}
	}

	var horizontal push
	if prev.MaxX <= block.MinX+Epsilon || (prev.MinX < block.MaxX-Epsilon && box.CenterX() < block.CenterX()) {
		horizontal = push{side: pushLeft, edge: block.MinX, depth: box.MaxX - block.MinX}
	} else {
		horizontal = push{side: pushRight, edge: block.MaxX, depth: block.MaxX - box.MinX}
	}

	sepY := prev.MinY >= block.MaxY-Epsilon || prev.MaxY <= block.MinY+Epsilon
	sepX := prev.MaxX <= block.MinX+Epsilon || prev.MinX >= block.MaxX-Epsilon
	switch {
	case sepY && !sepX:
		return vertical, true
	case sepX && !sepY:
		return horizontal, true
	case horizontal.depth < vertical.depth:
		return horizontal, true
	default:
		return vertical, true
	}
}

func platformPush(box, prev, block Box, velocityY, band float64) (push, bool) {
	if velocityY > 0 || prev.MinY < block.MaxY-Epsilon || !box.Overlaps(block) {
		return push{}, false
	}
	depth := block.MaxY - box.MinY
	if depth > band+Epsilon {
		return push{}, false
	}
	return push{side: pushUp, edge: block.MaxY, depth: depth}, true
}

// Supported reports whether a full or semi-solid top lies directly under the box
func Supported(w *world.World, slice int, box Box) bool {
	by := int(math.Round(box.MinY)) - 1
	if math.Abs(box.MinY-float64(by+1)) > Epsilon {
		return false
	}
	for bx := int(math.Floor(box.MinX)); bx <= int(math.Ceil(box.MaxX))-1; bx++ {
		if x, _ := box.Overlap(BlockBox(bx, by)); x <= Epsilon {
			continue
		}
		if w.Get(bx, by, slice).Solidity() != world.SolidityNone {
			return true
		}
	}
	return false
}

// FindGroundLevel returns the highest floor-like surface at or below fromY under a
// body of the given width centered on x
func FindGroundLevel(w *world.World, slice int, x, width, fromY float64) (float64, bool) {
	box := BoxAt(x, fromY, width, 0)
	for by := int(math.Floor(fromY+Epsilon)) - 1; by >= 0; by-- {
		for bx := int(math.Floor(box.MinX)); bx <= int(math.Ceil(box.MaxX))-1; bx++ {
			if ox, _ := box.Overlap(BlockBox(bx, by)); ox <= Epsilon {
				continue
			}
			if w.Get(bx, by, slice).Solidity() != world.SolidityNone {
				return float64(by + 1), true
			}
		}
	}
	return math.Inf(-1), false
}
