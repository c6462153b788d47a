package player

import (
	"math"

	"slicecraft/internal/config"
	"slicecraft/internal/physics"

	"github.com/go-gl/mathgl/mgl64"
)

// State is the player's contact state
type State int

const (
	StateAirborne State = iota
	StateGrounded
	// StateRespawning lasts from an out-of-bounds reset until the next step settles it
	StateRespawning
)

func (s State) String() string {
	switch s {
	case StateAirborne:
		return "airborne"
	case StateGrounded:
		return "grounded"
	case StateRespawning:
		return "respawning"
	}
	return "unknown"
}

// Facing is the horizontal direction of the last movement input, +1 right and -1 left
type Facing int

const (
	FacingLeft  Facing = -1
	FacingRight Facing = 1
)

// Player is the single humanoid box moving through the world.
//
// Position.X() is the horizontal center, Position.Y() the feet and Position.Z() the
// continuous slice value that eases toward TargetZ.
type Player struct {
	Position  mgl64.Vec3
	TargetZ   int
	VelocityY float64
	OnGround  bool
	Facing    Facing
	State     State

	Width  float64
	Height float64

	// Spawn is where the out-of-bounds guard puts the player back
	Spawn mgl64.Vec3

	settings config.PhysicsSettings
}

// Pose is the read-only view of the player handed to renderers
type Pose struct {
	Position mgl64.Vec3
	Width    float64
	Height   float64
	Facing   Facing
	State    State
}

func New(spawn mgl64.Vec3, settings config.PhysicsSettings) *Player {
	p := &Player{
		Spawn:    spawn,
		Width:    settings.PlayerWidth,
		Height:   settings.PlayerHeight,
		Facing:   FacingRight,
		settings: settings,
	}
	p.Respawn()
	p.State = StateGrounded
	return p
}

// Respawn puts the player back at the spawn point at rest
func (p *Player) Respawn() {
	p.Position = p.Spawn
	p.VelocityY = 0
	p.TargetZ = int(math.Round(p.Spawn.Z()))
	p.OnGround = true
	p.State = StateRespawning
}

// SliceIndex is the slice the player currently collides with
func (p *Player) SliceIndex() int {
	return int(math.Round(p.Position.Z()))
}

// Box is the player's collision rectangle in the slice plane
func (p *Player) Box() physics.Box {
	return physics.BoxAt(p.Position.X(), p.Position.Y(), p.Width, p.Height)
}

func (p *Player) Pose() Pose {
	return Pose{
		Position: p.Position,
		Width:    p.Width,
		Height:   p.Height,
		Facing:   p.Facing,
		State:    p.State,
	}
}

// Settings returns the physics constants the player was created with
func (p *Player) Settings() config.PhysicsSettings {
	return p.settings
}
