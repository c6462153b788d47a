package config

import "fmt"

// PhysicsSettings holds the per-frame constants of the physics step.
// Lengths are in blocks, rates are per nominal 60 Hz frame.
type PhysicsSettings struct {
	Gravity          float64 `yaml:"gravity"`
	JumpVelocity     float64 `yaml:"jump_velocity"`
	MoveSpeed        float64 `yaml:"move_speed"`
	TerminalVelocity float64 `yaml:"terminal_velocity"`
	SliceEase        float64 `yaml:"slice_ease"`
	SemiSolidBand    float64 `yaml:"semi_solid_band"`
	PlayerWidth      float64 `yaml:"player_width"`
	PlayerHeight     float64 `yaml:"player_height"`
}

// DefaultPhysics converts the prototype pixel constants (16 px blocks) to blocks
func DefaultPhysics() PhysicsSettings {
	return PhysicsSettings{
		Gravity:          0.5 / 16,
		JumpVelocity:     7.0 / 16,
		MoveSpeed:        3.0 / 16,
		TerminalVelocity: 8.0 / 16,
		SliceEase:        0.2,
		SemiSolidBand:    8.0 / 16,
		PlayerWidth:      0.75,
		PlayerHeight:     1.5,
	}
}

// Validate reports the first invalid physics setting
func (p PhysicsSettings) Validate() error {
	switch {
	case p.Gravity <= 0:
		return fmt.Errorf("%w: gravity must be positive", ErrInvalid)
	// A whole block per frame would carry the body past a wall or ceiling.
	case p.JumpVelocity < 0 || p.JumpVelocity >= 1:
		return fmt.Errorf("%w: jump_velocity %v not in [0,1)", ErrInvalid, p.JumpVelocity)
	case p.MoveSpeed < 0 || p.MoveSpeed >= 1:
		return fmt.Errorf("%w: move_speed %v not in [0,1)", ErrInvalid, p.MoveSpeed)
	case p.SliceEase <= 0 || p.SliceEase >= 1:
		return fmt.Errorf("%w: slice_ease %v not in (0,1)", ErrInvalid, p.SliceEase)
	case p.SemiSolidBand <= 0 || p.SemiSolidBand > 1:
		return fmt.Errorf("%w: semi_solid_band %v not in (0,1]", ErrInvalid, p.SemiSolidBand)
	// A faster fall could skip a semi-solid band or a whole block in one frame.
	case p.TerminalVelocity <= 0 || p.TerminalVelocity > p.SemiSolidBand:
		return fmt.Errorf("%w: terminal_velocity %v must be in (0, semi_solid_band]", ErrInvalid, p.TerminalVelocity)
	case p.PlayerWidth <= 0 || p.PlayerHeight <= 0:
		return fmt.Errorf("%w: player size %vx%v", ErrInvalid, p.PlayerWidth, p.PlayerHeight)
	}
	return nil
}
