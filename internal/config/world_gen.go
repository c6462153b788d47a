package config

import "fmt"

// Height field names accepted in WorldSettings.Noise
const (
	NoiseSine   = "sine"
	NoisePerlin = "perlin"
)

// WorldSettings holds world generation configuration
type WorldSettings struct {
	Width  int   `yaml:"width"`
	Height int   `yaml:"height"`
	Depth  int   `yaml:"depth"`
	Seed   int64 `yaml:"seed"`

	Noise       string  `yaml:"noise"`
	BaseHeight  int     `yaml:"base_height"`
	HeightRange int     `yaml:"height_range"`
	WaterLevel  int     `yaml:"water_level"`
	CaveChance  float64 `yaml:"cave_chance"`
	TreeChance  float64 `yaml:"tree_chance"`

	// Workers bounds the terrain pass worker pool; 0 picks GOMAXPROCS.
	Workers int `yaml:"workers"`
}

// DefaultWorld returns the 16x20x16 world used by the prototypes
func DefaultWorld() WorldSettings {
	return WorldSettings{
		Width:       16,
		Height:      20,
		Depth:       16,
		Seed:        1,
		Noise:       NoiseSine,
		BaseHeight:  5,
		HeightRange: 10,
		WaterLevel:  8,
		CaveChance:  0.05,
		TreeChance:  0.12,
	}
}

// Validate reports the first invalid world setting
func (w WorldSettings) Validate() error {
	switch {
	case w.Width <= 0 || w.Height <= 0 || w.Depth <= 0:
		return fmt.Errorf("%w: world size %dx%dx%d", ErrInvalid, w.Width, w.Height, w.Depth)
	case w.Noise != NoiseSine && w.Noise != NoisePerlin:
		return fmt.Errorf("%w: unknown noise %q", ErrInvalid, w.Noise)
	case w.BaseHeight < 0 || w.HeightRange < 0:
		return fmt.Errorf("%w: negative terrain height", ErrInvalid)
	case w.BaseHeight+w.HeightRange > w.Height-1:
		return fmt.Errorf("%w: base_height+height_range %d must leave the top layer of %d free",
			ErrInvalid, w.BaseHeight+w.HeightRange, w.Height)
	case !isProbability(w.CaveChance):
		return fmt.Errorf("%w: cave_chance %v not in [0,1]", ErrInvalid, w.CaveChance)
	case !isProbability(w.TreeChance):
		return fmt.Errorf("%w: tree_chance %v not in [0,1]", ErrInvalid, w.TreeChance)
	case w.Workers < 0:
		return fmt.Errorf("%w: workers %d", ErrInvalid, w.Workers)
	}
	return nil
}

func isProbability(p float64) bool {
	return p >= 0 && p <= 1
}
