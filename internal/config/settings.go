package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure
var ErrInvalid = errors.New("invalid config")

const (
	envConfigPath = "SLICECRAFT_CONFIG"
	envSeed       = "SLICECRAFT_SEED"
)

// Storage backends accepted in StorageSettings.Backend
const (
	BackendFile   = "file"
	BackendBadger = "badger"
)

// Settings is the root of the YAML configuration file
type Settings struct {
	World   WorldSettings   `yaml:"world"`
	Physics PhysicsSettings `yaml:"physics"`
	Game    GameSettings    `yaml:"game"`
	Storage StorageSettings `yaml:"storage"`
	Log     LogSettings     `yaml:"log"`
}

// GameSettings configures the frame loop and viewer window
type GameSettings struct {
	FPSLimit     int    `yaml:"fps_limit"`
	WindowWidth  int    `yaml:"window_width"`
	WindowHeight int    `yaml:"window_height"`
	BlockPixels  int    `yaml:"block_pixels"`
	MetricsAddr  string `yaml:"metrics_addr"`
}

// StorageSettings selects where saves go
type StorageSettings struct {
	Backend string `yaml:"backend"`
	Dir     string `yaml:"dir"`
}

// LogSettings configures internal/logging
type LogSettings struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns a complete, valid configuration
func Default() *Settings {
	return &Settings{
		World:   DefaultWorld(),
		Physics: DefaultPhysics(),
		Game: GameSettings{
			FPSLimit:     60,
			WindowWidth:  900,
			WindowHeight: 600,
			BlockPixels:  16,
		},
		Storage: StorageSettings{
			Backend: BackendFile,
			Dir:     "saves",
		},
		Log: LogSettings{
			Level: "info",
		},
	}
}

// Load reads a YAML file on top of the defaults.
// An empty path falls back to $SLICECRAFT_CONFIG; if that is unset too the defaults are returned.
// $SLICECRAFT_SEED overrides the world seed either way.
func Load(path string) (*Settings, error) {
	if path == "" {
		path = os.Getenv(envConfigPath)
	}

	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if v := os.Getenv(envSeed); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %s=%q", ErrInvalid, envSeed, v)
		}
		s.World.Seed = seed
	}

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks every section
func (s *Settings) Validate() error {
	if err := s.World.Validate(); err != nil {
		return err
	}
	if err := s.Physics.Validate(); err != nil {
		return err
	}
	if s.Game.FPSLimit < 0 || s.Game.BlockPixels <= 0 {
		return fmt.Errorf("%w: fps_limit %d, block_pixels %d", ErrInvalid, s.Game.FPSLimit, s.Game.BlockPixels)
	}
	if s.Storage.Backend != BackendFile && s.Storage.Backend != BackendBadger {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalid, s.Storage.Backend)
	}
	return nil
}
