package main

import (
	"fmt"
	"os"

	"slicecraft/internal/game"
	"slicecraft/internal/input"
	"slicecraft/internal/logging"
	"slicecraft/internal/player"
	"slicecraft/internal/profiling"
	"slicecraft/internal/snapshot"
)

// runHeadless steps the session with no input and writes the last frame as a PNG
func runHeadless(s *game.Session, ticks int, path string) error {
	if ticks < 0 {
		return usageError("-ticks must not be negative, got %d", ticks)
	}

	frame := s.View()
	for i := 0; i < ticks; i++ {
		profiling.ResetFrame()
		frame = s.Tick(input.Snapshot{}, player.NominalFrame)
	}
	logging.Infof("Simulated %d frames: %s", ticks, frame.Label)

	img := snapshot.Render(frame, snapshot.Options{
		BlockPixels: s.Settings.Game.BlockPixels,
		Label:       true,
	})

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	if err := snapshot.WritePNG(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	logging.Infof("Wrote %s", path)
	return nil
}
