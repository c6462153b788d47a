package game

import (
	"context"
	"fmt"
	"time"

	"slicecraft/internal/config"
	"slicecraft/internal/input"
	"slicecraft/internal/logging"
	"slicecraft/internal/physics"
	"slicecraft/internal/player"
	"slicecraft/internal/profiling"
	"slicecraft/internal/storage"
	"slicecraft/internal/world"

	"github.com/go-gl/mathgl/mgl64"
)

// Session owns one world and the player walking through it.
// It is driven by a single goroutine; nothing here is safe for concurrent use.
type Session struct {
	ID       string
	World    *world.World
	Player   *player.Player
	Settings config.Settings

	Metrics *profiling.Metrics
	Frames  int
}

// NewSession generates a world from settings and spawns the player on it.
// metrics may be nil.
func NewSession(ctx context.Context, settings config.Settings, metrics *profiling.Metrics) (*Session, error) {
	s := &Session{
		ID:       storage.NewID(),
		Settings: settings,
		Metrics:  metrics,
	}
	if err := s.generate(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Session) generate(ctx context.Context) error {
	start := time.Now()
	w, err := world.NewGenerator(s.Settings.World).Generate(ctx)
	if err != nil {
		return fmt.Errorf("generate world: %w", err)
	}
	elapsed := time.Since(start)
	s.Metrics.ObserveGenerate(elapsed, w.Count())
	logging.Infof("Generated %dx%dx%d world (seed %d, %s noise): %d blocks in %s",
		s.Settings.World.Width, s.Settings.World.Height, s.Settings.World.Depth,
		s.Settings.World.Seed, s.Settings.World.Noise, w.Count(), elapsed)

	s.World = w
	s.Player = player.New(spawnFor(w, s.Settings.Physics), s.Settings.Physics)
	return nil
}

// spawnFor finds ground level under the center column, skipping water
func spawnFor(w *world.World, ps config.PhysicsSettings) mgl64.Vec3 {
	spawn := world.SpawnPoint(w)
	slice := int(spawn.Z())
	_, height, _ := w.Size()
	if y, ok := physics.FindGroundLevel(w, slice, spawn.X(), ps.PlayerWidth, float64(height)); ok {
		spawn[1] = y
	}
	return spawn
}

// Reset regenerates the world from seed and respawns the player. The current
// world stays in place when generation fails.
func (s *Session) Reset(ctx context.Context, seed int64) error {
	prev := s.Settings.World
	s.Settings.World.Seed = seed
	if err := s.generate(ctx); err != nil {
		s.Settings.World = prev
		return err
	}
	s.ID = storage.NewID()
	s.Frames = 0
	return nil
}

// Tick advances the simulation by one frame and returns the renderer view
func (s *Session) Tick(in input.Snapshot, dt float64) Frame {
	defer profiling.Track("game.Tick")()
	start := time.Now()

	res := s.Player.Step(s.World, in, dt)
	s.Frames++

	if res.Respawned {
		s.Metrics.IncRespawn()
		logging.Debugf("Player fell out of the world, respawned at %v", s.Player.Spawn)
	}
	if res.Placed {
		s.Metrics.IncEdit(profiling.EditPlace)
		logging.Debugf("Placed %s at %d,%d,%d", res.Edit.Type, res.Edit.X, res.Edit.Y, res.Edit.Z)
	}
	if res.Broken {
		s.Metrics.IncEdit(profiling.EditBreak)
		logging.Debugf("Broke %s at %d,%d,%d", res.Edit.Type, res.Edit.X, res.Edit.Y, res.Edit.Z)
	}

	f := s.View()
	s.Metrics.ObserveStep(time.Since(start))
	return f
}

// Record flattens the session into a storage record
func (s *Session) Record() *storage.Record {
	width, height, depth := s.World.Size()
	raw := s.World.Blocks()
	blocks := make([]byte, len(raw))
	for i, t := range raw {
		blocks[i] = byte(t)
	}
	p := s.Player
	return &storage.Record{
		Width:  width,
		Height: height,
		Depth:  depth,
		Seed:   s.Settings.World.Seed,
		Blocks: blocks,
		Player: storage.PlayerRecord{
			X:         p.Position.X(),
			Y:         p.Position.Y(),
			Z:         p.Position.Z(),
			TargetZ:   p.TargetZ,
			VelocityY: p.VelocityY,
			OnGround:  p.OnGround,
			Facing:    int(p.Facing),
			SpawnX:    p.Spawn.X(),
			SpawnY:    p.Spawn.Y(),
			SpawnZ:    p.Spawn.Z(),
		},
	}
}

func (s *Session) Save(ctx context.Context, store storage.Store, id string) error {
	defer profiling.Track("game.Save")()
	if err := store.Save(ctx, id, s.Record()); err != nil {
		return fmt.Errorf("save session %s: %w", id, err)
	}
	logging.Infof("Saved session %s", id)
	return nil
}

// Load replaces the world and player with the saved ones. The session is left
// untouched on error.
func (s *Session) Load(ctx context.Context, store storage.Store, id string) error {
	defer profiling.Track("game.Load")()
	r, err := store.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("load session %s: %w", id, err)
	}

	blocks := make([]world.BlockType, len(r.Blocks))
	for i, b := range r.Blocks {
		blocks[i] = world.BlockType(b)
	}
	w, err := world.FromBlocks(r.Width, r.Height, r.Depth, blocks)
	if err != nil {
		return fmt.Errorf("load session %s: %w", id, err)
	}

	p := player.New(mgl64.Vec3{r.Player.SpawnX, r.Player.SpawnY, r.Player.SpawnZ}, s.Settings.Physics)
	p.Position = mgl64.Vec3{r.Player.X, r.Player.Y, r.Player.Z}
	_, _, depth := w.Size()
	p.TargetZ = min(max(r.Player.TargetZ, 0), depth-1)
	p.VelocityY = r.Player.VelocityY
	p.OnGround = r.Player.OnGround
	if !p.OnGround {
		p.State = player.StateAirborne
	}
	if r.Player.Facing == int(player.FacingLeft) {
		p.Facing = player.FacingLeft
	}

	s.World = w
	s.Player = p
	s.ID = id
	s.Settings.World.Seed = r.Seed
	s.Settings.World.Width, s.Settings.World.Height, s.Settings.World.Depth = r.Width, r.Height, r.Depth
	s.Metrics.ObserveGenerate(0, w.Count())
	logging.Infof("Loaded session %s (%dx%dx%d, seed %d)", id, r.Width, r.Height, r.Depth, r.Seed)
	return nil
}
