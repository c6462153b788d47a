package main

import (
	"time"

	"slicecraft/internal/config"
	"slicecraft/internal/game"
	"slicecraft/internal/graphics"
	"slicecraft/internal/input"
	"slicecraft/internal/logging"
	"slicecraft/internal/profiling"
	"slicecraft/internal/storage"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// GameLoop manages the main game loop state
type GameLoop struct {
	window       *glfw.Window
	renderer     *graphics.Renderer
	session      *game.Session
	inputManager *input.Manager
	fpsLimiter   *game.FPSLimiter
	store        storage.Store
	saveID       string
	blockPixels  int

	frame game.Frame

	// Timing
	frames           int
	lastFPSCheckTime time.Time
	lastTitle        string
}

func runViewer(s *game.Session, store storage.Store, saveID string, gs config.GameSettings) error {
	if err := glfw.Init(); err != nil {
		return err
	}
	defer glfw.Terminate()

	window, err := setupWindow(gs.WindowWidth, gs.WindowHeight)
	if err != nil {
		return err
	}
	defer window.Destroy()

	fbWidth, fbHeight := window.GetFramebufferSize()
	r, err := graphics.NewRenderer(fbWidth, fbHeight, gs.BlockPixels)
	if err != nil {
		return err
	}
	defer r.Dispose()

	loop := &GameLoop{
		window:           window,
		renderer:         r,
		session:          s,
		inputManager:     input.NewManager(),
		fpsLimiter:       game.NewFPSLimiter(),
		store:            store,
		saveID:           saveID,
		blockPixels:      gs.BlockPixels,
		frame:            s.View(),
		lastFPSCheckTime: time.Now(),
	}
	setupInputHandlers(window, loop, loop.inputManager)
	loop.Run()
	return nil
}

// Run starts the main game loop
func (gl *GameLoop) Run() {
	var dt time.Duration
	for !gl.window.ShouldClose() {
		gl.tick(dt)
		dt = gl.fpsLimiter.Wait()
	}
}

func (gl *GameLoop) tick(dt time.Duration) {
	profiling.ResetFrame()

	// Poll events at start
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	gl.frame = gl.session.Tick(gl.inputManager.Snapshot(), dt.Seconds())
	gl.handleInputActions()

	gl.renderFrame()

	// Present
	func() { defer profiling.Track("glfw.SwapBuffers")(); gl.window.SwapBuffers() }()

	// Clear edge flags at end of frame
	gl.inputManager.PostUpdate()

	gl.updateTitle()
}

func (gl *GameLoop) renderFrame() {
	gl.renderer.Render(gl.frame, config.GetShowLabel())
	gl.frames++

	if time.Since(gl.lastFPSCheckTime) >= time.Second {
		logging.Debugf("FPS: %d, step: %v, top: %s",
			gl.frames, profiling.SumWithPrefix("player."), profiling.TopN(3))
		gl.frames = 0
		gl.lastFPSCheckTime = time.Now()
	}
}

// updateTitle mirrors the debug label into the window title
func (gl *GameLoop) updateTitle() {
	title := "slicecraft"
	if config.GetShowLabel() {
		title += " | " + gl.frame.Label
	}
	if title != gl.lastTitle {
		gl.window.SetTitle(title)
		gl.lastTitle = title
	}
}

// RefreshRender renders a frame without updating game state (used during window resize)
func (gl *GameLoop) RefreshRender() {
	gl.renderFrame()
	gl.window.SwapBuffers()
}
