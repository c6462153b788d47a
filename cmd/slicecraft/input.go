package main

import (
	"context"

	"slicecraft/internal/config"
	"slicecraft/internal/input"
	"slicecraft/internal/logging"

	"github.com/go-gl/glfw/v3.3/glfw"
)

var keyBindings = map[glfw.Key]input.Action{
	glfw.KeyA:        input.ActionMoveLeft,
	glfw.KeyLeft:     input.ActionMoveLeft,
	glfw.KeyD:        input.ActionMoveRight,
	glfw.KeyRight:    input.ActionMoveRight,
	glfw.KeySpace:    input.ActionJump,
	glfw.KeyW:        input.ActionJump,
	glfw.KeyUp:       input.ActionJump,
	glfw.KeyE:        input.ActionPlace,
	glfw.KeyQ:        input.ActionBreak,
	glfw.KeyS:        input.ActionSliceForward,
	glfw.KeyPageDown: input.ActionSliceForward,
	glfw.KeyX:        input.ActionSliceBack,
	glfw.KeyPageUp:   input.ActionSliceBack,
	glfw.KeyL:        input.ActionToggleLabel,
	glfw.KeyEscape:   input.ActionQuit,
}

var mouseBindings = map[glfw.MouseButton]input.Action{
	glfw.MouseButtonLeft:  input.ActionBreak,
	glfw.MouseButtonRight: input.ActionPlace,
}

func setupInputHandlers(window *glfw.Window, loop *GameLoop, im *input.Manager) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action == glfw.Press {
			switch key {
			case glfw.KeyF5:
				loop.quickSave()
				return
			case glfw.KeyR:
				loop.reset(context.Background())
				return
			}
		}

		act, ok := keyBindings[key]
		if !ok {
			return
		}
		switch action {
		case glfw.Press, glfw.Repeat:
			im.Press(act)
		case glfw.Release:
			im.Release(act)
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		act, ok := mouseBindings[button]
		if !ok {
			return
		}
		if action == glfw.Press {
			im.Press(act)
		} else {
			im.Release(act)
		}
	})

	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		im.HandleScroll(yoff)
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		loop.renderer.UpdateViewport(fbWidth, fbHeight, loop.blockPixels)
	})

	// Refresh callback (called during window resize to prevent visual glitches)
	window.SetRefreshCallback(func(w *glfw.Window) {
		loop.RefreshRender()
	})
}

func (gl *GameLoop) handleInputActions() {
	if gl.inputManager.JustPressed(input.ActionToggleLabel) {
		config.SetShowLabel(!config.GetShowLabel())
	}
	if gl.inputManager.JustPressed(input.ActionQuit) {
		gl.window.SetShouldClose(true)
	}
}

func (gl *GameLoop) quickSave() {
	if gl.saveID == "" {
		logging.Warnf("No save slot configured, start with -save <id>")
		return
	}
	if err := gl.session.Save(context.Background(), gl.store, gl.saveID); err != nil {
		logging.Errorf("Quick save: %v", err)
	}
}

func (gl *GameLoop) reset(ctx context.Context) {
	seed := gl.session.Settings.World.Seed + 1
	if err := gl.session.Reset(ctx, seed); err != nil {
		logging.Errorf("Reset: %v", err)
	}
}
