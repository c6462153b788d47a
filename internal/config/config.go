package config

import "sync"

// RuntimeSettings holds knobs the viewer can change while the game is running
type RuntimeSettings struct {
	mu        sync.RWMutex
	fpsLimit  int
	showLabel bool
}

var globalRuntimeSettings = &RuntimeSettings{
	fpsLimit:  60, // matches the nominal physics frame
	showLabel: true,
}

// GetFPSLimit returns the frame cap used by the frame limiter (0 means uncapped)
func GetFPSLimit() int {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.fpsLimit
}

// SetFPSLimit sets the frame cap
func SetFPSLimit(limit int) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()

	// Clamp to reasonable values
	if limit < 0 {
		limit = 0
	}
	if limit > 240 {
		limit = 240
	}

	globalRuntimeSettings.fpsLimit = limit
}

// GetShowLabel returns whether the one-line debug label is drawn
func GetShowLabel() bool {
	globalRuntimeSettings.mu.RLock()
	defer globalRuntimeSettings.mu.RUnlock()
	return globalRuntimeSettings.showLabel
}

// SetShowLabel toggles the debug label
func SetShowLabel(show bool) {
	globalRuntimeSettings.mu.Lock()
	defer globalRuntimeSettings.mu.Unlock()
	globalRuntimeSettings.showLabel = show
}
