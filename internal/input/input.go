package input

import (
	"sync"
)

// Action represents a logical game action, not a physical key
type Action int

const (
	ActionMoveLeft Action = iota
	ActionMoveRight
	ActionJump
	ActionPlace
	ActionBreak
	ActionSliceForward
	ActionSliceBack
	ActionToggleLabel
	ActionQuit
	ActionCount // Sentinel value for array sizing
)

var actionNames = [ActionCount]string{
	ActionMoveLeft:     "move_left",
	ActionMoveRight:    "move_right",
	ActionJump:         "jump",
	ActionPlace:        "place",
	ActionBreak:        "break",
	ActionSliceForward: "slice_forward",
	ActionSliceBack:    "slice_back",
	ActionToggleLabel:  "toggle_label",
	ActionQuit:         "quit",
}

func (a Action) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// Snapshot is the per-frame control intent handed to the simulation.
// ScrollDelta is the number of slices to shift, positive moves deeper.
type Snapshot struct {
	Left        bool
	Right       bool
	Jump        bool
	Place       bool
	Break       bool
	ScrollDelta int
}

// Manager tracks logical action state between device events and the frame step.
// Device callbacks call Press/Release/HandleScroll; the frame loop reads Snapshot and
// then calls PostUpdate.
type Manager struct {
	mu sync.RWMutex

	// Current frame state (indexed by Action)
	currentState [ActionCount]bool

	// Just pressed flags (reset each frame)
	justPressed [ActionCount]bool

	// Wheel notches accumulated since the last PostUpdate
	scroll float64
}

func NewManager() *Manager {
	return &Manager{}
}

// Press marks an action as held and records the rising edge
func (m *Manager) Press(action Action) {
	m.set(action, true)
}

// Release marks an action as released
func (m *Manager) Release(action Action) {
	m.set(action, false)
}

func (m *Manager) set(action Action, pressed bool) {
	if action < 0 || action >= ActionCount {
		return
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	// Detect edges immediately when event arrives
	if pressed && !m.currentState[action] {
		m.justPressed[action] = true
	}
	m.currentState[action] = pressed
}

// HandleScroll accumulates wheel movement. Positive offsets move toward the viewer,
// so they shift the target slice back.
func (m *Manager) HandleScroll(yoff float64) {
	m.mu.Lock()
	m.scroll -= yoff
	m.mu.Unlock()
}

// Snapshot builds the control intent for the current frame. Movement and jump are
// level triggered; place, break and slice keys fire once per press.
func (m *Manager) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s := Snapshot{
		Left:  m.currentState[ActionMoveLeft],
		Right: m.currentState[ActionMoveRight],
		Jump:  m.currentState[ActionJump],
		Place: m.justPressed[ActionPlace],
		Break: m.justPressed[ActionBreak],
	}
	if m.justPressed[ActionSliceForward] {
		s.ScrollDelta++
	}
	if m.justPressed[ActionSliceBack] {
		s.ScrollDelta--
	}
	s.ScrollDelta += notches(m.scroll)
	return s
}

// notches truncates accumulated wheel travel to whole slices
func notches(v float64) int {
	return int(v)
}

// PostUpdate must be called at the end of each frame to update edge detection states
// This should be called after all input checks are done
func (m *Manager) PostUpdate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	clear(m.justPressed[:])
	// Keep the fractional remainder so smooth wheels still add up
	m.scroll -= float64(notches(m.scroll))
}

// JustPressed returns true only if the action was pressed in the current frame
func (m *Manager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.justPressed[action]
}
