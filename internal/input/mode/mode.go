// Package mode implements the editor's modal state machine.
//
// The editor is always in exactly one mode. Modes decide how raw key
// events are interpreted: Normal maps keys to commands, Insert feeds
// printable runes into the buffer, Visual extends a selection, Chain
// collects a space-prefixed command sequence, and Prompt edits a
// minibuffer line.
package mode

import "fmt"

// Mode identifies an editing mode.
type Mode int

const (
	// Normal is the command mode the editor starts in.
	Normal Mode = iota
	// Insert feeds printable keys into the buffer.
	Insert
	// Visual extends a selection with motion keys.
	Visual
	// Chain collects a space-prefixed key sequence.
	Chain
	// Prompt edits a minibuffer line submitted to a command.
	Prompt
)

// String returns the status-line label for the mode.
func (m Mode) String() string {
	switch m {
	case Normal:
		return "NORMAL"
	case Insert:
		return "INSERT"
	case Visual:
		return "VISUAL"
	case Chain:
		return "SPC"
	case Prompt:
		return "PROMPT"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Manager tracks the current mode and the transition history needed to
// leave Visual or Chain back to the right place.
type Manager struct {
	current Mode
}

// NewManager returns a manager starting in Normal mode.
func NewManager() *Manager {
	return &Manager{current: Normal}
}

// Current returns the active mode.
func (m *Manager) Current() Mode {
	return m.current
}

// Set transitions to the given mode.
func (m *Manager) Set(mode Mode) {
	m.current = mode
}

// Reset returns to Normal mode.
func (m *Manager) Reset() {
	m.current = Normal
}
