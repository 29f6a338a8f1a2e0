// Package backend abstracts the terminal away from the renderer.
//
// The Terminal backend drives a real tty through tcell. The Null
// backend renders into memory and feeds scripted events, which is what
// the tests use.
package backend

import (
	"github.com/filedesless/ted/internal/input/key"
	"github.com/filedesless/ted/internal/renderer/core"
)

// Event is an input event delivered by a backend.
type Event interface {
	isEvent()
}

// KeyEvent carries a key press.
type KeyEvent struct {
	Key key.Event
}

// ResizeEvent reports a new terminal size.
type ResizeEvent struct {
	Width  int
	Height int
}

// QuitEvent reports that the event stream ended.
type QuitEvent struct{}

func (KeyEvent) isEvent()    {}
func (ResizeEvent) isEvent() {}
func (QuitEvent) isEvent()   {}

// Backend is a drawable surface plus an event source.
type Backend interface {
	// Init prepares the surface. Must be called before any other method.
	Init() error

	// Fini releases the surface and restores the terminal.
	Fini()

	// Size returns the surface dimensions in cells.
	Size() (width, height int)

	// Clear resets every cell to the empty cell.
	Clear()

	// SetCell writes one cell. Out-of-bounds writes are ignored.
	SetCell(x, y int, cell core.Cell)

	// SetCursor places the hardware cursor.
	SetCursor(x, y int)

	// Show flushes pending writes to the surface.
	Show()

	// PollEvent blocks for the next input event.
	PollEvent() Event
}
