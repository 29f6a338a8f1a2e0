package backend

import (
	"strings"
	"sync"

	"github.com/filedesless/ted/internal/input/key"
	"github.com/filedesless/ted/internal/renderer/core"
)

// Null is an in-memory backend for tests. Cells are kept in a grid
// that tests can inspect; events come from a queue the test fills.
type Null struct {
	mu      sync.Mutex
	width   int
	height  int
	cells   [][]core.Cell
	cursorX int
	cursorY int
	events  chan Event
	shows   int
}

// NewNull creates a null backend of the given size.
func NewNull(width, height int) *Null {
	n := &Null{
		width:  width,
		height: height,
		events: make(chan Event, 64),
	}
	n.alloc()
	return n
}

func (n *Null) alloc() {
	n.cells = make([][]core.Cell, n.height)
	for y := range n.cells {
		n.cells[y] = make([]core.Cell, n.width)
		for x := range n.cells[y] {
			n.cells[y][x] = core.EmptyCell()
		}
	}
}

// Init implements Backend.
func (n *Null) Init() error { return nil }

// Fini implements Backend.
func (n *Null) Fini() {}

// Size implements Backend.
func (n *Null) Size() (int, int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.width, n.height
}

// Clear implements Backend.
func (n *Null) Clear() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alloc()
}

// SetCell implements Backend.
func (n *Null) SetCell(x, y int, cell core.Cell) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if x < 0 || x >= n.width || y < 0 || y >= n.height {
		return
	}
	n.cells[y][x] = cell
}

// SetCursor implements Backend.
func (n *Null) SetCursor(x, y int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.cursorX, n.cursorY = x, y
}

// Show implements Backend.
func (n *Null) Show() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shows++
}

// PollEvent implements Backend. It blocks until an event is queued.
func (n *Null) PollEvent() Event {
	return <-n.events
}

// SendKey queues a key press.
func (n *Null) SendKey(ev key.Event) {
	n.events <- KeyEvent{Key: ev}
}

// SendKeys queues one key press per rune.
func (n *Null) SendKeys(s string) {
	for _, r := range s {
		n.SendKey(key.NewRune(r))
	}
}

// SendResize queues a resize and grows the cell grid.
func (n *Null) SendResize(width, height int) {
	n.mu.Lock()
	n.width, n.height = width, height
	n.alloc()
	n.mu.Unlock()
	n.events <- ResizeEvent{Width: width, Height: height}
}

// SendQuit queues a stream-end event.
func (n *Null) SendQuit() {
	n.events <- QuitEvent{}
}

// CellAt returns the cell at the given coordinates.
func (n *Null) CellAt(x, y int) core.Cell {
	n.mu.Lock()
	defer n.mu.Unlock()
	if x < 0 || x >= n.width || y < 0 || y >= n.height {
		return core.EmptyCell()
	}
	return n.cells[y][x]
}

// Row returns the text content of a row, right-trimmed.
func (n *Null) Row(y int) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	if y < 0 || y >= n.height {
		return ""
	}
	var sb strings.Builder
	for _, cell := range n.cells[y] {
		sb.WriteRune(cell.Rune)
	}
	return strings.TrimRight(sb.String(), " ")
}

// Cursor returns the hardware cursor position.
func (n *Null) Cursor() (x, y int) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.cursorX, n.cursorY
}

// Shows returns how many times the surface was flushed.
func (n *Null) Shows() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.shows
}
