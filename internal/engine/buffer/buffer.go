package buffer

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// Errors returned by buffer operations.
var (
	ErrNoPath      = errors.New("buffer has no backing file")
	ErrFileChanged = errors.New("file modified on disk since opened")
)

// line is a single line of text plus its generation stamp.
type line struct {
	runes []rune
	gen   Generation
}

func newLine(text string) line {
	return line{runes: []rune(text), gen: NewGeneration()}
}

// Buffer wraps document content with cursor and dirty state.
// All methods are safe for concurrent use, though the editor loop is
// the only writer in practice.
type Buffer struct {
	mu         sync.RWMutex
	id         uuid.UUID
	name       string
	lines      []line
	cursor     Position
	desiredCol int
	dirty      bool

	file backingFile
}

// New creates a new empty buffer holding a single empty line.
func New(opts ...Option) *Buffer {
	b := &Buffer{
		id:    uuid.New(),
		lines: []line{newLine("")},
	}

	for _, opt := range opts {
		opt(b)
	}

	return b
}

// NewFromString creates a buffer with initial content.
// Line endings are normalized to LF.
func NewFromString(s string, opts ...Option) *Buffer {
	b := New(opts...)
	b.setContent(s)
	return b
}

// setContent replaces the buffer content, resetting cursor state.
func (b *Buffer) setContent(s string) {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	s = strings.TrimSuffix(s, "\n")

	parts := strings.Split(s, "\n")
	b.lines = make([]line, len(parts))
	for i, part := range parts {
		b.lines[i] = newLine(part)
	}
	b.cursor = Position{}
	b.desiredCol = 0
}

// ID returns the buffer's unique identity.
func (b *Buffer) ID() uuid.UUID {
	return b.id
}

// Name returns the buffer's display name.
func (b *Buffer) Name() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.name != "" {
		return b.name
	}
	return "[No Name]"
}

// Path returns the backing file path, or empty string.
func (b *Buffer) Path() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.file.path
}

// Dirty reports whether the buffer has unsaved changes.
func (b *Buffer) Dirty() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.dirty
}

// LineCount returns the number of lines. Always at least 1.
func (b *Buffer) LineCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.lines)
}

// LineText returns the text of a line (without newline).
// Out-of-range lines return the empty string.
func (b *Buffer) LineText(row int) string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if row < 0 || row >= len(b.lines) {
		return ""
	}
	return string(b.lines[row].runes)
}

// LineLen returns the length of a line in runes.
func (b *Buffer) LineLen(row int) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.lineLen(row)
}

func (b *Buffer) lineLen(row int) int {
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return len(b.lines[row].runes)
}

// LineGen returns the generation stamp of a line.
// Out-of-range lines return the zero generation.
func (b *Buffer) LineGen(row int) Generation {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if row < 0 || row >= len(b.lines) {
		return 0
	}
	return b.lines[row].gen
}

// Text returns the full buffer content with a trailing newline.
func (b *Buffer) Text() string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	var sb strings.Builder
	for _, ln := range b.lines {
		sb.WriteString(string(ln.runes))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Cursor returns the current cursor position.
func (b *Buffer) Cursor() Position {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.cursor
}

// DesiredCol returns the column vertical motion aims for.
func (b *Buffer) DesiredCol() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.desiredCol
}

// SetCursor moves the cursor to the given position, clamped into bounds.
// The clamped column becomes the new desired column.
func (b *Buffer) SetCursor(row, col int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setCursor(row, col)
	b.desiredCol = b.cursor.Col
}

// setCursor clamps and assigns the cursor without touching desiredCol.
func (b *Buffer) setCursor(row, col int) {
	if row < 0 {
		row = 0
	}
	if row >= len(b.lines) {
		row = len(b.lines) - 1
	}
	if col < 0 {
		col = 0
	}
	if max := len(b.lines[row].runes); col > max {
		col = max
	}
	b.cursor = Position{Line: row, Col: col}
}

// MoveHoriz moves the cursor n columns right (negative for left),
// clamped within the current line. The new column becomes the desired
// column.
func (b *Buffer) MoveHoriz(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setCursor(b.cursor.Line, b.cursor.Col+n)
	b.desiredCol = b.cursor.Col
}

// MoveVert moves the cursor n lines down (negative for up). The column
// clamps to the destination line length but the desired column is
// preserved, so a later move onto a long-enough line restores it.
func (b *Buffer) MoveVert(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()

	row := b.cursor.Line + n
	if row < 0 {
		row = 0
	}
	if row >= len(b.lines) {
		row = len(b.lines) - 1
	}

	col := b.desiredCol
	if max := len(b.lines[row].runes); col > max {
		col = max
	}
	b.cursor = Position{Line: row, Col: col}
}

// MoveLineStart moves the cursor to column 0.
func (b *Buffer) MoveLineStart() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor.Col = 0
	b.desiredCol = 0
}

// MoveLineEnd moves the cursor past the last character of the line.
func (b *Buffer) MoveLineEnd() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.cursor.Col = len(b.lines[b.cursor.Line].runes)
	b.desiredCol = b.cursor.Col
}

// Clamp re-clamps the cursor into bounds. Used after operations that
// may have shortened the buffer underneath the cursor.
func (b *Buffer) Clamp() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setCursor(b.cursor.Line, b.cursor.Col)
}
