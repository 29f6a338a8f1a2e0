// Package selection tracks the active visual selection.
//
// A selection is anchored where visual mode began and extends to the
// cursor. It is either char-wise (an inclusive run of characters) or
// line-wise (whole lines regardless of columns).
package selection

import "github.com/filedesless/ted/internal/engine/buffer"

// Kind distinguishes char-wise from line-wise selections.
type Kind int

const (
	// CharWise selects an inclusive range of characters.
	CharWise Kind = iota
	// LineWise selects whole lines.
	LineWise
)

// String returns the mode-line label for the selection kind.
func (k Kind) String() string {
	if k == LineWise {
		return "VISUAL LINE"
	}
	return "VISUAL"
}

// Model holds the current selection, if any.
type Model struct {
	active bool
	kind   Kind
	anchor buffer.Position
}

// New returns an inactive selection model.
func New() *Model {
	return &Model{}
}

// Active reports whether a selection exists.
func (m *Model) Active() bool {
	return m.active
}

// Kind returns the kind of the active selection. Meaningless when
// inactive.
func (m *Model) Kind() Kind {
	return m.kind
}

// Anchor returns the position where the selection began.
func (m *Model) Anchor() buffer.Position {
	return m.anchor
}

// Begin starts a selection of the given kind anchored at pos. Starting
// a selection while one is active re-anchors it.
func (m *Model) Begin(kind Kind, pos buffer.Position) {
	m.active = true
	m.kind = kind
	m.anchor = pos
}

// SetKind switches the active selection between char-wise and
// line-wise without moving the anchor.
func (m *Model) SetKind(kind Kind) {
	m.kind = kind
}

// Cancel clears the selection.
func (m *Model) Cancel() {
	m.active = false
}

// Range returns the normalized selection span given the current cursor.
// For char-wise selections both endpoints are inclusive character
// positions. For line-wise selections the columns span the full extent
// of the start and end lines; callers should treat the range as whole
// lines. Returns false when no selection is active.
func (m *Model) Range(cursor buffer.Position) (start, end buffer.Position, ok bool) {
	if !m.active {
		return buffer.Position{}, buffer.Position{}, false
	}

	start, end = m.anchor, cursor
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// Lines returns the inclusive line span of the active selection.
func (m *Model) Lines(cursor buffer.Position) (first, last int, ok bool) {
	start, end, ok := m.Range(cursor)
	if !ok {
		return 0, 0, false
	}
	return start.Line, end.Line, true
}

// Covers reports whether the given position falls inside the active
// selection, honoring the selection kind.
func (m *Model) Covers(cursor, pos buffer.Position) bool {
	start, end, ok := m.Range(cursor)
	if !ok {
		return false
	}
	if m.kind == LineWise {
		return pos.Line >= start.Line && pos.Line <= end.Line
	}
	if pos.Before(start) {
		return false
	}
	return !end.Before(pos)
}
