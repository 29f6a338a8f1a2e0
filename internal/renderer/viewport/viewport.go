// Package viewport tracks the window onto the buffer: which lines and
// columns are visible, and how the window follows the cursor.
package viewport

import "github.com/filedesless/ted/internal/engine/buffer"

// Viewport is the visible window onto a buffer. TopLine and LeftCol
// are the buffer coordinates of the top-left visible cell; Width and
// Height are the text area dimensions in cells.
type Viewport struct {
	topLine int
	leftCol int
	width   int
	height  int
	margin  int
}

// New creates a viewport of the given text-area size anchored at the
// top of the buffer.
func New(width, height int) *Viewport {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	return &Viewport{width: width, height: height}
}

// TopLine returns the first visible buffer line.
func (v *Viewport) TopLine() int { return v.topLine }

// LeftCol returns the first visible buffer column.
func (v *Viewport) LeftCol() int { return v.leftCol }

// Width returns the text area width in cells.
func (v *Viewport) Width() int { return v.width }

// Height returns the text area height in rows.
func (v *Viewport) Height() int { return v.height }

// BottomLine returns the last visible buffer line (inclusive).
func (v *Viewport) BottomLine() int {
	return v.topLine + v.height - 1
}

// Contains reports whether the given buffer line is visible.
func (v *Viewport) Contains(line int) bool {
	return line >= v.topLine && line <= v.BottomLine()
}

// Resize changes the text-area dimensions, keeping the top-left anchor.
// Callers should follow with EnsureVisible to re-contain the cursor.
func (v *Viewport) Resize(width, height int) {
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}
	v.width = width
	v.height = height
}

// SetMargin sets the scroll margin: the number of lines kept between
// the cursor and the window edge when scrolling.
func (v *Viewport) SetMargin(margin int) {
	if margin < 0 {
		margin = 0
	}
	v.margin = margin
}

// EnsureVisible scrolls the minimal amount needed to keep the cursor
// inside the window, honoring the scroll margin. A cursor already
// inside the margins leaves the viewport untouched, so small motions
// near the middle of the screen never scroll.
func (v *Viewport) EnsureVisible(cursor buffer.Position) {
	m := v.margin
	if max := (v.height - 1) / 2; m > max {
		m = max
	}

	if cursor.Line-m < v.topLine {
		v.topLine = cursor.Line - m
		if v.topLine < 0 {
			v.topLine = 0
		}
	} else if cursor.Line+m > v.BottomLine() {
		v.topLine = cursor.Line + m - v.height + 1
	}

	if cursor.Col < v.leftCol {
		v.leftCol = cursor.Col
	} else if cursor.Col >= v.leftCol+v.width {
		v.leftCol = cursor.Col - v.width + 1
	}
}

// Scroll moves the window by delta lines, clamped so the top stays
// within the buffer.
func (v *Viewport) Scroll(delta, lineCount int) {
	v.topLine += delta
	v.clampTop(lineCount)
}

// PageDown advances the window a full page and returns the line the
// cursor should land on to stay inside the window.
func (v *Viewport) PageDown(cursor buffer.Position, lineCount int) int {
	v.topLine += v.height
	v.clampTop(lineCount)

	line := cursor.Line + v.height
	if line > lineCount-1 {
		line = lineCount - 1
	}
	return line
}

// PageUp moves the window a full page back and returns the line the
// cursor should land on.
func (v *Viewport) PageUp(cursor buffer.Position) int {
	v.topLine -= v.height
	if v.topLine < 0 {
		v.topLine = 0
	}

	line := cursor.Line - v.height
	if line < 0 {
		line = 0
	}
	return line
}

// clampTop keeps the top line within [0, lineCount-1].
func (v *Viewport) clampTop(lineCount int) {
	if max := lineCount - 1; v.topLine > max {
		v.topLine = max
	}
	if v.topLine < 0 {
		v.topLine = 0
	}
}

// ScreenPos translates a buffer position to screen coordinates within
// the text area. Reports false when the position is outside the window.
func (v *Viewport) ScreenPos(pos buffer.Position) (row, col int, ok bool) {
	row = pos.Line - v.topLine
	col = pos.Col - v.leftCol
	if row < 0 || row >= v.height || col < 0 || col >= v.width {
		return 0, 0, false
	}
	return row, col, true
}
