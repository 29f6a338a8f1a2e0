// Package renderer draws editor state onto a backend surface.
//
// The renderer is stateless between frames: every Draw composes the
// visible buffer window, highlight spans, selection overlay, status
// line, and cursor from scratch and hands cells to the backend. The
// incremental work lives in the highlight cache, not here.
package renderer

import (
	"fmt"

	"github.com/filedesless/ted/internal/engine/buffer"
	"github.com/filedesless/ted/internal/engine/selection"
	"github.com/filedesless/ted/internal/renderer/backend"
	"github.com/filedesless/ted/internal/renderer/core"
	"github.com/filedesless/ted/internal/renderer/highlight"
	"github.com/filedesless/ted/internal/renderer/viewport"
)

// Frame is everything the renderer needs to draw one frame.
type Frame struct {
	Buffer    *buffer.Buffer
	Cache     *highlight.Cache
	Viewport  *viewport.Viewport
	Selection *selection.Model

	// Mode is the status-line mode label.
	Mode string

	// Pending is the in-flight count or chain prefix, if any.
	Pending string

	// Status is a transient message shown in the status line.
	Status string

	// TabWidth is the display width of a tab stop. Zero means 4.
	TabWidth int

	// ShowWhitespace renders tabs and trailing spaces visibly.
	ShowWhitespace bool
}

func (f Frame) tabWidth() int {
	if f.TabWidth < 1 {
		return 4
	}
	return f.TabWidth
}

// Renderer draws frames onto a backend.
type Renderer struct {
	be    backend.Backend
	theme highlight.Theme
}

// New creates a renderer drawing with the given theme.
func New(be backend.Backend, theme highlight.Theme) *Renderer {
	if theme == nil {
		theme = highlight.DefaultTheme()
	}
	return &Renderer{be: be, theme: theme}
}

// SetTheme replaces the color scheme.
func (r *Renderer) SetTheme(theme highlight.Theme) {
	r.theme = theme
}

// TextHeight returns the number of rows available for buffer text,
// reserving the status line.
func (r *Renderer) TextHeight() int {
	_, h := r.be.Size()
	if h <= 1 {
		return 1
	}
	return h - 1
}

// Draw renders one frame and flushes it.
func (r *Renderer) Draw(f Frame) {
	width, height := r.be.Size()
	if width <= 0 || height <= 0 {
		return
	}
	r.be.Clear()

	textHeight := height - 1
	if textHeight < 1 {
		textHeight = height
	}

	r.drawText(f, width, textHeight)
	if height > 1 {
		r.drawStatusLine(f, width, height-1)
	}
	r.placeCursor(f)
	r.be.Show()
}

func (r *Renderer) drawText(f Frame, width, textHeight int) {
	vp := f.Viewport
	top := vp.TopLine()
	left := vp.LeftCol()
	cursor := f.Buffer.Cursor()
	lineCount := f.Buffer.LineCount()

	last := top + textHeight - 1
	if last > lineCount-1 {
		last = lineCount - 1
	}
	var rows [][]highlight.Token
	if f.Cache != nil {
		rows = f.Cache.Range(f.Buffer, top, last)
	}

	tildeStyle := core.DefaultStyle()
	tildeStyle.Attributes |= core.AttrDim

	for y := 0; y < textHeight; y++ {
		row := top + y
		if row >= lineCount {
			r.be.SetCell(0, y, core.NewStyledCell('~', tildeStyle))
			continue
		}

		var spans []core.StyleSpan
		if rows != nil && row-top < len(rows) {
			spans = r.theme.Spans(rows[row-top])
		}

		runes := []rune(f.Buffer.LineText(row))
		tab := f.tabWidth()
		lastInk := lastNonSpace(runes)
		x := -left
		for col := 0; col < len(runes) && x < width; col++ {
			ch := runes[col]
			cells := 1
			dim := false
			switch {
			case ch == '\t':
				cells = tab - (x+left)%tab
				ch = ' '
				if f.ShowWhitespace {
					ch = '»'
					dim = true
				}
			case f.ShowWhitespace && ch == ' ' && col > lastInk:
				ch = '·'
				dim = true
			}

			style := core.StyleAt(spans, col)
			if dim {
				style.Attributes |= core.AttrDim
			}
			if r.selected(f, cursor, row, col) {
				style = style.Reverse()
			}
			for i := 0; i < cells; i++ {
				if x >= 0 && x < width {
					r.be.SetCell(x, y, core.NewStyledCell(ch, style))
				}
				x++
				if ch == '»' {
					ch = ' '
				}
			}
		}

		// Line-wise selections highlight one trailing cell so empty
		// and fully-selected lines stay visible.
		if x >= 0 && x < width && r.selected(f, cursor, row, len(runes)) {
			r.be.SetCell(x, y, core.NewStyledCell(' ', core.DefaultStyle().Reverse()))
		}
	}
}

// lastNonSpace returns the index of the last non-space rune, or -1
// for an all-space line.
func lastNonSpace(runes []rune) int {
	for i := len(runes) - 1; i >= 0; i-- {
		if runes[i] != ' ' && runes[i] != '\t' {
			return i
		}
	}
	return -1
}

// displayX returns the screen column of a buffer column after tab
// expansion.
func displayX(runes []rune, col, tab int) int {
	x := 0
	for i := 0; i < col && i < len(runes); i++ {
		if runes[i] == '\t' {
			x += tab - x%tab
		} else {
			x++
		}
	}
	if col > len(runes) {
		x += col - len(runes)
	}
	return x
}

// selected reports whether a buffer cell is inside the active
// selection.
func (r *Renderer) selected(f Frame, cursor buffer.Position, row, col int) bool {
	if f.Selection == nil {
		return false
	}
	return f.Selection.Covers(cursor, buffer.Position{Line: row, Col: col})
}

// drawStatusLine renders the bottom bar: mode, buffer name, dirty
// marker, transient message, and cursor position.
func (r *Renderer) drawStatusLine(f Frame, width, y int) {
	cursor := f.Buffer.Cursor()

	left := fmt.Sprintf(" %s  %s", f.Mode, f.Buffer.Name())
	if f.Buffer.Dirty() {
		left += " [+]"
	}
	if f.Status != "" {
		left += "  " + f.Status
	} else if f.Pending != "" {
		left += "  " + f.Pending
	}

	right := fmt.Sprintf("%d:%d ", cursor.Line+1, cursor.Col+1)

	bar := core.DefaultStyle().Reverse()
	lr := []rune(left)
	rr := []rune(right)

	for x := 0; x < width; x++ {
		ch := ' '
		switch {
		case x < len(lr):
			ch = lr[x]
		case x >= width-len(rr):
			ch = rr[x-(width-len(rr))]
		}
		r.be.SetCell(x, y, core.NewStyledCell(ch, bar))
	}
}

func (r *Renderer) placeCursor(f Frame) {
	cursor := f.Buffer.Cursor()
	row, _, ok := f.Viewport.ScreenPos(buffer.Position{Line: cursor.Line, Col: f.Viewport.LeftCol()})
	if !ok {
		return
	}

	runes := []rune(f.Buffer.LineText(cursor.Line))
	x := displayX(runes, cursor.Col, f.tabWidth()) - f.Viewport.LeftCol()
	if x < 0 || x >= f.Viewport.Width() {
		return
	}
	r.be.SetCursor(x, row)
}
