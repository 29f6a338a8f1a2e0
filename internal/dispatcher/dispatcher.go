// Package dispatcher turns key events into editor commands.
//
// The dispatcher owns the modal interpretation of input: it consults
// the current mode, the pending numeric prefix, and the pending chain
// sequence, executes the resolved command against the buffer,
// selection, and register, and reports highlight invalidation to its
// notifier as it mutates lines.
package dispatcher

import (
	"errors"
	"fmt"
	"strings"

	"github.com/filedesless/ted/internal/engine/buffer"
	"github.com/filedesless/ted/internal/engine/clipboard"
	"github.com/filedesless/ted/internal/engine/selection"
	"github.com/filedesless/ted/internal/input/key"
	"github.com/filedesless/ted/internal/input/mode"
	"github.com/filedesless/ted/internal/renderer/viewport"
)

// Notifier receives line invalidation as the dispatcher edits the
// buffer. The highlight cache implements it.
type Notifier interface {
	// LinesChanged marks a row (and implicitly everything below it)
	// as needing revalidation after an in-place edit.
	LinesChanged(row int)

	// LinesShifted remaps rows after delta lines were inserted
	// (positive) or deleted (negative) at row.
	LinesShifted(row, delta int)
}

// nopNotifier is used when no cache is attached.
type nopNotifier struct{}

func (nopNotifier) LinesChanged(int)      {}
func (nopNotifier) LinesShifted(int, int) {}

// Result reports what a keystroke did beyond mutating the buffer.
type Result struct {
	// Quit is set when the editor should exit.
	Quit bool

	// NewBuffer is set when the user asked for a fresh scratch buffer.
	NewBuffer bool

	// NextBuffer is set when the user asked to cycle to the next buffer.
	NextBuffer bool

	// Open is the path the user asked to open, empty for none.
	Open string

	// Status is a message for the status line, empty for none.
	Status string
}

// Dispatcher interprets keystrokes for one buffer.
type Dispatcher struct {
	buf    *buffer.Buffer
	sel    *selection.Model
	reg    *clipboard.Register
	modes  *mode.Manager
	vp     *viewport.Viewport
	notify Notifier

	count mode.CountState
	chain []key.Event

	promptLabel string
	promptKind  promptKind
	promptInput []rune
}

// New creates a dispatcher. notify may be nil.
func New(buf *buffer.Buffer, sel *selection.Model, reg *clipboard.Register,
	modes *mode.Manager, vp *viewport.Viewport, notify Notifier) *Dispatcher {
	if notify == nil {
		notify = nopNotifier{}
	}
	return &Dispatcher{
		buf:    buf,
		sel:    sel,
		reg:    reg,
		modes:  modes,
		vp:     vp,
		notify: notify,
	}
}

// SetBuffer points the dispatcher at a different buffer, resetting all
// pending input state.
func (d *Dispatcher) SetBuffer(buf *buffer.Buffer, notify Notifier) {
	if notify == nil {
		notify = nopNotifier{}
	}
	d.buf = buf
	d.notify = notify
	d.sel.Cancel()
	d.count.Reset()
	d.chain = nil
	d.promptInput = nil
	d.modes.Reset()
}

// Pending returns the in-flight input prefix for the status line: the
// accumulated count in Normal/Visual, the chain so far, or the prompt
// line being typed.
func (d *Dispatcher) Pending() string {
	if d.modes.Current() == mode.Prompt {
		return d.promptLabel + ": " + string(d.promptInput)
	}
	if d.modes.Current() == mode.Chain {
		parts := []string{"SPC"}
		for _, ev := range d.chain {
			parts = append(parts, ev.String())
		}
		return strings.Join(parts, " ")
	}
	if d.count.Pending() {
		return fmt.Sprintf("%d", d.count.Peek())
	}
	return ""
}

// Handle executes one keystroke in the current mode.
func (d *Dispatcher) Handle(ev key.Event) Result {
	// Ctrl-c behaves like escape everywhere.
	if ev.Mods == key.ModCtrl && ev.Rune == 'c' {
		ev = key.NewKey(key.KeyEscape)
	}

	switch d.modes.Current() {
	case mode.Insert:
		return d.handleInsert(ev)
	case mode.Visual:
		return d.handleVisual(ev)
	case mode.Chain:
		return d.handleChain(ev)
	case mode.Prompt:
		return d.handlePrompt(ev)
	default:
		return d.handleNormal(ev)
	}
}

func (d *Dispatcher) handleNormal(ev key.Event) Result {
	if ev.IsDigit() && d.count.Push(ev.Rune) {
		return Result{}
	}

	switch ev.Code {
	case key.KeyEscape:
		d.count.Reset()
		return Result{}
	case key.KeyLeft:
		d.buf.MoveHoriz(-d.count.Take())
		return Result{}
	case key.KeyRight:
		d.buf.MoveHoriz(d.count.Take())
		return Result{}
	case key.KeyUp:
		d.buf.MoveVert(-d.count.Take())
		return Result{}
	case key.KeyDown:
		d.buf.MoveVert(d.count.Take())
		return Result{}
	case key.KeyPageDown:
		d.pageDown(d.count.Take())
		return Result{}
	case key.KeyPageUp:
		d.pageUp(d.count.Take())
		return Result{}
	case key.KeyHome:
		d.count.Reset()
		d.buf.MoveLineStart()
		return Result{}
	case key.KeyEnd:
		d.count.Reset()
		d.buf.MoveLineEnd()
		return Result{}
	}

	if !ev.IsRune() {
		d.count.Reset()
		return Result{Status: fmt.Sprintf("%s is undefined", ev)}
	}

	switch ev.Rune {
	case 'h':
		d.buf.MoveHoriz(-d.count.Take())
	case 'l':
		d.buf.MoveHoriz(d.count.Take())
	case 'j':
		d.buf.MoveVert(d.count.Take())
	case 'k':
		d.buf.MoveVert(-d.count.Take())
	case 'J':
		d.pageDown(d.count.Take())
	case 'K':
		d.pageUp(d.count.Take())
	case 'H':
		d.count.Reset()
		d.buf.MoveLineStart()
	case 'L':
		d.count.Reset()
		d.buf.MoveLineEnd()

	case 'i':
		d.count.Reset()
		d.modes.Set(mode.Insert)
	case 'I':
		d.count.Reset()
		d.buf.MoveLineStart()
		d.modes.Set(mode.Insert)
	case 'a':
		d.count.Reset()
		d.buf.MoveHoriz(1)
		d.modes.Set(mode.Insert)
	case 'A':
		d.count.Reset()
		d.buf.MoveLineEnd()
		d.modes.Set(mode.Insert)
	case 'o':
		d.count.Reset()
		row := d.buf.Cursor().Line
		d.buf.OpenLineBelow()
		d.notify.LinesShifted(row+1, 1)
		d.modes.Set(mode.Insert)
	case 'O':
		d.count.Reset()
		row := d.buf.Cursor().Line
		d.buf.OpenLineAbove()
		d.notify.LinesShifted(row, 1)
		d.modes.Set(mode.Insert)

	case 'd':
		row := d.buf.Cursor().Line
		if removed := d.buf.DeleteChars(d.count.Take()); removed != "" {
			d.reg.SetChars(removed)
			d.notify.LinesChanged(row)
		}
	case 'D':
		row := d.buf.Cursor().Line
		if removed := d.buf.DeleteLines(d.count.Take()); len(removed) > 0 {
			d.reg.SetLines(removed)
			d.notify.LinesShifted(row, -len(removed))
			d.notify.LinesChanged(row)
		}
	case 'c':
		if text := d.buf.CopyChars(d.count.Take()); text != "" {
			d.reg.SetChars(text)
		}
	case 'C':
		if lines := d.buf.CopyLines(d.count.Take()); len(lines) > 0 {
			d.reg.SetLines(lines)
		}
	case 'p':
		return d.paste(d.count.Take(), false)
	case 'P':
		return d.paste(d.count.Take(), true)

	case 'v':
		d.count.Reset()
		d.sel.Begin(selection.CharWise, d.buf.Cursor())
		d.modes.Set(mode.Visual)
	case 'V':
		d.count.Reset()
		d.sel.Begin(selection.LineWise, d.buf.Cursor())
		d.modes.Set(mode.Visual)

	case ' ':
		d.count.Reset()
		d.chain = nil
		d.modes.Set(mode.Chain)

	default:
		d.count.Reset()
		return Result{Status: fmt.Sprintf("%s is undefined", ev)}
	}

	return Result{}
}

func (d *Dispatcher) handleInsert(ev key.Event) Result {
	switch ev.Code {
	case key.KeyEscape:
		d.modes.Reset()
		return Result{}
	case key.KeyEnter:
		row := d.buf.Cursor().Line
		d.buf.SplitLine()
		d.notify.LinesChanged(row)
		d.notify.LinesShifted(row+1, 1)
		return Result{}
	case key.KeyTab:
		row := d.buf.Cursor().Line
		d.buf.InsertRune('\t')
		d.notify.LinesChanged(row)
		return Result{}
	case key.KeyBackspace:
		pos := d.buf.Cursor()
		d.buf.Backspace()
		if pos.Col == 0 && pos.Line > 0 {
			d.notify.LinesChanged(pos.Line - 1)
			d.notify.LinesShifted(pos.Line, -1)
		} else {
			d.notify.LinesChanged(pos.Line)
		}
		return Result{}
	case key.KeyDelete:
		row := d.buf.Cursor().Line
		if d.buf.DeleteChars(1) != "" {
			d.notify.LinesChanged(row)
		}
		return Result{}
	case key.KeyLeft:
		d.buf.MoveHoriz(-1)
		return Result{}
	case key.KeyRight:
		d.buf.MoveHoriz(1)
		return Result{}
	case key.KeyUp:
		d.buf.MoveVert(-1)
		return Result{}
	case key.KeyDown:
		d.buf.MoveVert(1)
		return Result{}
	}

	if ev.Code == key.KeyRune && ev.Mods&key.ModCtrl == 0 {
		row := d.buf.Cursor().Line
		d.buf.InsertRune(ev.Rune)
		d.notify.LinesChanged(row)
	}
	return Result{}
}

func (d *Dispatcher) handleVisual(ev key.Event) Result {
	if ev.IsDigit() && d.count.Push(ev.Rune) {
		return Result{}
	}

	switch ev.Code {
	case key.KeyEscape:
		d.sel.Cancel()
		d.count.Reset()
		d.modes.Reset()
		return Result{}
	case key.KeyLeft:
		d.buf.MoveHoriz(-d.count.Take())
		return Result{}
	case key.KeyRight:
		d.buf.MoveHoriz(d.count.Take())
		return Result{}
	case key.KeyUp:
		d.buf.MoveVert(-d.count.Take())
		return Result{}
	case key.KeyDown:
		d.buf.MoveVert(d.count.Take())
		return Result{}
	}

	if !ev.IsRune() {
		d.count.Reset()
		return Result{}
	}

	switch ev.Rune {
	case 'h':
		d.buf.MoveHoriz(-d.count.Take())
	case 'l':
		d.buf.MoveHoriz(d.count.Take())
	case 'j':
		d.buf.MoveVert(d.count.Take())
	case 'k':
		d.buf.MoveVert(-d.count.Take())
	case 'J':
		d.pageDown(d.count.Take())
	case 'K':
		d.pageUp(d.count.Take())
	case 'H':
		d.count.Reset()
		d.buf.MoveLineStart()
	case 'L':
		d.count.Reset()
		d.buf.MoveLineEnd()

	case 'v':
		d.count.Reset()
		d.sel.Begin(selection.CharWise, d.buf.Cursor())
	case 'V':
		d.count.Reset()
		d.sel.Begin(selection.LineWise, d.buf.Cursor())

	case 'd':
		d.count.Reset()
		d.deleteSelection()
		d.modes.Reset()
	case 'c':
		d.count.Reset()
		d.copySelection()
		d.sel.Cancel()
		d.modes.Reset()

	default:
		d.count.Reset()
	}

	return Result{}
}

// deleteSelection cuts the active selection to the register.
func (d *Dispatcher) deleteSelection() {
	cursor := d.buf.Cursor()

	if d.sel.Kind() == selection.LineWise {
		first, last, ok := d.sel.Lines(cursor)
		if !ok {
			return
		}
		d.buf.SetCursor(first, 0)
		removed := d.buf.DeleteLines(last - first + 1)
		d.reg.SetLines(removed)
		d.notify.LinesShifted(first, -len(removed))
		d.notify.LinesChanged(first)
		d.sel.Cancel()
		return
	}

	start, end, ok := d.sel.Range(cursor)
	if !ok {
		return
	}
	removed := d.buf.DeleteRange(start, end)
	d.reg.SetChars(removed)
	if delta := end.Line - start.Line; delta > 0 {
		d.notify.LinesShifted(start.Line+1, -delta)
	}
	d.notify.LinesChanged(start.Line)
	d.sel.Cancel()
}

// copySelection yanks the active selection to the register.
func (d *Dispatcher) copySelection() {
	cursor := d.buf.Cursor()

	if d.sel.Kind() == selection.LineWise {
		first, last, ok := d.sel.Lines(cursor)
		if !ok {
			return
		}
		lines := make([]string, 0, last-first+1)
		for row := first; row <= last; row++ {
			lines = append(lines, d.buf.LineText(row))
		}
		d.reg.SetLines(lines)
		return
	}

	start, end, ok := d.sel.Range(cursor)
	if !ok {
		return
	}
	d.reg.SetChars(d.buf.TextRange(start, end))
}

// paste inserts the register at the cursor, count times. Char-wise
// content goes inline; line-wise content goes below (or above) the
// cursor line as whole lines, cursor landing on the first pasted line.
func (d *Dispatcher) paste(count int, above bool) Result {
	lines, kind, ok := d.reg.Get()
	if !ok {
		return Result{Status: "register is empty"}
	}

	if kind == clipboard.CharWise {
		text := strings.Repeat(strings.Join(lines, "\n"), count)
		before := d.buf.LineCount()
		row := d.buf.Cursor().Line
		d.buf.InsertText(text)
		if delta := d.buf.LineCount() - before; delta > 0 {
			d.notify.LinesShifted(row+1, delta)
		}
		d.notify.LinesChanged(row)
		return Result{}
	}

	repeated := make([]string, 0, len(lines)*count)
	for i := 0; i < count; i++ {
		repeated = append(repeated, lines...)
	}
	row := d.buf.Cursor().Line
	if !above {
		row++
	}
	d.buf.InsertLines(row, repeated)
	d.notify.LinesShifted(row, len(repeated))
	return Result{}
}

func (d *Dispatcher) pageDown(count int) {
	for i := 0; i < count; i++ {
		line := d.vp.PageDown(d.buf.Cursor(), d.buf.LineCount())
		d.buf.MoveVert(line - d.buf.Cursor().Line)
	}
}

func (d *Dispatcher) pageUp(count int) {
	for i := 0; i < count; i++ {
		line := d.vp.PageUp(d.buf.Cursor())
		d.buf.MoveVert(line - d.buf.Cursor().Line)
	}
}

// save writes the buffer out, mapping failures onto status messages.
// Save errors never stop the editor; the buffer simply stays dirty.
func (d *Dispatcher) save() Result {
	err := d.buf.Save()
	switch {
	case err == nil:
		return Result{Status: fmt.Sprintf("%q written", d.buf.Name())}
	case errors.Is(err, buffer.ErrNoPath):
		return Result{Status: "no file name"}
	case errors.Is(err, buffer.ErrFileChanged):
		return Result{Status: "file changed on disk; not written"}
	default:
		return Result{Status: err.Error()}
	}
}
