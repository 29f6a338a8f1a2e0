package dispatcher

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/filedesless/ted/internal/engine/buffer"
	"github.com/filedesless/ted/internal/engine/clipboard"
	"github.com/filedesless/ted/internal/engine/selection"
	"github.com/filedesless/ted/internal/input/key"
	"github.com/filedesless/ted/internal/input/mode"
	"github.com/filedesless/ted/internal/renderer/viewport"
)

type fixture struct {
	buf   *buffer.Buffer
	sel   *selection.Model
	reg   *clipboard.Register
	modes *mode.Manager
	vp    *viewport.Viewport
	disp  *Dispatcher
}

func newFixture(content string) *fixture {
	f := &fixture{
		buf:   buffer.NewFromString(content),
		sel:   selection.New(),
		reg:   clipboard.New(),
		modes: mode.NewManager(),
		vp:    viewport.New(80, 10),
	}
	f.disp = New(f.buf, f.sel, f.reg, f.modes, f.vp, nil)
	return f
}

// feed runs one rune keystroke per character.
func (f *fixture) feed(t *testing.T, keys string) Result {
	t.Helper()
	var res Result
	for _, r := range keys {
		res = f.disp.Handle(key.NewRune(r))
	}
	return res
}

func (f *fixture) escape() {
	f.disp.Handle(key.NewKey(key.KeyEscape))
}

func TestMotion(t *testing.T) {
	f := newFixture("abcdef\nghi")

	f.feed(t, "ll")
	if got := f.buf.Cursor(); got != (buffer.Position{Line: 0, Col: 2}) {
		t.Errorf("cursor = %v, want (0:2)", got)
	}

	f.feed(t, "j")
	if got := f.buf.Cursor(); got != (buffer.Position{Line: 1, Col: 2}) {
		t.Errorf("cursor = %v, want (1:2)", got)
	}

	f.feed(t, "h")
	if got := f.buf.Cursor(); got != (buffer.Position{Line: 1, Col: 1}) {
		t.Errorf("cursor = %v, want (1:1)", got)
	}
}

func TestDesiredColumnThroughKeys(t *testing.T) {
	// Moving down from "abc" col 2 onto "de" keeps col 2; a further
	// move down onto a shorter line would clamp but remember it.
	f := newFixture("abc\nde")
	f.feed(t, "ll")

	f.feed(t, "j")
	if got := f.buf.Cursor(); got != (buffer.Position{Line: 1, Col: 2}) {
		t.Errorf("cursor = %v, want (1:2)", got)
	}
	if f.buf.DesiredCol() != 2 {
		t.Errorf("desiredCol = %d, want 2", f.buf.DesiredCol())
	}
}

func TestNumericPrefix(t *testing.T) {
	f := newFixture("abcdefghij")

	f.feed(t, "3l")
	if got := f.buf.Cursor().Col; got != 3 {
		t.Errorf("col = %d, want 3", got)
	}

	f.feed(t, "12l")
	if got := f.buf.Cursor().Col; got != 10 {
		t.Errorf("col = %d, want 10 (clamped)", got)
	}
}

func TestCountResetsAfterUse(t *testing.T) {
	f := newFixture("abcdefghij")
	f.feed(t, "2l")
	f.feed(t, "l")
	if got := f.buf.Cursor().Col; got != 3 {
		t.Errorf("col = %d, want 3 (count must not persist)", got)
	}
}

func TestEscapeClearsCount(t *testing.T) {
	f := newFixture("abcdefghij")
	f.feed(t, "5")
	f.escape()
	f.feed(t, "l")
	if got := f.buf.Cursor().Col; got != 1 {
		t.Errorf("col = %d, want 1", got)
	}
}

func TestLineStartEnd(t *testing.T) {
	f := newFixture("abcdef")
	f.feed(t, "L")
	if got := f.buf.Cursor().Col; got != 6 {
		t.Errorf("col = %d, want 6 after L", got)
	}
	f.feed(t, "H")
	if got := f.buf.Cursor().Col; got != 0 {
		t.Errorf("col = %d, want 0 after H", got)
	}
}

func TestPaging(t *testing.T) {
	f := newFixture(manyLines(100))

	f.feed(t, "J")
	if f.vp.TopLine() != 10 {
		t.Errorf("TopLine = %d, want 10", f.vp.TopLine())
	}
	if got := f.buf.Cursor().Line; got != 10 {
		t.Errorf("cursor line = %d, want 10", got)
	}

	f.feed(t, "K")
	if f.vp.TopLine() != 0 {
		t.Errorf("TopLine = %d, want 0", f.vp.TopLine())
	}
	if got := f.buf.Cursor().Line; got != 0 {
		t.Errorf("cursor line = %d, want 0", got)
	}
}

func manyLines(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += "line\n"
	}
	return out
}

func TestInsertModeEntryPoints(t *testing.T) {
	tests := []struct {
		name   string
		keys   string
		cursor buffer.Position
	}{
		{"i stays put", "i", buffer.Position{Line: 0, Col: 2}},
		{"I to line start", "I", buffer.Position{Line: 0, Col: 0}},
		{"a after cursor", "a", buffer.Position{Line: 0, Col: 3}},
		{"A to line end", "A", buffer.Position{Line: 0, Col: 6}},
		{"o opens below", "o", buffer.Position{Line: 1, Col: 0}},
		{"O opens above", "O", buffer.Position{Line: 0, Col: 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture("abcdef\nsecond")
			f.feed(t, "ll")
			f.feed(t, tt.keys)

			if f.modes.Current() != mode.Insert {
				t.Fatalf("mode = %v, want Insert", f.modes.Current())
			}
			if got := f.buf.Cursor(); got != tt.cursor {
				t.Errorf("cursor = %v, want %v", got, tt.cursor)
			}
		})
	}
}

func TestInsertTyping(t *testing.T) {
	f := newFixture("ad")
	f.feed(t, "l")
	f.feed(t, "i")
	f.feed(t, "bc")
	f.escape()

	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal after ESC", f.modes.Current())
	}
	if got := f.buf.LineText(0); got != "abcd" {
		t.Errorf("line = %q, want abcd", got)
	}
}

func TestInsertEnterSplits(t *testing.T) {
	f := newFixture("abcd")
	f.feed(t, "ll")
	f.feed(t, "i")
	f.disp.Handle(key.NewKey(key.KeyEnter))

	if f.buf.LineCount() != 2 || f.buf.LineText(0) != "ab" || f.buf.LineText(1) != "cd" {
		t.Errorf("lines = %q / %q", f.buf.LineText(0), f.buf.LineText(1))
	}
}

func TestInsertBackspaceJoins(t *testing.T) {
	f := newFixture("ab\ncd")
	f.feed(t, "j")
	f.feed(t, "i")
	f.disp.Handle(key.NewKey(key.KeyBackspace))

	if f.buf.LineCount() != 1 || f.buf.LineText(0) != "abcd" {
		t.Errorf("line = %q, want abcd", f.buf.LineText(0))
	}
}

func TestCtrlCLeavesInsert(t *testing.T) {
	f := newFixture("ab")
	f.feed(t, "i")
	f.disp.Handle(key.NewCtrl('c'))
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal", f.modes.Current())
	}
}

func TestDeleteChars(t *testing.T) {
	f := newFixture("abcdef")
	f.feed(t, "2d")

	if got := f.buf.LineText(0); got != "cdef" {
		t.Errorf("line = %q, want cdef", got)
	}
	lines, kind, ok := f.reg.Get()
	if !ok || kind != clipboard.CharWise || lines[0] != "ab" {
		t.Errorf("register = %v %v %v, want char-wise ab", lines, kind, ok)
	}
}

func TestDeleteLines(t *testing.T) {
	// Count 3 line-delete on a 5-line buffer at line 1 removes lines
	// 1-3 and cuts them to the register line-wise.
	f := newFixture("l0\nl1\nl2\nl3\nl4")
	f.feed(t, "j")
	f.feed(t, "3D")

	if f.buf.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", f.buf.LineCount())
	}
	if f.buf.LineText(0) != "l0" || f.buf.LineText(1) != "l4" {
		t.Errorf("lines = %q / %q", f.buf.LineText(0), f.buf.LineText(1))
	}

	lines, kind, ok := f.reg.Get()
	if !ok || kind != clipboard.LineWise {
		t.Fatalf("register kind = %v %v, want line-wise", kind, ok)
	}
	if len(lines) != 3 || lines[0] != "l1" || lines[2] != "l3" {
		t.Errorf("register = %v, want [l1 l2 l3]", lines)
	}
}

func TestCopyThenPasteLines(t *testing.T) {
	f := newFixture("aa\nbb")
	f.feed(t, "C")

	f.feed(t, "p")
	if f.buf.LineCount() != 3 || f.buf.LineText(1) != "aa" {
		t.Errorf("lines after p = %d, line1 = %q", f.buf.LineCount(), f.buf.LineText(1))
	}
	if got := f.buf.Cursor(); got != (buffer.Position{Line: 1, Col: 0}) {
		t.Errorf("cursor = %v, want first pasted line", got)
	}
}

func TestPasteAbove(t *testing.T) {
	f := newFixture("aa\nbb")
	f.feed(t, "j")
	f.feed(t, "C")
	f.feed(t, "P")

	if f.buf.LineText(1) != "bb" || f.buf.LineText(2) != "bb" {
		t.Errorf("lines = %q %q, want bb above original", f.buf.LineText(1), f.buf.LineText(2))
	}
	if got := f.buf.Cursor().Line; got != 1 {
		t.Errorf("cursor line = %d, want 1", got)
	}
}

func TestPasteWithCountRepeatsRegister(t *testing.T) {
	f := newFixture("xx\nyy\nzz")
	f.feed(t, "V")
	f.feed(t, "j")
	f.feed(t, "c") // copy 2-line selection
	f.feed(t, "2p")

	// Whole register content pasted twice: 4 new lines.
	if f.buf.LineCount() != 7 {
		t.Fatalf("LineCount = %d, want 7", f.buf.LineCount())
	}
	want := []string{"xx", "yy", "xx", "yy", "xx", "yy", "zz"}
	for i, w := range want {
		if got := f.buf.LineText(i); got != w {
			t.Errorf("line %d = %q, want %q", i, got, w)
		}
	}
}

func TestPasteCharWiseInline(t *testing.T) {
	f := newFixture("abcd")
	f.feed(t, "2c") // copy "ab"
	f.feed(t, "ll")
	f.feed(t, "2p")

	if got := f.buf.LineText(0); got != "abababcd" {
		t.Errorf("line = %q, want abababcd", got)
	}
}

func TestPasteEmptyRegister(t *testing.T) {
	f := newFixture("ab")
	res := f.feed(t, "p")
	if res.Status == "" {
		t.Error("pasting an empty register should surface a status message")
	}
	if f.buf.LineText(0) != "ab" {
		t.Error("buffer must be unchanged")
	}
}

func TestVisualCharDelete(t *testing.T) {
	f := newFixture("abcdef")
	f.feed(t, "l")
	f.feed(t, "v")
	if f.modes.Current() != mode.Visual {
		t.Fatalf("mode = %v, want Visual", f.modes.Current())
	}
	f.feed(t, "ll") // selection b..d
	f.feed(t, "d")

	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal after delete", f.modes.Current())
	}
	if f.sel.Active() {
		t.Error("selection should be cancelled")
	}
	if got := f.buf.LineText(0); got != "aef" {
		t.Errorf("line = %q, want aef", got)
	}
	lines, kind, _ := f.reg.Get()
	if kind != clipboard.CharWise || lines[0] != "bcd" {
		t.Errorf("register = %v %v, want char-wise bcd", lines, kind)
	}
}

func TestVisualLineDelete(t *testing.T) {
	f := newFixture("l0\nl1\nl2\nl3")
	f.feed(t, "j")
	f.feed(t, "V")
	f.feed(t, "j")
	f.feed(t, "d")

	if f.buf.LineCount() != 2 {
		t.Fatalf("LineCount = %d, want 2", f.buf.LineCount())
	}
	lines, kind, _ := f.reg.Get()
	if kind != clipboard.LineWise || len(lines) != 2 || lines[0] != "l1" {
		t.Errorf("register = %v %v, want line-wise [l1 l2]", lines, kind)
	}
}

func TestVisualBackwardSelection(t *testing.T) {
	f := newFixture("abcdef")
	f.feed(t, "lll")
	f.feed(t, "v")
	f.feed(t, "hh") // cursor at 1, anchor at 3
	f.feed(t, "d")

	if got := f.buf.LineText(0); got != "aef" {
		t.Errorf("line = %q, want aef", got)
	}
}

func TestVisualEscapeCancels(t *testing.T) {
	f := newFixture("abc")
	f.feed(t, "v")
	f.feed(t, "l")
	f.escape()

	if f.sel.Active() {
		t.Error("selection should be cancelled")
	}
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal", f.modes.Current())
	}
	if f.buf.LineText(0) != "abc" {
		t.Error("ESC must not mutate the buffer")
	}
}

func TestVisualRestart(t *testing.T) {
	f := newFixture("abcdef")
	f.feed(t, "v")
	f.feed(t, "ll")
	f.feed(t, "v") // re-anchor at current cursor
	if got := f.sel.Anchor(); got != (buffer.Position{Line: 0, Col: 2}) {
		t.Errorf("anchor = %v, want (0:2)", got)
	}
}

func TestVisualCopy(t *testing.T) {
	f := newFixture("hello")
	f.feed(t, "v")
	f.feed(t, "ll")
	f.feed(t, "c")

	lines, kind, _ := f.reg.Get()
	if kind != clipboard.CharWise || lines[0] != "hel" {
		t.Errorf("register = %v %v, want char-wise hel", lines, kind)
	}
	if f.buf.LineText(0) != "hello" {
		t.Error("copy must not mutate the buffer")
	}
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal after copy", f.modes.Current())
	}
}

func TestChainQuit(t *testing.T) {
	f := newFixture("abc")
	f.feed(t, " ")
	if f.modes.Current() != mode.Chain {
		t.Fatalf("mode = %v, want Chain", f.modes.Current())
	}
	res := f.feed(t, "q")
	if !res.Quit {
		t.Error("SPC q should quit")
	}
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal", f.modes.Current())
	}
}

func TestChainEscapeAborts(t *testing.T) {
	f := newFixture("abc")
	f.feed(t, " ")
	f.escape()
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal", f.modes.Current())
	}

	res := f.feed(t, "q")
	if res.Quit {
		t.Error("q outside a chain must not quit")
	}
}

func TestChainUnknownSequence(t *testing.T) {
	f := newFixture("abc")
	res := f.feed(t, " x")
	if res.Quit {
		t.Error("unknown chain must not quit")
	}
	if res.Status == "" {
		t.Error("unknown chain should surface a message")
	}
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal", f.modes.Current())
	}
}

func TestChainSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.txt")

	buf, err := buffer.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	f := newFixture("")
	f.buf = buf
	f.disp.SetBuffer(buf, nil)

	f.feed(t, "i")
	f.feed(t, "hi")
	f.escape()

	res := f.feed(t, " fs")
	if res.Status == "" {
		t.Error("save should confirm in the status line")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("file not written: %v", err)
	}
	if string(data) != "hi\n" {
		t.Errorf("file = %q, want hi\\n", data)
	}
	if f.buf.Dirty() {
		t.Error("save should clear dirty")
	}
}

func TestChainSaveNoPath(t *testing.T) {
	f := newFixture("abc")
	res := f.feed(t, " fs")
	if res.Status != "no file name" {
		t.Errorf("Status = %q, want no file name", res.Status)
	}
}

func TestChainNewBuffer(t *testing.T) {
	f := newFixture("abc")
	res := f.feed(t, " fn")
	if !res.NewBuffer {
		t.Error("SPC f n should request a new buffer")
	}
}

func TestChainPartialShowsPending(t *testing.T) {
	f := newFixture("abc")
	f.feed(t, " f")
	if f.modes.Current() != mode.Chain {
		t.Fatalf("mode = %v, want Chain while prefix matches", f.modes.Current())
	}
	if got := f.disp.Pending(); got != "SPC f" {
		t.Errorf("Pending = %q, want SPC f", got)
	}
}

func TestPendingCount(t *testing.T) {
	f := newFixture("abc")
	f.feed(t, "12")
	if got := f.disp.Pending(); got != "12" {
		t.Errorf("Pending = %q, want 12", got)
	}
	f.feed(t, "l")
	if got := f.disp.Pending(); got != "" {
		t.Errorf("Pending = %q, want empty after command", got)
	}
}

func TestUnmappedKeyIsNoop(t *testing.T) {
	f := newFixture("abc")
	res := f.feed(t, "Z")
	if res.Quit || res.NewBuffer {
		t.Error("unmapped key must be a no-op")
	}
	if f.buf.LineText(0) != "abc" {
		t.Error("buffer must be unchanged")
	}
}

func TestChainNextBuffer(t *testing.T) {
	f := newFixture("x")

	f.feed(t, " ")
	res := f.disp.Handle(key.NewKey(key.KeyTab))
	if !res.NextBuffer {
		t.Error("SPC TAB should request the next buffer")
	}
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal", f.modes.Current())
	}
}

func TestOpenFilePrompt(t *testing.T) {
	f := newFixture("x")

	f.feed(t, " fo")
	if f.modes.Current() != mode.Prompt {
		t.Fatalf("mode = %v, want Prompt", f.modes.Current())
	}
	if got := f.disp.Pending(); got != "open file: " {
		t.Errorf("Pending = %q", got)
	}

	f.feed(t, "notes.txt")
	res := f.disp.Handle(key.NewKey(key.KeyEnter))
	if res.Open != "notes.txt" {
		t.Errorf("Open = %q, want notes.txt", res.Open)
	}
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal", f.modes.Current())
	}
}

func TestOpenFilePromptEmptyIsNoop(t *testing.T) {
	f := newFixture("x")

	f.feed(t, " fo")
	res := f.disp.Handle(key.NewKey(key.KeyEnter))
	if res.Open != "" || res.Quit {
		t.Errorf("res = %+v, want empty", res)
	}
}

func TestPromptEditingAndCancel(t *testing.T) {
	f := newFixture("x")

	f.feed(t, " fo")
	f.feed(t, "ab")
	f.disp.Handle(key.NewKey(key.KeyBackspace))
	if got := f.disp.Pending(); got != "open file: a" {
		t.Errorf("Pending = %q", got)
	}

	f.escape()
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal after cancel", f.modes.Current())
	}
	if f.disp.Pending() != "" {
		t.Errorf("Pending = %q, want empty", f.disp.Pending())
	}
}

func TestCommandPromptRunsCommand(t *testing.T) {
	f := newFixture("x")

	f.feed(t, "  ")
	if f.modes.Current() != mode.Prompt {
		t.Fatalf("mode = %v, want Prompt", f.modes.Current())
	}

	f.feed(t, "quit")
	res := f.disp.Handle(key.NewKey(key.KeyEnter))
	if !res.Quit {
		t.Error("command quit should exit")
	}
}

func TestCommandPromptNextBuffer(t *testing.T) {
	f := newFixture("x")

	f.feed(t, "  next_buffer")
	res := f.disp.Handle(key.NewKey(key.KeyEnter))
	if !res.NextBuffer {
		t.Error("command next_buffer should cycle")
	}
}

func TestCommandPromptUnrecognized(t *testing.T) {
	f := newFixture("x")

	f.feed(t, "  frobnicate")
	res := f.disp.Handle(key.NewKey(key.KeyEnter))
	if res.Status != "unrecognized command: frobnicate" {
		t.Errorf("Status = %q", res.Status)
	}
	if f.modes.Current() != mode.Normal {
		t.Errorf("mode = %v, want Normal", f.modes.Current())
	}
}
