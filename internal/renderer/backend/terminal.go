package backend

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/filedesless/ted/internal/input/key"
	"github.com/filedesless/ted/internal/renderer/core"
)

// Terminal drives a real terminal through tcell.
type Terminal struct {
	screen tcell.Screen
}

// NewTerminal creates an uninitialized terminal backend.
func NewTerminal() *Terminal {
	return &Terminal{}
}

// Init implements Backend.
func (t *Terminal) Init() error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	screen.SetStyle(tcell.StyleDefault)
	screen.HideCursor()
	t.screen = screen
	return nil
}

// Fini implements Backend.
func (t *Terminal) Fini() {
	if t.screen != nil {
		t.screen.Fini()
	}
}

// Size implements Backend.
func (t *Terminal) Size() (int, int) {
	return t.screen.Size()
}

// Clear implements Backend.
func (t *Terminal) Clear() {
	t.screen.Clear()
}

// SetCell implements Backend.
func (t *Terminal) SetCell(x, y int, cell core.Cell) {
	t.screen.SetContent(x, y, cell.Rune, nil, toTcellStyle(cell.Style))
}

// SetCursor implements Backend.
func (t *Terminal) SetCursor(x, y int) {
	t.screen.ShowCursor(x, y)
}

// Show implements Backend.
func (t *Terminal) Show() {
	t.screen.Show()
}

// PollEvent implements Backend. Blocks until tcell delivers an event;
// unhandled event kinds are skipped.
func (t *Terminal) PollEvent() Event {
	for {
		switch ev := t.screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ke, ok := toKeyEvent(ev); ok {
				return KeyEvent{Key: ke}
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			return ResizeEvent{Width: w, Height: h}
		case nil:
			return QuitEvent{}
		}
	}
}

var specialKeys = map[tcell.Key]key.Code{
	tcell.KeyEscape:     key.KeyEscape,
	tcell.KeyEnter:      key.KeyEnter,
	tcell.KeyTab:        key.KeyTab,
	tcell.KeyBackspace:  key.KeyBackspace,
	tcell.KeyBackspace2: key.KeyBackspace,
	tcell.KeyDelete:     key.KeyDelete,
	tcell.KeyUp:         key.KeyUp,
	tcell.KeyDown:       key.KeyDown,
	tcell.KeyLeft:       key.KeyLeft,
	tcell.KeyRight:      key.KeyRight,
	tcell.KeyPgUp:       key.KeyPageUp,
	tcell.KeyPgDn:       key.KeyPageDown,
	tcell.KeyHome:       key.KeyHome,
	tcell.KeyEnd:        key.KeyEnd,
}

// toKeyEvent translates a tcell key event. Reports false for keys the
// editor has no representation for.
func toKeyEvent(ev *tcell.EventKey) (key.Event, bool) {
	if code, ok := specialKeys[ev.Key()]; ok {
		return key.NewKey(code), true
	}

	if ev.Key() == tcell.KeyRune {
		ke := key.NewRune(ev.Rune())
		if ev.Modifiers()&tcell.ModAlt != 0 {
			ke.Mods |= key.ModAlt
		}
		return ke, true
	}

	// tcell folds ctrl-letter combinations into dedicated key codes.
	if ev.Key() >= tcell.KeyCtrlA && ev.Key() <= tcell.KeyCtrlZ {
		r := rune(ev.Key()-tcell.KeyCtrlA) + 'a'
		return key.NewCtrl(r), true
	}

	return key.Event{}, false
}

func toTcellColor(c core.Color) tcell.Color {
	if c.IsDefault() {
		return tcell.ColorDefault
	}
	if c.Indexed {
		return tcell.PaletteColor(int(c.R))
	}
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}

func toTcellStyle(s core.Style) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(toTcellColor(s.Foreground)).
		Background(toTcellColor(s.Background))

	if s.Attributes.Has(core.AttrBold) {
		style = style.Bold(true)
	}
	if s.Attributes.Has(core.AttrDim) {
		style = style.Dim(true)
	}
	if s.Attributes.Has(core.AttrItalic) {
		style = style.Italic(true)
	}
	if s.Attributes.Has(core.AttrUnderline) {
		style = style.Underline(true)
	}
	if s.Attributes.Has(core.AttrReverse) {
		style = style.Reverse(true)
	}
	return style
}
