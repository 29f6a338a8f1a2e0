// Package key defines the terminal-agnostic key event type consumed by
// the dispatcher. The renderer backend translates raw terminal input
// into these events.
package key

import "fmt"

// Code identifies a special (non-printable) key.
type Code int

// Special key codes. KeyRune means Event.Rune carries a printable rune.
const (
	KeyRune Code = iota
	KeyEscape
	KeyEnter
	KeyTab
	KeyBackspace
	KeyDelete
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyPageUp
	KeyPageDown
	KeyHome
	KeyEnd
)

var codeNames = map[Code]string{
	KeyEscape:    "ESC",
	KeyEnter:     "RET",
	KeyTab:       "TAB",
	KeyBackspace: "BS",
	KeyDelete:    "DEL",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyPageUp:    "PgUp",
	KeyPageDown:  "PgDn",
	KeyHome:      "Home",
	KeyEnd:       "End",
}

// Modifier is a bitmask of held modifier keys.
type Modifier uint8

// Modifier flags.
const (
	ModNone Modifier = 0
	ModCtrl Modifier = 1 << iota
	ModAlt
)

// Event is a single key press.
type Event struct {
	Code Code
	Rune rune
	Mods Modifier
}

// NewRune creates a printable-rune event.
func NewRune(r rune) Event {
	return Event{Code: KeyRune, Rune: r}
}

// NewKey creates a special-key event.
func NewKey(code Code) Event {
	return Event{Code: code}
}

// NewCtrl creates a ctrl-modified rune event, e.g. NewCtrl('d').
func NewCtrl(r rune) Event {
	return Event{Code: KeyRune, Rune: r, Mods: ModCtrl}
}

// IsRune reports whether the event is an unmodified printable rune.
func (e Event) IsRune() bool {
	return e.Code == KeyRune && e.Mods == ModNone
}

// IsSpace reports whether the event is the space key.
func (e Event) IsSpace() bool {
	return e.IsRune() && e.Rune == ' '
}

// IsDigit reports whether the event is an unmodified decimal digit.
func (e Event) IsDigit() bool {
	return e.IsRune() && e.Rune >= '0' && e.Rune <= '9'
}

// String returns a display form of the event, used for pending-chain
// feedback in the status line.
func (e Event) String() string {
	if e.Code != KeyRune {
		if name, ok := codeNames[e.Code]; ok {
			return name
		}
		return fmt.Sprintf("key(%d)", int(e.Code))
	}
	var prefix string
	if e.Mods&ModCtrl != 0 {
		prefix = "C-"
	}
	if e.Mods&ModAlt != 0 {
		prefix += "M-"
	}
	if e.Rune == ' ' {
		return prefix + "SPC"
	}
	if e.Rune == '\t' {
		return prefix + "TAB"
	}
	return prefix + string(e.Rune)
}
