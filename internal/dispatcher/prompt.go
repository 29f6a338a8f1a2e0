package dispatcher

import (
	"fmt"

	"github.com/filedesless/ted/internal/input/key"
	"github.com/filedesless/ted/internal/input/mode"
)

// promptKind selects what a submitted prompt line does.
type promptKind int

const (
	promptOpen promptKind = iota
	promptCommand
)

// commandTable maps command names to chain actions for the command
// prompt (SPC SPC). Every chain is also runnable by name.
var commandTable = map[string]chainAction{
	"quit":             chainQuit,
	"file_save":        chainSave,
	"file_open":        chainOpenPrompt,
	"new_empty_buffer": chainNewBuffer,
	"next_buffer":      chainNextBuffer,
	"space":            chainCommandPrompt,
}

func (d *Dispatcher) startPrompt(label string, kind promptKind) {
	d.promptLabel = label
	d.promptKind = kind
	d.promptInput = d.promptInput[:0]
	d.modes.Set(mode.Prompt)
}

func (d *Dispatcher) handlePrompt(ev key.Event) Result {
	switch ev.Code {
	case key.KeyEscape:
		d.modes.Reset()
		return Result{}
	case key.KeyBackspace:
		if n := len(d.promptInput); n > 0 {
			d.promptInput = d.promptInput[:n-1]
		}
		return Result{}
	case key.KeyEnter:
		input := string(d.promptInput)
		d.modes.Reset()
		return d.finishPrompt(input)
	}

	if ev.Code == key.KeyRune && ev.Mods&key.ModCtrl == 0 {
		d.promptInput = append(d.promptInput, ev.Rune)
	}
	return Result{}
}

func (d *Dispatcher) finishPrompt(input string) Result {
	switch d.promptKind {
	case promptOpen:
		if input == "" {
			return Result{}
		}
		return Result{Open: input}
	case promptCommand:
		action, ok := commandTable[input]
		if !ok {
			return Result{Status: fmt.Sprintf("unrecognized command: %s", input)}
		}
		return d.runChain(action)
	default:
		return Result{}
	}
}
