package dispatcher

import (
	"fmt"
	"strings"

	"github.com/filedesless/ted/internal/input/key"
)

// chainAction identifies what a completed chain does. The command
// prompt reaches the same actions by name.
type chainAction int

const (
	chainQuit chainAction = iota
	chainSave
	chainNewBuffer
	chainNextBuffer
	chainOpenPrompt
	chainCommandPrompt
)

// chainTable maps completed chain sequences (the keys pressed after
// the space prefix) to actions. Sequences are matched by prefix: as
// long as the pending input is a proper prefix of some entry, the
// chain keeps collecting.
var chainTable = map[string]chainAction{
	"q":  chainQuit,
	"fs": chainSave,
	"fn": chainNewBuffer,
	"fo": chainOpenPrompt,
	"\t": chainNextBuffer,
	" ":  chainCommandPrompt,
}

func (d *Dispatcher) handleChain(ev key.Event) Result {
	if ev.Code == key.KeyEscape {
		d.chain = nil
		d.modes.Reset()
		return Result{}
	}
	if ev.Code == key.KeyTab {
		ev = key.NewRune('\t')
	}

	if !ev.IsRune() {
		pending := d.Pending()
		d.chain = nil
		d.modes.Reset()
		return Result{Status: fmt.Sprintf("%s %s is undefined", pending, ev)}
	}

	d.chain = append(d.chain, ev)

	var sb strings.Builder
	for _, e := range d.chain {
		sb.WriteRune(e.Rune)
	}
	seq := sb.String()

	if action, ok := chainTable[seq]; ok {
		d.chain = nil
		d.modes.Reset()
		return d.runChain(action)
	}

	for entry := range chainTable {
		if strings.HasPrefix(entry, seq) {
			return Result{}
		}
	}

	pending := d.Pending()
	d.chain = nil
	d.modes.Reset()
	return Result{Status: fmt.Sprintf("%s is undefined", pending)}
}

func (d *Dispatcher) runChain(action chainAction) Result {
	switch action {
	case chainQuit:
		return Result{Quit: true}
	case chainSave:
		return d.save()
	case chainNewBuffer:
		return Result{NewBuffer: true}
	case chainNextBuffer:
		return Result{NextBuffer: true}
	case chainOpenPrompt:
		d.startPrompt("open file", promptOpen)
		return Result{}
	case chainCommandPrompt:
		d.startPrompt("command", promptCommand)
		return Result{}
	default:
		return Result{}
	}
}
