// Package clipboard implements the editor's single yank register.
package clipboard

import (
	"strings"
	"sync"
)

// Kind records how the register content was captured, which decides
// how a paste inserts it.
type Kind int

const (
	// CharWise content is inserted at the cursor within the line.
	CharWise Kind = iota
	// LineWise content is inserted as whole lines.
	LineWise
)

// Register is the single shared clipboard. Any yank or delete
// overwrites it; there are no named registers.
type Register struct {
	mu    sync.RWMutex
	kind  Kind
	lines []string
	set   bool
}

// New returns an empty register.
func New() *Register {
	return &Register{}
}

// SetChars stores char-wise text, replacing previous content.
func (r *Register) SetChars(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kind = CharWise
	r.lines = strings.Split(text, "\n")
	r.set = true
}

// SetLines stores whole lines, replacing previous content.
// The stored slice is copied so later edits to the argument do not
// leak into the register.
func (r *Register) SetLines(lines []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kind = LineWise
	r.lines = append([]string(nil), lines...)
	r.set = true
}

// Get returns the register content and its kind. Empty reports false
// when nothing has been yanked yet.
func (r *Register) Get() (lines []string, kind Kind, ok bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if !r.set {
		return nil, CharWise, false
	}
	return append([]string(nil), r.lines...), r.kind, true
}

// Text returns the register content joined with newlines.
func (r *Register) Text() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return strings.Join(r.lines, "\n")
}

// Empty reports whether the register has never been written.
func (r *Register) Empty() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return !r.set
}
