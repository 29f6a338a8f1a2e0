package highlight

import (
	"sync"

	"github.com/filedesless/ted/internal/engine/buffer"
)

// entry is one cached line result. An entry is valid when the line's
// generation still matches and the state the line was lexed against
// still matches the state flowing in from above.
type entry struct {
	gen    buffer.Generation
	tokens []Token
	before LexerState
	after  LexerState
}

// Cache stores per-line highlight results for one buffer.
//
// Rows below the verified watermark are known coherent: each was lexed
// against the state produced by the row above it. After an edit the
// watermark drops to the edited row; the next query walks forward from
// there, re-lexing a row only when its generation or its incoming state
// changed. A re-lex that produces the same end state a downstream entry
// was built on stops the propagation, so an edit inside a comment body
// does not re-lex the rest of the file.
type Cache struct {
	mu       sync.Mutex
	hl       Highlighter
	entries  map[int]*entry
	verified int
}

// NewCache creates a cache backed by the given highlighter. A nil
// highlighter yields no tokens for any line.
func NewCache(hl Highlighter) *Cache {
	return &Cache{
		hl:      hl,
		entries: make(map[int]*entry),
	}
}

// Highlighter returns the backing highlighter, which may be nil.
func (c *Cache) Highlighter() Highlighter {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hl
}

// SetHighlighter swaps the language and discards all cached results.
func (c *Cache) SetHighlighter(hl Highlighter) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hl = hl
	c.entries = make(map[int]*entry)
	c.verified = 0
}

// Line returns the tokens for a single row, computing any stale rows
// at or above it first.
func (c *Cache) Line(buf *buffer.Buffer, row int) []Token {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.hl == nil || row < 0 || row >= buf.LineCount() {
		return nil
	}
	c.ensure(buf, row)
	if e := c.entries[row]; e != nil {
		return e.tokens
	}
	return nil
}

// Range returns tokens for rows [first, last] inclusive, one slice per
// row. Rows are validated in a single forward pass, so querying a
// viewport is one walk, not one per line.
func (c *Cache) Range(buf *buffer.Buffer, first, last int) [][]Token {
	if first < 0 {
		first = 0
	}
	if last >= buf.LineCount() {
		last = buf.LineCount() - 1
	}
	if last < first {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([][]Token, last-first+1)
	if c.hl == nil {
		return out
	}
	c.ensure(buf, last)
	for row := first; row <= last; row++ {
		if e := c.entries[row]; e != nil {
			out[row-first] = e.tokens
		}
	}
	return out
}

// ensure validates rows [0, upto]. Callers must hold the lock.
func (c *Cache) ensure(buf *buffer.Buffer, upto int) {
	state := StateInitial
	start := 0
	if c.verified > 0 {
		if e := c.entries[c.verified-1]; e != nil {
			state = e.after
			start = c.verified
		}
	}

	for row := start; row <= upto; row++ {
		e := c.entries[row]
		if e != nil && e.gen == buf.LineGen(row) && e.before == state {
			state = e.after
			continue
		}

		tokens, after := c.hl.HighlightLine(buf.LineText(row), state)
		c.entries[row] = &entry{
			gen:    buf.LineGen(row),
			tokens: tokens,
			before: state,
			after:  after,
		}
		state = after
	}

	if upto+1 > c.verified {
		c.verified = upto + 1
	}
}

// LinesChanged marks row and everything below it as unverified after an
// in-place edit. Downstream entries are kept; rows whose generation and
// incoming state are unchanged will be reused without re-lexing.
func (c *Cache) LinesChanged(row int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if row < 0 {
		row = 0
	}
	if row < c.verified {
		c.verified = row
	}
}

// LinesShifted remaps cached rows after delta lines were inserted
// (positive) or deleted (negative) at row. Entries that shift out of
// existence are dropped; the rest keep their results so the next walk
// can reuse them.
func (c *Cache) LinesShifted(row, delta int) {
	if delta == 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	remapped := make(map[int]*entry, len(c.entries))
	for r, e := range c.entries {
		switch {
		case r < row:
			remapped[r] = e
		case delta < 0 && r < row-delta:
			// Deleted rows.
		default:
			remapped[r+delta] = e
		}
	}
	c.entries = remapped

	if row < c.verified {
		c.verified = row
	}
}

// Invalidate discards every cached result.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[int]*entry)
	c.verified = 0
}
