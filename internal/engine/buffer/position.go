package buffer

import (
	"fmt"
	"sync/atomic"
)

// Position represents a line and column position.
// Both Line and Col are 0-indexed; Col is measured in runes.
type Position struct {
	Line int
	Col  int
}

// String returns a human-readable representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d:%d)", p.Line, p.Col)
}

// Compare returns -1 if p < other, 0 if p == other, 1 if p > other
// in document order.
func (p Position) Compare(other Position) int {
	if p.Line != other.Line {
		if p.Line < other.Line {
			return -1
		}
		return 1
	}
	if p.Col != other.Col {
		if p.Col < other.Col {
			return -1
		}
		return 1
	}
	return 0
}

// Before returns true if p comes before other in document order.
func (p Position) Before(other Position) bool {
	return p.Compare(other) < 0
}

// Generation is a per-line version stamp. A line's generation changes
// whenever its content changes, never otherwise.
type Generation uint64

// generationCounter backs NewGeneration. Monotonic across all buffers.
var generationCounter uint64

// NewGeneration returns a fresh, unique generation stamp.
func NewGeneration() Generation {
	return Generation(atomic.AddUint64(&generationCounter, 1))
}
