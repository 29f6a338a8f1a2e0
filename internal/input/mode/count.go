package mode

// CountState accumulates a numeric prefix in Normal and Visual modes.
// Digits build up a count; the next command consumes it. A leading '0'
// is not part of a count (it is a motion), but '0' after another digit
// is.
type CountState struct {
	value   int
	pending bool
}

// maxCount caps the accumulator so held-down digits cannot overflow.
const maxCount = 100000000

// Push accumulates a digit. Returns false when the digit should be
// treated as a command instead (a leading zero).
func (c *CountState) Push(digit rune) bool {
	if digit < '0' || digit > '9' {
		return false
	}
	if digit == '0' && !c.pending {
		return false
	}
	c.value = c.value*10 + int(digit-'0')
	if c.value > maxCount {
		c.value = maxCount
	}
	c.pending = true
	return true
}

// Pending reports whether digits have been accumulated.
func (c *CountState) Pending() bool {
	return c.pending
}

// Peek returns the accumulated count without consuming it, defaulting
// to 1 when no digits are pending.
func (c *CountState) Peek() int {
	if !c.pending {
		return 1
	}
	return c.value
}

// Take returns the accumulated count and resets the state. Returns 1
// when no count was pending.
func (c *CountState) Take() int {
	n := c.Peek()
	c.Reset()
	return n
}

// Reset discards any pending count.
func (c *CountState) Reset() {
	c.value = 0
	c.pending = false
}
