package mode

import "testing"

func TestManagerStartsNormal(t *testing.T) {
	m := NewManager()
	if m.Current() != Normal {
		t.Errorf("Current = %v, want Normal", m.Current())
	}
}

func TestManagerTransitions(t *testing.T) {
	m := NewManager()

	m.Set(Insert)
	if m.Current() != Insert {
		t.Errorf("Current = %v, want Insert", m.Current())
	}

	m.Reset()
	if m.Current() != Normal {
		t.Errorf("Current = %v, want Normal after Reset", m.Current())
	}
}

func TestModeString(t *testing.T) {
	tests := []struct {
		mode Mode
		want string
	}{
		{Normal, "NORMAL"},
		{Insert, "INSERT"},
		{Visual, "VISUAL"},
		{Chain, "SPC"},
	}
	for _, tt := range tests {
		if got := tt.mode.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.mode, got, tt.want)
		}
	}
}

func TestCountAccumulation(t *testing.T) {
	var c CountState

	if !c.Push('1') || !c.Push('2') {
		t.Fatal("digits should accumulate")
	}
	if c.Peek() != 12 {
		t.Errorf("Peek = %d, want 12", c.Peek())
	}
	if !c.Push('0') {
		t.Error("trailing zero should accumulate")
	}
	if got := c.Take(); got != 120 {
		t.Errorf("Take = %d, want 120", got)
	}
	if c.Pending() {
		t.Error("Take should reset the state")
	}
}

func TestLeadingZeroIsNotACount(t *testing.T) {
	var c CountState
	if c.Push('0') {
		t.Error("leading zero should not start a count")
	}
	if c.Pending() {
		t.Error("state should remain empty")
	}
}

func TestTakeDefaultsToOne(t *testing.T) {
	var c CountState
	if got := c.Take(); got != 1 {
		t.Errorf("Take = %d, want 1", got)
	}
}

func TestReset(t *testing.T) {
	var c CountState
	c.Push('5')
	c.Reset()
	if c.Pending() || c.Peek() != 1 {
		t.Error("Reset should discard the pending count")
	}
}

func TestCountCapped(t *testing.T) {
	var c CountState
	for i := 0; i < 25; i++ {
		c.Push('9')
	}
	if got := c.Take(); got != maxCount {
		t.Errorf("Take = %d, want %d", got, maxCount)
	}
}
