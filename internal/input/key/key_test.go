package key

import "testing"

func TestPredicates(t *testing.T) {
	tests := []struct {
		name    string
		event   Event
		isRune  bool
		isDigit bool
		isSpace bool
	}{
		{"letter", NewRune('x'), true, false, false},
		{"digit", NewRune('7'), true, true, false},
		{"space", NewRune(' '), true, false, true},
		{"ctrl rune", NewCtrl('d'), false, false, false},
		{"escape", NewKey(KeyEscape), false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.event.IsRune(); got != tt.isRune {
				t.Errorf("IsRune = %v, want %v", got, tt.isRune)
			}
			if got := tt.event.IsDigit(); got != tt.isDigit {
				t.Errorf("IsDigit = %v, want %v", got, tt.isDigit)
			}
			if got := tt.event.IsSpace(); got != tt.isSpace {
				t.Errorf("IsSpace = %v, want %v", got, tt.isSpace)
			}
		})
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		event Event
		want  string
	}{
		{NewRune('q'), "q"},
		{NewRune(' '), "SPC"},
		{NewCtrl('d'), "C-d"},
		{NewKey(KeyEscape), "ESC"},
		{NewKey(KeyEnter), "RET"},
	}

	for _, tt := range tests {
		if got := tt.event.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.event, got, tt.want)
		}
	}
}
