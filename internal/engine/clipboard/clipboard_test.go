package clipboard

import "testing"

func TestEmptyRegister(t *testing.T) {
	r := New()
	if !r.Empty() {
		t.Error("new register should be empty")
	}
	if _, _, ok := r.Get(); ok {
		t.Error("Get on empty register should report false")
	}
}

func TestSetChars(t *testing.T) {
	r := New()
	r.SetChars("hello\nworld")

	lines, kind, ok := r.Get()
	if !ok {
		t.Fatal("Get should report ok")
	}
	if kind != CharWise {
		t.Errorf("kind = %v, want CharWise", kind)
	}
	if len(lines) != 2 || lines[0] != "hello" || lines[1] != "world" {
		t.Errorf("lines = %v", lines)
	}
	if r.Text() != "hello\nworld" {
		t.Errorf("Text = %q", r.Text())
	}
}

func TestSetLines(t *testing.T) {
	r := New()
	src := []string{"a", "b"}
	r.SetLines(src)

	src[0] = "mutated"
	lines, kind, ok := r.Get()
	if !ok || kind != LineWise {
		t.Fatalf("Get = %v, %v, %v", lines, kind, ok)
	}
	if lines[0] != "a" {
		t.Error("register must copy its input")
	}
}

func TestOverwrite(t *testing.T) {
	r := New()
	r.SetLines([]string{"old"})
	r.SetChars("new")

	lines, kind, _ := r.Get()
	if kind != CharWise || len(lines) != 1 || lines[0] != "new" {
		t.Errorf("register not overwritten: %v %v", lines, kind)
	}
}
