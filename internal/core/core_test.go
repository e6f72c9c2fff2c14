package core

import "testing"

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	if !r.Contains(2, 3) {
		t.Error("Top-left corner should be contained")
	}
	if r.Contains(6, 3) {
		t.Error("Right edge should be exclusive")
	}
	if r.Contains(2, 8) {
		t.Error("Bottom edge should be exclusive")
	}
	if !r.Contains(5, 7) {
		t.Error("Interior point should be contained")
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Errorf("Clamp(5, 0, 10) = %d, want 5", got)
	}
	if got := Clamp(-1, 0, 10); got != 0 {
		t.Errorf("Clamp(-1, 0, 10) = %d, want 0", got)
	}
	if got := Clamp(11, 0, 10); got != 10 {
		t.Errorf("Clamp(11, 0, 10) = %d, want 10", got)
	}
	if got := ClampF(1.5, 0, 1); got != 1.0 {
		t.Errorf("ClampF(1.5, 0, 1) = %f, want 1.0", got)
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 4)

	s.SetRune(3, 2, '#')
	if got := s.Get(3, 2).Rune; got != '#' {
		t.Errorf("Get(3, 2) = %q, want '#'", got)
	}

	// Out of bounds writes are ignored, reads return blanks
	s.SetRune(-1, 0, 'x')
	s.SetRune(10, 0, 'x')
	if got := s.Get(99, 99).Rune; got != ' ' {
		t.Errorf("Out-of-bounds Get = %q, want space", got)
	}
}

func TestScreenDrawTextClipping(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(3, 0, "abc", ColorWhite, ColorBlack, false)

	if got := s.String(); got != "   ab" {
		t.Errorf("String() = %q, want %q", got, "   ab")
	}
	if !s.Get(3, 0).FgSet {
		t.Error("DrawText should set the foreground color")
	}
}

func TestRGBHex(t *testing.T) {
	if got := NewRGB(0, 128, 255).Hex(); got != "#0080ff" {
		t.Errorf("Hex() = %q, want #0080ff", got)
	}
}
