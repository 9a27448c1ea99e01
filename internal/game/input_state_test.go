package game

import (
	"testing"

	"github.com/tomz197/bonk/internal/input"
)

func TestInputStateKeys(t *testing.T) {
	var s InputState
	if !s.KeyDown(input.KeyW) {
		t.Fatal("W should be handled")
	}
	s.KeyDown(input.KeyW)
	if !s.Up.Pressed || s.Up.Downs != 2 {
		t.Fatalf("up = %+v, want pressed with 2 downs", s.Up)
	}

	s.KeyUp(input.KeyW)
	if s.Up.Pressed || s.Up.Downs != 2 {
		t.Fatalf("up after release = %+v, want released with downs kept", s.Up)
	}

	s.ResetDowns()
	if s.Up.Downs != 0 {
		t.Fatalf("downs after reset = %d, want 0", s.Up.Downs)
	}

	if s.KeyDown(input.KeyNone) || s.KeyUp(input.KeyEscape) {
		t.Fatal("unbound keys should be unhandled")
	}
}
