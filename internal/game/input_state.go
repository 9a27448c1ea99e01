package game

import "github.com/tomz197/bonk/internal/input"

// Button tracks a control's level and how many times it went down since the last update.
type Button struct {
	Downs   uint8
	Pressed bool
}

// InputState accumulates button state between updates.
type InputState struct {
	Left, Right, Up, Down, Jump Button

	// Captured is true while mouse motion steers the camera.
	Captured bool
}

func (s *InputState) button(key input.Key) *Button {
	switch key {
	case input.KeyA:
		return &s.Left
	case input.KeyD:
		return &s.Right
	case input.KeyW:
		return &s.Up
	case input.KeyS:
		return &s.Down
	case input.KeySpace:
		return &s.Jump
	}
	return nil
}

// KeyDown presses the button bound to key. Returns false for unbound keys.
func (s *InputState) KeyDown(key input.Key) bool {
	b := s.button(key)
	if b == nil {
		return false
	}
	b.Downs++
	b.Pressed = true
	return true
}

// KeyUp releases the button bound to key. Returns false for unbound keys.
func (s *InputState) KeyUp(key input.Key) bool {
	b := s.button(key)
	if b == nil {
		return false
	}
	b.Pressed = false
	return true
}

// ResetDowns zeroes every edge counter. Called once per update, after the update.
func (s *InputState) ResetDowns() {
	s.Left.Downs = 0
	s.Right.Downs = 0
	s.Up.Downs = 0
	s.Down.Downs = 0
	s.Jump.Downs = 0
}
