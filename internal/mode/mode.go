// Package mode defines the contract between the host frame loop and a game mode.
package mode

import "github.com/tomz197/bonk/internal/input"

// Size is a viewport size in host units (terminal cells for the terminal host).
type Size struct {
	W, H int
}

// Mode is driven once per frame by the host: HandleEvent for every pending
// event, then Update, then Draw.
type Mode interface {
	// HandleEvent returns true if the event was consumed.
	HandleEvent(evt input.Event, window Size) bool
	// Update advances the simulation by elapsed seconds.
	Update(elapsed float32)
	// Draw renders the current state for the given drawable size.
	Draw(drawable Size)
}
