package game

import "github.com/tomz197/bonk/internal/config"

// SpawnScheduler decides when the next arrow fires and from which slot.
// Time is accumulated from update elapsed values, in milliseconds.
type SpawnScheduler struct {
	Tempo         float32 // ms between shots
	SinceLastShot float32 // ms
	NextSlot      int
	Loops         uint32 // shots fired this session

	initial float32
	step    float32
	floor   float32
}

// NewSpawnScheduler starts at the initial tempo with slot 0 up next.
func NewSpawnScheduler(tun config.Tuning) *SpawnScheduler {
	return &SpawnScheduler{
		Tempo:   tun.InitialTempo,
		initial: tun.InitialTempo,
		step:    tun.TempoStep,
		floor:   tun.MinTempo,
	}
}

// Advance accumulates elapsed seconds and reports whether a shot is due, and
// from which slot. At most one shot fires per call.
func (s *SpawnScheduler) Advance(elapsed float32) (slot int, fired bool) {
	s.SinceLastShot += elapsed * 1000
	if s.SinceLastShot <= s.Tempo {
		return 0, false
	}

	slot = s.NextSlot
	s.NextSlot = (s.NextSlot + 1) % SlotCount
	s.Loops++
	s.SinceLastShot = 0

	if s.Tempo > s.floor {
		s.Tempo += s.step
		if s.Tempo < s.floor {
			s.Tempo = s.floor
		}
	}
	return slot, true
}

// ResetTempo restores the initial tempo after the player is hit.
func (s *SpawnScheduler) ResetTempo() {
	s.Tempo = s.initial
}
