package game

import (
	"testing"

	"github.com/tomz197/bonk/internal/config"
)

func TestSchedulerWaitsForTempo(t *testing.T) {
	s := NewSpawnScheduler(config.DefaultTuning())
	if _, fired := s.Advance(1.0); fired {
		t.Fatal("fired after 1000ms with a 2000ms tempo")
	}
	if _, fired := s.Advance(1.0); fired {
		t.Fatal("fired at exactly the tempo, want strictly after")
	}
	slot, fired := s.Advance(0.01)
	if !fired || slot != 0 {
		t.Fatalf("Advance = (%d, %v), want (0, true)", slot, fired)
	}
	if s.SinceLastShot != 0 {
		t.Fatalf("SinceLastShot = %v, want 0 after a shot", s.SinceLastShot)
	}
}

func TestSchedulerCyclesSlots(t *testing.T) {
	s := NewSpawnScheduler(config.DefaultTuning())
	want := []int{0, 1, 2, 0, 1, 2, 0}
	for i, w := range want {
		slot, fired := s.Advance(2.5)
		if !fired || slot != w {
			t.Fatalf("shot %d: Advance = (%d, %v), want (%d, true)", i, slot, fired, w)
		}
	}
	if s.Loops != uint32(len(want)) {
		t.Fatalf("Loops = %d, want %d", s.Loops, len(want))
	}
}

func TestSchedulerTempoSpeedsUpToFloor(t *testing.T) {
	s := NewSpawnScheduler(config.DefaultTuning())
	for i := 0; i < 5; i++ {
		s.Advance(2.5)
	}
	if s.Tempo != 1750 {
		t.Fatalf("tempo after 5 shots = %v, want 1750", s.Tempo)
	}

	prev := s.Tempo
	for i := 0; i < 100; i++ {
		s.Advance(2.5)
		if s.Tempo > prev {
			t.Fatalf("tempo went up from %v to %v", prev, s.Tempo)
		}
		prev = s.Tempo
	}
	if s.Tempo != 1000 {
		t.Fatalf("tempo = %v, want floor 1000", s.Tempo)
	}
}

func TestSchedulerTempoClampsOddStep(t *testing.T) {
	tun := config.DefaultTuning()
	tun.TempoStep = -300
	s := NewSpawnScheduler(tun)
	for i := 0; i < 10; i++ {
		s.Advance(2.5)
		if s.Tempo < tun.MinTempo {
			t.Fatalf("tempo %v dropped below floor %v", s.Tempo, tun.MinTempo)
		}
	}
}

func TestSchedulerResetTempo(t *testing.T) {
	s := NewSpawnScheduler(config.DefaultTuning())
	for i := 0; i < 3; i++ {
		s.Advance(2.5)
	}
	s.ResetTempo()
	if s.Tempo != 2000 {
		t.Fatalf("tempo after reset = %v, want 2000", s.Tempo)
	}
	if s.NextSlot != 0 || s.Loops != 3 {
		t.Fatalf("reset touched slot %d or loops %d", s.NextSlot, s.Loops)
	}
}
