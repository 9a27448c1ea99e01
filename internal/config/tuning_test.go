package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestDefaultTuningIsValid(t *testing.T) {
	if err := DefaultTuning().Validate(); err != nil {
		t.Fatalf("default tuning invalid: %v", err)
	}
}

func TestParseTuningOverlaysDefaults(t *testing.T) {
	data := []byte("cage_radius: 20\nmin_tempo: 500\npark_position: [1, 2, -50]\n")
	tun, err := ParseTuning(data)
	if err != nil {
		t.Fatalf("ParseTuning: %v", err)
	}
	if tun.CageRadius != 20 {
		t.Fatalf("cage radius = %v, want 20", tun.CageRadius)
	}
	if tun.MinTempo != 500 {
		t.Fatalf("min tempo = %v, want 500", tun.MinTempo)
	}
	if tun.ParkPosition != (mgl32.Vec3{1, 2, -50}) {
		t.Fatalf("park position = %v, want [1 2 -50]", tun.ParkPosition)
	}
	if tun.InitialTempo != DefaultTuning().InitialTempo {
		t.Fatalf("initial tempo = %v, want default %v", tun.InitialTempo, DefaultTuning().InitialTempo)
	}
}

func TestParseTuningRejectsBadSchedule(t *testing.T) {
	cases := map[string]string{
		"tempo below floor": "initial_tempo: 500\nmin_tempo: 1000\n",
		"slowing step":      "tempo_step: 10\n",
		"zero cage":         "cage_radius: 0\n",
		"spawn inside hit":  "spawn_distance: 0.5\n",
		"zero hit distance": "hit_distance: 0\n",
		"negative hit":      "hit_distance: -1\n",
		"zero speed":        "projectile_speed: 0\n",
		"arrows fly away":   "projectile_speed: -15\n",
	}
	for name, data := range cases {
		_, err := ParseTuning([]byte(data))
		if !errors.Is(err, ErrInvalidTuning) {
			t.Fatalf("%s: err = %v, want ErrInvalidTuning", name, err)
		}
	}
}

func TestLoadTuningFile(t *testing.T) {
	tun, err := LoadTuning("")
	if err != nil || tun != DefaultTuning() {
		t.Fatalf("LoadTuning(\"\") = %+v, %v; want defaults", tun, err)
	}

	path := filepath.Join(t.TempDir(), "tuning.yaml")
	if err := os.WriteFile(path, []byte("player_speed: 12\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	tun, err = LoadTuning(path)
	if err != nil {
		t.Fatalf("LoadTuning: %v", err)
	}
	if tun.PlayerSpeed != 12 {
		t.Fatalf("player speed = %v, want 12", tun.PlayerSpeed)
	}

	if _, err := LoadTuning(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
