package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning is returned when a tuning file describes an unplayable game.
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning holds every gameplay constant of the arena.
// Distances are world units, tempos are milliseconds, timers are seconds.
type Tuning struct {
	// Player
	PlayerSpeed float32 `yaml:"player_speed"` // units per second
	CageRadius  float32 `yaml:"cage_radius"`
	Gravity     float32 `yaml:"gravity"`    // subtracted from vertical velocity once per frame
	JumpPower   float32 `yaml:"jump_power"` // added to vertical velocity on jump

	// Projectiles
	SpawnDistance   float32    `yaml:"spawn_distance"`
	ProjectileSpeed float32    `yaml:"projectile_speed"`
	HitDistance     float32    `yaml:"hit_distance"`
	ParkPosition    mgl32.Vec3 `yaml:"park_position"`

	// Difficulty
	InitialTempo     float32 `yaml:"initial_tempo"`
	TempoStep        float32 `yaml:"tempo_step"` // negative: tempo shrinks after each shot
	MinTempo         float32 `yaml:"min_tempo"`
	BonkCooldown     float32 `yaml:"bonk_cooldown"`
	ScoreAfterSpawns uint32  `yaml:"score_after_spawns"`
}

// DefaultTuning returns the stock arena constants.
func DefaultTuning() Tuning {
	return Tuning{
		PlayerSpeed: 30.0,
		CageRadius:  16.5,
		Gravity:     0.049,
		JumpPower:   1.0,

		SpawnDistance:   30.0,
		ProjectileSpeed: 15.0,
		HitDistance:     1.0,
		ParkPosition:    mgl32.Vec3{0, 0, -100},

		InitialTempo:     2000.0,
		TempoStep:        -50.0,
		MinTempo:         1000.0,
		BonkCooldown:     2.0,
		ScoreAfterSpawns: 3,
	}
}

// Validate reports the first constant that would break the game rules.
func (t Tuning) Validate() error {
	switch {
	case t.PlayerSpeed < 0:
		return fmt.Errorf("%w: player_speed %v is negative", ErrInvalidTuning, t.PlayerSpeed)
	case t.CageRadius <= 0:
		return fmt.Errorf("%w: cage_radius %v must be positive", ErrInvalidTuning, t.CageRadius)
	case t.Gravity <= 0:
		return fmt.Errorf("%w: gravity %v must be positive", ErrInvalidTuning, t.Gravity)
	case t.HitDistance <= 0:
		return fmt.Errorf("%w: hit_distance %v must be positive", ErrInvalidTuning, t.HitDistance)
	case t.ProjectileSpeed <= 0:
		return fmt.Errorf("%w: projectile_speed %v must be positive", ErrInvalidTuning, t.ProjectileSpeed)
	case t.SpawnDistance <= t.HitDistance:
		return fmt.Errorf("%w: spawn_distance %v must exceed hit_distance %v", ErrInvalidTuning, t.SpawnDistance, t.HitDistance)
	case t.MinTempo <= 0:
		return fmt.Errorf("%w: min_tempo %v must be positive", ErrInvalidTuning, t.MinTempo)
	case t.InitialTempo < t.MinTempo:
		return fmt.Errorf("%w: initial_tempo %v below min_tempo %v", ErrInvalidTuning, t.InitialTempo, t.MinTempo)
	case t.TempoStep > 0:
		return fmt.Errorf("%w: tempo_step %v would slow the game down", ErrInvalidTuning, t.TempoStep)
	case t.BonkCooldown < 0:
		return fmt.Errorf("%w: bonk_cooldown %v is negative", ErrInvalidTuning, t.BonkCooldown)
	}
	return nil
}

// ParseTuning overlays YAML data on the defaults. Keys missing from data keep
// their default value.
func ParseTuning(data []byte) (Tuning, error) {
	t := DefaultTuning()
	if err := yaml.Unmarshal(data, &t); err != nil {
		return Tuning{}, fmt.Errorf("config: unmarshal tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return Tuning{}, err
	}
	return t, nil
}

// LoadTuning reads a tuning file. An empty path yields the defaults.
func LoadTuning(path string) (Tuning, error) {
	if path == "" {
		return DefaultTuning(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Tuning{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	return ParseTuning(data)
}
