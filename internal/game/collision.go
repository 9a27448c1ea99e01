package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/bonk/internal/config"
	"github.com/tomz197/bonk/internal/physics"
)

// CollisionJudge finds arrows touching the camera and debounces hits.
type CollisionJudge struct {
	// BonkTimer is the remaining cooldown in seconds.
	BonkTimer float32
	cooling   bool

	hitDistance float32
	cooldown    float32
}

// NewCollisionJudge uses the tuning's hit distance and cooldown.
func NewCollisionJudge(tun config.Tuning) *CollisionJudge {
	return &CollisionJudge{
		hitDistance: tun.HitDistance,
		cooldown:    tun.BonkCooldown,
	}
}

// Cooling reports whether hits are currently suppressed.
func (j *CollisionJudge) Cooling() bool {
	return j.cooling
}

// Check returns the first active slot, in slot order, closer than the hit
// distance to the camera. Nothing hits while cooling down.
func (j *CollisionJudge) Check(camera mgl32.Vec3, ps *ProjectileSet) (slot int, hit bool) {
	if j.cooling {
		return 0, false
	}
	for i := range ps.Slots {
		p := &ps.Slots[i]
		if p.Active && physics.PointInSphere(p.Transform.Position, camera, j.hitDistance) {
			return i, true
		}
	}
	return 0, false
}

// Bonk starts the cooldown.
func (j *CollisionJudge) Bonk() {
	j.BonkTimer = j.cooldown
	j.cooling = j.cooldown > 0
}

// Tick counts the cooldown down, flooring at zero.
func (j *CollisionJudge) Tick(elapsed float32) {
	j.BonkTimer -= elapsed
	if j.BonkTimer <= 0 {
		j.BonkTimer = 0
		j.cooling = false
	}
}
