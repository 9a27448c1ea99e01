package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/bonk/internal/scene"
)

// Projectile is one arrow slot. Slots are never destroyed: they are parked
// far below the arena or relocated by a launch.
type Projectile struct {
	Transform *scene.Transform
	Velocity  mgl32.Vec3
	Active    bool
}

// ProjectileSet holds the fixed arrow slots.
type ProjectileSet struct {
	Slots [SlotCount]Projectile
	park  mgl32.Vec3
}

// NewProjectileSet binds the slots to their transforms and parks them.
func NewProjectileSet(transforms [SlotCount]*scene.Transform, park mgl32.Vec3) *ProjectileSet {
	ps := &ProjectileSet{park: park}
	for i, t := range transforms {
		ps.Slots[i].Transform = t
		ps.Park(i)
	}
	return ps
}

// Park moves a slot to the sentinel, stops it and hides it from renderers.
func (ps *ProjectileSet) Park(slot int) {
	p := &ps.Slots[slot]
	p.Transform.Position = ps.park
	p.Transform.Hidden = true
	p.Velocity = mgl32.Vec3{}
	p.Active = false
}

// Fire relocates a slot to a launch point, replacing its velocity.
func (ps *ProjectileSet) Fire(slot int, l Launch) {
	p := &ps.Slots[slot]
	p.Transform.Position = l.Position
	p.Transform.Hidden = false
	p.Velocity = l.Velocity
	p.Active = true
}

// Step integrates every slot by elapsed seconds.
func (ps *ProjectileSet) Step(elapsed float32) {
	for i := range ps.Slots {
		p := &ps.Slots[i]
		p.Transform.Position = p.Transform.Position.Sub(p.Velocity.Mul(elapsed))
	}
}
