package game

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/bonk/internal/config"
)

// Launch is where an arrow starts and how fast it travels.
// Arrows move by subtracting Velocity, so they fly back along the spawn direction.
type Launch struct {
	Position mgl32.Vec3
	Velocity mgl32.Vec3
}

// SpawnDirection maps two uniform draws to a unit spawn direction: a heading
// around the full circle and an elevation between flat and straight up.
// Elevation is mixed in unnormalized, so directions crowd toward the horizon
// rather than covering the hemisphere evenly.
func SpawnDirection(u, v float32) mgl32.Vec3 {
	yaw := float64(u) * 2 * math.Pi
	pitch := float64(v) * math.Pi / 2
	dir := mgl32.Vec3{
		float32(math.Sin(yaw)),
		float32(math.Cos(yaw)),
		float32(math.Sin(pitch)),
	}
	return dir.Normalize()
}

// Aim picks a launch around the camera's floor position.
// The camera's height does not lift the spawn point.
func Aim(rng Source, cameraPos mgl32.Vec3, tun config.Tuning) Launch {
	u := rng.Float32()
	v := rng.Float32()
	dir := SpawnDirection(u, v)
	return Launch{
		Position: dir.Mul(tun.SpawnDistance).Add(mgl32.Vec3{cameraPos[0], cameraPos[1], 0}),
		Velocity: dir.Mul(tun.ProjectileSpeed),
	}
}
