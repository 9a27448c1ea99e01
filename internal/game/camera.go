package game

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/bonk/internal/config"
	"github.com/tomz197/bonk/internal/physics"
	"github.com/tomz197/bonk/internal/scene"
)

// CameraController walks, jumps and turns the player's camera.
type CameraController struct {
	transform *scene.Transform
	fovy      float32

	speed     float32
	radius    float32
	gravity   float32
	jumpPower float32

	// Velocity is the vertical velocity, in units per frame.
	Velocity float32
	Jumping  bool
}

// NewCameraController drives cam with the given tuning.
func NewCameraController(cam *scene.Camera, tun config.Tuning) *CameraController {
	return &CameraController{
		transform: cam.Transform,
		fovy:      cam.FovY,
		speed:     tun.PlayerSpeed,
		radius:    tun.CageRadius,
		gravity:   tun.Gravity,
		jumpPower: tun.JumpPower,
	}
}

// Position is the camera's world position.
func (c *CameraController) Position() mgl32.Vec3 {
	return c.transform.Position
}

// moveAxes combines opposing buttons into a direction with each axis in {-1, 0, 1}.
func moveAxes(in *InputState) mgl32.Vec2 {
	var move mgl32.Vec2
	if in.Left.Pressed && !in.Right.Pressed {
		move[0] = -1
	}
	if !in.Left.Pressed && in.Right.Pressed {
		move[0] = 1
	}
	if in.Down.Pressed && !in.Up.Pressed {
		move[1] = -1
	}
	if !in.Down.Pressed && in.Up.Pressed {
		move[1] = 1
	}
	return move
}

// Move walks the camera along its flattened heading and keeps it inside the cage.
func (c *CameraController) Move(in *InputState, elapsed float32) {
	move := moveAxes(in)
	if move == (mgl32.Vec2{}) {
		c.Contain()
		return
	}
	move = move.Normalize().Mul(c.speed * elapsed)

	right := c.transform.Right()
	forward, ok := physics.Flatten(c.transform.Forward())
	if !ok {
		// Looking straight down: the top of the screen is ahead.
		forward, _ = physics.Flatten(c.transform.Up())
	}

	c.transform.Position = c.transform.Position.
		Add(right.Mul(move[0])).
		Add(forward.Mul(move[1]))
	c.Contain()
}

// Contain pulls the camera back onto the cage sphere if it left it.
func (c *CameraController) Contain() {
	c.transform.Position, _ = physics.ClampToSphere(c.transform.Position, c.radius)
}

// Jump starts a jump if the jump button is held and the camera is grounded.
func (c *CameraController) Jump(in *InputState) {
	if in.Jump.Pressed && !c.Jumping {
		c.Jumping = true
		c.Velocity += c.jumpPower
	}
}

// Fall integrates one frame of gravity and lands the camera on the floor.
func (c *CameraController) Fall() {
	c.Velocity -= c.gravity
	c.transform.Position[2] += c.Velocity
	if c.transform.Position[2] < 0 {
		c.transform.Position[2] = 0
		c.Velocity = 0
		c.Jumping = false
	}
}

// Look turns the camera by a pointer delta already divided by the viewport
// height (dy positive looks up). Roll is removed and the view is kept at or
// above straight down.
func (c *CameraController) Look(dx, dy float32) {
	q := c.transform.Rotation.
		Mul(mgl32.QuatRotate(-dx*c.fovy, mgl32.Vec3{0, 1, 0})).
		Mul(mgl32.QuatRotate(dy*c.fovy, mgl32.Vec3{1, 0, 0})).
		Normalize()

	e := physics.EulerAngles(q)
	e[1] = 0
	if e[0] < 0 {
		e[0] = -e[0]
	}
	c.transform.Rotation = physics.QuatFromEuler(e)
}
