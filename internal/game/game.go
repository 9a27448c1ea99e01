// Package game is the arena simulation: a player walking and jumping inside a
// cage while three arrows are fired at them on an accelerating tempo.
package game

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/bonk/internal/scene"
)

// SlotCount is the number of arrows cycled by the scheduler.
const SlotCount = 3

// Source yields uniform draws in [0, 1). *rand.Rand satisfies it.
type Source interface {
	Float32() float32
}

// Renderer draws the scene and the HUD for one frame.
type Renderer interface {
	DrawScene(s *scene.Scene, cam *scene.Camera)
	// DrawText draws text with its baseline-left corner at anchor, in
	// normalized coordinates (x in [-aspect, aspect], y in [-1, 1]).
	DrawText(text string, anchor mgl32.Vec2, height float32, c color.RGBA)
}
