package draw

import (
	"bytes"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/bonk/internal/game"
	"github.com/tomz197/bonk/internal/physics"
	"github.com/tomz197/bonk/internal/scene"
)

var _ game.Renderer = (*Radar)(nil)

func radarScene() (*scene.Scene, *scene.Camera) {
	one := mgl32.Vec3{1, 1, 1}
	camT := &scene.Transform{
		Name:     "Camera",
		Rotation: physics.QuatFromEuler(mgl32.Vec3{math.Pi / 2, 0, 0}),
		Scale:    one,
	}
	s := &scene.Scene{
		Transforms: []*scene.Transform{
			{Name: "Cage", Scale: mgl32.Vec3{10, 10, 4}},
			{Name: "Arrow1", Position: mgl32.Vec3{5, 0, 0}, Scale: one},
			{Name: "Arrow2", Position: mgl32.Vec3{-5, 0, 0}, Scale: one, Hidden: true},
			camT,
		},
	}
	cam := &scene.Camera{Transform: camT, FovY: 1, Aspect: 1}
	s.Cameras = []*scene.Camera{cam}
	return s, cam
}

func TestRadarDrawScene(t *testing.T) {
	var buf bytes.Buffer
	r := NewRadar(&buf, 40, 20)
	s, cam := radarScene()

	r.Begin()
	r.DrawScene(s, cam)

	c := r.canvas
	if got := c.At(20, 20); got != InkPlayer {
		t.Errorf("center ink = %d, want player", got)
	}
	if got := c.At(20, 15); got != InkHeading {
		t.Errorf("heading ink = %d, want heading", got)
	}
	if got := c.At(30, 20); got != InkMarker {
		t.Errorf("arrow ink = %d, want marker", got)
	}
	if got := c.At(39, 20); got != InkRing {
		t.Errorf("cage edge ink = %d, want ring", got)
	}
	if c.At(10, 20) != 0 || c.At(11, 20) != 0 {
		t.Error("parked arrow was drawn")
	}
}

func TestRadarDrawTextAnchors(t *testing.T) {
	var buf bytes.Buffer
	r := NewRadar(&buf, 40, 20)
	w, h := r.Drawable()
	aspect := float32(w) / float32(h)

	r.Begin()
	white := color.RGBA{0xff, 0xff, 0xff, 0}
	r.DrawText("Current: 1; Best: 2", mgl32.Vec2{-aspect + 0.009, -1 + 0.009}, 0.09, white)
	r.DrawText(strings.Repeat("y", 100), mgl32.Vec2{0, 1}, 0.09, white)

	if got := r.texts[0]; got.col != 1 || got.row != 20 {
		t.Fatalf("bottom-left text at %d,%d, want 1,20", got.col, got.row)
	}
	if got := r.texts[1]; got.col != 21 || got.row != 1 || len(got.text) != 20 {
		t.Fatalf("centered top text at %d,%d with %d chars, want 21,1 clipped to 20", got.col, got.row, len(got.text))
	}

	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if !strings.Contains(out, "\033[20;1H"+FgColor(white)+"Current: 1; Best: 2"+ColorReset) {
		t.Fatalf("HUD text missing from output")
	}
}

func TestRadarNoticeAndResize(t *testing.T) {
	var buf bytes.Buffer
	r := NewRadar(&buf, 40, 20)
	if r.Resize(40, 20, 0, 0) {
		t.Fatal("unchanged size reported as changed")
	}
	if !r.Resize(30, 10, 5, 2) {
		t.Fatal("resize not reported")
	}

	r.Begin()
	r.Notice("SERVER SHUTTING DOWN")
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	// Centered in 30 columns, shifted by the offset.
	if !strings.Contains(buf.String(), "\033[8;11HSERVER SHUTTING DOWN") {
		t.Fatalf("notice not centered: %q", buf.String())
	}

	buf.Reset()
	r.Begin()
	if err := r.Flush(); err != nil {
		t.Fatal(err)
	}
	if strings.Contains(buf.String(), "SHUTTING") {
		t.Fatal("notice survived Begin")
	}
}
