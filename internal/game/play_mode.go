package game

import (
	"fmt"
	"image/color"
	"io"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/bonk/internal/config"
	"github.com/tomz197/bonk/internal/input"
	"github.com/tomz197/bonk/internal/mode"
	"github.com/tomz197/bonk/internal/scene"
	"github.com/tomz197/bonk/internal/sound"
)

// Audio levels.
const (
	musicVolume = 0.3
	sfxVolume   = 0.5
	sfxFadeIn   = 3.0 // seconds
)

// HUD layout, in normalized screen units.
const hudHeight = 0.09

// Scene node names the play area must provide.
const (
	nodeBase  = "Base"
	nodeBody  = "Body"
	nodeCage  = "Cage"
	nodeArrow = "Arrow%d"
)

// Options configures a PlayMode. Zero values pick the defaults.
type Options struct {
	Tuning config.Tuning
	Source Source
	Logger *log.Logger
}

// PlayMode is the single game mode: one session in the arena.
type PlayMode struct {
	scene  *scene.Scene
	base   *scene.Transform
	body   *scene.Transform
	cage   *scene.Transform
	camera *scene.Camera

	input       InputState
	cam         *CameraController
	scheduler   *SpawnScheduler
	projectiles *ProjectileSet
	judge       *CollisionJudge
	score       ScoreTracker

	mixer    sound.Mixer
	music    sound.Handle
	sfx      [SlotCount]sound.Handle
	renderer Renderer

	tuning config.Tuning
	rng    Source
	logger *log.Logger
}

var _ mode.Mode = (*PlayMode)(nil)

// NewPlayMode builds a session on a private copy of the play area scene.
// A scene missing any required node, or without exactly one camera, is rejected.
func NewPlayMode(playarea *scene.Scene, mixer sound.Mixer, renderer Renderer, opts Options) (*PlayMode, error) {
	tun := opts.Tuning
	if tun == (config.Tuning{}) {
		tun = config.DefaultTuning()
	}
	if err := tun.Validate(); err != nil {
		return nil, err
	}

	m := &PlayMode{
		scene:    playarea.Clone(),
		mixer:    mixer,
		renderer: renderer,
		tuning:   tun,
		rng:      opts.Source,
		logger:   opts.Logger,
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	if m.logger == nil {
		m.logger = log.New(io.Discard)
	}

	var err error
	if m.base, err = m.scene.Lookup(nodeBase); err != nil {
		return nil, err
	}
	if m.body, err = m.scene.Lookup(nodeBody); err != nil {
		return nil, err
	}
	if m.cage, err = m.scene.Lookup(nodeCage); err != nil {
		return nil, err
	}
	var arrows [SlotCount]*scene.Transform
	for i := range arrows {
		if arrows[i], err = m.scene.Lookup(fmt.Sprintf(nodeArrow, i+1)); err != nil {
			return nil, err
		}
	}
	if m.camera, err = m.scene.OnlyCamera(); err != nil {
		return nil, err
	}

	m.cam = NewCameraController(m.camera, tun)
	m.scheduler = NewSpawnScheduler(tun)
	m.projectiles = NewProjectileSet(arrows, tun.ParkPosition)
	m.judge = NewCollisionJudge(tun)

	m.music = mixer.Loop(sound.Music, musicVolume, 0)
	for i := range m.sfx {
		m.sfx[i] = mixer.Play3D(sound.Whistle, sfxVolume, arrows[i].Position, 0)
	}
	return m, nil
}

// Score returns the current score and the session best.
func (m *PlayMode) Score() (score, best uint32) {
	return m.score.Score, m.score.Best
}

// Tempo returns the current milliseconds between shots.
func (m *PlayMode) Tempo() float32 {
	return m.scheduler.Tempo
}

// Close stops the mode's sounds.
func (m *PlayMode) Close() {
	m.music.Stop()
	for _, h := range m.sfx {
		h.Stop()
	}
}

// HandleEvent implements mode.Mode.
func (m *PlayMode) HandleEvent(evt input.Event, window mode.Size) bool {
	switch evt.Type {
	case input.EventKeyDown:
		if evt.Key == input.KeyEscape {
			m.input.Captured = false
			return true
		}
		return m.input.KeyDown(evt.Key)
	case input.EventKeyUp:
		return m.input.KeyUp(evt.Key)
	case input.EventMouseButtonDown:
		if !m.input.Captured {
			m.input.Captured = true
			return true
		}
	case input.EventMouseMotion:
		if m.input.Captured {
			m.look(evt, window)
			return true
		}
	case input.EventLook:
		m.look(evt, window)
		return true
	}
	return false
}

func (m *PlayMode) look(evt input.Event, window mode.Size) {
	h := float32(window.H)
	if h <= 0 {
		h = 1
	}
	m.cam.Look(evt.XRel/h, -evt.YRel/h)
}

// Update implements mode.Mode.
func (m *PlayMode) Update(elapsed float32) {
	m.cam.Move(&m.input, elapsed)
	m.cam.Jump(&m.input)
	m.cam.Fall()
	m.cam.Contain()

	pos := m.cam.Position()
	m.mixer.SetListener(pos, m.camera.Transform.Right())

	if slot, hit := m.judge.Check(pos, m.projectiles); hit {
		m.bonk(slot)
	}

	m.projectiles.Step(elapsed)
	for i := range m.sfx {
		m.sfx[i].SetPosition(m.projectiles.Slots[i].Transform.Position)
	}

	if slot, fired := m.scheduler.Advance(elapsed); fired {
		m.shoot(slot)
	}

	m.judge.Tick(elapsed)

	// The body follows the camera but not its rotation.
	m.body.Position = pos

	m.input.ResetDowns()
}

func (m *PlayMode) bonk(slot int) {
	lost := m.score.Score
	m.score.Reset()
	m.scheduler.ResetTempo()
	m.mixer.Play(sound.Bonk, sfxVolume)
	m.projectiles.Park(slot)
	m.sfx[slot].SetVolume(0)
	m.judge.Bonk()
	m.logger.Debug("bonk", "slot", slot, "lost", lost, "best", m.score.Best)
}

func (m *PlayMode) shoot(slot int) {
	l := Aim(m.rng, m.cam.Position(), m.tuning)
	m.projectiles.Fire(slot, l)

	m.sfx[slot].Stop()
	m.sfx[slot] = m.mixer.Play3D(sound.Whistle, sfxVolume, l.Position, sfxFadeIn)

	if m.scheduler.Loops > m.tuning.ScoreAfterSpawns {
		m.score.Increment()
	}
	m.logger.Debug("shoot", "slot", slot, "tempo", m.scheduler.Tempo, "score", m.score.Score)
}

// HUDText is the score line shown during play.
func (m *PlayMode) HUDText() string {
	return fmt.Sprintf("Current: %d; Best: %d", m.score.Score, m.score.Best)
}

// Draw implements mode.Mode.
func (m *PlayMode) Draw(drawable mode.Size) {
	if drawable.W <= 0 || drawable.H <= 0 {
		return
	}
	m.camera.Aspect = float32(drawable.W) / float32(drawable.H)

	m.renderer.DrawScene(m.scene, m.camera)

	// Dark copy first, light copy nudged up-right on top: reads as an outline.
	text := m.HUDText()
	aspect := m.camera.Aspect
	anchor := mgl32.Vec2{-aspect + 0.1*hudHeight, -1 + 0.1*hudHeight}
	m.renderer.DrawText(text, anchor, hudHeight, color.RGBA{0x00, 0x00, 0x00, 0x00})
	ofs := 2 / float32(drawable.H)
	m.renderer.DrawText(text, anchor.Add(mgl32.Vec2{ofs, ofs}), hudHeight, color.RGBA{0xff, 0xff, 0xff, 0x00})
}
