package game

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/tomz197/bonk/internal/scene"
	"github.com/tomz197/bonk/internal/sound"
)

// fixedSource replays draws in order, wrapping around.
type fixedSource struct {
	draws []float32
	i     int
}

func (s *fixedSource) Float32() float32 {
	v := s.draws[s.i%len(s.draws)]
	s.i++
	return v
}

type fakeHandle struct {
	sample   *sound.Sample
	volume   float32
	position mgl32.Vec3
	fadeIn   float32
	stopped  bool
}

func (h *fakeHandle) SetPosition(p mgl32.Vec3) { h.position = p }
func (h *fakeHandle) SetVolume(v float32)      { h.volume = v }
func (h *fakeHandle) Stop()                    { h.stopped = true }

// recordingMixer remembers every sound started and the last listener.
type recordingMixer struct {
	started  []*fakeHandle
	listener mgl32.Vec3
}

func (m *recordingMixer) add(h *fakeHandle) sound.Handle {
	m.started = append(m.started, h)
	return h
}

func (m *recordingMixer) Loop(s *sound.Sample, volume, pan float32) sound.Handle {
	return m.add(&fakeHandle{sample: s, volume: volume})
}

func (m *recordingMixer) Play(s *sound.Sample, volume float32) sound.Handle {
	return m.add(&fakeHandle{sample: s, volume: volume})
}

func (m *recordingMixer) Play3D(s *sound.Sample, volume float32, pos mgl32.Vec3, fadeIn float32) sound.Handle {
	return m.add(&fakeHandle{sample: s, volume: volume, position: pos, fadeIn: fadeIn})
}

func (m *recordingMixer) SetListener(pos, right mgl32.Vec3) {
	m.listener = pos
}

func (m *recordingMixer) count(s *sound.Sample) int {
	n := 0
	for _, h := range m.started {
		if h.sample == s {
			n++
		}
	}
	return n
}

type textCall struct {
	text   string
	anchor mgl32.Vec2
	color  color.RGBA
}

type recordingRenderer struct {
	scenes int
	texts  []textCall
}

func (r *recordingRenderer) DrawScene(*scene.Scene, *scene.Camera) { r.scenes++ }

func (r *recordingRenderer) DrawText(text string, anchor mgl32.Vec2, height float32, c color.RGBA) {
	r.texts = append(r.texts, textCall{text: text, anchor: anchor, color: c})
}
