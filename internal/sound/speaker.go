package sound

import (
	"math"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(48000)

// Speaker is a Mixer playing through the system audio device.
type Speaker struct {
	sr    beep.SampleRate
	mixer *beep.Mixer
	lock  sync.Locker // guards everything the audio thread reads

	listenerPos   mgl32.Vec3
	listenerRight mgl32.Vec3
	voices        []*voice
}

var _ Mixer = (*Speaker)(nil)

// speakerLock locks the beep speaker, which holds its own lock while streaming.
type speakerLock struct{}

func (speakerLock) Lock()   { speaker.Lock() }
func (speakerLock) Unlock() { speaker.Unlock() }

// NewSpeaker initializes the audio device and starts the mixer.
func NewSpeaker() (*Speaker, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return nil, err
	}
	sp := newSpeaker(sampleRate, speakerLock{})
	speaker.Play(sp.mixer)
	return sp, nil
}

func newSpeaker(sr beep.SampleRate, lock sync.Locker) *Speaker {
	return &Speaker{
		sr:            sr,
		mixer:         &beep.Mixer{},
		lock:          lock,
		listenerRight: mgl32.Vec3{1, 0, 0},
	}
}

// Close stops every voice and releases the audio device.
func (sp *Speaker) Close() {
	sp.lock.Lock()
	sp.mixer.Clear()
	sp.voices = nil
	sp.lock.Unlock()
	speaker.Close()
}

// Loop implements Mixer.
func (sp *Speaker) Loop(s *Sample, volume, pan float32) Handle {
	v := newVoice(&repeat{sample: s, sr: sp.sr}, volume, 0, sp.sr)
	v.pan.Pan = float64(pan)
	return sp.start(v)
}

// Play implements Mixer.
func (sp *Speaker) Play(s *Sample, volume float32) Handle {
	return sp.start(newVoice(s.Stream(sp.sr), volume, 0, sp.sr))
}

// Play3D implements Mixer.
func (sp *Speaker) Play3D(s *Sample, volume float32, pos mgl32.Vec3, fadeIn float32) Handle {
	v := newVoice(s.Stream(sp.sr), volume, fadeIn, sp.sr)
	v.positional = true
	v.position = pos
	return sp.start(v)
}

// SetListener implements Mixer.
func (sp *Speaker) SetListener(pos, right mgl32.Vec3) {
	sp.lock.Lock()
	defer sp.lock.Unlock()

	sp.listenerPos = pos
	sp.listenerRight = right

	kept := sp.voices[:0]
	for _, v := range sp.voices {
		if v.drained {
			continue
		}
		v.spatialize(sp.listenerPos, sp.listenerRight)
		kept = append(kept, v)
	}
	sp.voices = kept
}

func (sp *Speaker) start(v *voice) Handle {
	v.owner = sp
	sp.lock.Lock()
	defer sp.lock.Unlock()
	v.spatialize(sp.listenerPos, sp.listenerRight)
	sp.voices = append(sp.voices, v)
	sp.mixer.Add(v)
	return v
}

// voice is one playing sample: source -> fade in -> volume -> pan.
type voice struct {
	owner *Speaker

	source  beep.Streamer
	fade    *fadeIn
	volume  *effects.Volume
	pan     *effects.Pan
	drained bool
	stopped bool

	base       float32 // volume requested by the game
	positional bool
	position   mgl32.Vec3
}

func newVoice(src beep.Streamer, volume, fadeSeconds float32, sr beep.SampleRate) *voice {
	v := &voice{source: src, base: volume}
	v.fade = &fadeIn{Streamer: src, total: sr.N(time.Duration(float64(fadeSeconds) * float64(time.Second)))}
	v.volume = &effects.Volume{Streamer: v.fade, Base: 2}
	v.pan = &effects.Pan{Streamer: v.volume}
	return v
}

// Stream implements beep.Streamer. Called by the mixer with the speaker lock held.
func (v *voice) Stream(samples [][2]float64) (int, bool) {
	if v.stopped {
		v.drained = true
		return 0, false
	}
	n, ok := v.pan.Stream(samples)
	if !ok {
		v.drained = true
	}
	return n, ok
}

// Err implements beep.Streamer.
func (v *voice) Err() error {
	return v.source.Err()
}

// spatialize recomputes gain and pan. Caller holds the lock.
func (v *voice) spatialize(listenerPos, listenerRight mgl32.Vec3) {
	gain := v.base
	if v.positional {
		g, p := spatialize(listenerPos, listenerRight, v.position)
		gain *= g
		v.pan.Pan = float64(p)
	}
	setGain(v.volume, gain)
}

// SetPosition implements Handle.
func (v *voice) SetPosition(pos mgl32.Vec3) {
	v.owner.lock.Lock()
	defer v.owner.lock.Unlock()
	v.position = pos
	v.spatialize(v.owner.listenerPos, v.owner.listenerRight)
}

// SetVolume implements Handle.
func (v *voice) SetVolume(volume float32) {
	v.owner.lock.Lock()
	defer v.owner.lock.Unlock()
	v.base = volume
	v.spatialize(v.owner.listenerPos, v.owner.listenerRight)
}

// Stop implements Handle.
func (v *voice) Stop() {
	v.owner.lock.Lock()
	defer v.owner.lock.Unlock()
	v.stopped = true
}

// setGain maps a linear gain onto a base-2 effects.Volume.
func setGain(vol *effects.Volume, gain float32) {
	if gain <= 0 {
		vol.Silent = true
		vol.Volume = 0
		return
	}
	vol.Silent = false
	vol.Volume = math.Log2(float64(gain))
}

// fadeIn ramps its streamer linearly from silence over total samples.
type fadeIn struct {
	beep.Streamer
	total, pos int
}

func (f *fadeIn) Stream(samples [][2]float64) (int, bool) {
	n, ok := f.Streamer.Stream(samples)
	if f.total <= 0 {
		return n, ok
	}
	for i := 0; i < n && f.pos < f.total; i++ {
		g := float64(f.pos) / float64(f.total)
		samples[i][0] *= g
		samples[i][1] *= g
		f.pos++
	}
	return n, ok
}

// repeat restarts a sample every time it drains. Samples are regenerated
// rather than seeked.
type repeat struct {
	sample *Sample
	sr     beep.SampleRate
	cur    beep.Streamer
}

func (r *repeat) Stream(samples [][2]float64) (int, bool) {
	filled := 0
	for filled < len(samples) {
		fresh := r.cur == nil
		if fresh {
			r.cur = r.sample.Stream(r.sr)
		}
		n, ok := r.cur.Stream(samples[filled:])
		filled += n
		if !ok {
			r.cur = nil
			if fresh && n == 0 {
				// An empty sample would spin forever.
				return filled, filled > 0
			}
			continue
		}
		if n == 0 {
			break
		}
	}
	return filled, true
}

func (r *repeat) Err() error {
	return nil
}
