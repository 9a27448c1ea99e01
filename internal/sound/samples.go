package sound

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
)

// Sample is a named sound, synthesized on demand at the mixer's sample rate.
type Sample struct {
	Name  string
	synth func(sr beep.SampleRate) beep.Streamer
}

// Stream returns a fresh streamer for the sample.
func (s *Sample) Stream(sr beep.SampleRate) beep.Streamer {
	return s.synth(sr)
}

var (
	// Music is the background loop: a slow minor arpeggio that never ends.
	Music = &Sample{Name: "bgm", synth: newArpeggio}
	// Whistle is the sound of an arrow in flight: a falling sweep.
	Whistle = &Sample{Name: "proj", synth: newWhistle}
	// Bonk is the hit sound.
	Bonk = &Sample{Name: "bonk", synth: newBonk}
)

var arpeggioNotes = []float64{220.0, 261.63, 329.63, 392.0, 329.63, 261.63}

const arpeggioNote = 250 * time.Millisecond

func newArpeggio(sr beep.SampleRate) beep.Streamer {
	noteLen := sr.N(arpeggioNote)
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		for i := range samples {
			note := (pos / noteLen) % len(arpeggioNotes)
			inNote := pos % noteLen
			t := float64(pos) / float64(sr)
			env := 1 - float64(inNote)/float64(noteLen)
			v := 0.25 * env * math.Sin(2*math.Pi*arpeggioNotes[note]*t)
			samples[i] = [2]float64{v, v}
			pos++
		}
		return len(samples), true
	})
}

const whistleLen = 2200 * time.Millisecond

func newWhistle(sr beep.SampleRate) beep.Streamer {
	total := sr.N(whistleLen)
	pos := 0
	phase := 0.0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		if pos >= total {
			return 0, false
		}
		n := 0
		for i := range samples {
			if pos >= total {
				break
			}
			progress := float64(pos) / float64(total)
			freq := 1200 - 800*progress
			phase += 2 * math.Pi * freq / float64(sr)
			v := 0.3 * math.Sin(phase)
			samples[i] = [2]float64{v, v}
			pos++
			n++
		}
		return n, true
	})
}

const bonkLen = 300 * time.Millisecond

func newBonk(sr beep.SampleRate) beep.Streamer {
	tone, err := generators.SineTone(sr, 140)
	if err != nil {
		return beep.Silence(sr.N(bonkLen))
	}
	return &decay{Streamer: beep.Take(sr.N(bonkLen), tone), total: sr.N(bonkLen)}
}

// decay fades its streamer linearly to silence over total samples.
type decay struct {
	beep.Streamer
	total, pos int
}

func (d *decay) Stream(samples [][2]float64) (int, bool) {
	n, ok := d.Streamer.Stream(samples)
	for i := 0; i < n; i++ {
		g := 1 - float64(d.pos)/float64(d.total)
		if g < 0 {
			g = 0
		}
		samples[i][0] *= g
		samples[i][1] *= g
		d.pos++
	}
	return n, ok
}
