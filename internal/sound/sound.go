// Package sound is the audio collaborator: looping and positional one-shot
// playback of procedurally generated samples relative to a listener.
package sound

import "github.com/go-gl/mathgl/mgl32"

// Handle controls one playing sample.
type Handle interface {
	SetPosition(pos mgl32.Vec3)
	SetVolume(volume float32)
	Stop()
}

// Mixer starts samples and tracks the listener.
type Mixer interface {
	// Loop plays s forever, unpositioned, at the given volume and pan (-1 left .. 1 right).
	Loop(s *Sample, volume, pan float32) Handle
	// Play plays s once, unpositioned.
	Play(s *Sample, volume float32) Handle
	// Play3D plays s once at pos, ramping in over fadeIn seconds.
	Play3D(s *Sample, volume float32, pos mgl32.Vec3, fadeIn float32) Handle
	// SetListener moves the ear: its position and its right-hand direction.
	SetListener(pos, right mgl32.Vec3)
}

// Silent is a Mixer that plays nothing. SSH sessions and tests use it.
type Silent struct{}

var _ Mixer = Silent{}

type silentHandle struct{}

func (silentHandle) SetPosition(mgl32.Vec3) {}
func (silentHandle) SetVolume(float32)      {}
func (silentHandle) Stop()                  {}

func (Silent) Loop(*Sample, float32, float32) Handle               { return silentHandle{} }
func (Silent) Play(*Sample, float32) Handle                        { return silentHandle{} }
func (Silent) Play3D(*Sample, float32, mgl32.Vec3, float32) Handle { return silentHandle{} }
func (Silent) SetListener(mgl32.Vec3, mgl32.Vec3)                  {}

// refDistance is the distance at which a positional voice plays at half volume.
const refDistance = 8.0

// spatialize returns the gain factor and pan of a source heard by a listener.
func spatialize(listenerPos, listenerRight, source mgl32.Vec3) (gain, pan float32) {
	toSource := source.Sub(listenerPos)
	dist := toSource.Len()
	gain = 1 / (1 + dist/refDistance)
	if dist > 1e-5 && listenerRight.Len() > 1e-5 {
		pan = toSource.Normalize().Dot(listenerRight.Normalize())
	}
	if pan > 1 {
		pan = 1
	} else if pan < -1 {
		pan = -1
	}
	return gain, pan
}
