// Package scene is the scene graph the game mutates: named transforms and cameras
// loaded once from a YAML scene description.
package scene

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/bonk/internal/physics"
)

//go:embed playarea.yaml
var playarea []byte

var (
	// ErrNodeNotFound is returned when a required transform is missing.
	ErrNodeNotFound = errors.New("scene node not found")
	// ErrCameraCount is returned when the scene does not hold the expected number of cameras.
	ErrCameraCount = errors.New("unexpected camera count")
)

// Transform is a named node with position, orientation and scale.
type Transform struct {
	Name     string
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    mgl32.Vec3
	Hidden   bool // out of play; renderers skip it
}

// Right is the local +X axis in parent space.
func (t *Transform) Right() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Up is the local +Y axis in parent space.
func (t *Transform) Up() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 1, 0})
}

// Forward is the local -Z axis in parent space (the direction a camera looks).
func (t *Transform) Forward() mgl32.Vec3 {
	return t.Rotation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Camera views the scene from a transform.
type Camera struct {
	Transform *Transform
	FovY      float32 // radians
	Aspect    float32
	Near      float32
}

// Scene holds every transform and camera.
type Scene struct {
	Transforms []*Transform
	Cameras    []*Camera
}

type fileTransform struct {
	Name     string      `yaml:"name"`
	Position mgl32.Vec3  `yaml:"position"`
	Rotation mgl32.Vec3  `yaml:"rotation"` // Euler degrees
	Scale    *mgl32.Vec3 `yaml:"scale"`
}

type fileCamera struct {
	Transform string  `yaml:"transform"`
	FovY      float32 `yaml:"fovy"` // degrees
	Near      float32 `yaml:"near"`
}

type file struct {
	Transforms []fileTransform `yaml:"transforms"`
	Cameras    []fileCamera    `yaml:"cameras"`
}

// Load decodes a YAML scene description.
func Load(r io.Reader) (*Scene, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("scene: decode: %w", err)
	}

	s := &Scene{}
	for _, ft := range f.Transforms {
		scale := mgl32.Vec3{1, 1, 1}
		if ft.Scale != nil {
			scale = *ft.Scale
		}
		euler := mgl32.Vec3{
			mgl32.DegToRad(ft.Rotation[0]),
			mgl32.DegToRad(ft.Rotation[1]),
			mgl32.DegToRad(ft.Rotation[2]),
		}
		s.Transforms = append(s.Transforms, &Transform{
			Name:     ft.Name,
			Position: ft.Position,
			Rotation: physics.QuatFromEuler(euler),
			Scale:    scale,
		})
	}

	for _, fc := range f.Cameras {
		t, err := s.Lookup(fc.Transform)
		if err != nil {
			return nil, fmt.Errorf("scene: camera: %w", err)
		}
		s.Cameras = append(s.Cameras, &Camera{
			Transform: t,
			FovY:      mgl32.DegToRad(fc.FovY),
			Aspect:    1,
			Near:      fc.Near,
		})
	}
	return s, nil
}

// LoadFile reads a scene description from disk.
func LoadFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("scene: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Default returns the embedded play area.
func Default() (*Scene, error) {
	return Load(bytes.NewReader(playarea))
}

// LoadFileOrDefault reads path, or returns the embedded play area when path is empty.
func LoadFileOrDefault(path string) (*Scene, error) {
	if path == "" {
		return Default()
	}
	return LoadFile(path)
}

// Lookup finds a transform by name.
func (s *Scene) Lookup(name string) (*Transform, error) {
	for _, t := range s.Transforms {
		if t.Name == name {
			return t, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, name)
}

// OnlyCamera returns the scene's single camera.
func (s *Scene) OnlyCamera() (*Camera, error) {
	if len(s.Cameras) != 1 {
		return nil, fmt.Errorf("%w: expecting exactly one camera, scene has %d", ErrCameraCount, len(s.Cameras))
	}
	return s.Cameras[0], nil
}

// Clone deep-copies the scene so a game session can mutate it freely.
func (s *Scene) Clone() *Scene {
	c := &Scene{Transforms: make([]*Transform, len(s.Transforms))}
	index := make(map[*Transform]*Transform, len(s.Transforms))
	for i, t := range s.Transforms {
		cp := *t
		c.Transforms[i] = &cp
		index[t] = &cp
	}
	for _, cam := range s.Cameras {
		cp := *cam
		cp.Transform = index[cam.Transform]
		c.Cameras = append(c.Cameras, &cp)
	}
	return c
}
