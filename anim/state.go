// Package anim holds the playback state of the viewer and the fixed rate
// clock that advances it.
package anim

import (
	"fmt"

	"earthviewer/libutil"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	MinSpeed = 0.125
	MaxSpeed = 16

	// one full day/night cycle of the light takes this many seconds at 1x
	SunCycleSeconds = 25
	CloudDrift      = 0.0001
)

type Settings struct {
	Speed             float32
	BodyRotationSpeed float32
	TrailLength       int
	AutoRotate        bool
}

func DefaultSettings() Settings {
	return Settings{
		Speed:             1,
		BodyRotationSpeed: 0.08,
		TrailLength:       100,
		AutoRotate:        true,
	}
}

type State struct {
	Frame int
	// Number of frames before Frame wraps, the longest trajectory length
	Period int
	// Degrees about +Y
	BodyRotation float32
	// Degrees, drives the light direction
	SunAngle          float32
	CloudTime         float32
	Speed             float32
	BodyRotationSpeed float32
	TrailLength       int

	Paused         bool
	AutoRotate     bool
	ShowSatellites bool
	ShowTrails     bool
	Wireframe      bool
	ShowHelp       bool

	settings Settings
}

func NewState(settings Settings, period int) *State {
	s := &State{settings: settings, Period: period}
	s.Reset()
	return s
}

// Reset restores every value to what the state was created with. Period is
// kept since it depends on the loaded data.
func (s *State) Reset() {
	*s = State{
		Period:            s.Period,
		Speed:             s.settings.Speed,
		BodyRotationSpeed: s.settings.BodyRotationSpeed,
		TrailLength:       s.settings.TrailLength,
		AutoRotate:        s.settings.AutoRotate,
		ShowSatellites:    true,
		ShowTrails:        true,
		settings:          s.settings,
	}
}

// Tick advances the animation by one step. Speed is applied by the clock
// through the tick rate, so every tick moves Frame by exactly one. A paused
// state is left untouched.
func (s *State) Tick() {
	if s.Paused {
		return
	}

	s.CloudTime += CloudDrift
	s.SunAngle = libutil.WrapDegrees(s.SunAngle + 360.0/SunCycleSeconds*float32(TickInterval))
	if s.AutoRotate {
		s.BodyRotation = libutil.WrapDegrees(s.BodyRotation + s.BodyRotationSpeed)
	}

	if s.Period <= 0 {
		s.Frame = 0
		return
	}
	s.Frame = (s.Frame + 1) % s.Period
}

func (s *State) TogglePause() bool {
	s.Paused = !s.Paused
	return s.Paused
}

func (s *State) ToggleWireframe() bool {
	s.Wireframe = !s.Wireframe
	return s.Wireframe
}

func (s *State) ToggleSatellites() bool {
	s.ShowSatellites = !s.ShowSatellites
	return s.ShowSatellites
}

func (s *State) ToggleTrails() bool {
	s.ShowTrails = !s.ShowTrails
	return s.ShowTrails
}

func (s *State) ToggleAutoRotate() bool {
	s.AutoRotate = !s.AutoRotate
	return s.AutoRotate
}

func (s *State) ToggleHelp() bool {
	s.ShowHelp = !s.ShowHelp
	return s.ShowHelp
}

// ScaleSpeed multiplies the playback speed, clamped to [MinSpeed, MaxSpeed].
func (s *State) ScaleSpeed(factor float32) float32 {
	s.Speed = libutil.Clamp(s.Speed*factor, MinSpeed, MaxSpeed)
	return s.Speed
}

func (s *State) ScaleBodyRotationSpeed(factor float32) float32 {
	s.BodyRotationSpeed *= factor
	return s.BodyRotationSpeed
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}

func (s *State) Title() string {
	return fmt.Sprintf("Earth Viewer | Sats: %s | Trails: %s | Rotate: %s | Speed: %.1fx | [H] Help",
		onOff(s.ShowSatellites), onOff(s.ShowTrails), onOff(s.AutoRotate), s.Speed)
}

// LightDirection is the unit direction towards the sun for an angle in
// degrees, rotating in the XZ plane of the scene.
func LightDirection(angle float32) mgl32.Vec3 {
	sin, cos := math32.Sincos(angle * libutil.Deg2Rad)
	return mgl32.Vec3{cos, 0, sin}
}

// EyeLightDirection moves the sun direction into eye space with the rotation
// part of view only. The sun stays fixed in the scene while the camera turns
// and ignores the planet's own spin.
func EyeLightDirection(view mgl32.Mat4, angle float32) mgl32.Vec3 {
	return view.Mat3().Mul3x1(LightDirection(angle))
}
