package anim_test

import (
	"strings"
	"testing"

	"earthviewer/anim"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/exp/slices"
)

func TestFrameWrapsAfterPeriod(t *testing.T) {
	const period = 7
	s := anim.NewState(anim.DefaultSettings(), period)
	for i := 1; i < period; i++ {
		s.Tick()
		if s.Frame != i {
			t.Fatalf("frame should be %d but is %d", i, s.Frame)
		}
	}
	s.Tick()
	if s.Frame != 0 {
		t.Errorf("frame should wrap to 0 after %d ticks but is %d", period, s.Frame)
	}
}

func TestPausedStateDoesNotChange(t *testing.T) {
	s := anim.NewState(anim.DefaultSettings(), 50)
	for i := 0; i < 10; i++ {
		s.Tick()
	}
	s.TogglePause()
	before := *s
	for i := 0; i < 1000; i++ {
		s.Tick()
	}
	if *s != before {
		t.Errorf("paused state should not change, before %+v after %+v", before, *s)
	}
}

func TestNoTrajectoriesKeepsFrameZero(t *testing.T) {
	s := anim.NewState(anim.DefaultSettings(), 0)
	for i := 0; i < 100; i++ {
		s.Tick()
	}
	if s.Frame != 0 {
		t.Errorf("frame should be 0 but is %d", s.Frame)
	}
	if s.SunAngle == 0 {
		t.Error("sun should still move without trajectories")
	}
}

func TestFastPlaybackVisitsEverySample(t *testing.T) {
	const period = 7
	s := anim.NewState(anim.DefaultSettings(), period)
	s.ScaleSpeed(2)
	var frames []int
	for i := 0; i < period; i++ {
		s.Tick()
		frames = append(frames, s.Frame)
	}
	want := []int{1, 2, 3, 4, 5, 6, 0}
	if !slices.Equal(frames, want) {
		t.Errorf("frames at 2x should be %v but are %v", want, frames)
	}
}

func TestClockScalesTickRate(t *testing.T) {
	s := anim.NewState(anim.DefaultSettings(), 1000)
	c := anim.NewClock()
	s.ScaleSpeed(2)
	if n := c.Update(anim.TickInterval+1e-9, s); n != 2 {
		t.Errorf("one interval at 2x should tick twice but ticked %d times", n)
	}
	if s.Frame != 2 {
		t.Errorf("frame should be 2 but is %d", s.Frame)
	}

	s.Reset()
	c = anim.NewClock()
	s.ScaleSpeed(0.5)
	if n := c.Update(anim.TickInterval+1e-9, s); n != 0 {
		t.Errorf("one interval at 0.5x should not tick but ticked %d times", n)
	}
	if n := c.Update(anim.TickInterval+1e-9, s); n != 1 {
		t.Errorf("two intervals at 0.5x should tick once but ticked %d times", n)
	}
	if s.Frame != 1 {
		t.Errorf("frame should be 1 but is %d", s.Frame)
	}
}

func TestClockBoundsTicksPerUpdate(t *testing.T) {
	s := anim.NewState(anim.DefaultSettings(), 1000)
	c := anim.NewClock()
	s.ScaleSpeed(4)
	if n := c.Update(10, s); n != 4 {
		t.Errorf("a stall at 4x should tick 4 times but ticked %d times", n)
	}
	if n := c.Update(0, s); n != 0 {
		t.Errorf("the stall remainder should be dropped but %d ticks followed", n)
	}
}

func TestSpeedClamps(t *testing.T) {
	s := anim.NewState(anim.DefaultSettings(), 10)
	for i := 0; i < 10; i++ {
		s.ScaleSpeed(2)
	}
	if s.Speed != anim.MaxSpeed {
		t.Errorf("speed should be clamped to %v but is %v", anim.MaxSpeed, s.Speed)
	}
	for i := 0; i < 20; i++ {
		s.ScaleSpeed(0.5)
	}
	if s.Speed != anim.MinSpeed {
		t.Errorf("speed should be clamped to %v but is %v", anim.MinSpeed, s.Speed)
	}
}

func TestAutoRotateWraps(t *testing.T) {
	settings := anim.DefaultSettings()
	settings.BodyRotationSpeed = 100
	s := anim.NewState(settings, 10)
	for i := 0; i < 4; i++ {
		s.Tick()
	}
	if !mgl32.FloatEqual(s.BodyRotation, 40) {
		t.Errorf("body rotation should wrap to 40 but is %v", s.BodyRotation)
	}

	s.ToggleAutoRotate()
	s.Tick()
	if !mgl32.FloatEqual(s.BodyRotation, 40) {
		t.Errorf("body rotation should stay at 40 but is %v", s.BodyRotation)
	}
}

func TestResetRestoresInitialValues(t *testing.T) {
	s := anim.NewState(anim.DefaultSettings(), 10)
	s.Tick()
	s.ScaleSpeed(4)
	s.ScaleBodyRotationSpeed(0.5)
	s.ToggleTrails()
	s.ToggleWireframe()
	s.TogglePause()
	s.Reset()

	want := anim.NewState(anim.DefaultSettings(), 10)
	if *s != *want {
		t.Errorf("reset state should be %+v but is %+v", *want, *s)
	}
}

func TestTitle(t *testing.T) {
	s := anim.NewState(anim.DefaultSettings(), 10)
	s.ToggleTrails()
	s.ScaleSpeed(2)
	want := "Earth Viewer | Sats: ON | Trails: OFF | Rotate: ON | Speed: 2.0x | [H] Help"
	if got := s.Title(); got != want {
		t.Errorf("title should be %q but is %q", want, got)
	}
}

func TestLightDirection(t *testing.T) {
	if d := anim.LightDirection(0); !d.ApproxEqual(mgl32.Vec3{1, 0, 0}) {
		t.Errorf("light at 0 deg should be +x but is %v", d)
	}
	if d := anim.LightDirection(90); !d.ApproxEqualThreshold(mgl32.Vec3{0, 0, 1}, 1e-5) {
		t.Errorf("light at 90 deg should be +z but is %v", d)
	}
}

func TestEyeLightDirectionFollowsViewRotation(t *testing.T) {
	if d := anim.EyeLightDirection(mgl32.Ident4(), 0); !d.ApproxEqual(anim.LightDirection(0)) {
		t.Errorf("identity view should keep the light at %v but is %v", anim.LightDirection(0), d)
	}

	moved := mgl32.Translate3D(0, 0, -3).Mul4(mgl32.Translate3D(0.5, -0.2, 0))
	if d := anim.EyeLightDirection(moved, 0); !d.ApproxEqual(mgl32.Vec3{1, 0, 0}) {
		t.Errorf("translation should not move the light but it is %v", d)
	}

	turned := mgl32.Translate3D(0, 0, -3).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(180)))
	if d := anim.EyeLightDirection(turned, 0); !d.ApproxEqualThreshold(mgl32.Vec3{-1, 0, 0}, 1e-5) {
		t.Errorf("a half turn of the camera should flip the light to -x but it is %v", d)
	}
}

func TestClockTicksOncePerInterval(t *testing.T) {
	s := anim.NewState(anim.DefaultSettings(), 100)
	c := anim.NewClock()
	if c.Update(anim.TickInterval/2, s) != 0 {
		t.Error("clock should not tick before the interval")
	}
	if c.Update(anim.TickInterval/2+1e-9, s) != 1 {
		t.Error("clock should tick once the interval passed")
	}
	if c.Update(1, s) != 1 {
		t.Error("clock should tick once after a long stall")
	}
	if s.Frame != 2 {
		t.Errorf("a stall should only tick once, frame should be 2 but is %d", s.Frame)
	}
	if c.Update(0, s) != 0 {
		t.Error("clock should reset after ticking")
	}
	if !strings.Contains(s.Title(), "Speed: 1.0x") {
		t.Errorf("unexpected title %q", s.Title())
	}
}
