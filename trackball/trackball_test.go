package trackball_test

import (
	"testing"

	"earthviewer/trackball"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestZeroDragIsIdentity(t *testing.T) {
	p := mgl32.Vec2{0.3, -0.2}
	q := trackball.FromDrag(p, p)
	if !q.ApproxEqual(mgl32.QuatIdent()) {
		t.Errorf("zero drag should be identity but is %v", q)
	}
}

func TestDragRightRotatesAboutY(t *testing.T) {
	q := trackball.FromDrag(mgl32.Vec2{0, 0}, mgl32.Vec2{0.5, 0})
	front := q.Rotate(mgl32.Vec3{0, 0, 1})
	if front.X() <= 0 {
		t.Errorf("front should move to +x but is %v", front)
	}
	if math32.Abs(front.Y()) > 1e-5 {
		t.Errorf("front should stay at y=0 but is %v", front)
	}
	if l := q.Len(); math32.Abs(l-1) > 1e-5 {
		t.Errorf("quaternion should be unit length but is %v", l)
	}
}

func TestDragOutsideBallStaysFinite(t *testing.T) {
	q := trackball.FromDrag(mgl32.Vec2{-1, -1}, mgl32.Vec2{1, 1})
	for i, v := range []float32{q.W, q.V[0], q.V[1], q.V[2]} {
		if math32.IsNaN(v) || math32.IsInf(v, 0) {
			t.Errorf("component %d should be finite but is %v", i, v)
		}
	}
}

func TestControllerZeroMoveKeepsState(t *testing.T) {
	for _, mode := range []trackball.Mode{trackball.ModeRotate, trackball.ModePan, trackball.ModeZoom} {
		t.Run(mode.String(), func(t *testing.T) {
			c := trackball.NewController()
			c.Pan = mgl32.Vec2{0.1, -0.2}
			c.Scale = 1.5
			c.Begin(mode, 100, 100)
			c.Move(100, 100, 200, 200)
			if !c.Orientation.ApproxEqual(mgl32.QuatIdent()) {
				t.Errorf("orientation should be identity but is %v", c.Orientation)
			}
			if c.Pan != (mgl32.Vec2{0.1, -0.2}) {
				t.Errorf("pan should stay (0.1, -0.2) but is %v", c.Pan)
			}
			if c.Scale != 1.5 {
				t.Errorf("scale should stay 1.5 but is %v", c.Scale)
			}
			c.End()
			if c.Mode != trackball.ModeNone {
				t.Errorf("mode should be none but is %v", c.Mode)
			}
		})
	}
}

func TestControllerPanAndZoom(t *testing.T) {
	c := trackball.NewController()
	c.Begin(trackball.ModePan, 100, 100)
	c.Move(150, 80, 200, 100)
	if !c.Pan.ApproxEqual(mgl32.Vec2{0.25, 0.2}) {
		t.Errorf("pan should be (0.25, 0.2) but is %v", c.Pan)
	}
	c.End()

	c.Begin(trackball.ModeZoom, 100, 100)
	c.Move(120, 100, 200, 100)
	if !mgl32.FloatEqual(c.Scale, 1.1) {
		t.Errorf("scale should be 1.1 but is %v", c.Scale)
	}
	c.End()

	// moves without an active drag are ignored
	c.Move(0, 0, 200, 100)
	if !mgl32.FloatEqual(c.Scale, 1.1) {
		t.Errorf("scale should still be 1.1 but is %v", c.Scale)
	}
}

func TestControllerRotateKeepsOrientationAfterEnd(t *testing.T) {
	c := trackball.NewController()
	c.Begin(trackball.ModeRotate, 100, 100)
	c.Move(140, 100, 200, 200)
	c.End()
	if c.Orientation.ApproxEqual(mgl32.QuatIdent()) {
		t.Error("orientation should have changed")
	}
	if !c.Orientation.ApproxEqual(c.Last) {
		t.Errorf("single move orientation should equal last drag, %v != %v", c.Orientation, c.Last)
	}
}

func TestViewMatrixDefault(t *testing.T) {
	c := trackball.NewController()
	got := c.ViewMatrix(3).Mul4x1(mgl32.Vec4{0, 0, 0, 1})
	if !got.ApproxEqual(mgl32.Vec4{0, 0, -3, 1}) {
		t.Errorf("origin should map to (0,0,-3) but is %v", got)
	}
}
