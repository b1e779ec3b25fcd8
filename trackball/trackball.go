// Package trackball implements a virtual trackball camera driven by mouse
// drags.
package trackball

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Size is the radius of the virtual ball in normalized device coordinates.
const Size = 0.8

// FromDrag returns the rotation that carries p1 to p2 on the virtual ball.
// Points are in normalized device coordinates, y up.
func FromDrag(p1, p2 mgl32.Vec2) mgl32.Quat {
	if p1 == p2 {
		return mgl32.QuatIdent()
	}

	a := mgl32.Vec3{p1.X(), p1.Y(), projectToSphere(Size, p1)}
	b := mgl32.Vec3{p2.X(), p2.Y(), projectToSphere(Size, p2)}

	axis := a.Cross(b)
	if axis.Len() < 1e-7 {
		return mgl32.QuatIdent()
	}

	t := b.Sub(a).Len() / (2 * Size)
	t = mgl32.Clamp(t, -1, 1)
	phi := 2 * math32.Asin(t)

	return mgl32.QuatRotate(phi, axis.Normalize())
}

// Inside r/sqrt(2) the point lies on the sphere, outside on a hyperbolic
// sheet so drags far from the center still rotate smoothly.
func projectToSphere(r float32, p mgl32.Vec2) float32 {
	d := p.Len()
	if d < r*math32.Sqrt2/2 {
		return math32.Sqrt(r*r - d*d)
	}
	t := r / math32.Sqrt2
	return t * t / d
}
