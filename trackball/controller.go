package trackball

import "github.com/go-gl/mathgl/mgl32"

type Mode int

const (
	ModeNone Mode = iota
	ModeRotate
	ModePan
	ModeZoom
)

func (m Mode) String() string {
	switch m {
	case ModeRotate:
		return "rotate"
	case ModePan:
		return "pan"
	case ModeZoom:
		return "zoom"
	}
	return "none"
}

type Controller struct {
	Orientation mgl32.Quat
	// Rotation applied by the most recent move
	Last  mgl32.Quat
	Pan   mgl32.Vec2
	Scale float32
	Mode  Mode

	beginX, beginY float32
}

func NewController() *Controller {
	return &Controller{
		Orientation: mgl32.QuatIdent(),
		Last:        mgl32.QuatIdent(),
		Scale:       1,
	}
}

// Begin starts a drag at window position (x, y).
func (c *Controller) Begin(mode Mode, x, y float64) {
	c.Mode = mode
	c.Last = mgl32.QuatIdent()
	c.beginX, c.beginY = float32(x), float32(y)
}

// Move continues the drag to (x, y) in a width x height window. The drag
// origin follows the cursor so every call applies only the incremental motion.
func (c *Controller) Move(x, y float64, width, height int) {
	if c.Mode == ModeNone || width <= 0 || height <= 0 {
		return
	}
	fx, fy := float32(x), float32(y)
	if fx == c.beginX && fy == c.beginY {
		return
	}
	w, h := float32(width), float32(height)
	dx := (fx - c.beginX) / w
	dy := (c.beginY - fy) / h

	switch c.Mode {
	case ModePan:
		c.Pan = c.Pan.Add(mgl32.Vec2{dx, dy})
	case ModeZoom:
		c.Scale *= 1 + dx
	case ModeRotate:
		from := mgl32.Vec2{(2*c.beginX - w) / w, (h - 2*c.beginY) / h}
		to := mgl32.Vec2{(2*fx - w) / w, (h - 2*fy) / h}
		c.Last = FromDrag(from, to)
		c.Orientation = c.Last.Mul(c.Orientation).Normalize()
	}

	c.beginX, c.beginY = fx, fy
}

// End finishes the drag, the accumulated orientation is kept.
func (c *Controller) End() {
	c.Mode = ModeNone
}

func (c *Controller) Reset() {
	*c = *NewController()
}

// ViewMatrix places the camera distance units in front of the origin and
// applies pan, orientation and scale in that order.
func (c *Controller) ViewMatrix(distance float32) mgl32.Mat4 {
	return mgl32.Translate3D(0, 0, -distance).
		Mul4(mgl32.Translate3D(c.Pan.X(), c.Pan.Y(), 0)).
		Mul4(c.Orientation.Mat4()).
		Mul4(mgl32.Scale3D(c.Scale, c.Scale, c.Scale))
}
