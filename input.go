package main

import (
	"earthviewer/trackball"

	"github.com/go-gl/glfw/v3.3/glfw"
)

type inputEventKind int

const (
	eventKey inputEventKind = iota
	eventMouseButton
	eventCursor
	eventScroll
	eventChar
)

type inputEvent struct {
	kind   inputEventKind
	key    glfw.Key
	button glfw.MouseButton
	action glfw.Action
	mods   glfw.ModifierKey
	char   rune
	x, y   float64
}

// inputQueue collects window events from the glfw callbacks. They are
// drained once per frame on the main thread so no handler runs inside
// PollEvents.
type inputQueue struct {
	events, spare []inputEvent
}

func newInputQueue(win *glfw.Window) *inputQueue {
	q := &inputQueue{}
	win.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		q.events = append(q.events, inputEvent{kind: eventKey, key: key, action: action, mods: mods})
	})
	win.SetCharCallback(func(w *glfw.Window, char rune) {
		q.events = append(q.events, inputEvent{kind: eventChar, char: char})
	})
	win.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		x, y := w.GetCursorPos()
		q.events = append(q.events, inputEvent{kind: eventMouseButton, button: button, action: action, mods: mods, x: x, y: y})
	})
	win.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		q.events = append(q.events, inputEvent{kind: eventCursor, x: x, y: y})
	})
	win.SetScrollCallback(func(w *glfw.Window, x, y float64) {
		q.events = append(q.events, inputEvent{kind: eventScroll, x: x, y: y})
	})
	return q
}

// Drain returns the queued events and empties the queue. The returned slice
// is only valid until the next call.
func (q *inputQueue) Drain() []inputEvent {
	events := q.events
	q.events = q.spare[:0]
	q.spare = events
	return events
}

var keyNames = map[glfw.Key]string{
	glfw.KeySpace:  "Space",
	glfw.KeyEscape: "Escape",
	glfw.KeyUp:     "Up",
	glfw.KeyDown:   "Down",
	glfw.KeyLeft:   "Left",
	glfw.KeyRight:  "Right",
	glfw.KeyA:      "A",
	glfw.KeyH:      "H",
	glfw.KeyR:      "R",
	glfw.KeyS:      "S",
	glfw.KeyT:      "T",
	glfw.KeyW:      "W",
}

// dragMode picks the camera interaction from the modifiers held when the
// drag starts.
func dragMode(mods glfw.ModifierKey) trackball.Mode {
	switch {
	case mods&glfw.ModShift != 0:
		return trackball.ModeZoom
	case mods&glfw.ModAlt != 0:
		return trackball.ModePan
	}
	return trackball.ModeRotate
}
