// Package control maps named user actions to the functions that carry them
// out. It knows nothing about the windowing system; key names are plain
// strings resolved by the caller.
package control

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

type Action string

const (
	Quit             Action = "quit"
	TogglePause      Action = "pause"
	ToggleWireframe  Action = "wireframe"
	ToggleSatellites Action = "satellites"
	ToggleTrails     Action = "trails"
	ToggleAutoRotate Action = "auto-rotate"
	SpeedUp          Action = "speed-up"
	SpeedDown        Action = "speed-down"
	RotateFaster     Action = "rotate-faster"
	RotateSlower     Action = "rotate-slower"
	Reset            Action = "reset"
	ToggleHelp       Action = "help"
)

type Binding struct {
	Key         string
	Action      Action
	Description string
}

var DefaultBindings = []Binding{
	{"Space", TogglePause, "Pause/Play"},
	{"A", ToggleAutoRotate, "Toggle auto-rotate"},
	{"S", ToggleSatellites, "Toggle satellites"},
	{"T", ToggleTrails, "Toggle trails"},
	{"W", ToggleWireframe, "Toggle wireframe"},
	{"Up", SpeedUp, "Speed up playback (x2)"},
	{"Down", SpeedDown, "Slow down playback (x0.5)"},
	{"Right", RotateFaster, "Faster planet rotation"},
	{"Left", RotateSlower, "Slower planet rotation"},
	{"R", Reset, "Reset animation"},
	{"H", ToggleHelp, "Show help"},
	{"Escape", Quit, "Quit"},
}

// MouseHelp describes the pointer controls, they are not bound to actions.
var MouseHelp = [][2]string{
	{"Drag", "Rotate view"},
	{"Shift + Drag", "Zoom"},
	{"Alt + Drag", "Pan"},
}

type Dispatcher struct {
	handlers map[Action]func()
	bindings []Binding
}

func NewDispatcher(bindings []Binding) *Dispatcher {
	return &Dispatcher{
		handlers: map[Action]func(){},
		bindings: slices.Clone(bindings),
	}
}

func (d *Dispatcher) Handle(action Action, fn func()) {
	d.handlers[action] = fn
}

// Dispatch runs the handler of action and reports whether one was registered.
func (d *Dispatcher) Dispatch(action Action) bool {
	fn, ok := d.handlers[action]
	if !ok {
		return false
	}
	fn()
	return true
}

// ActionFor returns the action bound to a key name. Key names are matched
// case-insensitively.
func (d *Dispatcher) ActionFor(key string) (Action, bool) {
	i := slices.IndexFunc(d.bindings, func(b Binding) bool {
		return strings.EqualFold(b.Key, key)
	})
	if i < 0 {
		return "", false
	}
	return d.bindings[i].Action, true
}

// Press dispatches the action bound to a key name.
func (d *Dispatcher) Press(key string) bool {
	action, ok := d.ActionFor(key)
	if !ok {
		return false
	}
	return d.Dispatch(action)
}

func (d *Dispatcher) Bindings() []Binding {
	return slices.Clone(d.bindings)
}

// Help lists every control as aligned "key - description" lines.
func (d *Dispatcher) Help() []string {
	rows := make([][2]string, 0, len(MouseHelp)+len(d.bindings))
	rows = append(rows, MouseHelp...)
	for _, b := range d.bindings {
		rows = append(rows, [2]string{strings.ToUpper(b.Key), b.Description})
	}

	longest := slices.MaxFunc(rows, func(a, b [2]string) int {
		return len(a[0]) - len(b[0])
	})

	lines := make([]string, len(rows))
	for i, row := range rows {
		lines[i] = fmt.Sprintf("%-*s - %s", len(longest[0]), row[0], row[1])
	}
	return lines
}
