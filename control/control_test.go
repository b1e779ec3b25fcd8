package control_test

import (
	"strings"
	"testing"

	"earthviewer/control"
)

func TestDispatchRunsHandler(t *testing.T) {
	d := control.NewDispatcher(control.DefaultBindings)
	paused := false
	d.Handle(control.TogglePause, func() { paused = !paused })

	if !d.Press("space") {
		t.Fatal("space should dispatch")
	}
	if !paused {
		t.Error("pause handler should have run")
	}
	if d.Press("W") {
		t.Error("W has no handler and should not dispatch")
	}
	if d.Press("F13") {
		t.Error("unbound key should not dispatch")
	}
}

func TestEveryActionIsBound(t *testing.T) {
	d := control.NewDispatcher(control.DefaultBindings)
	actions := []control.Action{
		control.Quit, control.TogglePause, control.ToggleWireframe, control.ToggleSatellites,
		control.ToggleTrails, control.ToggleAutoRotate, control.SpeedUp, control.SpeedDown,
		control.RotateFaster, control.RotateSlower, control.Reset, control.ToggleHelp,
	}
	bound := map[control.Action]bool{}
	for _, b := range d.Bindings() {
		if bound[b.Action] {
			t.Errorf("action %v is bound twice", b.Action)
		}
		bound[b.Action] = true
	}
	for _, a := range actions {
		if !bound[a] {
			t.Errorf("action %v should be bound", a)
		}
	}
}

func TestHelpLines(t *testing.T) {
	d := control.NewDispatcher(control.DefaultBindings)
	lines := d.Help()
	if len(lines) != len(control.DefaultBindings)+len(control.MouseHelp) {
		t.Fatalf("help should have one line per control but has %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "Drag ") {
		t.Errorf("first line should describe dragging but is %q", lines[0])
	}
	found := false
	for _, line := range lines {
		if strings.HasPrefix(line, "ESCAPE") && strings.HasSuffix(line, "- Quit") {
			found = true
		}
	}
	if !found {
		t.Errorf("help should list escape, got %v", lines)
	}
	sep := strings.Index(lines[0], " - ")
	for _, line := range lines {
		if strings.Index(line, " - ") != sep {
			t.Errorf("help lines should be aligned, got %q", line)
		}
	}
}
