package libutil_test

import (
	"testing"

	"earthviewer/libutil"
)

func TestWrapDegrees(t *testing.T) {
	cases := []struct {
		in, want float32
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{725, 5},
		{-90, 270},
	}
	for _, c := range cases {
		if got := libutil.WrapDegrees(c.in); got != c.want {
			t.Errorf("WrapDegrees(%v) should be %v but is %v", c.in, c.want, got)
		}
	}
}

func TestClamp(t *testing.T) {
	if got := libutil.Clamp(20, 0.125, 16); got != 16 {
		t.Errorf("clamp should be 16 but is %v", got)
	}
	if got := libutil.Clamp(0.01, 0.125, 16); got != 0.125 {
		t.Errorf("clamp should be 0.125 but is %v", got)
	}
}
