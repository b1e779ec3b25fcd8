// Package batch turns the satellite trajectories at a given frame into one
// vertex stream that can be drawn with a handful of calls.
package batch

import (
	"earthviewer/traj"

	"github.com/go-gl/mathgl/mgl32"
)

type Vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec4
}

// Range is a run of vertices drawn by a single primitive call.
type Range struct {
	First int
	Count int
}

type Batch struct {
	Vertices []Vertex
	// One line strip per trajectory with a visible trail
	Trails []Range
	// Current position of every trajectory, drawn as points
	Points Range
}

// Build fills b for the given global frame, reusing its storage. Every
// trajectory contributes a point at Index(frame) and, when trails are shown,
// a strip over the up to trailLength samples before it.
func (b *Batch) Build(trajs []traj.Trajectory, frame, trailLength int, showTrails bool) {
	b.Vertices = b.Vertices[:0]
	b.Trails = b.Trails[:0]
	b.Points = Range{}

	if showTrails && trailLength > 0 {
		for i := range trajs {
			t := &trajs[i]
			if t.Len() == 0 {
				continue
			}
			end := t.Index(frame)
			start := end - trailLength
			if start < 0 {
				start = 0
			}
			if end-start <= 0 {
				continue
			}
			color := t.Color.Mul(0.5).Vec4(0.5)
			b.Trails = append(b.Trails, Range{First: len(b.Vertices), Count: end - start})
			for _, p := range t.Positions[start:end] {
				b.Vertices = append(b.Vertices, Vertex{Position: p.Pos, Color: color})
			}
		}
	}

	b.Points.First = len(b.Vertices)
	for i := range trajs {
		t := &trajs[i]
		if t.Len() == 0 {
			continue
		}
		p := t.At(t.Index(frame))
		b.Vertices = append(b.Vertices, Vertex{Position: p.Pos, Color: t.Color.Vec4(1)})
		b.Points.Count++
	}
}

func (b *Batch) Empty() bool {
	return len(b.Vertices) == 0
}
