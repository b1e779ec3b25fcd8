// Package mesh builds CPU side geometry for the planet surface.
package mesh

import (
	"fmt"
	"unsafe"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const DefaultSegments = 64

type Vertex struct {
	Position mgl32.Vec4
	Normal   mgl32.Vec3
	Uv       mgl32.Vec2
}

var (
	VertexSize     = int(unsafe.Sizeof(Vertex{}))
	PositionOffset = int(unsafe.Offsetof(Vertex{}.Position))
	NormalOffset   = int(unsafe.Offsetof(Vertex{}.Normal))
	UvOffset       = int(unsafe.Offsetof(Vertex{}.Uv))
)

// Sphere is a unit UV sphere. The seam column is duplicated so u runs from 0
// to 1 without wrapping, triangles are counter-clockwise seen from outside.
type Sphere struct {
	Segments int
	Rings    int
	Vertices []Vertex
	Indices  []uint32
}

// NewSphere builds a sphere with segments slices around the axis and
// segments/2 rings from pole to pole.
func NewSphere(segments int) (*Sphere, error) {
	if segments < 4 || segments%2 != 0 {
		return nil, fmt.Errorf("sphere segments must be even and at least 4, got %d", segments)
	}
	rings := segments / 2

	s := &Sphere{
		Segments: segments,
		Rings:    rings,
		Vertices: make([]Vertex, 0, (segments+1)*(rings+1)),
		Indices:  make([]uint32, 0, segments*(rings-1)*6),
	}

	for j := 0; j <= rings; j++ {
		v := float32(j) / float32(rings)
		theta := v * math32.Pi
		sinTheta, cosTheta := math32.Sincos(theta)
		for i := 0; i <= segments; i++ {
			u := float32(i) / float32(segments)
			sinPhi, cosPhi := math32.Sincos(u * 2 * math32.Pi)
			n := mgl32.Vec3{sinTheta * sinPhi, cosTheta, sinTheta * cosPhi}
			s.Vertices = append(s.Vertices, Vertex{
				Position: n.Vec4(1),
				Normal:   n,
				Uv:       mgl32.Vec2{u, 1 - v},
			})
		}
	}

	stride := uint32(segments + 1)
	for j := 0; j < rings; j++ {
		for i := 0; i < segments; i++ {
			a := uint32(j)*stride + uint32(i)
			b := a + stride
			c := b + 1
			d := a + 1
			if j != rings-1 {
				s.Indices = append(s.Indices, a, b, c)
			}
			if j != 0 {
				s.Indices = append(s.Indices, a, c, d)
			}
		}
	}

	return s, nil
}
