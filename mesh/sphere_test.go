package mesh_test

import (
	"testing"

	"earthviewer/mesh"

	"github.com/chewxy/math32"
)

func TestSphereCounts(t *testing.T) {
	s, err := mesh.NewSphere(mesh.DefaultSegments)
	if err != nil {
		t.Fatal(err)
	}
	wantVerts := (64 + 1) * (32 + 1)
	if len(s.Vertices) != wantVerts {
		t.Errorf("vertex count should be %d but is %d", wantVerts, len(s.Vertices))
	}
	wantIdx := 64 * (32 - 1) * 6
	if len(s.Indices) != wantIdx {
		t.Errorf("index count should be %d but is %d", wantIdx, len(s.Indices))
	}
	for _, i := range s.Indices {
		if int(i) >= len(s.Vertices) {
			t.Fatalf("index %d out of range", i)
		}
	}
}

func TestSphereVertexAttributes(t *testing.T) {
	s, _ := mesh.NewSphere(16)
	for i, v := range s.Vertices {
		if l := v.Normal.Len(); math32.Abs(l-1) > 1e-5 {
			t.Errorf("normal %d should be unit length but is %v", i, l)
		}
		if v.Position.W() != 1 || !v.Position.Vec3().ApproxEqual(v.Normal) {
			t.Errorf("position %d should equal its normal, got %v and %v", i, v.Position, v.Normal)
		}
		if v.Uv.X() < 0 || v.Uv.X() > 1 || v.Uv.Y() < 0 || v.Uv.Y() > 1 {
			t.Errorf("uv %d should be in [0,1] but is %v", i, v.Uv)
		}
	}
}

func TestSphereWindingFacesOutward(t *testing.T) {
	s, _ := mesh.NewSphere(8)
	for k := 0; k < len(s.Indices); k += 3 {
		a := s.Vertices[s.Indices[k]].Position.Vec3()
		b := s.Vertices[s.Indices[k+1]].Position.Vec3()
		c := s.Vertices[s.Indices[k+2]].Position.Vec3()
		n := b.Sub(a).Cross(c.Sub(a))
		centroid := a.Add(b).Add(c)
		if n.Dot(centroid) <= 0 {
			t.Errorf("triangle %d should be counter-clockwise from outside", k/3)
		}
	}
}

func TestSphereRejectsBadSegments(t *testing.T) {
	for _, segments := range []int{0, 2, 7} {
		if _, err := mesh.NewSphere(segments); err == nil {
			t.Errorf("NewSphere(%d) should fail", segments)
		}
	}
}
