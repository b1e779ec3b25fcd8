package render

import (
	"earthviewer/libgl"
	"earthviewer/mesh"

	"github.com/go-gl/gl/v4.5-core/gl"
)

// SphereMesh is a sphere uploaded to immutable GPU buffers.
type SphereMesh struct {
	vao        libgl.UnboundVertexArray
	vbo        libgl.UnboundBuffer
	ebo        libgl.UnboundBuffer
	indexCount int
}

func UploadSphere(sphere *mesh.Sphere) *SphereMesh {
	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel("sphere vertices")
	vbo.Allocate(sphere.Vertices, 0)

	ebo := libgl.NewBuffer()
	ebo.SetDebugLabel("sphere indices")
	ebo.Allocate(sphere.Indices, 0)

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("sphere")
	vao.Layout(0, 0, 4, gl.FLOAT, false, mesh.PositionOffset)
	vao.Layout(0, 1, 3, gl.FLOAT, false, mesh.NormalOffset)
	vao.Layout(0, 2, 2, gl.FLOAT, false, mesh.UvOffset)
	vao.BindBuffer(0, vbo, 0, mesh.VertexSize)
	vao.BindElementBuffer(ebo)

	return &SphereMesh{
		vao:        vao,
		vbo:        vbo,
		ebo:        ebo,
		indexCount: len(sphere.Indices),
	}
}

func (m *SphereMesh) Draw() {
	m.vao.Bind()
	gl.DrawElements(gl.TRIANGLES, int32(m.indexCount), gl.UNSIGNED_INT, nil)
}

func (m *SphereMesh) Delete() {
	m.vao.Delete()
	m.vbo.Delete()
	m.ebo.Delete()
}
