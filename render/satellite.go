package render

import (
	"unsafe"

	"earthviewer/anim"
	"earthviewer/libgl"
	"earthviewer/render/batch"
	"earthviewer/traj"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	PointSize = 8
	// vertices the dynamic buffer starts with before growing
	initialVertexCapacity = 1024
)

var batchVertexSize = int(unsafe.Sizeof(batch.Vertex{}))

// SatelliteRenderer draws every trajectory's current position as a round
// point and its recent history as a translucent line strip.
type SatelliteRenderer struct {
	shader libgl.UnboundShaderPipeline
	vao    libgl.UnboundVertexArray
	vbo    libgl.UnboundBuffer
	batch  batch.Batch
	// scratch for MultiDrawArrays
	firsts, counts []int32
}

func NewSatelliteRenderer(shader libgl.UnboundShaderPipeline) *SatelliteRenderer {
	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel("satellites")
	vbo.AllocateEmpty(initialVertexCapacity*batchVertexSize, gl.DYNAMIC_STORAGE_BIT)

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("satellites")
	vao.Layout(0, 0, 3, gl.FLOAT, false, int(unsafe.Offsetof(batch.Vertex{}.Position)))
	vao.Layout(0, 1, 4, gl.FLOAT, false, int(unsafe.Offsetof(batch.Vertex{}.Color)))
	vao.BindBuffer(0, vbo, 0, batchVertexSize)

	shader.Get(gl.VERTEX_SHADER).SetUniform("u_point_size", float32(PointSize))

	return &SatelliteRenderer{
		shader: shader,
		vao:    vao,
		vbo:    vbo,
	}
}

func (r *SatelliteRenderer) Draw(projection, view mgl32.Mat4, trajs []traj.Trajectory, state *anim.State) {
	if !state.ShowSatellites || len(trajs) == 0 {
		return
	}
	defer libgl.PushGroup("Draw satellites")()

	r.batch.Build(trajs, state.Frame, state.TrailLength, state.ShowTrails)
	if r.batch.Empty() {
		return
	}

	if r.vbo.Grow(len(r.batch.Vertices) * batchVertexSize) {
		r.vao.ReBindBuffer(0, r.vbo)
	}
	r.vbo.Write(0, r.batch.Vertices)

	libgl.State.SetEnabled(libgl.DepthTest, libgl.Blend, libgl.ProgramPointSize)
	libgl.State.DepthFunc(libgl.DepthFuncLEqual)
	libgl.State.DepthMask(false)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)

	r.vao.Bind()
	r.shader.Bind()
	r.shader.Get(gl.VERTEX_SHADER).SetUniform("u_view_projection_mat", projection.Mul4(view))

	frag := r.shader.Get(gl.FRAGMENT_SHADER)
	if len(r.batch.Trails) > 0 {
		r.firsts, r.counts = r.firsts[:0], r.counts[:0]
		for _, trail := range r.batch.Trails {
			r.firsts = append(r.firsts, int32(trail.First))
			r.counts = append(r.counts, int32(trail.Count))
		}
		frag.SetUniform("u_round_points", false)
		gl.MultiDrawArrays(gl.LINE_STRIP, &r.firsts[0], &r.counts[0], int32(len(r.firsts)))
	}

	frag.SetUniform("u_round_points", true)
	gl.DrawArrays(gl.POINTS, int32(r.batch.Points.First), int32(r.batch.Points.Count))

	libgl.State.DepthMask(true)
}

func (r *SatelliteRenderer) Delete() {
	r.vao.Delete()
	r.vbo.Delete()
	r.shader.Delete()
}
