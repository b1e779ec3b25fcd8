package render

import (
	"log/slog"

	"earthviewer/anim"
	"earthviewer/libgl"
	"earthviewer/libutil"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

type BodyTextures struct {
	Day, Night, Clouds, Noise string
}

// BodyRenderer draws the lit, textured planet.
type BodyRenderer struct {
	shader   libgl.UnboundShaderPipeline
	sphere   *SphereMesh
	sampler  libgl.UnboundSampler
	textures [4]libgl.UnboundTexture
}

func NewBodyRenderer(shader libgl.UnboundShaderPipeline, sphere *SphereMesh, paths BodyTextures, logger *slog.Logger) *BodyRenderer {
	sampler := libgl.NewSampler()
	sampler.FilterMode(gl.LINEAR_MIPMAP_LINEAR, gl.LINEAR)
	sampler.WrapMode(gl.REPEAT, gl.REPEAT)

	r := &BodyRenderer{
		shader:  shader,
		sphere:  sphere,
		sampler: sampler,
	}
	r.textures[UnitDay] = LoadTexture(paths.Day, UnitDay, logger)
	r.textures[UnitNight] = LoadTexture(paths.Night, UnitNight, logger)
	r.textures[UnitClouds] = LoadTexture(paths.Clouds, UnitClouds, logger)
	r.textures[UnitNoise] = LoadTexture(paths.Noise, UnitNoise, logger)

	frag := shader.Get(gl.FRAGMENT_SHADER)
	frag.SetUniform("u_day_tex", UnitDay)
	frag.SetUniform("u_night_tex", UnitNight)
	frag.SetUniform("u_cloud_tex", UnitClouds)
	frag.SetUniform("u_noise_tex", UnitNoise)
	return r
}

// Draw renders the planet rotated by the body rotation of state and lit from
// its sun angle. The light is fixed in the scene, so it turns with the camera
// but not with the planet's spin.
func (r *BodyRenderer) Draw(projection, view mgl32.Mat4, state *anim.State) {
	defer libgl.PushGroup("Draw body")()

	model := mgl32.HomogRotate3DY(state.BodyRotation * libutil.Deg2Rad)
	modelView := view.Mul4(model)
	normal := modelView.Mat3().Inv().Transpose()

	libgl.State.SetEnabled(libgl.DepthTest, libgl.CullFace)
	libgl.State.DepthFunc(libgl.DepthFuncLess)
	libgl.State.DepthMask(true)
	if state.Wireframe {
		libgl.State.PolygonMode(gl.LINE)
	} else {
		libgl.State.PolygonMode(gl.FILL)
	}

	for unit, tex := range r.textures {
		r.sampler.Bind(unit)
		tex.Bind(unit)
	}

	r.shader.Bind()
	vert := r.shader.Get(gl.VERTEX_SHADER)
	vert.SetUniform("u_projection_mat", projection)
	vert.SetUniform("u_model_view_mat", modelView)
	vert.SetUniform("u_normal_mat", normal)
	frag := r.shader.Get(gl.FRAGMENT_SHADER)
	frag.SetUniform("u_light_dir", anim.EyeLightDirection(view, state.SunAngle))
	frag.SetUniform("u_time", state.CloudTime)

	r.sphere.Draw()

	libgl.State.PolygonMode(gl.FILL)
}

func (r *BodyRenderer) Delete() {
	for _, tex := range r.textures {
		tex.Delete()
	}
	r.sampler.Delete()
	r.sphere.Delete()
	r.shader.Delete()
}
