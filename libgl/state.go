package libgl

import (
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
)

type Capability uint32

const (
	DepthTest        Capability = gl.DEPTH_TEST
	Blend            Capability = gl.BLEND
	ScissorTest      Capability = gl.SCISSOR_TEST
	CullFace         Capability = gl.CULL_FACE
	ProgramPointSize Capability = gl.PROGRAM_POINT_SIZE
)

type BlendFactor uint32

const (
	BlendSrcAlpha         BlendFactor = gl.SRC_ALPHA
	BlendOneMinusSrcAlpha BlendFactor = gl.ONE_MINUS_SRC_ALPHA
)

type BlendEquation uint32

const (
	BlendFuncAdd BlendEquation = gl.FUNC_ADD
)

type DepthFunc uint32

const (
	DepthFuncLess   DepthFunc = gl.LESS
	DepthFuncLEqual DepthFunc = gl.LEQUAL
)

// StateManager mirrors the bits of GL state the viewer touches so redundant
// state changes never reach the driver.
type StateManager struct {
	Caps                              map[Capability]bool
	TextureUnits, SamplerUnits        []uint32
	ProgramPipeline, VertexArray      uint32
	ViewportRect, ScissorRect         [4]int
	BlendFactorSrc, BlendFactorDst    BlendFactor
	BlendEquationMode                 BlendEquation
	DepthFuncFn                       DepthFunc
	DepthWriteMask                    bool
	ClearColorRGBA                    [4]float32
	PolygonModeFront, PolygonModeBack uint32
}

var State *StateManager

func NewStateManager() *StateManager {
	return &StateManager{
		Caps:             map[Capability]bool{},
		TextureUnits:     make([]uint32, 32),
		SamplerUnits:     make([]uint32, 32),
		DepthWriteMask:   true,
		PolygonModeFront: gl.FILL,
		PolygonModeBack:  gl.FILL,
	}
}

type Environment struct {
	Vendor   string
	Renderer string
	Version  string
}

var Env *Environment

func GetEnvironment() *Environment {
	trim := func(s string) string {
		return strings.TrimSuffix(s, "\x00")
	}
	return &Environment{
		Vendor:   trim(gl.GoStr(gl.GetString(gl.VENDOR))),
		Renderer: trim(gl.GoStr(gl.GetString(gl.RENDERER))),
		Version:  trim(gl.GoStr(gl.GetString(gl.VERSION))),
	}
}

func (s *StateManager) Enable(cap Capability) {
	if s.Caps[cap] {
		return
	}
	gl.Enable(uint32(cap))
	s.Caps[cap] = true
}

func (s *StateManager) Disable(cap Capability) {
	if !s.Caps[cap] {
		return
	}
	gl.Disable(uint32(cap))
	s.Caps[cap] = false
}

// SetEnabled enables exactly the given capabilities and disables every other
// capability that is currently enabled.
func (s *StateManager) SetEnabled(caps ...Capability) {
	want := make(map[Capability]bool, len(caps))
	for _, c := range caps {
		want[c] = true
	}
	for c, on := range s.Caps {
		if on && !want[c] {
			s.Disable(c)
		}
	}
	for c := range want {
		s.Enable(c)
	}
}

func (s *StateManager) BlendFunc(src, dst BlendFactor) {
	if s.BlendFactorSrc == src && s.BlendFactorDst == dst {
		return
	}
	gl.BlendFunc(uint32(src), uint32(dst))
	s.BlendFactorSrc = src
	s.BlendFactorDst = dst
}

func (s *StateManager) BlendEquation(mode BlendEquation) {
	if s.BlendEquationMode == mode {
		return
	}
	gl.BlendEquation(uint32(mode))
	s.BlendEquationMode = mode
}

func (s *StateManager) DepthFunc(fn DepthFunc) {
	if s.DepthFuncFn == fn {
		return
	}
	gl.DepthFunc(uint32(fn))
	s.DepthFuncFn = fn
}

func (s *StateManager) DepthMask(flag bool) {
	if s.DepthWriteMask == flag {
		return
	}
	gl.DepthMask(flag)
	s.DepthWriteMask = flag
}

func (s *StateManager) PolygonMode(mode uint32) {
	if s.PolygonModeFront == mode && s.PolygonModeBack == mode {
		return
	}
	gl.PolygonMode(gl.FRONT_AND_BACK, mode)
	s.PolygonModeFront = mode
	s.PolygonModeBack = mode
}

func (s *StateManager) BindTextureUnit(unit int, texture uint32) {
	if s.TextureUnits[unit] == texture {
		return
	}
	gl.BindTextureUnit(uint32(unit), texture)
	s.TextureUnits[unit] = texture
}

func (s *StateManager) BindSampler(unit int, sampler uint32) {
	if s.SamplerUnits[unit] == sampler {
		return
	}
	gl.BindSampler(uint32(unit), sampler)
	s.SamplerUnits[unit] = sampler
}

func (s *StateManager) BindProgramPipeline(pipeline uint32) {
	if s.ProgramPipeline == pipeline {
		return
	}
	gl.BindProgramPipeline(pipeline)
	s.ProgramPipeline = pipeline
}

func (s *StateManager) BindVertexArray(array uint32) {
	if s.VertexArray == array {
		return
	}
	gl.BindVertexArray(array)
	s.VertexArray = array
}

func (s *StateManager) Viewport(x, y, w, h int) {
	r := [4]int{x, y, w, h}
	if s.ViewportRect == r {
		return
	}
	gl.Viewport(int32(x), int32(y), int32(w), int32(h))
	s.ViewportRect = r
}

func (s *StateManager) Scissor(x, y, w, h int) {
	r := [4]int{x, y, w, h}
	if s.ScissorRect == r {
		return
	}
	gl.Scissor(int32(x), int32(y), int32(w), int32(h))
	s.ScissorRect = r
}

func (s *StateManager) ClearColor(r, g, b, a float32) {
	c := [4]float32{r, g, b, a}
	if s.ClearColorRGBA == c {
		return
	}
	gl.ClearColor(r, g, b, a)
	s.ClearColorRGBA = c
}
