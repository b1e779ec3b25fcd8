package main

import (
	"fmt"
	"unsafe"

	"earthviewer/control"
	"earthviewer/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/inkyblackness/imgui-go/v4"
)

type ImGui struct {
	IO        imgui.IO
	context   *imgui.Context
	FrameTime float32
	vao       libgl.UnboundVertexArray
	vbo       libgl.UnboundBuffer
	ebo       libgl.UnboundBuffer
	atlas     libgl.UnboundTexture
	sampler   libgl.UnboundSampler
	shader    libgl.UnboundShaderPipeline
}

func NewImGui(win *glfw.Window, shader libgl.UnboundShaderPipeline) *ImGui {
	context := imgui.CreateContext(nil)

	io := imgui.CurrentIO()
	dispWidth, dispHeight := win.GetSize()
	io.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})
	imgui.StyleColorsDark()

	vertexSize, vertexOffsetPos, vertexOffsetUv, vertexOffsetCol := imgui.VertexBufferLayout()

	vbo := libgl.NewBuffer()
	vbo.SetDebugLabel("imgui vertices")
	vbo.AllocateEmpty(1<<16, gl.DYNAMIC_STORAGE_BIT)
	ebo := libgl.NewBuffer()
	ebo.SetDebugLabel("imgui indices")
	ebo.AllocateEmpty(1<<15, gl.DYNAMIC_STORAGE_BIT)

	vao := libgl.NewVertexArray()
	vao.SetDebugLabel("imgui")
	vao.Layout(0, 0, 2, gl.FLOAT, false, vertexOffsetPos)
	vao.Layout(0, 1, 2, gl.FLOAT, false, vertexOffsetUv)
	vao.Layout(0, 2, 4, gl.UNSIGNED_BYTE, true, vertexOffsetCol)
	vao.BindBuffer(0, vbo, 0, vertexSize)
	vao.BindElementBuffer(ebo)

	image := io.Fonts().TextureDataRGBA32()
	atlas := libgl.NewTexture()
	atlas.SetDebugLabel("imgui font atlas")
	atlas.Allocate(1, gl.RGBA8, image.Width, image.Height)
	atlas.Load(0, image.Width, image.Height, gl.RGBA, unsafe.Slice((*byte)(image.Pixels), image.Width*image.Height*4))
	io.Fonts().SetTextureID(imgui.TextureID(atlas.Id()))

	sampler := libgl.NewSampler()
	sampler.FilterMode(gl.LINEAR, gl.LINEAR)
	sampler.WrapMode(gl.CLAMP_TO_EDGE, gl.CLAMP_TO_EDGE)

	io.KeyMap(imgui.KeyTab, int(glfw.KeyTab))
	io.KeyMap(imgui.KeyLeftArrow, int(glfw.KeyLeft))
	io.KeyMap(imgui.KeyRightArrow, int(glfw.KeyRight))
	io.KeyMap(imgui.KeyUpArrow, int(glfw.KeyUp))
	io.KeyMap(imgui.KeyDownArrow, int(glfw.KeyDown))
	io.KeyMap(imgui.KeyBackspace, int(glfw.KeyBackspace))
	io.KeyMap(imgui.KeySpace, int(glfw.KeySpace))
	io.KeyMap(imgui.KeyEnter, int(glfw.KeyEnter))
	io.KeyMap(imgui.KeyEscape, int(glfw.KeyEscape))

	return &ImGui{
		IO:        io,
		context:   context,
		FrameTime: float32(glfw.GetTime()),
		vao:       vao,
		vbo:       vbo,
		ebo:       ebo,
		atlas:     atlas,
		sampler:   sampler,
		shader:    shader,
	}
}

// forward feeds a window event to the overlay. The return value reports
// whether the overlay consumed it.
func (gui *ImGui) forward(ev inputEvent) bool {
	io := gui.IO
	switch ev.kind {
	case eventCursor:
		io.SetMousePosition(imgui.Vec2{X: float32(ev.x), Y: float32(ev.y)})
		return false
	case eventMouseButton:
		io.SetMouseButtonDown(int(ev.button), ev.action == glfw.Press)
		return io.WantCaptureMouse() && ev.action == glfw.Press
	case eventScroll:
		io.AddMouseWheelDelta(float32(ev.x), float32(ev.y))
		return io.WantCaptureMouse()
	case eventChar:
		io.AddInputCharacters(string(ev.char))
		return io.WantCaptureKeyboard()
	case eventKey:
		if ev.action == glfw.Press {
			io.KeyPress(int(ev.key))
		}
		if ev.action == glfw.Release {
			io.KeyRelease(int(ev.key))
		}
		io.KeyCtrl(int(glfw.KeyLeftControl), int(glfw.KeyRightControl))
		io.KeyShift(int(glfw.KeyLeftShift), int(glfw.KeyRightShift))
		io.KeyAlt(int(glfw.KeyLeftAlt), int(glfw.KeyRightAlt))
		io.KeySuper(int(glfw.KeyLeftSuper), int(glfw.KeyRightSuper))
		return io.WantCaptureKeyboard()
	}
	return false
}

type overlayStatus struct {
	Frame        int
	Period       int
	Trajectories int
	Speed        float32
	Fps          float32
	Paused       bool
}

// Layout builds the status panel and, if help is open, the key binding
// window. It must run between NewFrame and Draw.
func (gui *ImGui) Layout(status overlayStatus, help *bool, dispatcher *control.Dispatcher) {
	imgui.SetNextWindowPos(imgui.Vec2{X: 10, Y: 10})
	imgui.BeginV("Status", nil, imgui.WindowFlagsAlwaysAutoResize|imgui.WindowFlagsNoCollapse)
	imgui.Text(fmt.Sprintf("Frame %d / %d", status.Frame, status.Period))
	imgui.Text(fmt.Sprintf("Trajectories: %d", status.Trajectories))
	imgui.Text(fmt.Sprintf("Speed: %.3gx", status.Speed))
	imgui.Text(fmt.Sprintf("%.0f fps", status.Fps))
	if status.Paused {
		imgui.Text("Paused")
	}
	imgui.End()

	if !*help {
		return
	}
	imgui.BeginV("Controls", help, imgui.WindowFlagsAlwaysAutoResize)
	for _, line := range dispatcher.Help() {
		imgui.Text(line)
	}
	imgui.End()
}

func (gui *ImGui) NewFrame(win *glfw.Window) {
	dispWidth, dispHeight := win.GetSize()
	gui.IO.SetDisplaySize(imgui.Vec2{X: float32(dispWidth), Y: float32(dispHeight)})

	time := float32(glfw.GetTime())
	dt := time - gui.FrameTime
	if dt <= 0 {
		dt = 1. / 60.
	}
	gui.IO.SetDeltaTime(dt)
	gui.FrameTime = time

	imgui.NewFrame()
}

func (gui *ImGui) Draw(win *glfw.Window) {
	defer libgl.PushGroup("Draw ImGui")()

	imgui.Render()

	dispWidth, dispHeight := win.GetSize()
	fbWidth, fbHeight := win.GetFramebufferSize()
	if dispWidth <= 0 || dispHeight <= 0 {
		return
	}
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	ortho := mgl32.Ortho2D(0, float32(dispWidth), float32(dispHeight), 0)

	gui.vao.Bind()
	gui.shader.Bind()
	gui.shader.Get(gl.VERTEX_SHADER).SetUniform("u_proj_mat", ortho)

	libgl.State.SetEnabled(libgl.Blend, libgl.ScissorTest)
	libgl.State.BlendEquation(libgl.BlendFuncAdd)
	libgl.State.BlendFunc(libgl.BlendSrcAlpha, libgl.BlendOneMinusSrcAlpha)
	libgl.State.PolygonMode(gl.FILL)
	gui.sampler.Bind(0)

	drawData := imgui.RenderedDrawData()
	drawData.ScaleClipRects(imgui.Vec2{
		X: float32(fbWidth) / float32(dispWidth),
		Y: float32(fbHeight) / float32(dispHeight),
	})

	indexSize := imgui.IndexBufferLayout()
	var indexType uint32
	switch indexSize {
	case 1:
		indexType = gl.UNSIGNED_BYTE
	case 2:
		indexType = gl.UNSIGNED_SHORT
	case 4:
		indexType = gl.UNSIGNED_INT
	}

	for _, list := range drawData.CommandLists() {
		vertexBuffer, vertexBufferSize := list.VertexBuffer()
		if gui.vbo.Grow(vertexBufferSize) {
			gui.vao.ReBindBuffer(0, gui.vbo)
		}
		gui.vbo.WritePointer(0, vertexBufferSize, vertexBuffer)

		indexBuffer, indexBufferSize := list.IndexBuffer()
		if gui.ebo.Grow(indexBufferSize) {
			gui.vao.BindElementBuffer(gui.ebo)
		}
		gui.ebo.WritePointer(0, indexBufferSize, indexBuffer)

		for _, cmd := range list.Commands() {
			if cmd.HasUserCallback() {
				cmd.CallUserCallback(list)
				continue
			}
			libgl.State.BindTextureUnit(0, uint32(cmd.TextureID()))
			clipRect := cmd.ClipRect()
			x, y := int(clipRect.X), fbHeight-int(clipRect.W)
			if y < 0 {
				y = 0
			}
			libgl.State.Scissor(x, y, int(clipRect.Z-clipRect.X), int(clipRect.W-clipRect.Y))
			gl.DrawElementsBaseVertexWithOffset(gl.TRIANGLES, int32(cmd.ElementCount()), indexType, uintptr(cmd.IndexOffset()*indexSize), int32(cmd.VertexOffset()))
		}
	}

	libgl.State.Disable(libgl.ScissorTest)
}

func (gui *ImGui) Delete() {
	gui.vao.Delete()
	gui.vbo.Delete()
	gui.ebo.Delete()
	gui.atlas.Delete()
	gui.sampler.Delete()
	gui.shader.Delete()
	gui.context.Destroy()
}
