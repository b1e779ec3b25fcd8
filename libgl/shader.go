package libgl

import (
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

var shaderMetaPattern = regexp.MustCompile(`(?m)^\/\/meta:(\w+)(.+)$`)

type shaderPipeline struct {
	glId      uint32
	vertStage ShaderProgram
	fragStage ShaderProgram
}

type UnboundShaderPipeline interface {
	Bind() BoundShaderPipeline
	Attach(program ShaderProgram, stages int)
	Get(stage int) ShaderProgram
	Id() uint32
	Delete()
}

type BoundShaderPipeline interface {
	UnboundShaderPipeline
}

func NewPipeline() UnboundShaderPipeline {
	var id uint32
	gl.CreateProgramPipelines(1, &id)
	return &shaderPipeline{
		glId: id,
	}
}

// LoadPipeline compiles a vertex and a fragment stage and attaches both to a
// new pipeline.
func LoadPipeline(vertSrc, fragSrc string) (UnboundShaderPipeline, error) {
	vert := NewShader(vertSrc, gl.VERTEX_SHADER)
	if err := vert.Compile(); err != nil {
		return nil, err
	}
	frag := NewShader(fragSrc, gl.FRAGMENT_SHADER)
	if err := frag.Compile(); err != nil {
		vert.Destroy()
		return nil, err
	}
	pipeline := NewPipeline()
	pipeline.Attach(vert, gl.VERTEX_SHADER_BIT)
	pipeline.Attach(frag, gl.FRAGMENT_SHADER_BIT)
	return pipeline, nil
}

func (p *shaderPipeline) Attach(program ShaderProgram, stages int) {
	gl.UseProgramStages(p.glId, uint32(stages), program.Id())
	if stages&gl.VERTEX_SHADER_BIT != 0 {
		p.vertStage = program
	}
	if stages&gl.FRAGMENT_SHADER_BIT != 0 {
		p.fragStage = program
	}
}

func (p *shaderPipeline) Get(stage int) ShaderProgram {
	switch stage {
	case gl.VERTEX_SHADER:
		return p.vertStage
	case gl.FRAGMENT_SHADER:
		return p.fragStage
	}
	log.Panicf("%d is not a valid shader stage\n", stage)
	return nil
}

func (p *shaderPipeline) Bind() BoundShaderPipeline {
	State.BindProgramPipeline(p.glId)
	return BoundShaderPipeline(p)
}

func (p *shaderPipeline) Id() uint32 {
	return p.glId
}

func (p *shaderPipeline) Delete() {
	for _, stage := range []ShaderProgram{p.vertStage, p.fragStage} {
		if stage != nil {
			stage.Destroy()
		}
	}
	gl.DeleteProgramPipelines(1, &p.glId)
	p.glId = 0
}

type program struct {
	uniformLocations map[string]int32
	glId             uint32
	name             string
	source           string
	stage            int
}

type ShaderProgram interface {
	Id() uint32
	Name() string
	Compile() error
	Destroy()
	GetUniformLocation(name string) int32
	SetUniform(name string, value any)
}

// NewShader wraps a separable program for one stage. A `//meta:name <name>`
// line in the source names the program in errors and logs.
func NewShader(source string, stage int) ShaderProgram {
	name := "untitled"
	for _, match := range shaderMetaPattern.FindAllStringSubmatch(source, -1) {
		key, value := match[1], strings.TrimSpace(match[2])
		if strings.EqualFold(key, "name") {
			name = value
		}
	}
	return &program{
		name:   name,
		stage:  stage,
		source: source,
	}
}

func (prog *program) Name() string {
	return prog.name
}

func (prog *program) Compile() error {
	cStrs, free := gl.Strs(prog.source + "\x00")
	id := gl.CreateShaderProgramv(uint32(prog.stage), 1, cStrs)
	free()

	var ok int32
	gl.GetProgramiv(id, gl.LINK_STATUS, &ok)
	if ok == gl.FALSE {
		info := readProgramInfoLog(id)
		gl.DeleteProgram(id)
		return fmt.Errorf("failed to link %v shader, log: %v", prog.name, info)
	}

	prog.glId = id
	prog.uniformLocations = map[string]int32{}
	return nil
}

func (prog *program) Id() uint32 {
	return prog.glId
}

func (prog *program) Destroy() {
	gl.DeleteProgram(prog.glId)
	prog.glId = 0
}

func readProgramInfoLog(id uint32) string {
	var logLength int32
	gl.GetProgramiv(id, gl.INFO_LOG_LENGTH, &logLength)

	info := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(id, logLength, nil, gl.Str(info))
	return strings.TrimRight(info, "\x00")
}

func (prog *program) GetUniformLocation(name string) int32 {
	if location, ok := prog.uniformLocations[name]; ok {
		return location
	}

	location := gl.GetUniformLocation(prog.glId, gl.Str(name+"\x00"))
	prog.uniformLocations[name] = location

	if location == -1 {
		log.Printf("%v shader: could not get location of %q\n", prog.name, name)
	}

	return location
}

func (prog *program) SetUniform(name string, value any) {
	location := prog.GetUniformLocation(name)
	if location == -1 {
		return
	}
	setProgramUniformAny(prog.glId, location, value)
}

func setProgramUniformAny(prog uint32, location int32, value any) {
	switch v := value.(type) {
	case float32:
		gl.ProgramUniform1f(prog, location, v)
	case int:
		gl.ProgramUniform1i(prog, location, int32(v))
	case int32:
		gl.ProgramUniform1i(prog, location, v)
	case uint32:
		gl.ProgramUniform1ui(prog, location, v)
	case bool:
		var i int32
		if v {
			i = 1
		}
		gl.ProgramUniform1i(prog, location, i)
	case mgl32.Vec2:
		gl.ProgramUniform2f(prog, location, v.X(), v.Y())
	case mgl32.Vec3:
		gl.ProgramUniform3f(prog, location, v.X(), v.Y(), v.Z())
	case mgl32.Vec4:
		gl.ProgramUniform4f(prog, location, v.X(), v.Y(), v.Z(), v.W())
	case mgl32.Mat3:
		gl.ProgramUniformMatrix3fv(prog, location, 1, false, &v[0])
	case mgl32.Mat4:
		gl.ProgramUniformMatrix4fv(prog, location, 1, false, &v[0])
	default:
		log.Panicf("Unsupported uniform type %v", reflect.TypeOf(value))
	}
}
