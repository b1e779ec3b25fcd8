package main

import (
	_ "embed"
	"flag"
	"log"
	"log/slog"
	"os"
	"runtime"
	"unsafe"

	"earthviewer/config"
	"earthviewer/libgl"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

//go:embed assets/shaders/imgui.vert
var Res_ImguiVshSrc string

//go:embed assets/shaders/imgui.frag
var Res_ImguiFshSrc string

//go:embed assets/shaders/body.vert
var Res_BodyVshSrc string

//go:embed assets/shaders/body.frag
var Res_BodyFshSrc string

//go:embed assets/shaders/satellite.vert
var Res_SatelliteVshSrc string

//go:embed assets/shaders/satellite.frag
var Res_SatelliteFshSrc string

var Arguments struct {
	ConfigPath                 string
	TrajectoryPath             string
	EnableCompatibilityProfile bool
}

func main() {
	flag.StringVar(&Arguments.ConfigPath, "config", "", "path to a config file, earthviewer.{toml,yaml,json} in the working directory by default")
	flag.StringVar(&Arguments.TrajectoryPath, "trajectories", "", "trajectory file, overrides trajectory.path")
	flag.BoolVar(&Arguments.EnableCompatibilityProfile, "enable-compatibility-profile", Arguments.EnableCompatibilityProfile, "")
	flag.Parse()

	cfg, err := config.Load(Arguments.ConfigPath)
	check(err)
	if Arguments.TrajectoryPath != "" {
		cfg.Trajectory.Path = Arguments.TrajectoryPath
	}
	if Arguments.EnableCompatibilityProfile {
		cfg.GL.Compatibility = true
	}

	level, _ := cfg.Level()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	runtime.LockOSThread()
	err = glfw.Init()
	check(err)
	defer glfw.Terminate()

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 5)
	glfw.WindowHint(glfw.Samples, 4)
	if cfg.GL.Debug {
		glfw.WindowHint(glfw.OpenGLDebugContext, glfw.True)
	}
	if cfg.GL.Compatibility {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCompatProfile)
	} else {
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	}
	ctx, err := glfw.CreateWindow(cfg.Window.Width, cfg.Window.Height, cfg.Window.Title, nil, nil)
	check(err)
	ctx.MakeContextCurrent()
	glfw.SwapInterval(1)

	err = gl.InitWithProcAddrFunc(func(name string) unsafe.Pointer {
		addr := glfw.GetProcAddress(name)
		if addr == nil {
			return unsafe.Pointer(uintptr(0xffff_ffff_ffff_ffff))
		}
		return addr
	})
	check(err)

	libgl.State = libgl.NewStateManager()
	libgl.Env = libgl.GetEnvironment()
	logger.Info("created context", "vendor", libgl.Env.Vendor, "renderer", libgl.Env.Renderer, "version", libgl.Env.Version)
	if cfg.GL.Debug {
		libgl.EnableDebugOutput(logger)
	}

	engine := NewEngine(ctx, cfg, logger)
	defer engine.Delete()

	engine.printHelp()
	engine.Run()
}

func check(err error) {
	if err != nil {
		log.Panic(err)
	}
}
