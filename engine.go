package main

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"earthviewer/anim"
	"earthviewer/config"
	"earthviewer/control"
	"earthviewer/libgl"
	"earthviewer/mesh"
	"earthviewer/metrics"
	"earthviewer/render"
	"earthviewer/trackball"
	"earthviewer/traj"

	"github.com/go-gl/gl/v4.5-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	viewerDistance = 3
	fieldOfView    = 45
	nearPlane      = 0.1
	farPlane       = 100
	// frames between window title refreshes
	titleInterval = 30
)

// Engine owns every piece of mutable viewer state. All methods must be called
// from the thread that owns the GL context.
type Engine struct {
	win        *glfw.Window
	logger     *slog.Logger
	trajs      []traj.Trajectory
	state      *anim.State
	clock      *anim.Clock
	camera     *trackball.Controller
	dispatcher *control.Dispatcher
	events     *inputQueue
	body       *render.BodyRenderer
	satellites *render.SatelliteRenderer
	gui        *ImGui
	metricsSrv *http.Server

	frameCount int
	lastFrame  time.Time
	fps        float32
}

func NewEngine(win *glfw.Window, cfg config.Config, logger *slog.Logger) *Engine {
	trajs, err := traj.Load(cfg.Trajectory.Path, logger)
	if errors.Is(err, traj.ErrNoData) {
		logger.Info("no trajectory file, running in planet-only mode", "path", cfg.Trajectory.Path)
	} else if err != nil {
		logger.Warn("could not load trajectories, running in planet-only mode", "error", err)
	}
	summary := traj.Summarize(trajs)
	if summary.Trajectories > 0 && summary.MinLength != summary.MaxLength {
		logger.Warn("trajectories differ in length, shorter ones loop early", "min", summary.MinLength, "max", summary.MaxLength)
	}
	metrics.SetTrajectories(len(trajs))

	sphere, err := mesh.NewSphere(mesh.DefaultSegments)
	check(err)

	bodyShader, err := libgl.LoadPipeline(Res_BodyVshSrc, Res_BodyFshSrc)
	check(err)
	satelliteShader, err := libgl.LoadPipeline(Res_SatelliteVshSrc, Res_SatelliteFshSrc)
	check(err)
	imguiShader, err := libgl.LoadPipeline(Res_ImguiVshSrc, Res_ImguiFshSrc)
	check(err)

	assets := cfg.Assets
	body := render.NewBodyRenderer(bodyShader, render.UploadSphere(sphere), render.BodyTextures{
		Day:    assets.Path(assets.Day),
		Night:  assets.Path(assets.Night),
		Clouds: assets.Path(assets.Clouds),
		Noise:  assets.Path(assets.Noise),
	}, logger)

	settings := anim.Settings{
		Speed:             cfg.Animation.Speed,
		BodyRotationSpeed: cfg.Animation.BodyRotationSpeed,
		TrailLength:       cfg.Animation.TrailLength,
		AutoRotate:        cfg.Animation.AutoRotate,
	}

	e := &Engine{
		win:        win,
		logger:     logger,
		trajs:      trajs,
		state:      anim.NewState(settings, traj.Period(trajs)),
		clock:      anim.NewClock(),
		camera:     trackball.NewController(),
		dispatcher: control.NewDispatcher(control.DefaultBindings),
		events:     newInputQueue(win),
		body:       body,
		satellites: render.NewSatelliteRenderer(satelliteShader),
		gui:        NewImGui(win, imguiShader),
		metricsSrv: metrics.Serve(cfg.Metrics.Addr, logger),
	}
	e.bindActions()
	return e
}

func (e *Engine) bindActions() {
	d, s := e.dispatcher, e.state
	d.Handle(control.Quit, func() {
		e.win.SetShouldClose(true)
	})
	d.Handle(control.TogglePause, func() {
		if s.TogglePause() {
			e.logger.Info("Paused")
		} else {
			e.logger.Info("Playing")
		}
	})
	d.Handle(control.ToggleWireframe, func() {
		e.logger.Info("toggled wireframe", "on", s.ToggleWireframe())
	})
	d.Handle(control.ToggleSatellites, func() {
		e.logger.Info("toggled satellites", "on", s.ToggleSatellites())
	})
	d.Handle(control.ToggleTrails, func() {
		e.logger.Info("toggled trails", "on", s.ToggleTrails())
	})
	d.Handle(control.ToggleAutoRotate, func() {
		e.logger.Info("toggled auto-rotate", "on", s.ToggleAutoRotate())
	})
	d.Handle(control.SpeedUp, func() {
		e.logger.Info("playback speed", "speed", s.ScaleSpeed(2))
	})
	d.Handle(control.SpeedDown, func() {
		e.logger.Info("playback speed", "speed", s.ScaleSpeed(0.5))
	})
	d.Handle(control.RotateFaster, func() {
		e.logger.Info("rotation speed", "deg_per_tick", s.ScaleBodyRotationSpeed(2))
	})
	d.Handle(control.RotateSlower, func() {
		e.logger.Info("rotation speed", "deg_per_tick", s.ScaleBodyRotationSpeed(0.5))
	})
	d.Handle(control.Reset, func() {
		s.Reset()
		e.logger.Info("reset to frame 0")
	})
	d.Handle(control.ToggleHelp, func() {
		if s.ToggleHelp() {
			e.printHelp()
		}
	})
}

func (e *Engine) printHelp() {
	for _, line := range e.dispatcher.Help() {
		e.logger.Info(line)
	}
}

func (e *Engine) handleEvents() {
	for _, ev := range e.events.Drain() {
		if e.gui.forward(ev) {
			continue
		}
		switch ev.kind {
		case eventKey:
			if ev.action != glfw.Press {
				continue
			}
			if name, ok := keyNames[ev.key]; ok {
				e.dispatcher.Press(name)
			}
		case eventMouseButton:
			if ev.button != glfw.MouseButtonLeft {
				continue
			}
			if ev.action == glfw.Press {
				e.camera.Begin(dragMode(ev.mods), ev.x, ev.y)
			} else if ev.action == glfw.Release {
				e.camera.End()
			}
		case eventCursor:
			w, h := e.win.GetSize()
			e.camera.Move(ev.x, ev.y, w, h)
		}
	}
}

func (e *Engine) Run() {
	e.lastFrame = time.Now()
	for !e.win.ShouldClose() {
		glfw.PollEvents()
		e.handleEvents()

		now := time.Now()
		dt := now.Sub(e.lastFrame)
		e.lastFrame = now
		if dt > 0 {
			e.fps = e.fps*0.9 + 0.1/float32(dt.Seconds())
		}
		e.clock.Update(dt.Seconds(), e.state)

		e.drawFrame()

		e.frameCount++
		if e.frameCount%titleInterval == 0 {
			e.win.SetTitle(e.state.Title())
		}
		metrics.ObserveFrame(dt, e.state.Frame, e.state.Speed)

		e.win.SwapBuffers()
	}
}

func (e *Engine) drawFrame() {
	fbWidth, fbHeight := e.win.GetFramebufferSize()
	if fbWidth <= 0 || fbHeight <= 0 {
		return
	}
	libgl.State.Viewport(0, 0, fbWidth, fbHeight)
	libgl.State.ClearColor(0, 0, 0.02, 1)
	libgl.State.DepthMask(true)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	aspect := float32(fbWidth) / float32(fbHeight)
	projection := mgl32.Perspective(mgl32.DegToRad(fieldOfView), aspect, nearPlane, farPlane)
	view := e.camera.ViewMatrix(viewerDistance)

	e.body.Draw(projection, view, e.state)
	e.satellites.Draw(projection, view, e.trajs, e.state)

	e.gui.NewFrame(e.win)
	e.gui.Layout(overlayStatus{
		Frame:        e.state.Frame,
		Period:       e.state.Period,
		Trajectories: len(e.trajs),
		Speed:        e.state.Speed,
		Fps:          e.fps,
		Paused:       e.state.Paused,
	}, &e.state.ShowHelp, e.dispatcher)
	e.gui.Draw(e.win)
}

func (e *Engine) Delete() {
	if e.metricsSrv != nil {
		e.metricsSrv.Close()
	}
	e.gui.Delete()
	e.satellites.Delete()
	e.body.Delete()
}
