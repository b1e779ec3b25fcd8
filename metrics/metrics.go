// Package metrics exposes frame loop statistics to Prometheus.
package metrics

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	framesRendered = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "earthviewer_frames_rendered_total",
			Help: "Total number of frames rendered.",
		},
	)

	frameSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "earthviewer_frame_duration_seconds",
			Help:    "Wall time between two presented frames.",
			Buckets: []float64{1. / 240, 1. / 144, 1. / 120, 1. / 60, 1. / 30, 1. / 15, .1, .25},
		},
	)

	animationFrame = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "earthviewer_animation_frame",
			Help: "Current trajectory frame index.",
		},
	)

	trajectoriesLoaded = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "earthviewer_trajectories_loaded",
			Help: "Number of satellite trajectories loaded.",
		},
	)

	playbackSpeed = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "earthviewer_playback_speed",
			Help: "Playback speed multiplier.",
		},
	)
)

func init() {
	prometheus.MustRegister(framesRendered)
	prometheus.MustRegister(frameSeconds)
	prometheus.MustRegister(animationFrame)
	prometheus.MustRegister(trajectoriesLoaded)
	prometheus.MustRegister(playbackSpeed)
}

// ObserveFrame records one presented frame.
func ObserveFrame(dt time.Duration, frame int, speed float32) {
	framesRendered.Inc()
	frameSeconds.Observe(dt.Seconds())
	animationFrame.Set(float64(frame))
	playbackSpeed.Set(float64(speed))
}

func SetTrajectories(n int) {
	trajectoriesLoaded.Set(float64(n))
}

// Handler returns the Prometheus metrics HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Serve exposes /metrics on addr in the background. The returned server is
// nil when addr is empty.
func Serve(addr string, logger *slog.Logger) *http.Server {
	if addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", Handler())
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		logger.Info("serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server stopped", "error", err)
		}
	}()
	return srv
}
