package metrics_test

import (
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"earthviewer/metrics"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gather(t *testing.T, name string) *dto.MetricFamily {
	t.Helper()
	families, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		t.Fatal(err)
	}
	for _, f := range families {
		if f.GetName() == name {
			return f
		}
	}
	t.Fatalf("metric %v not registered", name)
	return nil
}

func TestObserveFrame(t *testing.T) {
	before := gather(t, "earthviewer_frames_rendered_total").GetMetric()[0].GetCounter().GetValue()
	metrics.ObserveFrame(16*time.Millisecond, 42, 2)
	metrics.SetTrajectories(3)

	after := gather(t, "earthviewer_frames_rendered_total").GetMetric()[0].GetCounter().GetValue()
	if after != before+1 {
		t.Errorf("frame counter should be %v but is %v", before+1, after)
	}
	if got := gather(t, "earthviewer_animation_frame").GetMetric()[0].GetGauge().GetValue(); got != 42 {
		t.Errorf("frame gauge should be 42 but is %v", got)
	}
	if got := gather(t, "earthviewer_trajectories_loaded").GetMetric()[0].GetGauge().GetValue(); got != 3 {
		t.Errorf("trajectory gauge should be 3 but is %v", got)
	}
	if got := gather(t, "earthviewer_frame_duration_seconds").GetMetric()[0].GetHistogram().GetSampleCount(); got == 0 {
		t.Error("frame histogram should have samples")
	}
}

func TestHandlerExposesMetrics(t *testing.T) {
	metrics.SetTrajectories(1)
	rec := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "earthviewer_trajectories_loaded 1") {
		t.Errorf("handler output should contain the trajectory gauge:\n%v", rec.Body.String())
	}
}

func TestServeDisabled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if srv := metrics.Serve("", logger); srv != nil {
		t.Error("an empty address should not start a server")
	}
}
