package metrics

import (
	"net/http"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics счётчики работы цикла распознавания
type Metrics struct {
	FramesProcessed atomic.Uint64 // успешно классифицированные кадры
	CaptureErrors   atomic.Uint64
	ClassifyErrors  atomic.Uint64 // включая таймауты
	DrowsyEvents    atomic.Uint64
	SessionsStarted atomic.Uint64
	SessionsEnded   atomic.Uint64

	registry *prometheus.Registry
}

// New создаёт метрики и регистрирует их в приватном реестре Prometheus.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
	}
	m.register()
	return m
}

func (m *Metrics) register() {
	counters := []struct {
		name string
		help string
		load func() uint64
	}{
		{"driveguard_frames_processed_total", "Frames successfully classified", m.FramesProcessed.Load},
		{"driveguard_capture_errors_total", "Camera capture failures", m.CaptureErrors.Load},
		{"driveguard_classify_errors_total", "Classifier failures including timeouts", m.ClassifyErrors.Load},
		{"driveguard_drowsy_events_total", "Drowsy classifications above threshold", m.DrowsyEvents.Load},
		{"driveguard_sessions_started_total", "Backend sessions opened", m.SessionsStarted.Load},
		{"driveguard_sessions_ended_total", "Backend sessions closed", m.SessionsEnded.Load},
	}

	for _, c := range counters {
		load := c.load
		m.registry.MustRegister(prometheus.NewGaugeFunc(
			prometheus.GaugeOpts{Name: c.name, Help: c.help},
			func() float64 { return float64(load()) },
		))
	}
}

// Handler возвращает HTTP-обработчик для экспорта метрик.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
