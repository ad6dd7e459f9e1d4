package container

import (
	app "driveguard/internal/application"
	"driveguard/internal/domain/port"
	"driveguard/internal/metrics"
)

type Container struct {
	AlertService     *app.AlertService
	DetectionService *app.DetectionService
	Metrics          *metrics.Metrics
	EventLog         port.EventLog
}

func New(
	camera port.FrameSource,
	classifier port.Classifier,
	sessions port.SessionAPI,
	alarm port.Alarm,
	notifier port.AlertNotifier,
	events port.EventLog,
	opts app.Options,
) *Container {
	stats := metrics.New()
	alertService := app.NewAlertService(alarm, notifier)
	detectionService := app.NewDetectionService(camera, classifier, sessions, alertService, events, notifier, stats, opts)

	return &Container{
		AlertService:     alertService,
		DetectionService: detectionService,
		Metrics:          stats,
		EventLog:         events,
	}
}
