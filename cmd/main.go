package main

import (
	"bufio"
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"driveguard/config"
	app "driveguard/internal/application"
	"driveguard/internal/container"
	"driveguard/internal/domain/port"
	"driveguard/internal/infrastructure/alarm"
	"driveguard/internal/infrastructure/api"
	"driveguard/internal/infrastructure/camera"
	"driveguard/internal/infrastructure/notify"
	"driveguard/internal/infrastructure/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if cfg.UserID == 0 {
		log.Fatal("USER_ID is required")
	}

	// Камера принадлежит циклу и освобождается при выходе в любом случае
	cam, err := camera.NewWebcam(cfg.CameraID)
	if err != nil {
		log.Fatalf("Failed to open camera: %v", err)
	}
	defer cam.Close()

	backend := api.NewClient(cfg.APIBaseURL)

	var classifier port.Classifier = backend
	if cfg.ClassifierWSURL != "" {
		ws := api.NewWSClassifier(cfg.ClassifierWSURL)
		defer ws.Close()
		classifier = ws
		log.Printf("Using live classifier channel: %s", cfg.ClassifierWSURL)
	}

	var notifier port.AlertNotifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Telegram notifier disabled: %v", err)
		} else {
			notifier = tg
		}
	}

	events := storage.NewMemoryEventLog(cfg.EventLogLimit)

	c := container.New(cam, classifier, backend, alarm.NewBeeper(), notifier, events, app.Options{
		Interval:        cfg.TickInterval,
		ClassifyTimeout: cfg.ClassifyTimeout,
		Threshold:       cfg.DrowsyThreshold,
	})

	// сигнал для дашборда: сеанс завершён, агрегаты можно обновить
	c.DetectionService.SetOnComplete(func() {
		log.Println("Detection complete")
	})

	if cfg.MetricsAddr != "" {
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", c.Metrics.Handler())
			log.Printf("Metrics on http://%s/metrics", cfg.MetricsAddr)
			if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
				log.Printf("Metrics server stopped: %v", err)
			}
		}()
	}

	if err := c.DetectionService.Start(context.Background(), cfg.UserID); err != nil {
		log.Fatalf("Failed to start detection: %v", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	quit := make(chan struct{}, 1)
	go runConsole(c, quit)

	log.Println("Monitoring is running. Commands: a=acknowledge, s=stop, t=test frame, q=quit")

	select {
	case <-done:
	case <-quit:
	}

	log.Println("Shutting down...")
	c.DetectionService.Stop()
	log.Println("Goodbye!")
}

// runConsole читает команды пользователя со стандартного ввода.
func runConsole(c *container.Container, quit chan<- struct{}) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		switch strings.TrimSpace(scanner.Text()) {
		case "a":
			c.AlertService.Acknowledge()
			log.Println("Alert acknowledged")

		case "s":
			if c.AlertService.Prompting() {
				c.AlertService.StopSession()
			} else {
				c.DetectionService.Stop()
			}

		case "t":
			// ручная проверка одного кадра, общие ограничители действуют
			c.DetectionService.Tick(context.Background())
			log.Printf("Status: %s", c.DetectionService.Status())

		case "q":
			quit <- struct{}{}
			return

		default:
			state := c.DetectionService.State()
			log.Printf("Status: %s (detections=%d, alerts=%d)",
				c.DetectionService.Status(), state.DetectionCount, state.AlertCount)
		}
	}
}
