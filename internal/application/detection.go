package app

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"driveguard/internal/domain/entity"
	"driveguard/internal/domain/port"
	"driveguard/internal/metrics"
)

// ErrAlreadyRunning цикл уже запущен.
var ErrAlreadyRunning = errors.New("detection loop is already running")

const (
	statusIdle       = "Idle"
	statusMonitoring = "Monitoring..."
	statusDrowsy     = "DROWSINESS DETECTED!"
)

// Options параметры цикла распознавания
type Options struct {
	Interval        time.Duration // период между тиками
	ClassifyTimeout time.Duration // жёсткий лимит на один вызов классификатора
	Threshold       float64       // порог уверенности для сонливости
}

// DefaultOptions возвращает эталонные параметры: тик 500 мс, лимит 3 с, порог 0.6.
func DefaultOptions() Options {
	return Options{
		Interval:        500 * time.Millisecond,
		ClassifyTimeout: 3 * time.Second,
		Threshold:       entity.DefaultDrowsyThreshold,
	}
}

// DetectionService цикл распознавания сонливости: периодически снимает кадр,
// отправляет его классификатору и сводит результат в счётчики и статус.
// Одновременно обрабатывается не более одного кадра; лишние тики отбрасываются.
type DetectionService struct {
	camera     port.FrameSource
	classifier port.Classifier
	sessions   port.SessionAPI
	presenter  *AlertService
	events     port.EventLog
	notifier   port.AlertNotifier
	stats      *metrics.Metrics
	onComplete func()

	opts Options

	// защита от параллельных тиков; тик при занятом флаге пропускается
	busy atomic.Bool

	mu      sync.Mutex
	state   entity.LoopState
	session *entity.Session
	status  string
	stopCh  chan struct{}
}

// NewDetectionService собирает цикл распознавания.
// events, notifier и stats могут быть nil.
func NewDetectionService(
	camera port.FrameSource,
	classifier port.Classifier,
	sessions port.SessionAPI,
	presenter *AlertService,
	events port.EventLog,
	notifier port.AlertNotifier,
	stats *metrics.Metrics,
	opts Options,
) *DetectionService {
	if opts.Interval <= 0 {
		opts.Interval = DefaultOptions().Interval
	}
	if opts.ClassifyTimeout <= 0 {
		opts.ClassifyTimeout = DefaultOptions().ClassifyTimeout
	}
	if opts.Threshold <= 0 {
		opts.Threshold = entity.DefaultDrowsyThreshold
	}

	s := &DetectionService{
		camera:     camera,
		classifier: classifier,
		sessions:   sessions,
		presenter:  presenter,
		events:     events,
		notifier:   notifier,
		stats:      stats,
		opts:       opts,
		status:     statusIdle,
	}
	if presenter != nil {
		presenter.Bind(s.Stop, s.acknowledgeAlert)
	}
	return s
}

// SetOnComplete задаёт наблюдателя "мониторинг завершён". Вызывается один раз
// на каждую успешную остановку с существующим идентификатором сеанса.
func (s *DetectionService) SetOnComplete(fn func()) {
	s.mu.Lock()
	s.onComplete = fn
	s.mu.Unlock()
}

// Start открывает сеанс на бэкенде и запускает периодические тики.
// Недоступность бэкенда не фатальна: цикл работает без привязки к сеансу.
func (s *DetectionService) Start(ctx context.Context, userID int64) error {
	s.mu.Lock()
	if s.state.IsRunning {
		s.mu.Unlock()
		return ErrAlreadyRunning
	}
	s.state.Reset()
	s.mu.Unlock()

	sessionID, err := s.sessions.StartSession(ctx, userID)
	if err != nil {
		log.Printf("Continuing without session: %v", &port.SessionStartError{Err: err})
		sessionID = ""
	} else if s.stats != nil {
		s.stats.SessionsStarted.Add(1)
	}

	s.mu.Lock()
	if s.state.IsRunning {
		s.mu.Unlock()
		// гонка двух стартов: проигравший закрывает свой сеанс,
		// чтобы тот не повис на бэкенде
		if sessionID != "" {
			ctx, cancel := context.WithTimeout(context.Background(), s.opts.ClassifyTimeout)
			if err := s.sessions.EndSession(ctx, sessionID); err != nil {
				log.Printf("Orphaned session %s: %v", sessionID, &port.SessionEndError{Err: err})
			}
			cancel()
		}
		return ErrAlreadyRunning
	}
	s.session = entity.NewSession(sessionID)
	s.state.IsRunning = true
	s.status = statusMonitoring
	stopCh := make(chan struct{})
	s.stopCh = stopCh
	s.mu.Unlock()

	if s.events != nil {
		s.events.Clear()
	}

	go s.run(stopCh)

	if sessionID == "" {
		log.Printf("Detection started for user %d (local session)", userID)
	} else {
		log.Printf("Detection started for user %d, session %s", userID, sessionID)
	}
	return nil
}

// run гоняет тики до закрытия stopCh.
func (s *DetectionService) run(stopCh <-chan struct{}) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.Tick(context.Background())
		}
	}
}

// Stop останавливает цикл, глушит сигнал тревоги и закрывает сеанс на бэкенде.
// Повторный вызов безвреден.
func (s *DetectionService) Stop() {
	s.mu.Lock()
	if !s.state.IsRunning {
		s.mu.Unlock()
		return
	}
	detections := s.state.DetectionCount
	alerts := s.state.AlertCount
	session := s.session
	onComplete := s.onComplete
	s.state.Reset()
	s.session = nil
	s.status = statusIdle
	close(s.stopCh)
	s.stopCh = nil
	s.mu.Unlock()

	if s.presenter != nil {
		s.presenter.Dismiss()
	}

	hadSession := session != nil && !session.IsLocal()
	if hadSession {
		session.End()
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.ClassifyTimeout)
		if err := s.sessions.EndSession(ctx, session.ID); err != nil {
			// сеанс остаётся висеть на бэкенде, локально всё равно останавливаемся
			log.Printf("%v", &port.SessionEndError{Err: err})
		} else if s.stats != nil {
			s.stats.SessionsEnded.Add(1)
		}
		cancel()
	}

	if s.notifier != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := s.notifier.NotifySessionEnded(ctx, detections, alerts); err != nil {
				log.Printf("Session summary notification failed: %v", err)
			}
		}()
	}

	if hadSession && onComplete != nil {
		onComplete()
	}

	log.Printf("Detection stopped: %d detections, %d alerts", detections, alerts)
}

// Tick выполняет один цикл "кадр → классификация → свёртка". Вызывается
// планировщиком, а также вручную для проверки одного кадра. Пока идёт
// обработка предыдущего кадра, новые тики отбрасываются, не накапливаясь.
func (s *DetectionService) Tick(ctx context.Context) {
	s.mu.Lock()
	running := s.state.IsRunning
	sessionID := ""
	if s.session != nil {
		sessionID = s.session.ID
	}
	s.mu.Unlock()
	if !running {
		return
	}

	if !s.busy.CompareAndSwap(false, true) {
		return
	}
	s.setBusy(true)
	defer func() {
		s.setBusy(false)
		s.busy.Store(false)
	}()

	frame, err := s.camera.Capture(ctx)
	if err != nil {
		capErr := &port.CaptureError{Err: err}
		s.setStatus(capErr.Error())
		if s.stats != nil {
			s.stats.CaptureErrors.Add(1)
		}
		log.Printf("%v", capErr)
		return
	}

	cctx, cancel := context.WithTimeout(ctx, s.opts.ClassifyTimeout)
	sample, err := s.classifier.Classify(cctx, frame, sessionID)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, port.ErrClassifyTimeout) {
			err = port.ErrClassifyTimeout
		} else {
			err = &port.ClassifyError{Err: err}
		}
		s.setStatus(err.Error())
		if s.stats != nil {
			s.stats.ClassifyErrors.Add(1)
		}
		log.Printf("%v", err)
		return
	}

	s.fold(*sample)
}

// fold сводит результат классификации в состояние цикла и поднимает алерт.
func (s *DetectionService) fold(sample entity.DetectionSample) {
	s.mu.Lock()
	if !s.state.IsRunning {
		// цикл остановили, пока кадр был в обработке; результат не учитывается
		s.mu.Unlock()
		return
	}
	drowsy := s.state.Fold(sample, s.opts.Threshold)
	if drowsy {
		s.status = statusDrowsy
	} else {
		s.status = fmt.Sprintf("Monitoring... status: %s", sample.Label)
	}
	s.mu.Unlock()

	if s.stats != nil {
		s.stats.FramesProcessed.Add(1)
		if drowsy {
			s.stats.DrowsyEvents.Add(1)
		}
	}

	if s.events != nil {
		s.events.Append(entity.DetectionEvent{
			Sample:    sample,
			Drowsy:    drowsy,
			Timestamp: time.Now(),
		})
	}

	if s.presenter != nil {
		if drowsy {
			s.presenter.Raise(sample.ConfidencePct())
		} else {
			s.presenter.StandDown()
		}
	}
}

// acknowledgeAlert снимает флаг активного алерта после подтверждения:
// флаг горит, только пока сонливость не подтверждена пользователем.
func (s *DetectionService) acknowledgeAlert() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.state.IsRunning {
		return
	}
	s.state.IsAlertActive = false
	s.status = statusMonitoring
}

// Status возвращает текст статуса для отображения. Управляющей логики не несёт.
func (s *DetectionService) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// State возвращает копию состояния цикла.
func (s *DetectionService) State() entity.LoopState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Session возвращает текущий сеанс или nil.
func (s *DetectionService) Session() *entity.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.session
}

func (s *DetectionService) setBusy(busy bool) {
	s.mu.Lock()
	s.state.IsBusy = busy
	s.mu.Unlock()
}

func (s *DetectionService) setStatus(status string) {
	s.mu.Lock()
	s.status = status
	s.mu.Unlock()
}
