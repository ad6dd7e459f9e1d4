package app

import (
	"context"
	"log"
	"sync"
	"time"

	"driveguard/internal/domain/entity"
	"driveguard/internal/domain/port"
)

// AlertService посредник между циклом распознавания и пользователем.
// Держит не более одного открытого запроса подтверждения; запрос модален
// для пользователя, но никогда не блокирует планировщик цикла.
type AlertService struct {
	alarm    port.Alarm
	notifier port.AlertNotifier // может быть nil

	mu           sync.Mutex
	stop         func()
	acknowledged func()
	prompt       *entity.AlertPrompt
	pulsing      bool
}

// NewAlertService создаёт презентер алертов.
func NewAlertService(alarm port.Alarm, notifier port.AlertNotifier) *AlertService {
	return &AlertService{
		alarm:    alarm,
		notifier: notifier,
	}
}

// Bind связывает презентер с циклом распознавания: stop останавливает цикл,
// acknowledged снимает в нём флаг активного алерта после подтверждения.
func (a *AlertService) Bind(stop, acknowledged func()) {
	a.mu.Lock()
	a.stop = stop
	a.acknowledged = acknowledged
	a.mu.Unlock()
}

// Raise поднимает алерт о сонливости. Если запрос уже открыт, повторный
// сонливый тик ничего не добавляет. Сбой звука или уведомления логируется
// и никогда не мешает показу запроса.
func (a *AlertService) Raise(confidencePct float64) {
	a.mu.Lock()
	a.pulsing = true
	if a.prompt != nil && a.prompt.Pending() {
		a.mu.Unlock()
		return
	}
	a.prompt = entity.NewAlertPrompt(confidencePct)
	a.mu.Unlock()

	if err := a.alarm.Play(); err != nil {
		log.Printf("%v", &port.AudioPlaybackError{Err: err})
	}

	if a.notifier != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := a.notifier.NotifyDrowsy(ctx, confidencePct); err != nil {
				log.Printf("Drowsiness notification failed: %v", err)
			}
		}()
	}
}

// Acknowledge закрывает запрос, оставляя цикл работать.
func (a *AlertService) Acknowledge() {
	if !a.resolve(entity.ResolutionAcknowledge) {
		return
	}
	a.alarm.Stop()

	a.mu.Lock()
	acknowledged := a.acknowledged
	a.mu.Unlock()
	if acknowledged != nil {
		acknowledged()
	}
}

// StopSession закрывает запрос и останавливает цикл распознавания.
func (a *AlertService) StopSession() {
	if !a.resolve(entity.ResolutionStopSession) {
		return
	}
	a.alarm.Stop()

	a.mu.Lock()
	stop := a.stop
	a.mu.Unlock()
	if stop != nil {
		stop()
	}
}

// resolve разрешает открытый запрос ровно один раз.
func (a *AlertService) resolve(resolution entity.AlertResolution) bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.prompt == nil || !a.prompt.Resolve(resolution) {
		return false
	}
	a.prompt = nil
	a.pulsing = false
	return true
}

// StandDown гасит пассивный индикатор после несонливого тика.
// Уже открытый запрос подтверждения при этом не закрывается:
// его снимает только явное решение пользователя.
func (a *AlertService) StandDown() {
	a.mu.Lock()
	a.pulsing = false
	a.mu.Unlock()
}

// Dismiss глушит сигнал и отбрасывает открытый запрос без решения.
// Используется при остановке цикла извне: запрос живёт не дольше
// поднявшего его алерта, иначе он заблокирует тревогу в новом сеансе.
func (a *AlertService) Dismiss() {
	a.mu.Lock()
	a.prompt = nil
	a.pulsing = false
	a.mu.Unlock()
	a.alarm.Stop()
}

// Prompting сообщает, открыт ли запрос подтверждения.
func (a *AlertService) Prompting() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.prompt != nil && a.prompt.Pending()
}

// Prompt возвращает копию открытого запроса и признак его наличия.
func (a *AlertService) Prompt() (entity.AlertPrompt, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.prompt == nil {
		return entity.AlertPrompt{}, false
	}
	return *a.prompt, true
}

// Indicating сообщает, горит ли пассивный индикатор сонливости.
func (a *AlertService) Indicating() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.pulsing
}
