package alarm

import (
	"log"
	"sync"
	"time"

	"github.com/gen2brain/beeep"

	"driveguard/internal/domain/port"
)

const beepPeriod = time.Second

// Beeper звуковая тревога: системный сигнал, повторяющийся до остановки,
// плюс одно настольное уведомление при запуске.
type Beeper struct {
	mu     sync.Mutex
	stopCh chan struct{}
}

// NewBeeper создаёт звуковую тревогу.
func NewBeeper() *Beeper {
	return &Beeper{}
}

// Play запускает тревогу. Не блокирует: сигнал звучит в фоне до Stop.
// Повторный вызов при уже звучащей тревоге ничего не делает.
func (b *Beeper) Play() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopCh != nil {
		return nil
	}

	// уведомление вторично, его сбой не отменяет звук
	_ = beeep.Notify("DriveGuard", "Drowsiness detected! Please acknowledge.", "")

	stopCh := make(chan struct{})
	b.stopCh = stopCh
	go b.loop(stopCh)
	return nil
}

func (b *Beeper) loop(stopCh <-chan struct{}) {
	ticker := time.NewTicker(beepPeriod)
	defer ticker.Stop()

	for {
		if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
			log.Printf("Beep failed: %v", err)
			return
		}
		select {
		case <-stopCh:
			return
		case <-ticker.C:
		}
	}
}

// Stop глушит тревогу. Безопасен при незапущенной тревоге.
func (b *Beeper) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.stopCh == nil {
		return
	}
	close(b.stopCh)
	b.stopCh = nil
}

var _ port.Alarm = (*Beeper)(nil)
