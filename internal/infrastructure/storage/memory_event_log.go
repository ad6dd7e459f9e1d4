package storage

import (
	"sync"

	"driveguard/internal/domain/entity"
	"driveguard/internal/domain/port"
)

// MemoryEventLog in-memory история результатов распознавания.
// Хранит ограниченное число последних событий.
type MemoryEventLog struct {
	mu     sync.RWMutex
	cap    int
	events []entity.DetectionEvent
}

// NewMemoryEventLog создаёт историю с указанной ёмкостью.
func NewMemoryEventLog(capacity int) *MemoryEventLog {
	if capacity <= 0 {
		capacity = 100
	}
	return &MemoryEventLog{
		cap:    capacity,
		events: make([]entity.DetectionEvent, 0, capacity),
	}
}

// Append сохраняет событие, вытесняя самое старое при переполнении.
func (l *MemoryEventLog) Append(event entity.DetectionEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.events = append(l.events, event)
	if len(l.events) > l.cap {
		l.events = l.events[len(l.events)-l.cap:]
	}
}

// Recent возвращает последние события, от новых к старым.
func (l *MemoryEventLog) Recent(limit int, drowsyOnly bool) []entity.DetectionEvent {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if limit <= 0 {
		limit = len(l.events)
	}

	result := make([]entity.DetectionEvent, 0, limit)
	for i := len(l.events) - 1; i >= 0 && len(result) < limit; i-- {
		if drowsyOnly && !l.events[i].Drowsy {
			continue
		}
		result = append(result, l.events[i])
	}
	return result
}

// Clear очищает историю.
func (l *MemoryEventLog) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = l.events[:0]
}

// Проверка реализации интерфейса
var _ port.EventLog = (*MemoryEventLog)(nil)
