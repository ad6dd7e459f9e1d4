package port

import "driveguard/internal/domain/entity"

// EventLog интерфейс истории результатов распознавания
type EventLog interface {
	// Append сохраняет одно событие
	Append(event entity.DetectionEvent)

	// Recent возвращает последние события, от новых к старым.
	// При drowsyOnly отдаются только сонливые.
	Recent(limit int, drowsyOnly bool) []entity.DetectionEvent

	// Clear очищает историю
	Clear()
}
