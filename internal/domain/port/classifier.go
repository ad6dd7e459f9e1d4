package port

import (
	"context"

	"driveguard/internal/domain/entity"
)

// Classifier интерфейс удалённого классификатора кадров
type Classifier interface {
	// Classify отправляет кадр на классификацию. Пустой sessionID означает
	// локальный режим без привязки результата к сеансу.
	Classify(ctx context.Context, image []byte, sessionID string) (*entity.DetectionSample, error)
}
