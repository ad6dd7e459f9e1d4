package port

import "context"

// SessionAPI интерфейс управления сеансом на бэкенде.
// Оба вызова одиночные, без повторов; ошибки никогда не фатальны для цикла.
type SessionAPI interface {
	// StartSession открывает сеанс и возвращает его идентификатор
	StartSession(ctx context.Context, userID int64) (string, error)

	// EndSession закрывает сеанс
	EndSession(ctx context.Context, sessionID string) error
}
