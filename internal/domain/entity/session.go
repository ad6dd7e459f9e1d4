package entity

import "time"

// Session сеанс мониторинга, отслеживаемый бэкендом.
// Пустой ID означает локальный режим: бэкенд был недоступен при старте.
type Session struct {
	ID        string     // идентификатор на бэкенде, пустой в локальном режиме
	StartedAt time.Time  // момент старта
	EndedAt   *time.Time // момент завершения, nil пока сеанс активен
}

// NewSession создаёт новый активный сеанс
func NewSession(id string) *Session {
	return &Session{
		ID:        id,
		StartedAt: time.Now(),
	}
}

// IsLocal сообщает, работает ли сеанс без привязки к бэкенду.
func (s *Session) IsLocal() bool {
	return s.ID == ""
}

// Ended сообщает, завершён ли сеанс.
func (s *Session) Ended() bool {
	return s.EndedAt != nil
}

// End помечает сеанс завершённым. Повторный вызов ничего не меняет:
// завершённый сеанс никогда не стартует заново.
func (s *Session) End() {
	if s.EndedAt != nil {
		return
	}
	now := time.Now()
	s.EndedAt = &now
}
