package port

// Alarm интерфейс звукового сигнала тревоги
type Alarm interface {
	// Play запускает сигнал. Ошибка воспроизведения не должна блокировать
	// визуальный запрос подтверждения.
	Play() error

	// Stop останавливает сигнал. Безопасен при незапущенном сигнале.
	Stop()
}
