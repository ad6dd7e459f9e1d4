package entity

// LoopState состояние цикла распознавания.
// Мутируется только самим циклом и колбэками разрешения алерта.
type LoopState struct {
	IsRunning      bool             // цикл запущен
	IsBusy         bool             // идёт обработка одного кадра
	DetectionCount int              // успешных классификаций с момента старта
	AlertCount     int              // из них сонливых
	LastSample     *DetectionSample // последний успешный результат
	IsAlertActive  bool             // последний результат был сонливым и ещё не разрешён
}

// Reset обнуляет счётчики и флаги перед новым запуском.
func (s *LoopState) Reset() {
	s.IsRunning = false
	s.IsBusy = false
	s.DetectionCount = 0
	s.AlertCount = 0
	s.LastSample = nil
	s.IsAlertActive = false
}

// Fold учитывает один успешный результат классификации и возвращает,
// была ли распознана сонливость при заданном пороге.
func (s *LoopState) Fold(sample DetectionSample, threshold float64) bool {
	s.DetectionCount++
	s.LastSample = &sample

	drowsy := sample.IsDrowsy(threshold)
	if drowsy {
		s.AlertCount++
	}
	s.IsAlertActive = drowsy
	return drowsy
}
