package entity

import (
	"strings"
	"time"
)

// DefaultDrowsyThreshold порог уверенности, выше которого метка считается сонливостью.
const DefaultDrowsyThreshold = 0.6

// DetectionSample результат классификации одного кадра
type DetectionSample struct {
	Label      string  // метка классификатора
	Confidence float64 // уверенность в диапазоне [0,1]
}

// IsDrowsy проверяет, означает ли результат сонливость: метка содержит
// "drowsy" без учёта регистра, а уверенность строго выше порога.
func (s DetectionSample) IsDrowsy(threshold float64) bool {
	if !strings.Contains(strings.ToLower(s.Label), "drowsy") {
		return false
	}
	return s.Confidence > threshold
}

// ConfidencePct возвращает уверенность в процентах для показа пользователю.
func (s DetectionSample) ConfidencePct() float64 {
	return s.Confidence * 100
}

// DetectionEvent запись истории: один сохранённый результат классификации
type DetectionEvent struct {
	Sample    DetectionSample
	Drowsy    bool
	Timestamp time.Time
}
