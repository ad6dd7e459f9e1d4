package entity

// AlertResolution способ закрытия запроса подтверждения
type AlertResolution string

const (
	ResolutionPending     AlertResolution = "pending"      // ожидает решения пользователя
	ResolutionAcknowledge AlertResolution = "acknowledge"  // подтверждено, мониторинг продолжается
	ResolutionStopSession AlertResolution = "stop_session" // подтверждено с остановкой сеанса
)

// AlertPrompt запрос подтверждения сонливости. Одновременно может быть
// открыт не более одного; разрешается ровно один раз.
type AlertPrompt struct {
	ConfidencePct float64
	Resolution    AlertResolution
}

// NewAlertPrompt создаёт открытый запрос подтверждения
func NewAlertPrompt(confidencePct float64) *AlertPrompt {
	return &AlertPrompt{
		ConfidencePct: confidencePct,
		Resolution:    ResolutionPending,
	}
}

// Pending сообщает, ожидает ли запрос решения.
func (p *AlertPrompt) Pending() bool {
	return p.Resolution == ResolutionPending
}

// Resolve закрывает запрос. Возвращает false, если он уже был разрешён.
func (p *AlertPrompt) Resolve(resolution AlertResolution) bool {
	if p.Resolution != ResolutionPending {
		return false
	}
	p.Resolution = resolution
	return true
}
