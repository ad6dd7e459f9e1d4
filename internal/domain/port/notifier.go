package port

import "context"

// AlertNotifier интерфейс внешнего канала уведомлений (например, Telegram)
type AlertNotifier interface {
	// NotifyDrowsy отправляет уведомление о распознанной сонливости
	NotifyDrowsy(ctx context.Context, confidencePct float64) error

	// NotifySessionEnded отправляет итог завершённого сеанса
	NotifySessionEnded(ctx context.Context, detections, alerts int) error
}
