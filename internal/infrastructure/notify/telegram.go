package notify

import (
	"context"
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"driveguard/internal/domain/port"
)

// TelegramNotifier внешний канал уведомлений через Telegram
type TelegramNotifier struct {
	api    *tgbotapi.BotAPI
	chatID int64
}

// NewTelegramNotifier создаёт нотификатор с указанным токеном и чатом.
func NewTelegramNotifier(token string, chatID int64) (*TelegramNotifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Telegram notifier authorized on account %s", api.Self.UserName)

	return &TelegramNotifier{
		api:    api,
		chatID: chatID,
	}, nil
}

// NotifyDrowsy отправляет сообщение о распознанной сонливости.
func (n *TelegramNotifier) NotifyDrowsy(ctx context.Context, confidencePct float64) error {
	_ = ctx
	text := fmt.Sprintf("⚠️ Drowsiness detected (%.1f%% confidence). Please check on the driver.", confidencePct)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// NotifySessionEnded отправляет итог завершённого сеанса.
func (n *TelegramNotifier) NotifySessionEnded(ctx context.Context, detections, alerts int) error {
	_ = ctx
	text := fmt.Sprintf("✅ Monitoring session finished: %d frames classified, %d drowsy alerts.", detections, alerts)
	msg := tgbotapi.NewMessage(n.chatID, text)
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// Проверка реализации интерфейса
var _ port.AlertNotifier = (*TelegramNotifier)(nil)
