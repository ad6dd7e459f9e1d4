package port

import "context"

// FrameSource интерфейс источника кадров (камера)
type FrameSource interface {
	// Capture снимает один кадр и возвращает его байты (JPEG)
	Capture(ctx context.Context) ([]byte, error)

	// Close освобождает устройство
	Close() error
}
