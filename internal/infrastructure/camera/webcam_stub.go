//go:build !gocv
// +build !gocv

package camera

import (
	"context"
	"errors"

	"driveguard/internal/domain/port"
)

// Webcam заглушка камеры (сборка без OpenCV)
type Webcam struct {
	deviceID int
}

// NewWebcam создаёт заглушку камеры (без OpenCV).
func NewWebcam(deviceID int) (*Webcam, error) {
	return &Webcam{deviceID: deviceID}, nil
}

// Capture возвращает ошибку, если сборка без тега gocv.
func (w *Webcam) Capture(ctx context.Context) ([]byte, error) {
	_ = ctx
	return nil, errors.New("gocv build tag is not enabled")
}

// Close ничего не освобождает в заглушке.
func (w *Webcam) Close() error {
	return nil
}

var _ port.FrameSource = (*Webcam)(nil)
