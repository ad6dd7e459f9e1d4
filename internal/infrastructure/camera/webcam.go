//go:build gocv
// +build gocv

package camera

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"gocv.io/x/gocv"

	"driveguard/internal/domain/port"
)

// Webcam источник кадров с локальной камеры через OpenCV
type Webcam struct {
	mu       sync.Mutex
	device   *gocv.VideoCapture
	deviceID int
}

// NewWebcam открывает камеру по номеру устройства.
func NewWebcam(deviceID int) (*Webcam, error) {
	device, err := gocv.OpenVideoCapture(deviceID)
	if err != nil {
		return nil, fmt.Errorf("open camera %d: %w", deviceID, err)
	}

	return &Webcam{
		device:   device,
		deviceID: deviceID,
	}, nil
}

// Capture снимает один кадр и возвращает его в JPEG.
func (w *Webcam) Capture(ctx context.Context) ([]byte, error) {
	_ = ctx
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.device == nil {
		return nil, errors.New("camera is closed")
	}

	img := gocv.NewMat()
	defer img.Close()

	if ok := w.device.Read(&img); !ok || img.Empty() {
		return nil, fmt.Errorf("camera %d returned no frame", w.deviceID)
	}

	buf, err := gocv.IMEncode(gocv.JPEGFileExt, img)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	defer buf.Close()

	data := make([]byte, buf.Len())
	copy(data, buf.GetBytes())
	return data, nil
}

// Close освобождает устройство. Камера принадлежит циклу распознавания
// и закрывается при завершении работы независимо от состояния цикла.
func (w *Webcam) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.device == nil {
		return nil
	}
	err := w.device.Close()
	w.device = nil
	return err
}

// Проверка реализации интерфейса
var _ port.FrameSource = (*Webcam)(nil)
