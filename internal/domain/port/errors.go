package port

import (
	"errors"
	"fmt"
)

// ErrClassifyTimeout классификация не уложилась в отведённый лимит времени.
var ErrClassifyTimeout = errors.New("classify timed out")

// CaptureError ошибка снятия кадра: устройство недоступно или занято
type CaptureError struct {
	Err error
}

func (e *CaptureError) Error() string {
	return fmt.Sprintf("capture failed: %v", e.Err)
}

func (e *CaptureError) Unwrap() error { return e.Err }

// ClassifyError ошибка классификации: сбой сети или неуспешный ответ
type ClassifyError struct {
	Err error
}

func (e *ClassifyError) Error() string {
	return fmt.Sprintf("classify failed: %v", e.Err)
}

func (e *ClassifyError) Unwrap() error { return e.Err }

// SessionStartError ошибка открытия сеанса; цикл продолжает работу без сеанса
type SessionStartError struct {
	Err error
}

func (e *SessionStartError) Error() string {
	return fmt.Sprintf("session start failed: %v", e.Err)
}

func (e *SessionStartError) Unwrap() error { return e.Err }

// SessionEndError ошибка закрытия сеанса; цикл всё равно останавливается
type SessionEndError struct {
	Err error
}

func (e *SessionEndError) Error() string {
	return fmt.Sprintf("session end failed: %v", e.Err)
}

func (e *SessionEndError) Unwrap() error { return e.Err }

// AudioPlaybackError ошибка воспроизведения сигнала тревоги
type AudioPlaybackError struct {
	Err error
}

func (e *AudioPlaybackError) Error() string {
	return fmt.Sprintf("audio playback failed: %v", e.Err)
}

func (e *AudioPlaybackError) Unwrap() error { return e.Err }
