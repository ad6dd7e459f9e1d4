package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIBaseURL      string
	ClassifierWSURL string // если задан, классификация идёт по живому каналу
	UserID          int64

	CameraID        int
	TickInterval    time.Duration
	ClassifyTimeout time.Duration
	DrowsyThreshold float64

	TelegramToken  string
	TelegramChatID int64

	MetricsAddr   string
	EventLogLimit int
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		APIBaseURL:      getEnv("API_BASE_URL", "http://localhost:8000"),
		ClassifierWSURL: getEnv("CLASSIFIER_WS_URL", ""),
		UserID:          getEnvInt64("USER_ID", 0),
		CameraID:        getEnvInt("CAMERA_ID", 0),
		TickInterval:    time.Duration(getEnvInt("TICK_INTERVAL_MS", 500)) * time.Millisecond,
		ClassifyTimeout: time.Duration(getEnvInt("CLASSIFY_TIMEOUT_MS", 3000)) * time.Millisecond,
		DrowsyThreshold: getEnvFloat("DROWSY_THRESHOLD", 0.6),
		TelegramToken:   getEnv("TELEGRAM_TOKEN", ""),
		TelegramChatID:  getEnvInt64("TELEGRAM_CHAT_ID", 0),
		MetricsAddr:     getEnv("METRICS_ADDR", ""),
		EventLogLimit:   getEnvInt("EVENT_LOG_LIMIT", 100),
	}

	return cfg, nil
}

func getEnv(key string, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if intVal, err := strconv.Atoi(v); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvInt64(key string, defaultVal int64) int64 {
	if v := os.Getenv(key); v != "" {
		if intVal, err := strconv.ParseInt(v, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if v := os.Getenv(key); v != "" {
		if floatVal, err := strconv.ParseFloat(v, 64); err == nil {
			return floatVal
		}
	}
	return defaultVal
}
