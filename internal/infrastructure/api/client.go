package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"driveguard/internal/domain/entity"
	"driveguard/internal/domain/port"
)

// Client HTTP-клиент бэкенда: классификация кадров и управление сеансами.
// Время на каждый вызов ограничивается контекстом вызывающей стороны.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient создаёт клиента бэкенда.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{},
	}
}

// Classify отправляет кадр на классификацию. При наличии sessionID кадр
// привязывается к сеансу, иначе уходит на общий эндпоинт.
func (c *Client) Classify(ctx context.Context, image []byte, sessionID string) (*entity.DetectionSample, error) {
	endpoint := c.baseURL + "/predict_frame"
	if sessionID != "" {
		endpoint = c.baseURL + "/detect/" + sessionID
	}

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "frame.jpg")
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if _, err := part.Write(image); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, port.ErrClassifyTimeout
		}
		return nil, fmt.Errorf("send frame: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("classifier returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Success bool `json:"success"`
		Data    struct {
			Prediction string  `json:"prediction"`
			Confidence float64 `json:"confidence"`
		} `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if !parsed.Success {
		return nil, errors.New("classifier reported failure")
	}

	return &entity.DetectionSample{
		Label:      parsed.Data.Prediction,
		Confidence: parsed.Data.Confidence,
	}, nil
}

// StartSession открывает сеанс мониторинга на бэкенде.
func (c *Client) StartSession(ctx context.Context, userID int64) (string, error) {
	payload, err := json.Marshal(map[string]int64{"user_id": userID})
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sessions/start", bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("start session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("session start returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Success   bool   `json:"success"`
		SessionID string `json:"session_id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if !parsed.Success || parsed.SessionID == "" {
		return "", errors.New("backend rejected session start")
	}

	return parsed.SessionID, nil
}

// EndSession закрывает сеанс мониторинга на бэкенде.
func (c *Client) EndSession(ctx context.Context, sessionID string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/sessions/"+sessionID+"/end", nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("end session: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("session end returned status %d", resp.StatusCode)
	}

	var parsed struct {
		Success bool `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	if !parsed.Success {
		return errors.New("backend rejected session end")
	}

	return nil
}

// Проверка реализации интерфейсов
var (
	_ port.Classifier = (*Client)(nil)
	_ port.SessionAPI = (*Client)(nil)
)
