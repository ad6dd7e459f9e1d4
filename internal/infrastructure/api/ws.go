package api

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"driveguard/internal/domain/entity"
	"driveguard/internal/domain/port"
)

// WSClassifier классификатор через живой WebSocket-канал: кадр уходит
// бинарным сообщением, ответ приходит JSON-ом с метками и уверенностями.
// Канал строго последовательный: один кадр за раз.
type WSClassifier struct {
	url      string
	clientID string

	mu   sync.Mutex
	conn *websocket.Conn
}

type wsResult struct {
	Error  string    `json:"error"`
	Labels []string  `json:"labels"`
	Confs  []float64 `json:"confs"`
	Drowsy bool      `json:"drowsy"`
}

// NewWSClassifier создаёт клиента живого канала классификации.
func NewWSClassifier(wsURL string) *WSClassifier {
	return &WSClassifier{
		url:      wsURL,
		clientID: uuid.NewString(),
	}
}

// Classify отправляет кадр по живому каналу и ждёт результат.
// Сеанс в протоколе канала не участвует.
func (c *WSClassifier) Classify(ctx context.Context, image []byte, sessionID string) (*entity.DetectionSample, error) {
	_ = sessionID
	c.mu.Lock()
	defer c.mu.Unlock()

	conn, err := c.connect(ctx)
	if err != nil {
		return nil, fmt.Errorf("dial classifier: %w", err)
	}

	if deadline, ok := ctx.Deadline(); ok {
		_ = conn.SetWriteDeadline(deadline)
		_ = conn.SetReadDeadline(deadline)
	}

	if err := conn.WriteMessage(websocket.BinaryMessage, image); err != nil {
		c.reset()
		return nil, c.mapErr(err, "send frame")
	}

	var parsed wsResult
	if err := conn.ReadJSON(&parsed); err != nil {
		c.reset()
		return nil, c.mapErr(err, "read result")
	}
	if parsed.Error != "" {
		return nil, fmt.Errorf("classifier error: %s", parsed.Error)
	}

	return sampleFromWS(parsed), nil
}

// connect переиспользует соединение или устанавливает новое.
func (c *WSClassifier) connect(ctx context.Context) (*websocket.Conn, error) {
	if c.conn != nil {
		return c.conn, nil
	}

	url := c.url
	if strings.Contains(url, "?") {
		url += "&clientId=" + c.clientID
	} else {
		url += "?clientId=" + c.clientID
	}

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, err
	}
	c.conn = conn
	return conn, nil
}

func (c *WSClassifier) reset() {
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
}

// mapErr переводит сетевой таймаут в таймаут классификации.
func (c *WSClassifier) mapErr(err error, op string) error {
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return port.ErrClassifyTimeout
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return port.ErrClassifyTimeout
	}
	return fmt.Errorf("%s: %w", op, err)
}

// Close закрывает живой канал.
func (c *WSClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// sampleFromWS сводит ответ канала к одному результату: метка с максимальной
// уверенностью. Вердикт сервера о сонливости первичен, поэтому метка
// дополняется, если сервер счёл кадр сонливым по другим ключевым словам.
func sampleFromWS(res wsResult) *entity.DetectionSample {
	label := "none"
	confidence := 0.0
	for i, l := range res.Labels {
		conf := 0.0
		if i < len(res.Confs) {
			conf = res.Confs[i]
		}
		if label == "none" || conf > confidence {
			label = l
			confidence = conf
		}
	}

	if res.Drowsy && !strings.Contains(strings.ToLower(label), "drowsy") {
		label = "drowsy " + label
	}

	return &entity.DetectionSample{
		Label:      label,
		Confidence: confidence,
	}
}

var _ port.Classifier = (*WSClassifier)(nil)
