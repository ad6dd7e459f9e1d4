package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func wsTestServer(t *testing.T, respond func(frame []byte) string) *httptest.Server {
	t.Helper()
	upgrader := websocket.Upgrader{}

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NotEmpty(t, r.URL.Query().Get("clientId"))

		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		for {
			_, frame, err := conn.ReadMessage()
			if err != nil {
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, []byte(respond(frame))); err != nil {
				return
			}
		}
	}))
}

func TestWSClassifier_RoundTrip(t *testing.T) {
	srv := wsTestServer(t, func(frame []byte) string {
		require.Equal(t, []byte("jpegdata"), frame)
		return `{"labels":["drowsy"],"confs":[0.85],"drowsy":true}`
	})
	defer srv.Close()

	client := NewWSClassifier("ws" + strings.TrimPrefix(srv.URL, "http"))
	defer client.Close()

	sample, err := client.Classify(context.Background(), []byte("jpegdata"), "")
	require.NoError(t, err)
	require.Equal(t, "drowsy", sample.Label)
	require.InDelta(t, 0.85, sample.Confidence, 1e-9)

	// соединение переживает несколько кадров подряд
	sample, err = client.Classify(context.Background(), []byte("jpegdata"), "")
	require.NoError(t, err)
	require.Equal(t, "drowsy", sample.Label)
}

func TestWSClassifier_ServerError(t *testing.T) {
	srv := wsTestServer(t, func(frame []byte) string {
		return `{"error":"decode_failed"}`
	})
	defer srv.Close()

	client := NewWSClassifier("ws" + strings.TrimPrefix(srv.URL, "http"))
	defer client.Close()

	_, err := client.Classify(context.Background(), []byte("bad"), "")
	require.ErrorContains(t, err, "decode_failed")
}

func TestSampleFromWS(t *testing.T) {
	// метка берётся по максимальной уверенности
	sample := sampleFromWS(wsResult{
		Labels: []string{"alert", "drowsy"},
		Confs:  []float64{0.4, 0.9},
		Drowsy: true,
	})
	require.Equal(t, "drowsy", sample.Label)
	require.InDelta(t, 0.9, sample.Confidence, 1e-9)

	// вердикт сервера дополняет метку, если ключевое слово другое
	sample = sampleFromWS(wsResult{
		Labels: []string{"yawn"},
		Confs:  []float64{0.7},
		Drowsy: true,
	})
	require.Equal(t, "drowsy yawn", sample.Label)

	// пустой ответ
	sample = sampleFromWS(wsResult{})
	require.Equal(t, "none", sample.Label)
	require.Zero(t, sample.Confidence)
}
