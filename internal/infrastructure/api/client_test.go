package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"driveguard/internal/domain/port"
)

func TestClient_ClassifyWithoutSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/predict_frame", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		require.Equal(t, "frame.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"data":{"prediction":"drowsy","confidence":0.85}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sample, err := client.Classify(context.Background(), []byte("jpegdata"), "")
	require.NoError(t, err)
	require.Equal(t, "drowsy", sample.Label)
	require.InDelta(t, 0.85, sample.Confidence, 1e-9)
}

func TestClient_ClassifyTaggedWithSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/detect/7", r.URL.Path)
		w.Write([]byte(`{"success":true,"data":{"prediction":"alert","confidence":0.9}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	sample, err := client.Classify(context.Background(), []byte("jpegdata"), "7")
	require.NoError(t, err)
	require.Equal(t, "alert", sample.Label)
}

func TestClient_ClassifyRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.Classify(context.Background(), []byte("jpegdata"), "")
	require.Error(t, err)
}

func TestClient_ClassifyTimeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.Write([]byte(`{"success":true,"data":{"prediction":"alert","confidence":0.9}}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err := client.Classify(ctx, []byte("jpegdata"), "")
	require.ErrorIs(t, err, port.ErrClassifyTimeout)
}

func TestClient_SessionLifecycle(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sessions/start":
			w.Write([]byte(`{"success":true,"session_id":"7"}`))
		case "/sessions/7/end":
			w.Write([]byte(`{"success":true}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	client := NewClient(srv.URL)

	id, err := client.StartSession(context.Background(), 42)
	require.NoError(t, err)
	require.Equal(t, "7", id)

	require.NoError(t, client.EndSession(context.Background(), "7"))
}

func TestClient_SessionStartRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.StartSession(context.Background(), 42)
	require.Error(t, err)
}
