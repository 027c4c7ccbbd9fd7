package chat_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"patter/pkg/chat"
)

func TestClient_OpenStreamsEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req struct {
			Messages []chat.Message `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		require.Len(t, req.Messages, 1)
		assert.Equal(t, chat.RoleUser, req.Messages[0].Role)
		assert.Equal(t, "Hello", req.Messages[0].Content)

		w.Header().Set("Content-Type", "text/event-stream")
		io.WriteString(w, "data: {\"type\":\"text_delta\",\"content\":\"Hi!\"}\n\n")
		io.WriteString(w, "data: {\"type\":\"done\"}\n\n")
	}))
	defer server.Close()

	client := chat.NewClient(server.URL)
	body, err := client.Open(context.Background(), []chat.Message{chat.NewUserMessage("Hello")})
	require.NoError(t, err)
	defer body.Close()

	raw, err := io.ReadAll(body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"text_delta"`)
	assert.Contains(t, string(raw), `"done"`)
}

func TestClient_OpenParsesErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		io.WriteString(w, `{"error":"rate limited"}`)
	}))
	defer server.Close()

	client := chat.NewClient(server.URL)
	_, err := client.Open(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
	assert.Contains(t, err.Error(), "rate limited")
}

func TestClient_OpenFallsBackToRawErrorBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "upstream exploded")
	}))
	defer server.Close()

	client := chat.NewClient(server.URL)
	_, err := client.Open(context.Background(), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream exploded")
}

func TestClient_Health(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/health", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := chat.NewClient(server.URL)
	assert.NoError(t, client.Health(context.Background()))
}

func TestClient_HealthFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := chat.NewClient(server.URL)
	assert.Error(t, client.Health(context.Background()))
}
