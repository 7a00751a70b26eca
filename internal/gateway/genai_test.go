package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vakildesk/vakildesk-api/pkg/config"
)

func newTestClient(serverURL string) *Client {
	return NewClient(config.AdvisorConfig{
		APIKey:         "test-key",
		BaseURL:        serverURL,
		Model:          "test-model",
		RequestTimeout: 5 * time.Second,
	}, nil)
}

func TestGenerateReturnsConcatenatedText(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.URL.Path, "test-model")
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Framing "},{"text":"of Issues"}]}}]}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	text, err := client.Generate(context.Background(), []Message{{Role: "user", Text: "predict"}})
	require.NoError(t, err)
	assert.Equal(t, "Framing of Issues", text)
}

func TestGenerateSurfacesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":{"message":"key invalid"}}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.Generate(context.Background(), []Message{{Text: "hi"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestStreamDeliversChunksInOrder(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"Hello \"}]}}]}\n\n"))
		w.Write([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"counsel.\"}]}}]}\n\n"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	chunks, err := client.Stream(context.Background(), []Message{{Text: "advise"}})
	require.NoError(t, err)

	var collected []string
	for chunk := range chunks {
		collected = append(collected, chunk)
	}
	require.Len(t, collected, 2)
	assert.Equal(t, "Hello ", collected[0])
	assert.Equal(t, "counsel.", collected[1])
}

func TestStreamSkipsMalformedEvents(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("data: not-json\n\n"))
		w.Write([]byte("data: {\"candidates\":[{\"content\":{\"parts\":[{\"text\":\"ok\"}]}}]}\n\n"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	chunks, err := client.Stream(context.Background(), []Message{{Text: "advise"}})
	require.NoError(t, err)

	var collected []string
	for chunk := range chunks {
		collected = append(collected, chunk)
	}
	require.Len(t, collected, 1)
	assert.Equal(t, "ok", collected[0])
}

func TestConfigured(t *testing.T) {
	assert.False(t, NewClient(config.AdvisorConfig{}, nil).Configured())
	assert.True(t, NewClient(config.AdvisorConfig{APIKey: "k"}, nil).Configured())
}
