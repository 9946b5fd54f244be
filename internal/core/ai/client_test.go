package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ayura/internal/infrastructure/config"
	"ayura/internal/pkg/common"
)

func clientFor(url string) *OpenRouterClient {
	return NewOpenRouterClient(config.OpenRouterConfig{
		Enabled:   true,
		APIKey:    "sk-test",
		Model:     "test-model",
		MaxTokens: 50,
		Timeout:   2 * time.Second,
		BaseURL:   url + "/",
	})
}

func TestCompleteSendsChatRequest(t *testing.T) {
	var got Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"  Drink warm water.  "}}]}`))
	}))
	defer srv.Close()

	reply, err := clientFor(srv.URL).Complete(context.Background(), "be kind", "how do I sleep?")
	require.NoError(t, err)
	assert.Equal(t, "Drink warm water.", reply)

	assert.Equal(t, "test-model", got.Model)
	assert.Equal(t, 50, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
	assert.Equal(t, "how do I sleep?", got.Messages[1].Content)
}

func TestCompleteErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"error":"boom"}`},
		{"unauthorized", http.StatusUnauthorized, `{"error":"bad key"}`},
		{"no choices", http.StatusOK, `{"choices":[]}`},
		{"empty content", http.StatusOK, `{"choices":[{"message":{"content":"   "}}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			_, err := clientFor(srv.URL).Complete(context.Background(), "s", "p")
			assert.ErrorIs(t, err, common.ErrUpstreamFetch)
		})
	}
}

func TestCompleteUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := clientFor(url).Complete(context.Background(), "s", "p")
	assert.ErrorIs(t, err, common.ErrUpstreamFetch)
}
