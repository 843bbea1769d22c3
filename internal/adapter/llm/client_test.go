package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resto-ads/internal/config/configs"
)

func newClient(srv *httptest.Server) *Client {
	return New(configs.LLM{APIKey: "key", BaseURL: srv.URL + "/", Model: "test-model", Timeout: 5 * time.Second})
}

func TestCompleteSendsMessages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer key", r.Header.Get("Authorization"))

		var req completionRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "test-model", req.Model)
		require.Len(t, req.Messages, 2)
		assert.Equal(t, "system", req.Messages[0].Role)
		assert.Equal(t, "post text", req.Messages[1].Content)

		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"{\"category\":\"INFO\"}"}}]}`))
	}))
	defer srv.Close()

	out, err := newClient(srv).Complete(context.Background(), "instructions", "post text")
	require.NoError(t, err)
	assert.Equal(t, `{"category":"INFO"}`, out)
}

func TestCompleteReturnsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	_, err := newClient(srv).Complete(context.Background(), "s", "u")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limited")
}

func TestCompleteEmptyReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer srv.Close()

	_, err := newClient(srv).Complete(context.Background(), "s", "u")
	require.ErrorIs(t, err, ErrEmptyReply)
}

func TestCompleteWithoutKey(t *testing.T) {
	_, err := New(configs.LLM{}).Complete(context.Background(), "s", "u")
	require.Error(t, err)
}
