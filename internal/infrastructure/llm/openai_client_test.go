package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bayup/backend/internal/application/assistant"
	"github.com/bayup/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewOpenAIClient_NilWithoutKey(t *testing.T) {
	assert.Nil(t, NewOpenAIClient(config.AssistantConfig{APIKey: "  "}, zap.NewNop()))
}

func TestOpenAIClient_Complete(t *testing.T) {
	var got chatRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"¡Hola!"},"finish_reason":"stop"}],"usage":{"prompt_tokens":12,"completion_tokens":3}}`))
	}))
	defer server.Close()

	client := NewOpenAIClient(config.AssistantConfig{APIKey: "sk-test", BaseURL: server.URL + "/v1/", MaxTokens: 100}, zap.NewNop())
	reply, err := client.Complete(context.Background(), []assistant.Message{
		{Role: "system", Content: "eres Bayt"},
		{Role: "user", Content: "hola"},
	})

	require.NoError(t, err)
	assert.Equal(t, "¡Hola!", reply)
	assert.Equal(t, "gpt-4o-mini", got.Model)
	assert.Equal(t, 100, got.MaxTokens)
	require.Len(t, got.Messages, 2)
	assert.Equal(t, "system", got.Messages[0].Role)
}

func TestOpenAIClient_Errors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   error
	}{
		{"api error", http.StatusUnauthorized, `{"error":{"message":"Incorrect API key","type":"invalid_request_error"}}`, ErrCompletionFailed},
		{"bad gateway", http.StatusBadGateway, `<html>`, ErrCompletionFailed},
		{"malformed", http.StatusOK, `nope`, ErrCompletionFailed},
		{"no choices", http.StatusOK, `{"choices":[]}`, ErrEmptyCompletion},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			client := NewOpenAIClient(config.AssistantConfig{APIKey: "sk-test", BaseURL: server.URL}, zap.NewNop())
			_, err := client.Complete(context.Background(), []assistant.Message{{Role: "user", Content: "hola"}})
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
