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

	"github.com/viable-systems/competitor-quick-scan/internal/config"
)

func testConfig(endpoint string) *config.OpenAIConfig {
	return &config.OpenAIConfig{
		Provider:    "openai",
		APIKey:      "test-key",
		APIEndpoint: endpoint,
		Model:       "gpt-4o-mini",
		MaxTokens:   1024,
		Timeout:     5 * time.Second,
	}
}

func TestComplete(t *testing.T) {
	mockResponse := `{
  "id": "chatcmpl-test",
  "object": "chat.completion",
  "model": "gpt-4o-mini",
  "choices": [
    {
      "index": 0,
      "message": {"role": "assistant", "content": "{\"overview\":\"x\"}"},
      "finish_reason": "stop"
    }
  ],
  "usage": {"prompt_tokens": 120, "completion_tokens": 80, "total_tokens": 200}
}`

	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(mockResponse))
	}))
	defer ts.Close()

	provider, err := NewOpenAI(testConfig(ts.URL))
	require.NoError(t, err)

	resp, err := provider.Complete(context.Background(), "analyze Stripe")
	require.NoError(t, err)

	assert.Equal(t, `{"overview":"x"}`, resp.Content)
	assert.Equal(t, int64(200), resp.Usage.TotalTokens)
	assert.Equal(t, int64(120), resp.Usage.PromptTokens)

	// The request carried the configured model and both messages.
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])
	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok, "expected messages array in request")
	require.Len(t, msgs, 2)
}

func TestComplete_ModelOverride(t *testing.T) {
	var gotBody map[string]any
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}],"usage":{"total_tokens":1}}`))
	}))
	defer ts.Close()

	provider, err := NewOpenAI(testConfig(ts.URL))
	require.NoError(t, err)

	resp, err := provider.Complete(context.Background(), "analyze", WithModel("gpt-4o"), WithMaxTokens(256))
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o", resp.Model)
	assert.Equal(t, "gpt-4o", gotBody["model"])
	assert.EqualValues(t, 256, gotBody["max_tokens"])
}

func TestComplete_NotConfigured(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:0")
	cfg.APIKey = ""
	provider, err := NewOpenAI(cfg)
	require.NoError(t, err)

	_, err = provider.Complete(context.Background(), "analyze Stripe")
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestComplete_ProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"invalid api key"}}`, http.StatusUnauthorized)
	}))
	defer ts.Close()

	provider, err := NewOpenAI(testConfig(ts.URL))
	require.NoError(t, err)

	_, err = provider.Complete(context.Background(), "analyze Stripe")
	assert.Error(t, err)
}
