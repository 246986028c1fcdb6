package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type capturedChatRequest struct {
	Model       string  `json:"model"`
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
	Stream      bool    `json:"stream"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func newOpenAITestServer(t *testing.T, status int, body string, captured *capturedChatRequest, auth *string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		if auth != nil {
			*auth = r.Header.Get("Authorization")
		}
		if captured != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(captured))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) Config {
	return Config{
		ClientType:  ClientTypeOpenAI,
		APIKey:      "sk-test",
		BaseURL:     baseURL,
		Model:       "deepseek-chat",
		Timeout:     5 * time.Second,
		Temperature: 0.8,
		MaxTokens:   800,
	}
}

func TestOpenAIClientGenerateText(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		var captured capturedChatRequest
		var auth string
		srv := newOpenAITestServer(t, http.StatusOK, `{
			"id": "cmpl-1",
			"choices": [{"index": 0, "message": {"role": "assistant", "content": "  在古代，勇敢的骑士来到了魔法森林。  "}}],
			"usage": {"prompt_tokens": 120, "completion_tokens": 40, "total_tokens": 160}
		}`, &captured, &auth)

		client, err := NewClient(context.Background(), testConfig(srv.URL+"/v1/chat/completions"), zap.NewNop())
		require.NoError(t, err)

		text, usage, err := client.GenerateText(context.Background(), "system", "user", GenerationParams{})
		require.NoError(t, err)

		assert.Equal(t, "在古代，勇敢的骑士来到了魔法森林。", text)
		assert.Equal(t, UsageInfo{PromptTokens: 120, CompletionTokens: 40, TotalTokens: 160}, usage)
		assert.Equal(t, "Bearer sk-test", auth)
		assert.Equal(t, "deepseek-chat", captured.Model)
		assert.InDelta(t, 0.8, captured.Temperature, 0.0001)
		assert.Equal(t, 800, captured.MaxTokens)
		assert.False(t, captured.Stream)
		require.Len(t, captured.Messages, 2)
		assert.Equal(t, "system", captured.Messages[0].Role)
		assert.Equal(t, "user", captured.Messages[1].Role)
	})

	t.Run("Params override config", func(t *testing.T) {
		var captured capturedChatRequest
		srv := newOpenAITestServer(t, http.StatusOK, `{"choices":[{"message":{"content":"ok"}}],"usage":{"prompt_tokens":1,"completion_tokens":1,"total_tokens":2}}`, &captured, nil)
		client, err := NewClient(context.Background(), testConfig(srv.URL+"/v1"), zap.NewNop())
		require.NoError(t, err)

		temperature, maxTokens := 0.2, 50
		_, _, err = client.GenerateText(context.Background(), "system", "user", GenerationParams{Temperature: &temperature, MaxTokens: &maxTokens})
		require.NoError(t, err)
		assert.InDelta(t, 0.2, captured.Temperature, 0.0001)
		assert.Equal(t, 50, captured.MaxTokens)
	})

	failures := []struct {
		name   string
		status int
		body   string
	}{
		{name: "Non-2xx status", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key","type":"auth"}}`},
		{name: "No choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "Blank content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"   "}}]}`},
	}
	for _, tt := range failures {
		t.Run(tt.name, func(t *testing.T) {
			srv := newOpenAITestServer(t, tt.status, tt.body, nil, nil)
			client, err := NewClient(context.Background(), testConfig(srv.URL+"/v1"), zap.NewNop())
			require.NoError(t, err)

			_, _, err = client.GenerateText(context.Background(), "system", "user", GenerationParams{})
			assert.True(t, errors.Is(err, ErrAIGenerationFailed), "unexpected error: %v", err)
		})
	}

	t.Run("Empty system prompt", func(t *testing.T) {
		client, err := NewClient(context.Background(), testConfig("http://127.0.0.1:1/v1"), zap.NewNop())
		require.NoError(t, err)
		_, _, err = client.GenerateText(context.Background(), "  ", "user", GenerationParams{})
		assert.ErrorIs(t, err, ErrAIGenerationFailed)
	})
}

func TestOllamaClientGenerateText(t *testing.T) {
	var captured struct {
		Model   string                 `json:"model"`
		Stream  *bool                  `json:"stream"`
		Options map[string]interface{} `json:"options"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/chat", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/x-ndjson")
		_, _ = w.Write([]byte(`{"model":"llama3","message":{"role":"assistant","content":"故事开始了"},"done":true,"prompt_eval_count":30,"eval_count":12}` + "\n"))
	}))
	defer srv.Close()

	cfg := Config{ClientType: ClientTypeOllama, BaseURL: srv.URL + "/v1", Model: "llama3", Timeout: 5 * time.Second, Temperature: 0.8, MaxTokens: 800}
	client, err := NewClient(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)

	text, usage, err := client.GenerateText(context.Background(), "system", "user", GenerationParams{})
	require.NoError(t, err)
	assert.Equal(t, "故事开始了", text)
	assert.Equal(t, 42, usage.TotalTokens)
	assert.Equal(t, "llama3", captured.Model)
	require.NotNil(t, captured.Stream)
	assert.False(t, *captured.Stream)
	assert.EqualValues(t, 800, captured.Options["num_predict"])
}

func TestNewClient(t *testing.T) {
	t.Run("Missing key", func(t *testing.T) {
		_, err := NewClient(context.Background(), Config{ClientType: ClientTypeOpenAI, APIKey: "  "}, zap.NewNop())
		assert.ErrorIs(t, err, ErrNotConfigured)
	})

	t.Run("Unknown type", func(t *testing.T) {
		_, err := NewClient(context.Background(), Config{ClientType: "bard", APIKey: "k"}, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestConfigProviderName(t *testing.T) {
	assert.Equal(t, "DeepSeek V3", Config{ClientType: ClientTypeOpenAI, Model: "deepseek-chat"}.ProviderName())
	assert.Equal(t, "Ollama (llama3)", Config{ClientType: ClientTypeOllama, Model: "llama3"}.ProviderName())
	assert.True(t, Config{ClientType: ClientTypeOllama, BaseURL: "http://localhost:11434"}.Configured())
	assert.False(t, Config{ClientType: ClientTypeGemini}.Configured())
}

func TestNormalizeOpenAIBaseURL(t *testing.T) {
	assert.Equal(t, "https://api.deepseek.com/v1", normalizeOpenAIBaseURL("https://api.deepseek.com/v1/chat/completions"))
	assert.Equal(t, "https://api.deepseek.com/v1", normalizeOpenAIBaseURL("https://api.deepseek.com/v1/"))
}
