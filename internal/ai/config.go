package ai

import (
	"strings"
	"time"
)

// Типы клиентов AI.
const (
	ClientTypeOpenAI = "openai"
	ClientTypeOllama = "ollama"
	ClientTypeGemini = "gemini"
)

// Config - явная конфигурация LLM-провайдера.
type Config struct {
	ClientType  string
	APIKey      string
	BaseURL     string
	Model       string
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int
}

// Configured сообщает, есть ли у клиента всё необходимое для запросов.
// Ollama работает без ключа, остальным провайдерам нужен непустой ключ.
func (c Config) Configured() bool {
	switch strings.ToLower(c.ClientType) {
	case ClientTypeOllama:
		return strings.TrimSpace(c.BaseURL) != ""
	default:
		return strings.TrimSpace(c.APIKey) != ""
	}
}

// ProviderName - человекочитаемое имя провайдера.
func (c Config) ProviderName() string {
	switch strings.ToLower(c.ClientType) {
	case ClientTypeOllama:
		return "Ollama (" + c.Model + ")"
	case ClientTypeGemini:
		return "Gemini (" + c.Model + ")"
	default:
		if strings.HasPrefix(c.Model, "deepseek") {
			return "DeepSeek V3"
		}
		return "OpenAI-compatible (" + c.Model + ")"
	}
}
