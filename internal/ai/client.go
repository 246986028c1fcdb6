package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// ErrAIGenerationFailed - провайдер не вернул пригодный текст.
var ErrAIGenerationFailed = errors.New("ошибка генерации текста AI")

// ErrNotConfigured - у провайдера нет ключа или адреса.
var ErrNotConfigured = errors.New("AI client is not configured")

// GenerationParams - параметры одного запроса. nil означает значение из конфигурации.
type GenerationParams struct {
	Temperature *float64
	MaxTokens   *int
}

// UsageInfo - расход токенов за запрос.
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Client - нестриминговый чат-комплишн с одним system и одним user сообщением.
type Client interface {
	GenerateText(ctx context.Context, systemPrompt, userInput string, params GenerationParams) (string, UsageInfo, error)
}

// NewClient создаёт клиента по типу из конфигурации.
func NewClient(ctx context.Context, cfg Config, logger *zap.Logger) (Client, error) {
	if !cfg.Configured() {
		return nil, ErrNotConfigured
	}
	logger = logger.Named("AIClient")

	switch strings.ToLower(cfg.ClientType) {
	case ClientTypeOpenAI, "":
		return newOpenAIClient(cfg, logger), nil
	case ClientTypeOllama:
		client, err := newOllamaClient(cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	case ClientTypeGemini:
		client, err := newGeminiClient(ctx, cfg, logger)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.ClientType)
	}
}

func (p GenerationParams) resolve(cfg Config) (float64, int) {
	temperature, maxTokens := cfg.Temperature, cfg.MaxTokens
	if p.Temperature != nil {
		temperature = *p.Temperature
	}
	if p.MaxTokens != nil {
		maxTokens = *p.MaxTokens
	}
	return temperature, maxTokens
}

func validatePrompt(systemPrompt string) error {
	if strings.TrimSpace(systemPrompt) == "" {
		return fmt.Errorf("%w: системный промт пуст", ErrAIGenerationFailed)
	}
	return nil
}
