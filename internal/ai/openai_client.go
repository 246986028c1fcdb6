package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

const providerOpenAI = "openai"

// openAIClient работает с любым OpenAI-совместимым API (DeepSeek по умолчанию).
type openAIClient struct {
	client *openaigo.Client
	cfg    Config
	logger *zap.Logger
}

func newOpenAIClient(cfg Config, logger *zap.Logger) *openAIClient {
	openaiConfig := openaigo.DefaultConfig(cfg.APIKey)
	openaiConfig.BaseURL = normalizeOpenAIBaseURL(cfg.BaseURL)
	openaiConfig.HTTPClient = &http.Client{Timeout: cfg.Timeout}

	logger.Info("OpenAI client created",
		zap.String("base_url", openaiConfig.BaseURL),
		zap.String("model", cfg.Model),
		zap.Duration("timeout", cfg.Timeout),
	)
	return &openAIClient{
		client: openaigo.NewClientWithConfig(openaiConfig),
		cfg:    cfg,
		logger: logger,
	}
}

// normalizeOpenAIBaseURL допускает полный адрес .../chat/completions.
func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	return strings.TrimSuffix(base, "/chat/completions")
}

func (c *openAIClient) GenerateText(ctx context.Context, systemPrompt, userInput string, params GenerationParams) (string, UsageInfo, error) {
	usage := UsageInfo{}
	if err := validatePrompt(systemPrompt); err != nil {
		observeFailure(providerOpenAI, c.cfg.Model, "error")
		return "", usage, err
	}

	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if userInput != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{Role: openaigo.ChatMessageRoleUser, Content: userInput})
	}
	temperature, maxTokens := params.resolve(c.cfg)

	start := time.Now()
	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		Temperature: float32(temperature),
		MaxTokens:   maxTokens,
	})
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("AI API request failed", zap.Duration("duration", duration), zap.Error(err))
		observeFailure(providerOpenAI, c.cfg.Model, "error")
		return "", usage, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	if len(resp.Choices) == 0 {
		observeFailure(providerOpenAI, c.cfg.Model, "error_empty_response")
		return "", usage, fmt.Errorf("%w: ответ без choices", ErrAIGenerationFailed)
	}
	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		observeFailure(providerOpenAI, c.cfg.Model, "error_empty_response")
		return "", usage, fmt.Errorf("%w: получен пустой ответ", ErrAIGenerationFailed)
	}

	if resp.Usage.TotalTokens > 0 {
		usage = UsageInfo{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		}
	} else {
		usage.PromptTokens = estimateTokens(c.cfg.Model, systemPrompt, userInput)
		usage.CompletionTokens = estimateTokens(c.cfg.Model, text)
		usage.TotalTokens = usage.PromptTokens + usage.CompletionTokens
	}

	observeSuccess(providerOpenAI, c.cfg.Model, duration, usage)
	c.logger.Debug("AI response received",
		zap.Duration("duration", duration),
		zap.Int("length", len(text)),
		zap.Int("total_tokens", usage.TotalTokens),
	)
	return text, usage, nil
}
