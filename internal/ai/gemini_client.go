package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.uber.org/zap"
	"google.golang.org/api/option"
)

const providerGemini = "gemini"

type geminiClient struct {
	client *genai.Client
	cfg    Config
	logger *zap.Logger
}

func newGeminiClient(ctx context.Context, cfg Config, logger *zap.Logger) (*geminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	logger.Info("Gemini client created", zap.String("model", cfg.Model))
	return &geminiClient{client: client, cfg: cfg, logger: logger}, nil
}

// Close освобождает соединение с Gemini API.
func (c *geminiClient) Close() error {
	return c.client.Close()
}

func (c *geminiClient) GenerateText(ctx context.Context, systemPrompt, userInput string, params GenerationParams) (string, UsageInfo, error) {
	usage := UsageInfo{}
	if err := validatePrompt(systemPrompt); err != nil {
		observeFailure(providerGemini, c.cfg.Model, "error")
		return "", usage, err
	}

	temperature, maxTokens := params.resolve(c.cfg)
	model := c.client.GenerativeModel(c.cfg.Model)
	model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(systemPrompt)}}
	model.SetTemperature(float32(temperature))
	if maxTokens > 0 {
		model.SetMaxOutputTokens(int32(maxTokens))
	}

	requestCtx := ctx
	if c.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		requestCtx, cancel = context.WithTimeout(ctx, c.cfg.Timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := model.GenerateContent(requestCtx, genai.Text(userInput))
	duration := time.Since(start)
	if err != nil {
		c.logger.Warn("Gemini request failed", zap.Duration("duration", duration), zap.Error(err))
		observeFailure(providerGemini, c.cfg.Model, "error")
		return "", usage, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}

	text := strings.TrimSpace(geminiText(resp))
	if text == "" {
		observeFailure(providerGemini, c.cfg.Model, "error_empty_response")
		return "", usage, fmt.Errorf("%w: получен пустой ответ", ErrAIGenerationFailed)
	}

	if resp.UsageMetadata != nil {
		usage = UsageInfo{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
			TotalTokens:      int(resp.UsageMetadata.TotalTokenCount),
		}
	}
	observeSuccess(providerGemini, c.cfg.Model, duration, usage)
	return text, usage, nil
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			b.WriteString(string(text))
		}
	}
	return b.String()
}
