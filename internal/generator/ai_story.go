package generator

import (
	"context"
	"strings"

	"story-relay/internal/ai"
	"story-relay/internal/models"

	"go.uber.org/zap"
)

// Источники текста.
const (
	SourceAI       = "ai"
	SourceTemplate = "template"
)

// TemplateProvider - имя провайдера для шаблонной генерации.
const TemplateProvider = "Template Generator"

// Beginning - сгенерированное начало истории.
type Beginning struct {
	Text     string
	Source   string
	Provider string
}

// GenerateBeginningWithAI пишет начало через LLM. Без клиента или при любой
// ошибке провайдера возвращается шаблонный текст; ошибка наружу не выходит.
func (g *Generator) GenerateBeginningWithAI(ctx context.Context, req models.StoryGenerationRequest) Beginning {
	params := models.StoryParameters{}
	if req.Parameters != nil {
		params = *req.Parameters
	}
	genre := req.Style
	if strings.TrimSpace(genre) == "" {
		genre = g.catalog.DefaultGenre
	}
	length := req.Length.Normalize()

	if g.aiClient == nil {
		templateFallbacksTotal.WithLabelValues("not_configured").Inc()
		g.logger.Debug("AI client not configured, using template generation")
		return g.templateBeginning(params, genre, length)
	}

	userPrompt := buildUserPrompt(g.catalog, params, genre, length)
	if req.Prompt != "" {
		userPrompt += "\n\n补充要求：" + req.Prompt
	}

	temperature := g.aiCfg.Temperature
	maxTokens := g.aiCfg.MaxTokens
	text, usage, err := g.aiClient.GenerateText(ctx, systemPrompt, userPrompt, ai.GenerationParams{
		Temperature: &temperature,
		MaxTokens:   &maxTokens,
	})
	if err == nil {
		text = strings.TrimSpace(text)
		if text != "" {
			g.logger.Info("Story beginning generated by AI",
				zap.String("genre", genre),
				zap.Int("prompt_tokens", usage.PromptTokens),
				zap.Int("completion_tokens", usage.CompletionTokens),
			)
			return Beginning{Text: text, Source: SourceAI, Provider: g.aiCfg.ProviderName()}
		}
	}

	templateFallbacksTotal.WithLabelValues("ai_error").Inc()
	g.logger.Warn("AI generation failed, falling back to template", zap.String("genre", genre), zap.Error(err))
	return g.templateBeginning(params, genre, length)
}

func (g *Generator) templateBeginning(params models.StoryParameters, genre string, length models.StoryLength) Beginning {
	return Beginning{
		Text:     g.GenerateBeginning(params, genre, length),
		Source:   SourceTemplate,
		Provider: TemplateProvider,
	}
}
