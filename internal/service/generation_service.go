package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"story-relay/internal/generator"
	"story-relay/internal/messaging"
	"story-relay/internal/models"

	"go.uber.org/zap"
)

// Сообщения статуса AI.
const (
	AIStatusConfiguredMessage    = "DeepSeek API configured successfully"
	AIStatusNotConfiguredMessage = "DeepSeek API key not found in environment variables"
)

const (
	defaultGeneratedStoryMax = 10
	generatedStoryDateLayout = "2006/1/2"
)

// AIStatus - состояние подключения LLM.
type AIStatus struct {
	Enabled  bool   `json:"ai_enabled"`
	Message  string `json:"message"`
	Provider string `json:"provider"`
}

// GenerationResult - итог генерации начала истории.
type GenerationResult struct {
	Story    string
	StoryID  string
	Source   string
	Provider string
	// Saved - история сохранена. SaveFailed - сохранение было, но упало.
	Saved      bool
	SaveFailed bool
}

// GenerationService - параметры, начала историй и подсказки продолжений.
type GenerationService struct {
	generator *generator.Generator
	stories   *StoryService
	provider  string
	now       func() time.Time
	logger    *zap.Logger
}

// NewGenerationService создаёт сервис генерации. provider - имя провайдера LLM
// для ответа ai-status.
func NewGenerationService(gen *generator.Generator, stories *StoryService, provider string, logger *zap.Logger) *GenerationService {
	return &GenerationService{
		generator: gen,
		stories:   stories,
		provider:  provider,
		now:       time.Now,
		logger:    logger.Named("GenerationService"),
	}
}

// GenerateParameters возвращает случайные параметры для жанра.
func (s *GenerationService) GenerateParameters(style string) models.StoryParameters {
	if strings.TrimSpace(style) == "" {
		style = s.generator.Catalog().DefaultGenre
	}
	return s.generator.GenerateParameters(style)
}

// Genres возвращает известные жанры.
func (s *GenerationService) Genres() []string {
	return s.generator.Catalog().GenreNames()
}

// GenerateStory пишет начало истории и, если заданы время, место или
// персонаж, сохраняет его как новую историю. Ошибка сохранения не
// отменяет результат: Saved остаётся false.
func (s *GenerationService) GenerateStory(ctx context.Context, req models.StoryGenerationRequest) (*GenerationResult, error) {
	if req.Parameters == nil || !generator.ValidateParameters(*req.Parameters) {
		return nil, models.ErrInvalidParameters
	}

	beginning := s.generator.GenerateBeginningWithAI(ctx, req)
	result := &GenerationResult{
		Story:    beginning.Text,
		Source:   beginning.Source,
		Provider: beginning.Provider,
	}
	if !generator.HasStoryFields(*req.Parameters) {
		return result, nil
	}

	style := strings.TrimSpace(req.Style)
	if style == "" {
		style = s.generator.Catalog().DefaultGenre
	}
	maxParticipants := defaultGeneratedStoryMax
	story, err := s.stories.CreateStory(ctx, CreateStoryInput{
		Title:           fmt.Sprintf("%s故事 - %s", style, s.now().Format(generatedStoryDateLayout)),
		Description:     fmt.Sprintf("基于%s风格生成的故事", style),
		InitialPrompt:   beginning.Text,
		CreatedBy:       AnonymousAuthor,
		MaxParticipants: &maxParticipants,
	})
	if err != nil {
		s.logger.Error("Failed to save generated story", zap.String("style", style), zap.Error(err))
		result.SaveFailed = true
		return result, nil
	}

	result.StoryID = story.ID
	result.Saved = true
	s.stories.publish(ctx, messaging.StoryEvent{
		Type:    messaging.EventStoryGenerated,
		StoryID: story.ID,
		UserID:  AnonymousAuthor,
		Status:  story.Status,
	})
	return result, nil
}

// Suggestions возвращает подсказки продолжения для параметров.
func (s *GenerationService) Suggestions(params models.StoryParameters) []string {
	return s.generator.ContinuationSuggestions(params)
}

// AIStatus сообщает, подключён ли LLM.
func (s *GenerationService) AIStatus() AIStatus {
	if s.generator.AIEnabled() {
		return AIStatus{Enabled: true, Message: AIStatusConfiguredMessage, Provider: s.provider}
	}
	return AIStatus{Enabled: false, Message: AIStatusNotConfiguredMessage, Provider: generator.TemplateProvider}
}
