package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"story-relay/internal/interfaces"
	"story-relay/internal/messaging"
	"story-relay/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AnonymousAuthor - автор по умолчанию.
const AnonymousAuthor = "anonymous"

// Фильтры списка историй.
const (
	StatusFilterAll = "all"
)

// CreateStoryInput - данные новой истории.
type CreateStoryInput struct {
	Title           string             `json:"title"`
	Description     string             `json:"description,omitempty"`
	InitialPrompt   string             `json:"initial_prompt"`
	Status          models.StoryStatus `json:"status,omitempty"`
	CreatedBy       string             `json:"created_by,omitempty"`
	MaxParticipants *int               `json:"max_participants,omitempty"`
}

// SegmentInput - данные нового сегмента.
type SegmentInput struct {
	AuthorID        string                  `json:"author_id,omitempty"`
	Content         string                  `json:"content"`
	StoryParameters *models.StoryParameters `json:"story_parameters,omitempty"`
}

// ContinuationResult - итог продолжения истории.
type ContinuationResult struct {
	Segment       *models.StorySegment
	Story         *models.Story
	TotalSegments int
}

// StoryService - жизненный цикл историй и их сегментов.
type StoryService struct {
	stories                interfaces.StoryRepository
	segments               interfaces.SegmentRepository
	participants           interfaces.ParticipantRepository
	publisher              messaging.StoryEventPublisher
	defaultMaxParticipants int
	logger                 *zap.Logger
}

// NewStoryService создаёт сервис историй.
func NewStoryService(
	stories interfaces.StoryRepository,
	segments interfaces.SegmentRepository,
	participants interfaces.ParticipantRepository,
	publisher messaging.StoryEventPublisher,
	defaultMaxParticipants int,
	logger *zap.Logger,
) *StoryService {
	if publisher == nil {
		publisher = messaging.NoopPublisher{}
	}
	return &StoryService{
		stories:                stories,
		segments:               segments,
		participants:           participants,
		publisher:              publisher,
		defaultMaxParticipants: defaultMaxParticipants,
		logger:                 logger.Named("StoryService"),
	}
}

// CreateStory проверяет ввод и сохраняет активную историю.
func (s *StoryService) CreateStory(ctx context.Context, input CreateStoryInput) (*models.Story, error) {
	title := strings.TrimSpace(input.Title)
	prompt := strings.TrimSpace(input.InitialPrompt)
	if title == "" || prompt == "" {
		return nil, fmt.Errorf("%w: title and initial_prompt are required", models.ErrInvalidInput)
	}

	status := input.Status
	if status == "" {
		status = models.StoryStatusActive
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, status)
	}

	maxParticipants := s.defaultMaxParticipants
	if input.MaxParticipants != nil {
		if *input.MaxParticipants <= 0 {
			return nil, fmt.Errorf("%w: max_participants must be positive", models.ErrInvalidInput)
		}
		maxParticipants = *input.MaxParticipants
	}

	createdBy := strings.TrimSpace(input.CreatedBy)
	if createdBy == "" {
		createdBy = AnonymousAuthor
	}

	story, err := s.stories.Create(ctx, models.Story{
		Title:           title,
		Description:     strings.TrimSpace(input.Description),
		InitialPrompt:   prompt,
		Status:          status,
		CreatedBy:       createdBy,
		MaxParticipants: &maxParticipants,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create story: %w", err)
	}

	s.publish(ctx, messaging.StoryEvent{
		Type:    messaging.EventStoryCreated,
		StoryID: story.ID,
		UserID:  story.CreatedBy,
		Status:  story.Status,
	})
	return story, nil
}

// ListStories возвращает истории по фильтру статуса, новые первыми.
// Пустой фильтр и "all" - все истории; неизвестный статус даёт пустой список.
func (s *StoryService) ListStories(ctx context.Context, statusFilter string) []models.Story {
	var stories []models.Story
	switch statusFilter {
	case string(models.StoryStatusActive):
		stories = s.stories.GetActive(ctx)
	case "", StatusFilterAll:
		stories = s.stories.GetAll(ctx)
	default:
		stories = []models.Story{}
		for _, story := range s.stories.GetAll(ctx) {
			if string(story.Status) == statusFilter {
				stories = append(stories, story)
			}
		}
	}

	sort.SliceStable(stories, func(i, j int) bool {
		return stories[i].CreatedAt.After(stories[j].CreatedAt)
	})
	return stories
}

// GetStory возвращает историю по ID.
func (s *StoryService) GetStory(ctx context.Context, id string) (*models.Story, error) {
	story, err := s.stories.GetByID(ctx, id)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrStoryNotFound
	}
	return story, err
}

// UpdateStory применяет частичное обновление. Смена статуса должна
// соответствовать одному из разрешённых переходов.
func (s *StoryService) UpdateStory(ctx context.Context, id string, update models.StoryUpdate) (*models.Story, error) {
	story, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if update.Title != nil && strings.TrimSpace(*update.Title) == "" {
		return nil, fmt.Errorf("%w: title must not be empty", models.ErrInvalidInput)
	}
	if update.InitialPrompt != nil && strings.TrimSpace(*update.InitialPrompt) == "" {
		return nil, fmt.Errorf("%w: initial_prompt must not be empty", models.ErrInvalidInput)
	}
	if update.MaxParticipants != nil && *update.MaxParticipants <= 0 {
		return nil, fmt.Errorf("%w: max_participants must be positive", models.ErrInvalidInput)
	}
	if update.CurrentParticipants != nil && *update.CurrentParticipants < 0 {
		return nil, fmt.Errorf("%w: current_participants must not be negative", models.ErrInvalidInput)
	}
	if update.Status != nil {
		if !update.Status.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", models.ErrInvalidInput, *update.Status)
		}
		if !CanTransition(story.Status, *update.Status) {
			return nil, fmt.Errorf("%w: %s -> %s", models.ErrInvalidTransition, story.Status, *update.Status)
		}
	}

	updated, err := s.stories.Update(ctx, id, update)
	if err != nil {
		return nil, s.mapStoryErr(err)
	}
	if update.Status != nil && *update.Status != story.Status {
		s.publish(ctx, messaging.StoryEvent{Type: messaging.EventStatusChanged, StoryID: id, Status: updated.Status})
	}
	return updated, nil
}

// ApplyTransition выполняет именованный переход статуса.
func (s *StoryService) ApplyTransition(ctx context.Context, id string, transition Transition) (*models.Story, error) {
	rule, ok := transitionRules[transition]
	if !ok {
		return nil, fmt.Errorf("%w: unknown transition %q", models.ErrInvalidInput, transition)
	}
	story, err := s.GetStory(ctx, id)
	if err != nil {
		return nil, err
	}
	if !rule.allows(story.Status) {
		return nil, fmt.Errorf("%w: cannot %s story in status %s", models.ErrInvalidTransition, transition, story.Status)
	}

	target := rule.to
	updated, err := s.stories.Update(ctx, id, models.StoryUpdate{Status: &target})
	if err != nil {
		return nil, s.mapStoryErr(err)
	}
	s.logger.Info("Story status changed",
		zap.String("story_id", id),
		zap.String("transition", string(transition)),
		zap.String("from", string(story.Status)),
		zap.String("to", string(target)),
	)
	s.publish(ctx, messaging.StoryEvent{Type: messaging.EventStatusChanged, StoryID: id, Status: target})
	return updated, nil
}

// CompleteStory переводит активную историю в completed.
func (s *StoryService) CompleteStory(ctx context.Context, id string) (*models.Story, error) {
	return s.ApplyTransition(ctx, id, TransitionComplete)
}

// ReactivateStory возвращает завершённую историю в active.
func (s *StoryService) ReactivateStory(ctx context.Context, id string) (*models.Story, error) {
	return s.ApplyTransition(ctx, id, TransitionReactivate)
}

// ArchiveStory архивирует неархивную историю.
func (s *StoryService) ArchiveStory(ctx context.Context, id string) (*models.Story, error) {
	return s.ApplyTransition(ctx, id, TransitionArchive)
}

// RestoreStory возвращает архивную историю в active.
func (s *StoryService) RestoreStory(ctx context.Context, id string) (*models.Story, error) {
	return s.ApplyTransition(ctx, id, TransitionRestore)
}

// GetSegments возвращает историю и её сегменты по порядку.
func (s *StoryService) GetSegments(ctx context.Context, storyID string) (*models.Story, []models.StorySegment, error) {
	story, err := s.GetStory(ctx, storyID)
	if err != nil {
		return nil, nil, err
	}
	return story, s.segments.GetByStoryID(ctx, storyID), nil
}

// AddSegment добавляет сегмент в конец активной истории.
func (s *StoryService) AddSegment(ctx context.Context, storyID string, input SegmentInput) (*models.StorySegment, error) {
	content := strings.TrimSpace(input.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: content is required", models.ErrInvalidInput)
	}
	story, err := s.GetStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.Status != models.StoryStatusActive {
		return nil, models.ErrStoryNotActive
	}

	segment, err := s.appendSegment(ctx, storyID, authorOrAnonymous(input.AuthorID), content, input.StoryParameters)
	if err != nil {
		return nil, err
	}
	if _, err := s.stories.Update(ctx, storyID, models.StoryUpdate{}); err != nil {
		s.logger.Warn("Failed to touch story after segment append", zap.String("story_id", storyID), zap.Error(err))
	}
	return segment, nil
}

// ContinueStory добавляет продолжение с учётом лимита участников,
// регистрирует автора участником и пересчитывает current_participants.
// Ошибки учёта участников не прерывают операцию.
func (s *StoryService) ContinueStory(ctx context.Context, req models.StoryContinuationRequest) (*ContinuationResult, error) {
	content := strings.TrimSpace(req.Content)
	if strings.TrimSpace(req.StoryID) == "" || content == "" {
		return nil, fmt.Errorf("%w: story_id and content are required", models.ErrInvalidInput)
	}
	story, err := s.GetStory(ctx, req.StoryID)
	if err != nil {
		return nil, err
	}
	if story.Status != models.StoryStatusActive {
		return nil, models.ErrStoryNotActive
	}
	if story.HasParticipantLimit() {
		return nil, models.ErrParticipantLimit
	}

	authorID := authorOrAnonymous(req.AuthorID)
	params := req.Parameters
	segment, err := s.appendSegment(ctx, story.ID, authorID, content, &params)
	if err != nil {
		return nil, err
	}

	if _, err := s.participants.Add(ctx, story.ID, authorID); err != nil {
		s.logger.Warn("Failed to add participant", zap.String("story_id", story.ID), zap.String("user_id", authorID), zap.Error(err))
	} else if err := s.participants.IncrementContribution(ctx, story.ID, authorID); err != nil {
		s.logger.Warn("Failed to increment contribution", zap.String("story_id", story.ID), zap.String("user_id", authorID), zap.Error(err))
	}

	count := len(s.participants.GetByStoryID(ctx, story.ID))
	if _, err := s.stories.Update(ctx, story.ID, models.StoryUpdate{CurrentParticipants: &count}); err != nil {
		s.logger.Warn("Failed to refresh participant count", zap.String("story_id", story.ID), zap.Error(err))
	}

	refreshed, err := s.GetStory(ctx, story.ID)
	if err != nil {
		return nil, err
	}
	return &ContinuationResult{
		Segment:       segment,
		Story:         refreshed,
		TotalSegments: len(s.segments.GetByStoryID(ctx, story.ID)),
	}, nil
}

// Stats считает агрегаты по историям и вклад пользователя (если userID задан).
func (s *StoryService) Stats(ctx context.Context, userID string) models.StoryStats {
	stats := models.StoryStats{}
	for _, story := range s.stories.GetAll(ctx) {
		stats.TotalStories++
		switch story.Status {
		case models.StoryStatusActive:
			stats.ActiveStories++
		case models.StoryStatusCompleted:
			stats.CompletedStories++
		case models.StoryStatusArchived:
			stats.ArchivedStories++
		}
	}
	participants := s.participants.GetAll(ctx)
	stats.TotalParticipants = len(participants)
	if userID != "" {
		for _, p := range participants {
			if p.UserID == userID {
				stats.UserContributions += p.ContributionCount
			}
		}
	}
	return stats
}

func (s *StoryService) appendSegment(ctx context.Context, storyID, authorID, content string, params *models.StoryParameters) (*models.StorySegment, error) {
	segmentParams := models.StoryParameters{}
	if params != nil {
		segmentParams = *params
	}
	orderIndex := s.segments.NextOrderIndex(ctx, storyID)
	segment, err := s.segments.Create(ctx, models.StorySegment{
		StoryID:         storyID,
		AuthorID:        authorID,
		Content:         content,
		OrderIndex:      orderIndex,
		StoryParameters: segmentParams,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create segment: %w", err)
	}

	s.publish(ctx, messaging.StoryEvent{
		Type:       messaging.EventSegmentAdded,
		StoryID:    storyID,
		UserID:     authorID,
		SegmentID:  segment.ID,
		OrderIndex: &orderIndex,
	})
	return segment, nil
}

// publish отправляет событие. Ошибка доставки только логируется.
func (s *StoryService) publish(ctx context.Context, event messaging.StoryEvent) {
	event.EventID = uuid.NewString()
	event.OccurredAt = time.Now().UTC()
	if err := s.publisher.PublishStoryEvent(ctx, event); err != nil {
		s.logger.Warn("Failed to publish story event",
			zap.String("type", string(event.Type)),
			zap.String("story_id", event.StoryID),
			zap.Error(err),
		)
	}
}

func (s *StoryService) mapStoryErr(err error) error {
	if errors.Is(err, models.ErrNotFound) {
		return models.ErrStoryNotFound
	}
	return err
}

func authorOrAnonymous(authorID string) string {
	if id := strings.TrimSpace(authorID); id != "" {
		return id
	}
	return AnonymousAuthor
}
