package repository

import (
	"context"

	"story-relay/internal/interfaces"
	"story-relay/internal/models"
	"story-relay/internal/storage"

	"go.uber.org/zap"
)

type storyRepository struct {
	table *storage.Table[models.Story]
	options
	logger *zap.Logger
}

// NewStoryRepository создаёт репозиторий историй.
func NewStoryRepository(backend storage.Backend, logger *zap.Logger, opts ...Option) interfaces.StoryRepository {
	return &storyRepository{
		table:   storage.NewTable[models.Story](backend, storage.TableStories, logger),
		options: buildOptions(opts),
		logger:  logger.Named("StoryRepository"),
	}
}

func (r *storyRepository) GetAll(ctx context.Context) []models.Story {
	return r.table.Read(ctx)
}

func (r *storyRepository) GetByID(ctx context.Context, id string) (*models.Story, error) {
	for _, s := range r.table.Read(ctx) {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *storyRepository) GetActive(ctx context.Context) []models.Story {
	active := []models.Story{}
	for _, s := range r.table.Read(ctx) {
		if s.Status == models.StoryStatusActive {
			active = append(active, s)
		}
	}
	return active
}

// Create сохраняет новую историю. ID, временные метки и счётчик участников
// (1 - автор) выставляются здесь и перекрывают значения из draft.
func (r *storyRepository) Create(ctx context.Context, draft models.Story) (*models.Story, error) {
	stories := r.table.Read(ctx)
	now := r.clock.Now()
	story := draft
	story.ID = r.ids.New()
	story.CurrentParticipants = 1
	story.CreatedAt = now
	story.UpdatedAt = now
	if story.Status == "" {
		story.Status = models.StoryStatusActive
	}

	if err := r.table.Write(ctx, append(stories, story)); err != nil {
		return nil, err
	}
	r.logger.Info("Story created", zap.String("story_id", story.ID), zap.String("created_by", story.CreatedBy))
	return &story, nil
}

// Update применяет частичное обновление и обновляет updated_at.
// Пустой update только обновляет updated_at.
func (r *storyRepository) Update(ctx context.Context, id string, update models.StoryUpdate) (*models.Story, error) {
	stories := r.table.Read(ctx)
	for i := range stories {
		if stories[i].ID != id {
			continue
		}
		update.Apply(&stories[i])
		stories[i].UpdatedAt = r.clock.Now()
		if err := r.table.Write(ctx, stories); err != nil {
			return nil, err
		}
		updated := stories[i]
		return &updated, nil
	}
	return nil, models.ErrNotFound
}
