package repository

import (
	"context"
	"sort"

	"story-relay/internal/interfaces"
	"story-relay/internal/models"
	"story-relay/internal/storage"

	"go.uber.org/zap"
)

type segmentRepository struct {
	table *storage.Table[models.StorySegment]
	options
	logger *zap.Logger
}

// NewSegmentRepository создаёт репозиторий сегментов.
func NewSegmentRepository(backend storage.Backend, logger *zap.Logger, opts ...Option) interfaces.SegmentRepository {
	return &segmentRepository{
		table:   storage.NewTable[models.StorySegment](backend, storage.TableSegments, logger),
		options: buildOptions(opts),
		logger:  logger.Named("SegmentRepository"),
	}
}

func (r *segmentRepository) GetAll(ctx context.Context) []models.StorySegment {
	return r.table.Read(ctx)
}

func (r *segmentRepository) GetByID(ctx context.Context, id string) (*models.StorySegment, error) {
	for _, s := range r.table.Read(ctx) {
		if s.ID == id {
			return &s, nil
		}
	}
	return nil, models.ErrNotFound
}

// GetByStoryID возвращает сегменты истории по возрастанию order_index.
// При равных индексах сохраняется порядок хранения.
func (r *segmentRepository) GetByStoryID(ctx context.Context, storyID string) []models.StorySegment {
	result := []models.StorySegment{}
	for _, s := range r.table.Read(ctx) {
		if s.StoryID == storyID {
			result = append(result, s)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].OrderIndex < result[j].OrderIndex
	})
	return result
}

// Create сохраняет сегмент с переданным order_index.
func (r *segmentRepository) Create(ctx context.Context, draft models.StorySegment) (*models.StorySegment, error) {
	segments := r.table.Read(ctx)
	segment := draft
	segment.ID = r.ids.New()
	now := r.clock.Now()
	segment.CreatedAt = now
	segment.UpdatedAt = now

	if err := r.table.Write(ctx, append(segments, segment)); err != nil {
		return nil, err
	}
	r.logger.Debug("Segment created",
		zap.String("segment_id", segment.ID),
		zap.String("story_id", segment.StoryID),
		zap.Int("order_index", segment.OrderIndex),
	)
	return &segment, nil
}

// NextOrderIndex возвращает max(order_index)+1 по сегментам истории или 0,
// если сегментов нет. Пропуски в индексах сохраняются.
func (r *segmentRepository) NextOrderIndex(ctx context.Context, storyID string) int {
	next := 0
	for _, s := range r.table.Read(ctx) {
		if s.StoryID == storyID && s.OrderIndex >= next {
			next = s.OrderIndex + 1
		}
	}
	return next
}
