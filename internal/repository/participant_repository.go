package repository

import (
	"context"

	"story-relay/internal/interfaces"
	"story-relay/internal/models"
	"story-relay/internal/storage"

	"go.uber.org/zap"
)

type participantRepository struct {
	table *storage.Table[models.StoryParticipant]
	options
	logger *zap.Logger
}

// NewParticipantRepository создаёт репозиторий участников.
func NewParticipantRepository(backend storage.Backend, logger *zap.Logger, opts ...Option) interfaces.ParticipantRepository {
	return &participantRepository{
		table:   storage.NewTable[models.StoryParticipant](backend, storage.TableParticipants, logger),
		options: buildOptions(opts),
		logger:  logger.Named("ParticipantRepository"),
	}
}

func (r *participantRepository) GetAll(ctx context.Context) []models.StoryParticipant {
	return r.table.Read(ctx)
}

func (r *participantRepository) GetByID(ctx context.Context, id string) (*models.StoryParticipant, error) {
	for _, p := range r.table.Read(ctx) {
		if p.ID == id {
			return &p, nil
		}
	}
	return nil, models.ErrNotFound
}

func (r *participantRepository) GetByStoryID(ctx context.Context, storyID string) []models.StoryParticipant {
	result := []models.StoryParticipant{}
	for _, p := range r.table.Read(ctx) {
		if p.StoryID == storyID {
			result = append(result, p)
		}
	}
	return result
}

// Add идемпотентен: для существующей пары (story, user) возвращает
// имеющуюся запись без записи в хранилище.
func (r *participantRepository) Add(ctx context.Context, storyID, userID string) (*models.StoryParticipant, error) {
	participants := r.table.Read(ctx)
	for _, p := range participants {
		if p.StoryID == storyID && p.UserID == userID {
			return &p, nil
		}
	}

	participant := models.StoryParticipant{
		ID:                r.ids.New(),
		StoryID:           storyID,
		UserID:            userID,
		JoinedAt:          r.clock.Now(),
		ContributionCount: 0,
	}
	if err := r.table.Write(ctx, append(participants, participant)); err != nil {
		return nil, err
	}
	r.logger.Debug("Participant added", zap.String("story_id", storyID), zap.String("user_id", userID))
	return &participant, nil
}

// IncrementContribution увеличивает счётчик вклада. Отсутствие пары не ошибка.
func (r *participantRepository) IncrementContribution(ctx context.Context, storyID, userID string) error {
	participants := r.table.Read(ctx)
	for i := range participants {
		if participants[i].StoryID == storyID && participants[i].UserID == userID {
			participants[i].ContributionCount++
			return r.table.Write(ctx, participants)
		}
	}
	r.logger.Debug("Participant not found, contribution not counted",
		zap.String("story_id", storyID), zap.String("user_id", userID))
	return nil
}
