package interfaces

import (
	"context"

	"story-relay/internal/models"
)

// UserRepository - доступ к пользователям.
type UserRepository interface {
	GetAll(ctx context.Context) []models.User
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Create(ctx context.Context, input models.UserInput) (*models.User, error)
}

// StoryRepository - доступ к историям.
type StoryRepository interface {
	GetAll(ctx context.Context) []models.Story
	GetByID(ctx context.Context, id string) (*models.Story, error)
	GetActive(ctx context.Context) []models.Story
	Create(ctx context.Context, draft models.Story) (*models.Story, error)
	Update(ctx context.Context, id string, update models.StoryUpdate) (*models.Story, error)
}

// SegmentRepository - доступ к сегментам историй.
type SegmentRepository interface {
	GetAll(ctx context.Context) []models.StorySegment
	GetByID(ctx context.Context, id string) (*models.StorySegment, error)
	GetByStoryID(ctx context.Context, storyID string) []models.StorySegment
	Create(ctx context.Context, draft models.StorySegment) (*models.StorySegment, error)
	NextOrderIndex(ctx context.Context, storyID string) int
}

// ParticipantRepository - доступ к участникам историй.
type ParticipantRepository interface {
	GetAll(ctx context.Context) []models.StoryParticipant
	GetByID(ctx context.Context, id string) (*models.StoryParticipant, error)
	GetByStoryID(ctx context.Context, storyID string) []models.StoryParticipant
	Add(ctx context.Context, storyID, userID string) (*models.StoryParticipant, error)
	IncrementContribution(ctx context.Context, storyID, userID string) error
}
