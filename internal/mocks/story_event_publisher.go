package mocks

import (
	"context"

	"story-relay/internal/messaging"

	"github.com/stretchr/testify/mock"
)

// MockStoryEventPublisher - мок messaging.StoryEventPublisher.
type MockStoryEventPublisher struct {
	mock.Mock
}

func (m *MockStoryEventPublisher) PublishStoryEvent(ctx context.Context, event messaging.StoryEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}
