package messaging

import (
	"context"
	"time"

	"story-relay/internal/models"
)

// EventType - тип события истории.
type EventType string

const (
	EventStoryCreated   EventType = "story.created"
	EventSegmentAdded   EventType = "story.segment_added"
	EventStatusChanged  EventType = "story.status_changed"
	EventStoryGenerated EventType = "story.generated"
)

// StoryEvent - сообщение об изменении истории.
type StoryEvent struct {
	EventID    string             `json:"event_id"`
	Type       EventType          `json:"type"`
	StoryID    string             `json:"story_id"`
	UserID     string             `json:"user_id,omitempty"`
	Status     models.StoryStatus `json:"status,omitempty"`
	SegmentID  string             `json:"segment_id,omitempty"`
	OrderIndex *int               `json:"order_index,omitempty"`
	OccurredAt time.Time          `json:"occurred_at"`
}

// StoryEventPublisher публикует события историй.
type StoryEventPublisher interface {
	PublishStoryEvent(ctx context.Context, event StoryEvent) error
}

// NoopPublisher отбрасывает события. Используется без RABBITMQ_URL.
type NoopPublisher struct{}

func (NoopPublisher) PublishStoryEvent(context.Context, StoryEvent) error { return nil }
