package service

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"story-relay/internal/generator"
	"story-relay/internal/messaging"
	"story-relay/internal/repository"
	"story-relay/internal/storage"

	"go.uber.org/zap"
)

type stepClock struct {
	now time.Time
}

// Now возвращает текущее время и сдвигает часы на минуту.
func (c *stepClock) Now() time.Time {
	t := c.now
	c.now = c.now.Add(time.Minute)
	return t
}

type seqIDs struct {
	prefix string
	n      int
}

func (g *seqIDs) New() string {
	g.n++
	return fmt.Sprintf("%s-%d", g.prefix, g.n)
}

type testEnv struct {
	backend *storage.FileBackend
	users   *UserService
	stories *StoryService
}

func newTestEnv(t *testing.T, publisher messaging.StoryEventPublisher) *testEnv {
	t.Helper()
	backend := storage.NewFileBackend(t.TempDir())
	clock := &stepClock{now: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)}
	log := zap.NewNop()

	users := repository.NewUserRepository(backend, log,
		repository.WithClock(clock), repository.WithIDGenerator(&seqIDs{prefix: "user"}))
	stories := repository.NewStoryRepository(backend, log,
		repository.WithClock(clock), repository.WithIDGenerator(&seqIDs{prefix: "story"}))
	segments := repository.NewSegmentRepository(backend, log,
		repository.WithClock(clock), repository.WithIDGenerator(&seqIDs{prefix: "segment"}))
	participants := repository.NewParticipantRepository(backend, log,
		repository.WithClock(clock), repository.WithIDGenerator(&seqIDs{prefix: "participant"}))

	return &testEnv{
		backend: backend,
		users:   NewUserService(users, log),
		stories: NewStoryService(stories, segments, participants, publisher, 10, log),
	}
}

func newTemplateGenerator() *generator.Generator {
	return generator.New(generator.DefaultCatalog(), zap.NewNop(), generator.WithRand(rand.New(rand.NewSource(7))))
}

func intPtr(v int) *int { return &v }
