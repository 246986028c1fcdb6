package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"story-relay/internal/generator"
	"story-relay/internal/messaging"
	"story-relay/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newGenerationService(t *testing.T) (*GenerationService, *testEnv) {
	t.Helper()
	env := newTestEnv(t, messaging.NoopPublisher{})
	svc := NewGenerationService(newTemplateGenerator(), env.stories, "DeepSeek V3", zap.NewNop())
	svc.now = func() time.Time { return time.Date(2025, 3, 8, 10, 0, 0, 0, time.UTC) }
	return svc, env
}

func TestGenerationService_GenerateStory(t *testing.T) {
	ctx := context.Background()

	t.Run("Saves story when scene fields present", func(t *testing.T) {
		svc, env := newGenerationService(t)
		result, err := svc.GenerateStory(ctx, models.StoryGenerationRequest{
			Parameters: &models.StoryParameters{Time: "黎明", Location: "港口", Characters: []string{"水手"}},
			Style:      "adventure",
			Length:     models.StoryLengthShort,
		})
		require.NoError(t, err)
		assert.True(t, result.Saved)
		assert.Equal(t, generator.SourceTemplate, result.Source)
		assert.Equal(t, generator.TemplateProvider, result.Provider)
		assert.True(t, strings.HasPrefix(result.Story, "在黎明，水手来到了港口。"))

		story, err := env.stories.GetStory(ctx, result.StoryID)
		require.NoError(t, err)
		assert.Equal(t, "adventure故事 - 2025/3/8", story.Title)
		assert.Equal(t, "基于adventure风格生成的故事", story.Description)
		assert.Equal(t, result.Story, story.InitialPrompt)
		assert.Equal(t, AnonymousAuthor, story.CreatedBy)
		assert.Equal(t, 10, *story.MaxParticipants)
	})

	t.Run("Action only is not saved", func(t *testing.T) {
		svc, env := newGenerationService(t)
		result, err := svc.GenerateStory(ctx, models.StoryGenerationRequest{
			Parameters: &models.StoryParameters{Action: "寻找宝藏"},
		})
		require.NoError(t, err)
		assert.False(t, result.Saved)
		assert.Empty(t, result.StoryID)
		assert.NotEmpty(t, result.Story)
		assert.Empty(t, env.stories.ListStories(ctx, StatusFilterAll))
	})

	t.Run("Invalid parameters", func(t *testing.T) {
		svc, _ := newGenerationService(t)
		_, err := svc.GenerateStory(ctx, models.StoryGenerationRequest{})
		assert.ErrorIs(t, err, models.ErrInvalidParameters)
		_, err = svc.GenerateStory(ctx, models.StoryGenerationRequest{
			Parameters: &models.StoryParameters{Mood: "紧张", Characters: []string{" "}},
		})
		assert.ErrorIs(t, err, models.ErrInvalidParameters)
	})
}

func TestGenerationService_Parameters(t *testing.T) {
	svc, _ := newGenerationService(t)

	params := svc.GenerateParameters("")
	assert.Equal(t, "fantasy", params.Genre)
	assert.NotEmpty(t, params.Time)
	assert.Len(t, params.Characters, 1)

	params = svc.GenerateParameters("unknown-genre")
	assert.Equal(t, "unknown-genre", params.Genre)
	assert.NotEmpty(t, params.Location)

	assert.Contains(t, svc.Genres(), "mystery")
	assert.Len(t, svc.Suggestions(models.StoryParameters{Characters: []string{"骑士"}}), 3)
}

func TestGenerationService_AIStatus(t *testing.T) {
	svc, _ := newGenerationService(t)
	status := svc.AIStatus()
	assert.False(t, status.Enabled)
	assert.Equal(t, AIStatusNotConfiguredMessage, status.Message)
	assert.Equal(t, generator.TemplateProvider, status.Provider)
}
