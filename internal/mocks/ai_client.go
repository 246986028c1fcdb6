package mocks

import (
	"context"

	"story-relay/internal/ai"

	"github.com/stretchr/testify/mock"
)

// MockAIClient - мок ai.Client.
type MockAIClient struct {
	mock.Mock
}

func (m *MockAIClient) GenerateText(ctx context.Context, systemPrompt, userInput string, params ai.GenerationParams) (string, ai.UsageInfo, error) {
	args := m.Called(ctx, systemPrompt, userInput, params)
	return args.String(0), args.Get(1).(ai.UsageInfo), args.Error(2)
}
