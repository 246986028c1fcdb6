package service

import (
	"testing"

	"story-relay/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	active, completed, archived := models.StoryStatusActive, models.StoryStatusCompleted, models.StoryStatusArchived

	tests := []struct {
		from, to models.StoryStatus
		want     bool
	}{
		{active, completed, true},
		{completed, active, true},
		{active, archived, true},
		{completed, archived, true},
		{archived, active, true},
		{archived, completed, false},
		{active, active, true},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
