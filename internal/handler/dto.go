package handler

import "story-relay/internal/models"

type generateStoryRequest struct {
	Prompt     string                  `json:"prompt"`
	Parameters *models.StoryParameters `json:"parameters"`
	Style      string                  `json:"style"`
	Length     models.StoryLength      `json:"length"`
}

type generateStoryResponse struct {
	Success  bool   `json:"success"`
	Story    string `json:"story"`
	StoryID  string `json:"story_id,omitempty"`
	Message  string `json:"message"`
	Source   string `json:"source"`
	Provider string `json:"provider"`
}

type continueStoryResponse struct {
	Success       bool                 `json:"success"`
	Segment       *models.StorySegment `json:"segment"`
	Story         *models.Story        `json:"story"`
	TotalSegments int                  `json:"total_segments"`
	Message       string               `json:"message"`
}

type storyListResponse struct {
	Success bool           `json:"success"`
	Stories []models.Story `json:"stories"`
	Count   int            `json:"count"`
}

type segmentListResponse struct {
	Success    bool                  `json:"success"`
	Segments   []models.StorySegment `json:"segments"`
	StoryTitle string                `json:"story_title"`
	Count      int                   `json:"count"`
}
