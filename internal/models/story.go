package models

import "time"

// StoryStatus - статус истории.
type StoryStatus string

const (
	StoryStatusActive    StoryStatus = "active"
	StoryStatusCompleted StoryStatus = "completed"
	StoryStatusArchived  StoryStatus = "archived"
)

// IsValid сообщает, является ли статус одним из известных.
func (s StoryStatus) IsValid() bool {
	switch s {
	case StoryStatusActive, StoryStatusCompleted, StoryStatusArchived:
		return true
	}
	return false
}

// Story - совместная история.
type Story struct {
	ID                  string      `json:"id"`
	Title               string      `json:"title"`
	Description         string      `json:"description,omitempty"`
	InitialPrompt       string      `json:"initial_prompt"`
	Status              StoryStatus `json:"status"`
	CreatedBy           string      `json:"created_by"`
	MaxParticipants     *int        `json:"max_participants,omitempty"`
	CurrentParticipants int         `json:"current_participants"`
	CreatedAt           time.Time   `json:"created_at"`
	UpdatedAt           time.Time   `json:"updated_at"`
}

// HasParticipantLimit сообщает, заполнен ли лимит участников.
func (s *Story) HasParticipantLimit() bool {
	return s.MaxParticipants != nil && *s.MaxParticipants > 0 && s.CurrentParticipants >= *s.MaxParticipants
}

// StoryUpdate - частичное обновление истории. nil-поля не меняются.
type StoryUpdate struct {
	Title               *string      `json:"title,omitempty"`
	Description         *string      `json:"description,omitempty"`
	InitialPrompt       *string      `json:"initial_prompt,omitempty"`
	Status              *StoryStatus `json:"status,omitempty"`
	MaxParticipants     *int         `json:"max_participants,omitempty"`
	CurrentParticipants *int         `json:"current_participants,omitempty"`
}

// Apply переносит заданные поля на историю.
func (u StoryUpdate) Apply(s *Story) {
	if u.Title != nil {
		s.Title = *u.Title
	}
	if u.Description != nil {
		s.Description = *u.Description
	}
	if u.InitialPrompt != nil {
		s.InitialPrompt = *u.InitialPrompt
	}
	if u.Status != nil {
		s.Status = *u.Status
	}
	if u.MaxParticipants != nil {
		v := *u.MaxParticipants
		s.MaxParticipants = &v
	}
	if u.CurrentParticipants != nil {
		s.CurrentParticipants = *u.CurrentParticipants
	}
}

// StoryParameters - структурированные параметры сюжета.
type StoryParameters struct {
	Time       string   `json:"time,omitempty"`
	Location   string   `json:"location,omitempty"`
	Characters []string `json:"characters,omitempty"`
	Action     string   `json:"action,omitempty"`
	Mood       string   `json:"mood,omitempty"`
	Genre      string   `json:"genre,omitempty"`
}

// StorySegment - один вклад в историю.
type StorySegment struct {
	ID              string          `json:"id"`
	StoryID         string          `json:"story_id"`
	AuthorID        string          `json:"author_id"`
	Content         string          `json:"content"`
	OrderIndex      int             `json:"order_index"`
	StoryParameters StoryParameters `json:"story_parameters"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// StoryParticipant - связь пользователя и истории.
type StoryParticipant struct {
	ID                string    `json:"id"`
	StoryID           string    `json:"story_id"`
	UserID            string    `json:"user_id"`
	JoinedAt          time.Time `json:"joined_at"`
	ContributionCount int       `json:"contribution_count"`
}

// StoryStats - агрегированная статистика.
type StoryStats struct {
	TotalStories      int `json:"total_stories"`
	ActiveStories     int `json:"active_stories"`
	CompletedStories  int `json:"completed_stories"`
	ArchivedStories   int `json:"archived_stories"`
	TotalParticipants int `json:"total_participants"`
	UserContributions int `json:"user_contributions"`
}
