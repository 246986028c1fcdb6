package models

// StoryLength - желаемая длина текста.
type StoryLength string

const (
	StoryLengthShort  StoryLength = "short"
	StoryLengthMedium StoryLength = "medium"
	StoryLengthLong   StoryLength = "long"
)

// Normalize возвращает medium для неизвестных значений.
func (l StoryLength) Normalize() StoryLength {
	switch l {
	case StoryLengthShort, StoryLengthMedium, StoryLengthLong:
		return l
	}
	return StoryLengthMedium
}

// StoryGenerationRequest - запрос на генерацию начала истории.
type StoryGenerationRequest struct {
	Prompt     string           `json:"prompt,omitempty"`
	Parameters *StoryParameters `json:"parameters"`
	Style      string           `json:"style,omitempty"`
	Length     StoryLength      `json:"length,omitempty"`
}

// StoryContinuationRequest - запрос на продолжение истории.
type StoryContinuationRequest struct {
	StoryID    string          `json:"story_id"`
	Content    string          `json:"content"`
	AuthorID   string          `json:"author_id,omitempty"`
	Parameters StoryParameters `json:"parameters"`
}
