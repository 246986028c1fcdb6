package service

import "story-relay/internal/models"

// Transition - именованная смена статуса истории.
type Transition string

const (
	TransitionComplete   Transition = "complete"
	TransitionReactivate Transition = "reactivate"
	TransitionArchive    Transition = "archive"
	TransitionRestore    Transition = "restore"
)

type transitionRule struct {
	from []models.StoryStatus
	to   models.StoryStatus
}

var transitionRules = map[Transition]transitionRule{
	TransitionComplete: {
		from: []models.StoryStatus{models.StoryStatusActive},
		to:   models.StoryStatusCompleted,
	},
	TransitionReactivate: {
		from: []models.StoryStatus{models.StoryStatusCompleted},
		to:   models.StoryStatusActive,
	},
	TransitionArchive: {
		from: []models.StoryStatus{models.StoryStatusActive, models.StoryStatusCompleted},
		to:   models.StoryStatusArchived,
	},
	TransitionRestore: {
		from: []models.StoryStatus{models.StoryStatusArchived},
		to:   models.StoryStatusActive,
	},
}

func (r transitionRule) allows(from models.StoryStatus) bool {
	for _, s := range r.from {
		if s == from {
			return true
		}
	}
	return false
}

// CanTransition сообщает, разрешён ли переход from -> to хоть одним правилом.
func CanTransition(from, to models.StoryStatus) bool {
	if from == to {
		return true
	}
	for _, rule := range transitionRules {
		if rule.to == to && rule.allows(from) {
			return true
		}
	}
	return false
}
