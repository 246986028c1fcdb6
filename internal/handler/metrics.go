package handler

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	usersRegisteredTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_relay_users_registered_total",
		Help: "Total number of registered users.",
	})

	storiesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "story_relay_stories_created_total",
		Help: "Total number of stories created through the API.",
	})

	segmentsAppendedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_relay_segments_appended_total",
			Help: "Total number of appended story segments by endpoint.",
		},
		[]string{"endpoint"},
	)

	storyTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_relay_story_transitions_total",
			Help: "Total number of story status transitions by transition and result.",
		},
		[]string{"transition", "status"},
	)

	storiesGeneratedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "story_relay_stories_generated_total",
			Help: "Total number of generated story beginnings by source and persistence.",
		},
		[]string{"source", "saved"},
	)
)
