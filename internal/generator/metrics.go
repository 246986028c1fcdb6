package generator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var templateFallbacksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "story_generator_template_fallbacks_total",
		Help: "Number of story beginnings produced by the template generator instead of the LLM.",
	},
	[]string{"reason"},
)
