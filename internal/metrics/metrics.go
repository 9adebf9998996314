// Package metrics holds the Prometheus collectors for the submission pipeline.
package metrics

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EvaluationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "designdojo",
		Subsystem: "llm",
		Name:      "evaluation_duration_seconds",
		Help:      "Duration of LLM evaluation and solution generation calls",
	}, []string{"operation"})

	EvaluationFallbacks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "designdojo",
		Subsystem: "llm",
		Name:      "fallbacks_total",
		Help:      "Number of LLM results replaced by canned fallbacks",
	}, []string{"operation", "reason"})

	Submissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "designdojo",
		Subsystem: "submissions",
		Name:      "total",
		Help:      "Submissions processed by outcome",
	}, []string{"outcome"})

	RatingUpdateFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "designdojo",
		Subsystem: "submissions",
		Name:      "rating_update_failures_total",
		Help:      "Rating updates that failed after the submission was stored",
	})

	SolutionCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "designdojo",
		Subsystem: "solutions",
		Name:      "lookups_total",
		Help:      "Optimal solution lookups by the tier that answered",
	}, []string{"source"})
)

// Handler exposes the Prometheus scrape endpoint via Fiber.
func Handler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
