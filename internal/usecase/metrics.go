package usecase

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var feedbackOperations = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "feedback_portal",
	Subsystem: "feedback",
	Name:      "operations_total",
	Help:      "Feedback operations by action and outcome",
}, []string{"action", "outcome"})

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrValidation):
		return "invalid"
	case errors.Is(err, ErrUnauthenticated):
		return "unauthenticated"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrNotFound):
		return "not_found"
	default:
		return "error"
	}
}

func observe(action string, err error) {
	feedbackOperations.WithLabelValues(action, outcomeOf(err)).Inc()
}
