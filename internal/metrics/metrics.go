// Package metrics defines the Prometheus metrics exposed at /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginsTotal tracks login attempts by outcome.
	LoginsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "logins_total",
			Help: "Total login attempts by outcome",
		},
		[]string{"outcome"},
	)

	// RegistrationsTotal tracks successful account registrations.
	RegistrationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "registrations_total",
			Help: "Total successful account registrations",
		},
	)

	// ActiveSessions tracks the number of tokens currently held by the
	// session registry. Updated on every registry mutation, so it can lag
	// reality by at most one lazy-eviction scan.
	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_sessions",
			Help: "Tokens currently held by the session registry",
		},
	)

	// AccountMutationsTotal tracks account writes by operation and status.
	AccountMutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "account_mutations_total",
			Help: "Account create/update/delete operations by operation and status",
		},
		[]string{"operation", "status"},
	)
)

// Login outcomes.
const (
	LoginOutcomeSuccess            = "success"
	LoginOutcomeInvalidCredentials = "invalid_credentials"
	LoginOutcomeSessionConflict    = "session_conflict"
	LoginOutcomeValidationError    = "validation_error"
	LoginOutcomeInternalError      = "internal_error"
)
