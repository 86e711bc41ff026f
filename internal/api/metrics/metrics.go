// Package metrics defines and registers all custom Prometheus metrics for
// the attendance API. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "attendance"

// ── Recognition metrics ───────────────────────────────────────────────────────

// RecognitionTotal counts recognition attempts by outcome.
// Label:
//   - result: "accepted", "no_confident_match", "ambiguous", or "error"
var RecognitionTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "recognition_total",
		Help:      "Total number of recognition attempts, labelled by outcome.",
	},
	[]string{"result"},
)

// RecognitionDuration measures the embedding-to-decision latency of one
// recognition request.
var RecognitionDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "recognition_duration_seconds",
		Help:      "Duration of recognition from embedding receipt to decision.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Registration metrics ──────────────────────────────────────────────────────

// RegistrationsTotal counts persisted attendance registrations.
// Labels:
//   - window: the marking window (e.g. "morning_entry")
//   - status: the evaluated status (e.g. "on_time", "late")
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of attendance registrations, by window and status.",
	},
	[]string{"window", "status"},
)

// DuplicatesTotal counts registration attempts that hit an already
// registered (person, date, window) slot.
var DuplicatesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "duplicates_total",
		Help:      "Total number of duplicate registration attempts.",
	},
)

// NotificationSubscribers tracks the number of connected event-stream
// subscribers.
var NotificationSubscribers = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_subscribers",
		Help:      "Current number of connected event-stream subscribers.",
	},
)
