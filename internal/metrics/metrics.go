// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics exposes prometheus counters/histograms for the turn
// driver, the ambient observability layer SPEC_FULL.md calls for alongside
// logging and config (the spec's own Non-goals exclude a full stats
// dashboard, not turn-level instrumentation).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Turn collects the counters the turn driver feeds via ObserveTurn. It
// satisfies turndriver.Driver.Metrics without that package importing
// prometheus directly.
type Turn struct {
	duration  prometheus.Histogram
	events    prometheus.Counter
	destroyed prometheus.Counter
	turns     prometheus.Counter
}

// NewTurn registers a Turn collector's metrics against reg.
func NewTurn(reg prometheus.Registerer) *Turn {
	t := &Turn{
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "halite",
			Subsystem: "engine",
			Name:      "turn_duration_seconds",
			Help:      "Wall-clock time spent processing one turn.",
			Buckets:   prometheus.DefBuckets,
		}),
		events: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "halite",
			Subsystem: "engine",
			Name:      "events_detected_total",
			Help:      "Total attack/collision/desertion events detected across all turns.",
		}),
		destroyed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "halite",
			Subsystem: "engine",
			Name:      "entities_destroyed_total",
			Help:      "Total ships and planets destroyed across all turns.",
		}),
		turns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "halite",
			Subsystem: "engine",
			Name:      "turns_total",
			Help:      "Total turns played.",
		}),
	}
	reg.MustRegister(t.duration, t.events, t.destroyed, t.turns)
	return t
}

// ObserveTurn records one completed turn's timing and counts.
func (t *Turn) ObserveTurn(durationSeconds float64, events, destroyed int) {
	t.duration.Observe(durationSeconds)
	t.events.Add(float64(events))
	t.destroyed.Add(float64(destroyed))
	t.turns.Inc()
}
