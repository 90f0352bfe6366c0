// Package metrics defines and registers all custom Prometheus metrics for
// the Jeugdwerk games API. It is the single source of truth for metric
// names, labels, and help strings; metrics register themselves with the
// default registry at init time via promauto.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "jeugdwerk"

// ── Game metrics ──────────────────────────────────────────────────────────────

// GamesCreatedTotal counts newly created games.
// Label:
//   - intensity: the intensity label of the created game (e.g. "Matig")
var GamesCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "games_created_total",
		Help:      "Total number of games created, by intensity level.",
	},
	[]string{"intensity"},
)

// GameFilterDuration measures how long a composed filter query takes,
// service call to response.
var GameFilterDuration = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "game_filter_duration_seconds",
		Help:      "Duration of filtered game queries.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
)

// ── Tag metrics ───────────────────────────────────────────────────────────────

// TagsCreatedTotal counts tags created lazily from game submissions.
var TagsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tags_created_total",
		Help:      "Total number of tags created on the fly from game submissions.",
	},
)

// TagsPrunedTotal counts orphaned tags removed by the cleanup pass after
// a game deletion.
var TagsPrunedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tags_pruned_total",
		Help:      "Total number of orphaned tags pruned after game deletions.",
	},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginsTotal counts authentication attempts.
// Label:
//   - result: "success" or "failure"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)
