// Package metrics instruments the match runtime with Prometheus metrics
// using a bounded-cardinality labeling style: no per-actor labels, only
// per-player ({0, 1}) and per-taxonomy-code labels, both of which have
// small fixed cardinality.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	TurnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "arena_turn_duration_seconds",
		Help:    "Wall-clock time spent processing one turn, both players combined",
		Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
	})

	BatonWait = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "arena_baton_wait_seconds",
		Help:    "Time the host spent spin-waiting for a player's baton",
		Buckets: []float64{0.0001, 0.001, 0.01, 0.1, 1, 5, 10},
	}, []string{"player"})

	ValidationRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_validation_rejections_total",
		Help: "CommandGiver validation errors by taxonomy code",
	}, []string{"code"})

	ActiveActors = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "arena_active_actors",
		Help: "Current live actor count",
	}, []string{"player", "kind"})

	Score = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "arena_score",
		Help: "Current cumulative score",
	}, []string{"player"})
)

// ObserveTurn records one turn's wall-clock duration.
func ObserveTurn(d time.Duration) { TurnDuration.Observe(d.Seconds()) }

// ObserveBatonWait records how long the host waited on a player's baton.
func ObserveBatonWait(player int, d time.Duration) {
	BatonWait.WithLabelValues(playerLabel(player)).Observe(d.Seconds())
}

// IncRejection records one validation rejection of the given taxonomy code.
func IncRejection(code string) { ValidationRejections.WithLabelValues(code).Inc() }

// SetActiveActors publishes the current live actor counts.
func SetActiveActors(player int, kind string, n int) {
	ActiveActors.WithLabelValues(playerLabel(player), kind).Set(float64(n))
}

// SetScore publishes the current cumulative score.
func SetScore(player int, score int) {
	Score.WithLabelValues(playerLabel(player)).Set(float64(score))
}

func playerLabel(p int) string {
	if p == 1 {
		return "1"
	}
	return "0"
}
