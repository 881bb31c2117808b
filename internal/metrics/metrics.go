package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "solarmatch"

// Run outcomes.
const (
	OutcomeMatched   = "matched"
	OutcomeNoMatches = "no_matches"
	OutcomeRejected  = "rejected"
	OutcomeError     = "error"
)

var (
	MatchRuns = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_runs_total",
			Help:      "Total number of matching runs by outcome",
		},
		[]string{"outcome"},
	)

	MatchRunDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "match_run_duration_seconds",
			Help:      "Duration of a matching run in seconds",
			Buckets:   prometheus.DefBuckets,
		},
	)

	CandidatesScored = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidates_scored_total",
			Help:      "Total number of candidates scored successfully",
		},
	)

	CandidateFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "candidate_failures_total",
			Help:      "Total number of candidates excluded because scoring failed",
		},
	)

	MatchesCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "matches_created_total",
			Help:      "Total number of matches persisted",
		},
	)

	DuplicateSkips = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "duplicate_matches_skipped_total",
			Help:      "Total number of ranked candidates skipped because the match already existed",
		},
	)

	MatchStatusUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "match_status_updates_total",
			Help:      "Total number of match status changes by new status",
		},
		[]string{"status"},
	)
)

// ObserveRun records a finished matching run.
func ObserveRun(outcome string, elapsed time.Duration) {
	MatchRuns.WithLabelValues(outcome).Inc()
	MatchRunDuration.Observe(elapsed.Seconds())
}
