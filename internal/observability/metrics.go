package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	workoutLoggedGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "persistence",
		Name:      "last_workout_logged_timestamp_seconds",
		Help:      "Unix timestamp of the most recent workout persisted to Postgres.",
	})
	leaderboardRefreshGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "fittrack",
		Subsystem: "leaderboard",
		Name:      "last_refresh_timestamp_seconds",
		Help:      "Unix timestamp of the most recent leaderboard rebuild.",
	})
	leaderboardRefreshDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "fittrack",
		Subsystem: "leaderboard",
		Name:      "refresh_duration_seconds",
		Help:      "Time spent rebuilding the materialized leaderboard.",
		Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10),
	})
)

func init() {
	prometheus.MustRegister(workoutLoggedGauge, leaderboardRefreshGauge, leaderboardRefreshDuration)
}

// RecordWorkoutLogged updates the persistence watermark gauge.
func RecordWorkoutLogged(ts time.Time) {
	if ts.IsZero() {
		return
	}
	workoutLoggedGauge.Set(float64(ts.Unix()))
}

// RecordLeaderboardRefresh updates the refresh watermark and duration metrics.
func RecordLeaderboardRefresh(ts time.Time, elapsed time.Duration) {
	if !ts.IsZero() {
		leaderboardRefreshGauge.Set(float64(ts.Unix()))
	}
	leaderboardRefreshDuration.Observe(elapsed.Seconds())
}
