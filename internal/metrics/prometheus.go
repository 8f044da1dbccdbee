package metrics

import (
	"strings"

	"github.com/Clownworldenjoyer76/nikki-and-mat-bets/internal/models"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for the grading engine

var (
	// Run metrics
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickstats_runs_total",
			Help: "Total number of aggregation runs",
		},
		[]string{"season", "status"},
	)

	RunDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickstats_run_duration_seconds",
			Help:    "Duration of aggregation runs in seconds",
			Buckets: []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"season"},
	)

	LastSuccessfulRun = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "pickstats_last_successful_run_timestamp",
			Help: "Timestamp of the last successful run per season",
		},
		[]string{"season"},
	)

	// Grading metrics
	FilesProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickstats_files_total",
			Help: "Weekly final tables processed",
		},
		[]string{"season", "result"},
	)

	RowsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickstats_rows_total",
			Help: "Final table rows processed",
		},
		[]string{"season", "result"},
	)

	PicksGraded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickstats_picks_graded_total",
			Help: "Picks graded to a win, loss or push",
		},
		[]string{"season", "market"},
	)

	SkipsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickstats_skips_total",
			Help: "Rows and picks excluded from tallies, by reason",
		},
		[]string{"season", "reason"},
	)

	// Sink metrics
	DBQueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickstats_db_queries_total",
			Help: "Total number of database queries",
		},
		[]string{"operation", "table", "status"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickstats_db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "table"},
	)

	CacheOperationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pickstats_cache_operation_duration_seconds",
			Help:    "Duration of cache operations in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"operation"},
	)

	PublishErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickstats_publish_errors_total",
			Help: "Failed attempts to publish a run to a sink",
		},
		[]string{"sink"},
	)

	// Error metrics
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pickstats_errors_total",
			Help: "Total number of errors",
		},
		[]string{"component", "error_type"},
	)

	// System metrics
	SystemUptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pickstats_system_uptime_seconds",
			Help: "Worker uptime in seconds",
		},
	)
)

// RecordRun records the outcome of an aggregation run
func RecordRun(season, status string, duration float64) {
	RunsTotal.WithLabelValues(season, status).Inc()
	RunDuration.WithLabelValues(season).Observe(duration)

	if status == "success" {
		LastSuccessfulRun.WithLabelValues(season).SetToCurrentTime()
	}
}

// RecordSummary adds a run summary's counters
func RecordSummary(s *models.RunSummary) {
	FilesProcessed.WithLabelValues(s.Season, "read").Add(float64(s.FilesRead - s.FilesSkipped))
	FilesProcessed.WithLabelValues(s.Season, "skipped").Add(float64(s.FilesSkipped))
	RowsProcessed.WithLabelValues(s.Season, "graded").Add(float64(s.RowsGraded))
	RowsProcessed.WithLabelValues(s.Season, "skipped").Add(float64(s.RowsSkipped))

	for market, n := range s.PicksGraded {
		PicksGraded.WithLabelValues(s.Season, market).Add(float64(n))
	}
	for reason, n := range s.SkipReasons {
		SkipsTotal.WithLabelValues(s.Season, ReasonLabel(reason)).Add(float64(n))
	}
}

// ReasonLabel drops a parenthesised file name so labels stay low-cardinality
func ReasonLabel(reason string) string {
	if i := strings.Index(reason, " ("); i > 0 {
		return reason[:i]
	}
	return reason
}

// RecordDBQuery records a database query metric
func RecordDBQuery(operation, table, status string, duration float64) {
	DBQueriesTotal.WithLabelValues(operation, table, status).Inc()
	DBQueryDuration.WithLabelValues(operation, table).Observe(duration)
}

// RecordCacheOperation records a cache operation duration
func RecordCacheOperation(operation string, duration float64) {
	CacheOperationDuration.WithLabelValues(operation).Observe(duration)
}

// RecordPublishError records a sink failure
func RecordPublishError(sink string) {
	PublishErrorsTotal.WithLabelValues(sink).Inc()
}

// RecordError records an error
func RecordError(component, errorType string) {
	ErrorsTotal.WithLabelValues(component, errorType).Inc()
}

// WriteTextfile dumps the default registry in the node_exporter textfile format
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
