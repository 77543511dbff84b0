package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Ingest metrics
	PunchesIngested = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "punch_rows_ingested_total",
			Help: "Punch rows that survived cleaning",
		},
	)

	PunchesDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "punch_rows_dropped_total",
			Help: "Punch rows dropped by the cleaner",
		},
	)

	SnapshotsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "punch_snapshots_published_total",
			Help: "Attendance snapshots published",
		},
		[]string{"source"},
	)

	// Current snapshot
	DailyRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "punch_daily_records",
			Help: "Daily records in the current snapshot",
		},
	)

	NoveltyRecords = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "punch_novelty_records",
			Help: "Daily records flagged as novelty in the current snapshot",
		},
	)

	// Holiday lookups by result: hit, miss, error
	HolidayLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "punch_holiday_lookups_total",
			Help: "Holiday lookups by result",
		},
		[]string{"result"},
	)

	// Scheduled jobs by result: ok, error
	CronRuns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "punch_cron_runs_total",
			Help: "Scheduled job executions by result",
		},
		[]string{"job", "result"},
	)

	// HTTP metrics
	RequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "punch_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

func init() {
	prometheus.MustRegister(
		PunchesIngested,
		PunchesDropped,
		SnapshotsPublished,
		DailyRecords,
		NoveltyRecords,
		HolidayLookups,
		CronRuns,
		RequestDuration,
	)
}

// Handler exposes the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
