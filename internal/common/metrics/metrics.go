// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	WorkerJobsActive = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "worker_jobs_active",
			Help: "Number of active jobs per worker",
		},
		[]string{"task_type"},
	)

	DealsScored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "deals_scored_total",
			Help: "Total number of deals scored, by merit tier",
		},
		[]string{"tier", "model_version"},
	)

	MatchesComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cde_matches_computed_total",
			Help: "Total number of deal/CDE match scores computed",
		},
		[]string{"quality"},
	)

	CreditStreamsPriced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "credit_streams_priced_total",
			Help: "Total number of credit streams priced, by program",
		},
		[]string{"program"},
	)

	CatalogCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cde_catalog_cache_hits_total",
			Help: "CDE catalog cache lookups by result",
		},
		[]string{"result"},
	)
)
