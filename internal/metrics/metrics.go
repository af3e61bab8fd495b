package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ProgressSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placement_progress_submissions_total",
			Help: "Total number of accepted progress submissions",
		},
		[]string{"track", "branch"},
	)

	CompanyChangesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "placement_company_changes_total",
			Help: "Companies added or deleted by admins",
		},
		[]string{"track", "action"},
	)

	ResumeSummariesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "resume_summaries_total",
			Help: "Resume summarization attempts by outcome",
		},
		[]string{"outcome"},
	)

	ResumeSummaryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "resume_summary_duration_seconds",
			Help:    "Time spent waiting on the generative model",
			Buckets: []float64{0.5, 1, 2, 5, 10, 20, 30, 60},
		},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"path", "method", "status"},
	)
)
