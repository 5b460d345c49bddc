package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// DirectoryMetrics bundles the service's prometheus collectors.
type DirectoryMetrics struct {
	SearchesTotal      prometheus.CounterVec
	SearchDuration     prometheus.HistogramVec
	SearchResultsCount prometheus.HistogramVec

	MutationsTotal       prometheus.CounterVec
	MutationErrorsTotal  prometheus.CounterVec
	OnboardingsTotal     prometheus.Counter
	ValidationFailsTotal prometheus.CounterVec

	CascadeRowsTotal prometheus.CounterVec
	SweepRunsTotal   prometheus.Counter
	SweptBusinesses  prometheus.Counter

	GeofenceEvaluationsTotal prometheus.Counter
	GeofenceMatches          prometheus.HistogramVec

	GeocodeRequestsTotal prometheus.CounterVec
}

func NewDirectoryMetrics() *DirectoryMetrics {
	return &DirectoryMetrics{
		SearchesTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_searches_total",
				Help: "Search and lookup operations by kind",
			},
			[]string{"kind"},
		),

		SearchDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "directory_search_duration_seconds",
				Help:    "Search latency by kind",
				Buckets: prometheus.ExponentialBuckets(0.005, 2, 10),
			},
			[]string{"kind"},
		),

		SearchResultsCount: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "directory_search_results",
				Help:    "Result-set size per search before truncation",
				Buckets: prometheus.ExponentialBuckets(1, 2, 10),
			},
			[]string{"kind"},
		),

		MutationsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_mutations_total",
				Help: "Write operations by kind",
			},
			[]string{"kind"},
		),

		MutationErrorsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_mutation_errors_total",
				Help: "Failed write operations by kind",
			},
			[]string{"kind"},
		),

		OnboardingsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "directory_onboardings_completed_total",
				Help: "Businesses whose onboarding completed",
			},
		),

		ValidationFailsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_validation_failures_total",
				Help: "Social media validation failures by field",
			},
			[]string{"field"},
		),

		CascadeRowsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_cascade_rows_total",
				Help: "Rows affected by cascade fan-outs, by relation and mode",
			},
			[]string{"relation", "mode"},
		),

		SweepRunsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "directory_sweep_runs_total",
				Help: "Retention sweep executions",
			},
		),

		SweptBusinesses: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "directory_swept_businesses_total",
				Help: "Businesses hard-deleted by the retention sweep",
			},
		),

		GeofenceEvaluationsTotal: promauto.NewCounter(
			prometheus.CounterOpts{
				Name: "directory_geofence_evaluations_total",
				Help: "Geofence nearby-list evaluations",
			},
		),

		GeofenceMatches: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "directory_geofence_matches",
				Help:    "Businesses within radius per geofence evaluation",
				Buckets: prometheus.LinearBuckets(0, 5, 10),
			},
			[]string{"followed"},
		),

		GeocodeRequestsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "directory_geocode_requests_total",
				Help: "Geocode collaborator calls by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *DirectoryMetrics) RecordSearch(kind string, durationSeconds float64, results int) {
	m.SearchesTotal.WithLabelValues(kind).Inc()
	m.SearchDuration.WithLabelValues(kind).Observe(durationSeconds)
	m.SearchResultsCount.WithLabelValues(kind).Observe(float64(results))
}

func (m *DirectoryMetrics) RecordMutation(kind string, err error) {
	m.MutationsTotal.WithLabelValues(kind).Inc()
	if err != nil {
		m.MutationErrorsTotal.WithLabelValues(kind).Inc()
	}
}

func (m *DirectoryMetrics) RecordOnboardingCompleted() {
	m.OnboardingsTotal.Inc()
}

func (m *DirectoryMetrics) RecordValidationFailure(field string) {
	m.ValidationFailsTotal.WithLabelValues(field).Inc()
}

func (m *DirectoryMetrics) RecordCascade(relation, mode string, rows int64) {
	m.CascadeRowsTotal.WithLabelValues(relation, mode).Add(float64(rows))
}

func (m *DirectoryMetrics) RecordSweep(swept int) {
	m.SweepRunsTotal.Inc()
	m.SweptBusinesses.Add(float64(swept))
}

func (m *DirectoryMetrics) RecordGeofenceEvaluation(matches int, followed bool) {
	m.GeofenceEvaluationsTotal.Inc()
	followedStr := "false"
	if followed {
		followedStr = "true"
	}
	m.GeofenceMatches.WithLabelValues(followedStr).Observe(float64(matches))
}

func (m *DirectoryMetrics) RecordGeocode(outcome string) {
	m.GeocodeRequestsTotal.WithLabelValues(outcome).Inc()
}
