package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	resumeExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "resume",
			Name:      "exports_total",
			Help:      "Resume exports by format and result.",
		},
		[]string{"format", "result"},
	)

	resumePages = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "resume",
			Name:      "pages",
			Help:      "Pages per laid-out resume.",
			Buckets:   []float64{1, 2, 3, 4, 6, 10},
		},
	)

	counselCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "counsel",
			Name:      "calls_total",
			Help:      "Counselor calls by operation and result.",
		},
		[]string{"operation", "result"},
	)
)

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// ObserveExport records one resume export.
func ObserveExport(format string, pages int, err error) {
	resumeExportsTotal.WithLabelValues(format, result(err)).Inc()
	if err == nil {
		resumePages.Observe(float64(pages))
	}
}

// ObserveCounsel records one counselor call.
func ObserveCounsel(operation string, err error) {
	counselCallsTotal.WithLabelValues(operation, result(err)).Inc()
}
