package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	OpCount = "count"
	OpFetch = "fetch"

	ResultOK    = "ok"
	ResultError = "error"
)

// DirectoryMetrics records listing queries issued per tier segment and the
// overall search latency.
type DirectoryMetrics struct {
	queries  *prometheus.CounterVec
	duration *prometheus.HistogramVec
	results  prometheus.Histogram
}

// NewDirectoryMetrics registers the directory metrics on the provided registerer.
func NewDirectoryMetrics(reg prometheus.Registerer) *DirectoryMetrics {
	if reg == nil {
		return &DirectoryMetrics{}
	}
	queries := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "directory_segment_queries_total",
		Help: "Listing queries issued per tier segment and operation.",
	}, []string{"segment", "op"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "directory_search_duration_seconds",
		Help:    "Duration of directory searches in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"result"})
	results := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "directory_search_page_size",
		Help:    "Number of listings returned per directory page.",
		Buckets: []float64{0, 1, 5, 10, 20, 30, 40, 50},
	})
	reg.MustRegister(queries, duration, results)
	return &DirectoryMetrics{
		queries:  queries,
		duration: duration,
		results:  results,
	}
}

// IncQuery counts one listing query against a segment ("diamond", ...,
// "remainder").
func (d *DirectoryMetrics) IncQuery(segment, op string) {
	if d == nil || d.queries == nil {
		return
	}
	d.queries.WithLabelValues(normalizeLabel(segment), normalizeLabel(op)).Inc()
}

// ObserveSearch records the latency and outcome of one search.
func (d *DirectoryMetrics) ObserveSearch(elapsed time.Duration, returned int, err error) {
	if d == nil || d.duration == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	d.duration.WithLabelValues(result).Observe(elapsed.Seconds())
	if err == nil {
		d.results.Observe(float64(returned))
	}
}
