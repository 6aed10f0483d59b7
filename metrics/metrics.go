package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Fetch outcomes used as the "outcome" label
const (
	OutcomeOK            = "ok"
	OutcomeEmpty         = "empty"
	OutcomeParseError    = "parse_error"
	OutcomeFetchError    = "fetch_error"
	OutcomeInternalError = "internal_error"
)

// Metrics holds the Prometheus collectors for feed fetches
type Metrics struct {
	FetchTotal    *prometheus.CounterVec
	ItemsReturned prometheus.Counter
	FetchDuration prometheus.Histogram
}

// New registers the collectors on reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		FetchTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sciencenews_fetch_total",
				Help: "Total number of feed fetches by outcome",
			},
			[]string{"outcome"},
		),
		ItemsReturned: factory.NewCounter(prometheus.CounterOpts{
			Name: "sciencenews_items_returned_total",
			Help: "Total number of news items returned to callers",
		}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "sciencenews_fetch_duration_seconds",
			Help:    "Duration of feed fetch and parse",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// ObserveFetch records one fetch with its outcome, item count and duration
func (m *Metrics) ObserveFetch(outcome string, items int, took time.Duration) {
	if m == nil {
		return
	}
	m.FetchTotal.WithLabelValues(outcome).Inc()
	m.ItemsReturned.Add(float64(items))
	m.FetchDuration.Observe(took.Seconds())
}
