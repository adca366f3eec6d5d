package logomotion

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics records generation outcomes. A nil *Metrics records nothing.
type Metrics struct {
	generations  *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	pollAttempts prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "logomotion",
			Name:      "generations_total",
			Help:      "Generation calls by kind and outcome.",
		}, []string{"kind", "outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "logomotion",
			Name:      "generation_duration_seconds",
			Help:      "Wall time of generation calls, including polling.",
			Buckets:   []float64{1, 5, 15, 30, 60, 120, 300, 600},
		}, []string{"kind"}),
		pollAttempts: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "logomotion",
			Name:      "video_poll_attempts",
			Help:      "Status fetches per video operation.",
			Buckets:   prometheus.LinearBuckets(1, 4, 10),
		}),
	}

	for _, c := range []prometheus.Collector{m.generations, m.duration, m.pollAttempts} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observe(kind ModelKind, err error, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(string(kind), outcomeLabel(err)).Inc()
	m.duration.WithLabelValues(string(kind)).Observe(elapsed.Seconds())
}

func (m *Metrics) observePolls(attempts int) {
	if m == nil {
		return
	}
	m.pollAttempts.Observe(float64(attempts))
}

func outcomeLabel(err error) string {
	switch {
	case err == nil:
		return "success"
	case IsRateLimitError(err):
		return "rate_limited"
	case IsCredentialError(err):
		return "credential"
	case IsTransportError(err):
		return "transport"
	default:
		return "error"
	}
}
