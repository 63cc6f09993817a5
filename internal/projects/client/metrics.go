package client

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ennichirag3/blue-carbon-frontend/internal/projects/domain"
)

const (
	outcomeOK        = "ok"
	outcomeRemote    = "remote_error"
	outcomeNetwork   = "network_error"
	outcomeTimeout   = "timeout"
	outcomeMalformed = "malformed"
)

// Metrics tracks store calls made by the client.
type Metrics struct {
	Requests *prometheus.CounterVec
	Latency  *prometheus.HistogramVec
}

// NewMetrics registers the client collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "bluecarbon",
			Subsystem: "store_client",
			Name:      "requests_total",
			Help:      "Project store calls by operation and outcome.",
		}, []string{"operation", "outcome"}),
		Latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "bluecarbon",
			Subsystem: "store_client",
			Name:      "request_duration_seconds",
			Help:      "Project store call latency.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 12),
		}, []string{"operation"}),
	}
	if reg != nil {
		reg.MustRegister(m.Requests, m.Latency)
	}
	return m
}

func (m *Metrics) observe(op, outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(op, outcome).Inc()
	m.Latency.WithLabelValues(op).Observe(d.Seconds())
}

func outcomeFor(kind error) string {
	if errors.Is(kind, domain.ErrTimeout) {
		return outcomeTimeout
	}
	return outcomeNetwork
}
