// Package metrics exposes Prometheus metrics for the gRPC API and serves
// them over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// RPCMetrics counts gRPC calls and their latency per method and status code.
type RPCMetrics struct {
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	analysesStored  *prometheus.CounterVec
}

// NewRPCMetrics creates the metrics and registers them with registry.
func NewRPCMetrics(registry prometheus.Registerer) (*RPCMetrics, error) {
	m := &RPCMetrics{}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *RPCMetrics) initMetrics() {
	m.requestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plantguard",
			Name:      "grpc_requests_total",
			Help:      "Total number of handled gRPC requests",
		},
		[]string{"method", "code"},
	)

	m.requestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "plantguard",
			Name:      "grpc_request_duration_seconds",
			Help:      "Time taken to handle a gRPC request",
			Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
		},
		[]string{"method"},
	)

	m.analysesStored = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "plantguard",
			Name:      "analyses_stored_total",
			Help:      "Total number of stored analyses by severity",
		},
		[]string{"severity"},
	)
}

// ObserveRPC records one finished call.
func (m *RPCMetrics) ObserveRPC(method, code string, d time.Duration) {
	m.requestsTotal.WithLabelValues(method, code).Inc()
	m.requestDuration.WithLabelValues(method).Observe(d.Seconds())
}

// AnalysisStored records one persisted diagnosis.
func (m *RPCMetrics) AnalysisStored(severity string) {
	m.analysesStored.WithLabelValues(severity).Inc()
}

func (m *RPCMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.requestsTotal.Describe(ch)
	m.requestDuration.Describe(ch)
	m.analysesStored.Describe(ch)
}

func (m *RPCMetrics) Collect(ch chan<- prometheus.Metric) {
	m.requestsTotal.Collect(ch)
	m.requestDuration.Collect(ch)
	m.analysesStored.Collect(ch)
}
