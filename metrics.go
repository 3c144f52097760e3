package vpcflow

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the delivery loop counters. A nil *Metrics records nothing.
type Metrics struct {
	Files            *prometheus.CounterVec
	Records          prometheus.Counter
	MessagesAcked    prometheus.Counter
	MessagesRetained prometheus.Counter
	ReceiveErrors    prometheus.Counter
	BatchDuration    prometheus.Histogram
}

// NewMetrics registers the delivery loop metrics with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	var factory = promauto.With(reg)
	return &Metrics{
		Files: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "vpcflow_ingest_files_total",
				Help: "Total number of object events processed, by outcome",
			},
			[]string{"status", "format"},
		),
		Records: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vpcflow_ingest_records_total",
				Help: "Total number of flow records aggregated",
			},
		),
		MessagesAcked: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vpcflow_ingest_messages_acked_total",
				Help: "Total number of notifications removed from the queue",
			},
		),
		MessagesRetained: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vpcflow_ingest_messages_retained_total",
				Help: "Total number of notifications left on the queue for redelivery",
			},
		),
		ReceiveErrors: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "vpcflow_ingest_receive_errors_total",
				Help: "Total number of failed queue receive calls",
			},
		),
		BatchDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "vpcflow_ingest_batch_duration_seconds",
				Help:    "Duration of one receive and process cycle in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
	}
}

func (m *Metrics) observeResults(results []Result) {
	if m == nil {
		return
	}
	for _, r := range results {
		m.Files.WithLabelValues(string(r.Status), string(r.Format)).Inc()
		if r.RecordsCount != nil {
			m.Records.Add(float64(*r.RecordsCount))
		}
	}
}

func (m *Metrics) observeAck(acked bool) {
	if m == nil {
		return
	}
	if acked {
		m.MessagesAcked.Inc()
		return
	}
	m.MessagesRetained.Inc()
}

func (m *Metrics) observeReceiveError() {
	if m == nil {
		return
	}
	m.ReceiveErrors.Inc()
}

func (m *Metrics) observeBatch(d time.Duration) {
	if m == nil {
		return
	}
	m.BatchDuration.Observe(d.Seconds())
}
