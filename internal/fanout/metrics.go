package fanout

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	syncRecordsIssued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hooly_sync_records_issued_total",
		Help: "Sync records issued, by media type.",
	}, []string{"media_type"})

	deliveriesEnqueued = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hooly_deliveries_enqueued_total",
		Help: "Envelopes handed to the delivery sink, by media type.",
	}, []string{"media_type"})

	fanoutFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hooly_fanout_failures_total",
		Help: "Per-recipient fan-out failures, by stage.",
	}, []string{"stage"})

	fanoutDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hooly_fanout_duration_seconds",
		Help:    "Time spent fanning out one change.",
		Buckets: prometheus.DefBuckets,
	}, []string{"media_type"})
)
