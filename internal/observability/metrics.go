package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreReadLatency records file-store read latency per collection.
	StoreReadLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "icebreaker_store_read_latency_seconds",
		Help:    "Entity store read latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})

	// StoreWriteLatency records file-store write latency per collection.
	StoreWriteLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "icebreaker_store_write_latency_seconds",
		Help:    "Entity store write latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"collection"})

	// StoreCorruptionRecoveries counts reads that discarded an unparseable
	// store file and fell back to an empty collection.
	StoreCorruptionRecoveries = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "icebreaker_store_corruption_recoveries_total",
		Help: "Total number of store reads recovered from a corrupted file",
	}, []string{"collection"})
)
