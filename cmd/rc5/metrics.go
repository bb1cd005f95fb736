package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "rc5"

	// published by the rc5 package for every transformed block
	blocksMetricName = "rc5_engine_blocks_total"
)

var (
	deriveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "magic",
		Name:      "derive_duration_milliseconds",
		Help:      "Time to derive the P and Q constants for one width",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 16),
	},
		[]string{"width"},
	)

	benchBatchDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: "bench",
		Name:      "batch_duration_microseconds",
		Help:      "Time to encrypt one batch of blocks during a benchmark",
		Buckets:   prometheus.ExponentialBuckets(1, 2, 20),
	},
		[]string{"word_size"},
	)
)
