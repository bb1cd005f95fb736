package rc5

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	namespace = "rc5"
	subsystem = "engine"
)

var (
	blocksProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "blocks_total",
		Help:      "Count of blocks transformed, by operation and word size",
	},
		[]string{"operation", "word_size"},
	)

	keyExpansions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "key_expansions_total",
		Help:      "Count of keys expanded into round key tables, by word size",
	},
		[]string{"word_size"},
	)

	scheduleCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "schedule_cache_total",
		Help:      "Count of round key cache lookups, by result",
	},
		[]string{"result"},
	)
	scheduleCacheHits   = scheduleCacheLookups.WithLabelValues("hit")
	scheduleCacheMisses = scheduleCacheLookups.WithLabelValues("miss")
)
