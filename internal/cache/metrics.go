package cache

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cacheHitsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wareongo_cache_hits_total",
			Help: "Total number of listing cache hits",
		},
	)

	cacheMissesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wareongo_cache_misses_total",
			Help: "Total number of listing cache misses",
		},
	)

	cacheErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wareongo_cache_errors_total",
			Help: "Total number of cache backend errors",
		},
		[]string{"operation"},
	)
)
