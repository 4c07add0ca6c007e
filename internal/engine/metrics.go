package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	searchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "catalog_search_duration_seconds",
			Help:    "Duration of catalog search requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	searchFuzzyHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "catalog_search_fuzzy_hits_total",
			Help: "Total number of products matched via the fuzzy phase",
		},
	)

	indexRebuilds = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_index_rebuilds_total",
			Help: "Total number of search index rebuilds",
		},
		[]string{"status"},
	)

	indexedProducts = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "catalog_index_products",
			Help: "Number of products in the current search index",
		},
	)
)
