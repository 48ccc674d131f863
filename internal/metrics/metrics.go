// Package metrics defines Prometheus metrics for the search pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	SearchRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "khoj",
			Name:      "search_requests_total",
			Help:      "Total number of search requests",
		},
		[]string{"status"},
	)

	StageDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "khoj",
			Name:      "stage_duration_seconds",
			Help:      "Pipeline stage duration in seconds",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 3},
		},
		[]string{"stage"},
	)

	CacheTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "khoj",
			Name:      "cache_total",
			Help:      "Cache hits and misses by cache name",
		},
		[]string{"cache", "result"}, // result: "hit" / "miss"
	)

	TranslitTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "khoj",
			Name:      "translit_total",
			Help:      "Transliteration outcomes",
		},
		[]string{"outcome"}, // "success" / "fallback" / "cache_hit"
	)

	EmbeddingRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "khoj",
			Name:      "embedding_requests_total",
			Help:      "Total number of embedding requests",
		},
		[]string{"kind", "status"}, // kind: "text" / "image"
	)
)

var registered bool

// Register registers all pipeline metrics. Must be called once from main.
func Register() {
	if registered {
		return
	}
	prometheus.MustRegister(SearchRequestsTotal)
	prometheus.MustRegister(StageDuration)
	prometheus.MustRegister(CacheTotal)
	prometheus.MustRegister(TranslitTotal)
	prometheus.MustRegister(EmbeddingRequestsTotal)
	registered = true
}
