package metrics

import "github.com/prometheus/client_golang/prometheus"

// Vector generation Prometheus metrics.
var (
	VectorGenerationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinevec",
			Name:      "vector_generation_total",
			Help:      "Vector generation attempts by outcome",
		},
		[]string{"status"}, // "created" / "exists" / "failed"
	)

	VectorGenerationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "cinevec",
			Name:      "vector_generation_duration_seconds",
			Help:      "Time to compose, transform, and store one item vector",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
	)

	VocabularySize = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "cinevec",
			Name:      "vocabulary_size",
			Help:      "Number of terms in the trained vocabulary",
		},
	)
)

// Similarity query Prometheus metrics.
var (
	SimilarityQueriesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "cinevec",
			Name:      "similarity_queries_total",
			Help:      "Similarity queries by kind and status",
		},
		[]string{"kind", "status"}, // kind: "recommend" / "similar"
	)

	SimilarityQueryDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "cinevec",
			Name:      "similarity_query_duration_seconds",
			Help:      "Similarity query duration in seconds",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		},
		[]string{"kind"},
	)
)

var (
	vectorMetricsRegistered     bool
	similarityMetricsRegistered bool
)

// RegisterVectorMetrics registers vector generation metrics. Must be called once from main.
func RegisterVectorMetrics() {
	if vectorMetricsRegistered {
		return
	}
	prometheus.MustRegister(VectorGenerationTotal)
	prometheus.MustRegister(VectorGenerationDuration)
	prometheus.MustRegister(VocabularySize)
	vectorMetricsRegistered = true
}

// RegisterSimilarityMetrics registers similarity query metrics. Must be called once from main.
func RegisterSimilarityMetrics() {
	if similarityMetricsRegistered {
		return
	}
	prometheus.MustRegister(SimilarityQueriesTotal)
	prometheus.MustRegister(SimilarityQueryDuration)
	similarityMetricsRegistered = true
}
