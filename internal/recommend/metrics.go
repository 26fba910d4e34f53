package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// inferenceTotal counts model evaluations.
	// Labels: result (ok, no_active_rule, invalid, error)
	inferenceTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cadence",
		Name:      "inference_total",
		Help:      "Total fuzzy inferences by result",
	}, []string{"result"})

	inferenceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "cadence",
		Name:      "inference_duration_seconds",
		Help:      "Fuzzy inference latency in seconds",
		Buckets:   []float64{0.00005, 0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01},
	})

	// recommendationsTotal counts recommendations handed out.
	// Labels: genre
	recommendationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cadence",
		Name:      "recommendations_total",
		Help:      "Total recommendations by genre",
	}, []string{"genre"})

	// scoreCacheTotal counts score cache lookups.
	// Labels: result (hit, miss)
	scoreCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "cadence",
		Name:      "score_cache_total",
		Help:      "Score cache lookups by result",
	}, []string{"result"})
)
