package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the full predict pipeline, validation to response
	PredictLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "liver_predict_latency_seconds",
		Help:    "Latency of the prediction pipeline",
		Buckets: prometheus.DefBuckets,
	})

	// Served predictions by outcome label
	PredictionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "liver_predictions_total",
		Help: "Total predictions served, by predicted label",
	}, []string{"label"})

	ValidationFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "liver_validation_failures_total",
		Help: "Requests rejected by input validation",
	})

	PredictionErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "liver_prediction_errors_total",
		Help: "Requests that failed inside the model pipeline",
	})

	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "liver_prediction_cache_hits_total",
		Help: "Predictions answered from the response cache",
	})

	// 1 for the attribution strategy in use, 0 for the others
	ExplainerStrategy = prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "liver_explainer_strategy",
		Help: "Attribution strategy selected at startup",
	}, []string{"strategy"})
)

func Init() {
	prometheus.MustRegister(
		PredictLatency,
		PredictionsTotal,
		ValidationFailures,
		PredictionErrors,
		CacheHits,
		ExplainerStrategy,
	)
}
