package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Latency of the recommendation HTTP handlers
	RecommendationLatency = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "recommendation_request_latency_seconds",
		Help:    "Latency of recommendation handlers",
		Buckets: prometheus.DefBuckets,
	}, []string{"type"})

	// Total recommendation requests, split by cache outcome
	RecommendationRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_requests_total",
		Help: "Total number of recommendation requests",
	}, []string{"type", "cache"})

	// Feedback events recorded against recommendation results
	RecommendationFeedback = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "recommendation_feedback_total",
		Help: "Total recommendation feedback events by action",
	}, []string{"action"})

	// Report generation outcomes
	ReportGenerations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "report_generations_total",
		Help: "Total report generation attempts by final status",
	}, []string{"status"})
)

func Init() {
	prometheus.MustRegister(
		RecommendationLatency,
		RecommendationRequests,
		RecommendationFeedback,
		ReportGenerations,
	)
}
