package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	TicketsProcessed prometheus.Counter
	ExtractionTime   prometheus.Histogram
	JourneysFound    prometheus.Histogram
	ConfidenceScore  prometheus.Histogram
	ErrorsCount      *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		TicketsProcessed: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "tickets_processed_total",
			Help:      "The total number of processed ticket documents",
		}),
		ExtractionTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "extraction_time_seconds",
			Help:      "Time taken to extract and match a ticket",
			Buckets:   prometheus.DefBuckets,
		}),
		JourneysFound: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "journeys_found",
			Help:      "Number of journeys reconstructed per ticket",
			Buckets:   []float64{0, 1, 2, 3, 4, 6, 8},
		}),
		ConfidenceScore: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "confidence_score",
			Help:      "Extraction confidence score per ticket",
			Buckets:   []float64{0, 10, 25, 50, 75, 90, 95},
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
