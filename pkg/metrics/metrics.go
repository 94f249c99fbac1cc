package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// LeapsMetrics records what the post-processor does to the routes it is given.
type LeapsMetrics struct {
	processedPaths    *prometheus.CounterVec
	etaSaved          prometheus.Histogram
	acceptedIntervals prometheus.Histogram
	cacheHits         prometheus.Counter
}

func NewLeapsMetrics(reg prometheus.Registerer) *LeapsMetrics {
	factory := promauto.With(reg)
	return &LeapsMetrics{
		processedPaths: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Subsystem: "leaps",
			Name:      "processed_paths_total",
			Help:      "Number of routes handled by the leaps post-processor, by outcome.",
		}, []string{"outcome"}),
		etaSaved: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Subsystem: "leaps",
			Name:      "eta_saved_seconds",
			Help:      "Travel time removed from a route by the post-processor.",
			Buckets:   []float64{0, 1, 5, 10, 30, 60, 120, 300, 600},
		}),
		acceptedIntervals: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "navigatorx",
			Subsystem: "leaps",
			Name:      "accepted_intervals",
			Help:      "Number of detours replaced in a route.",
			Buckets:   prometheus.LinearBuckets(0, 1, 10),
		}),
		cacheHits: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "navigatorx",
			Subsystem: "leaps",
			Name:      "cache_hits_total",
			Help:      "Routes answered from the processed route cache.",
		}),
	}
}

// ObserveProcessed records one route the post-processor refined.
func (m *LeapsMetrics) ObserveProcessed(etaSaved float64, accepted int) {
	outcome := "unchanged"
	if accepted > 0 {
		outcome = "improved"
	}
	m.processedPaths.WithLabelValues(outcome).Inc()
	m.etaSaved.Observe(etaSaved)
	m.acceptedIntervals.Observe(float64(accepted))
}

func (m *LeapsMetrics) ObserveRejected() {
	m.processedPaths.WithLabelValues("rejected").Inc()
}

func (m *LeapsMetrics) ObserveCacheHit() {
	m.cacheHits.Inc()
}
