package content

import "github.com/prometheus/client_golang/prometheus"

var (
	mutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "content",
			Name:      "mutations_total",
			Help:      "Content store mutations by operation and result.",
		},
		[]string{"op", "result"},
	)
	persistFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "content",
			Name:      "persist_failures_total",
			Help:      "Failed snapshot writes by key.",
		},
		[]string{"key"},
	)
	loadFallbacks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "storefront",
			Subsystem: "content",
			Name:      "load_fallbacks_total",
			Help:      "Keys that fell back to the built-in default on load.",
		},
		[]string{"key"},
	)
)

// Collectors returns the content store metrics for registration.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{mutations, persistFailures, loadFallbacks}
}

func recordMutation(op string, err error) {
	result := "ok"
	if err != nil {
		result = "persist_error"
	}
	mutations.WithLabelValues(op, result).Inc()
}
