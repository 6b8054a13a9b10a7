package storefront

import "github.com/prometheus/client_golang/prometheus"

var inquiriesReceived = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: "contact",
		Name:      "inquiries_total",
		Help:      "Contact form submissions by result.",
	},
	[]string{"result"},
)
