package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(subscriptionsGrantedTotal)
}

var subscriptionsGrantedTotal = prometheus.NewCounter(
	prometheus.CounterOpts{
		Name: "subscriptions_granted_total",
		Help: "Subscriptions created by the payment confirmation handler.",
	},
)

func IncSubscriptionGranted() { subscriptionsGrantedTotal.Inc() }
