package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		paymentsTotal,
		paymentsRevenueTotal,
		paymentsDuplicateTotal,
		paymentsAnomalyTotal,
	)
}

var (
	paymentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Confirmed charges materialized, by kind (product/donation/unknown).",
		},
		[]string{"kind"},
	)

	paymentsRevenueTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_revenue_total",
			Help: "The total monetary value of recorded payments, labeled by currency.",
		},
		[]string{"currency"},
	)

	paymentsDuplicateTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_duplicate_total",
			Help: "Confirmation events rejected by the charge_id unique constraint.",
		},
	)

	paymentsAnomalyTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_reconciliation_anomalies_total",
			Help: "Confirmed charges whose post-processing failed and needs manual review.",
		},
	)
)

func IncPayment(kind string) {
	paymentsTotal.WithLabelValues(norm(kind)).Inc()
}

func AddPaymentRevenue(currency string, amount int64) {
	paymentsRevenueTotal.WithLabelValues(norm(currency)).Add(float64(amount))
}

func IncDuplicateCharge() { paymentsDuplicateTotal.Inc() }

func IncReconciliationAnomaly() { paymentsAnomalyTotal.Inc() }
