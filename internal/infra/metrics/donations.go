package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(
		donationsStagedTotal,
		donationsReapedTotal,
	)
}

var (
	donationsStagedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "donations_staged_total",
			Help: "Pending donation intents created by the donate flow.",
		},
	)

	donationsReapedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "donations_reaped_total",
			Help: "Abandoned pending donations removed by the reaper.",
		},
	)
)

func IncDonationStaged() { donationsStagedTotal.Inc() }

func AddDonationsReaped(n int64) { donationsReapedTotal.Add(float64(n)) }
