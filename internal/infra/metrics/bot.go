package metrics

import "github.com/prometheus/client_golang/prometheus"

func init() {
	register(botUpdatesTotal, botNotifyFailedTotal)
}

var (
	botUpdatesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_updates_total",
			Help: "Telegram updates processed, by type (message/callback/payment).",
		},
		[]string{"type"},
	)

	botNotifyFailedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_notify_failed_total",
			Help: "Best-effort notifications that could not be delivered.",
		},
	)
)

func IncBotUpdate(kind string) { botUpdatesTotal.WithLabelValues(norm(kind)).Inc() }

func IncNotifyFailed() { botNotifyFailedTotal.Inc() }
