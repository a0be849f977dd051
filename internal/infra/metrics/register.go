package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once       sync.Once
	collectors []prometheus.Collector
)

// register queues collectors from the per-subsystem files (payments,
// donations, subscriptions, bot) during init.
func register(cs ...prometheus.Collector) {
	collectors = append(collectors, cs...)
}

// MustRegister installs every queued collector into the default registry.
// main calls it once before the pollers start; repeat calls are no-ops.
func MustRegister() {
	once.Do(func() {
		if len(collectors) > 0 {
			prometheus.MustRegister(collectors...)
		}
	})
}
