package services

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"

	"ingest-keeper/internal/config"
	"ingest-keeper/internal/logger"
)

var (
	commandTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "keeper_command_total",
			Help: "Total keeper command invocations",
		},
		[]string{"command", "outcome"},
	)

	commandDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "keeper_command_duration_seconds",
			Help:    "Duration of keeper command invocations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)
)

// PushCommandMetrics records one command invocation and pushes it to the
// configured pushgateway. A missing pushgateway disables the push; a failed
// push is logged and never affects the command's exit status.
func PushCommandMetrics(command string, err error, elapsed time.Duration) {
	addr := config.Config.Metrics.Pushgateway
	if addr == "" {
		return
	}

	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	commandTotal.WithLabelValues(command, outcome).Inc()
	commandDuration.WithLabelValues(command).Observe(elapsed.Seconds())

	pusher := push.New(addr, "ingest-keeper").
		Collector(commandTotal).
		Collector(commandDuration)
	if pushErr := pusher.Push(); pushErr != nil {
		logger.Warnf("Failed to push metrics to %s: %v", addr, pushErr)
	}
}
