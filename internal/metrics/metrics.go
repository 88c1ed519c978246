package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CommandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airquality_bot_commands_total",
			Help: "Total number of bot command invocations by outcome",
		},
		[]string{"command", "outcome"},
	)

	ProviderRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "airquality_bot_provider_requests_total",
			Help: "Total number of provider lookups by result",
		},
		[]string{"provider", "result"},
	)

	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "airquality_bot_provider_request_duration_seconds",
			Help:    "Duration of provider lookups in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"provider"},
	)
)
