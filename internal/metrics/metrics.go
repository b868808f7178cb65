package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	SignupsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total accounts created",
		},
	)

	TransfersTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transfers_total",
			Help: "Total successful transfers",
		},
	)
	TransfersFailed = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transfers_failed_total",
			Help: "Total rejected or failed transfers",
		},
		[]string{"reason"},
	)
)

// Handler serves the /metrics endpoint.
var Handler = promhttp.Handler

func Init() {
	prometheus.MustRegister(SignupsTotal)
	prometheus.MustRegister(TransfersTotal)
	prometheus.MustRegister(TransfersFailed)
}
