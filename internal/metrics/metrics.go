// Package metrics exposes Prometheus instrumentation for the service.
package metrics

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SubgraphRequests counts outbound subgraph fetches by outcome.
	SubgraphRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "lendsim_subgraph_requests_total",
		Help: "Subgraph fetch attempts by outcome.",
	}, []string{"outcome"})

	// SimulationsTotal counts completed simulation runs.
	SimulationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "lendsim_simulations_total",
		Help: "Completed simulations.",
	})

	// SimulationSteps observes how many steps each simulation executed.
	SimulationSteps = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "lendsim_simulation_steps",
		Help:    "Steps per simulation.",
		Buckets: prometheus.ExponentialBuckets(1, 2, 12),
	})

	// StreamClients tracks currently connected ledger stream clients.
	StreamClients = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "lendsim_stream_clients",
		Help: "Connected websocket ledger streams.",
	})
)

// Handler adapts the Prometheus handler for gin.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
