package monitoring

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	simulationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "futures_sim_simulations_total",
			Help: "Total number of weekly simulations run",
		},
		[]string{"outcome"},
	)

	simulationDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "futures_sim_simulation_duration_seconds",
			Help:    "Duration of a single weekly simulation",
			Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
		},
	)

	candidateFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "futures_sim_candidate_failures_total",
			Help: "Grid candidates excluded from ranking due to errors",
		},
	)

	sweepsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "futures_sim_sweeps_total",
			Help: "Total number of parameter sweeps run",
		},
	)

	sweepDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "futures_sim_sweep_duration_seconds",
			Help:    "Wall-clock duration of a full parameter sweep",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		},
	)

	sweepGridSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "futures_sim_sweep_grid_size",
			Help:    "Number of grid points evaluated per sweep",
			Buckets: []float64{1, 10, 50, 100, 250, 500, 1000},
		},
	)
)

func init() {
	prometheus.MustRegister(simulationsTotal)
	prometheus.MustRegister(simulationDuration)
	prometheus.MustRegister(candidateFailuresTotal)
	prometheus.MustRegister(sweepsTotal)
	prometheus.MustRegister(sweepDuration)
	prometheus.MustRegister(sweepGridSize)
}

// RecordSimulation records one engine run and its outcome ("ok" or "error").
func RecordSimulation(outcome string, duration time.Duration) {
	simulationsTotal.WithLabelValues(outcome).Inc()
	simulationDuration.Observe(duration.Seconds())
}

// RecordCandidateFailure counts a grid point excluded from ranking.
func RecordCandidateFailure() {
	candidateFailuresTotal.Inc()
}

// RecordSweep records a completed sweep.
func RecordSweep(gridSize int, duration time.Duration) {
	sweepsTotal.Inc()
	sweepDuration.Observe(duration.Seconds())
	sweepGridSize.Observe(float64(gridSize))
}

// Handler exposes the Prometheus metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
