package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all Prometheus metrics for the screener.
type Registry struct {
	*prometheus.Registry

	runsTotal          prometheus.Counter
	symbolsScanned     prometheus.Counter
	fetchFailures      prometheus.Counter
	matchesFound       prometheus.Gauge
	universeSize       prometheus.Gauge
	runDurationSeconds prometheus.Histogram
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		runsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "screener_runs_total",
			Help: "Total number of screening runs started",
		}),

		symbolsScanned: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "screener_symbols_scanned_total",
			Help: "Total number of symbols scanned across all runs",
		}),

		fetchFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "screener_fetch_failures_total",
			Help: "Total number of per-symbol fetch failures",
		}),

		matchesFound: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "screener_matches_found",
			Help: "Number of matches found by the most recent run",
		}),

		universeSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "screener_universe_size",
			Help: "Number of constituents in the resolved universe",
		}),

		runDurationSeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "screener_run_duration_seconds",
			Help:    "Wall-clock duration of a full screening run",
			Buckets: []float64{1, 5, 15, 60, 120, 300, 600, 1200},
		}),
	}

	reg.MustRegister(
		r.runsTotal,
		r.symbolsScanned,
		r.fetchFailures,
		r.matchesFound,
		r.universeSize,
		r.runDurationSeconds,
	)

	return r
}

// RunStarted records the start of a screening run.
func (r *Registry) RunStarted(universeSize int) {
	r.runsTotal.Inc()
	r.universeSize.Set(float64(universeSize))
}

// SymbolScanned records one scanned symbol.
func (r *Registry) SymbolScanned() {
	r.symbolsScanned.Inc()
}

// FetchFailed records one per-symbol fetch failure.
func (r *Registry) FetchFailed() {
	r.fetchFailures.Inc()
}

// RunFinished records the outcome of a completed run.
func (r *Registry) RunFinished(matches int, seconds float64) {
	r.matchesFound.Set(float64(matches))
	r.runDurationSeconds.Observe(seconds)
}

// Handler returns an HTTP handler exposing the registry.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}
