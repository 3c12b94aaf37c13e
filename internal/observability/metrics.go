package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

const namespace = "cmb_fit"

// Metrics holds the Prometheus counters, histograms, and gauges for the fit pipeline.
type Metrics struct {
	Registry prometheus.Gatherer

	PipelineRuns prometheus.Counter

	// Ingestion metrics.
	Ingest        *prometheus.CounterVec // labels: origin={remote,fallback}
	FetchDuration prometheus.Histogram

	// Fit metrics.
	FitFailures       prometheus.Counter
	FitDuration       prometheus.Histogram
	FitTemperature    prometheus.Gauge
	FitTemperatureErr prometheus.Gauge
	FitReducedChiSq   prometheus.Gauge
	Observations      prometheus.Gauge

	ReportErrors *prometheus.CounterVec // labels: reporter
}

// NewMetrics creates the pipeline metrics and registers them, together with the
// Go runtime and process collectors, on a fresh registry.
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := newMetrics(reg)
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// NewMetricsForTesting creates Metrics on an isolated registry without runtime collectors.
func NewMetricsForTesting() *Metrics {
	return newMetrics(prometheus.NewRegistry())
}

func newMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		Registry: reg,
		PipelineRuns: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "pipeline_runs_total",
			Help:      "Total pipeline runs started.",
		}),
		Ingest: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "ingest_total",
			Help:      "Datasets ingested by origin.",
		}, []string{"origin"}),
		FetchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of the remote spectrum request, successful or not.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}),
		FitFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fit_failures_total",
			Help:      "Total fits that did not converge.",
		}),
		FitDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fit_duration_seconds",
			Help:      "Duration of the least-squares fit.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
		}),
		FitTemperature: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_kelvin",
			Help:      "Best-fit blackbody temperature of the last successful run.",
		}),
		FitTemperatureErr: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "temperature_stderr_kelvin",
			Help:      "Standard error of the best-fit temperature.",
		}),
		FitReducedChiSq: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "reduced_chi_square",
			Help:      "Chi-square per degree of freedom of the last successful fit.",
		}),
		Observations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "observations",
			Help:      "Number of spectral points used by the last fit.",
		}),
		ReportErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_errors_total",
			Help:      "Reporter failures by reporter name.",
		}, []string{"reporter"}),
	}

	reg.MustRegister(
		m.PipelineRuns,
		m.Ingest,
		m.FetchDuration,
		m.FitFailures,
		m.FitDuration,
		m.FitTemperature,
		m.FitTemperatureErr,
		m.FitReducedChiSq,
		m.Observations,
		m.ReportErrors,
	)

	return m
}
