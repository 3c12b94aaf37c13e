package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/couchcryptid/cmb-spectrum/internal/domain"
	"github.com/couchcryptid/cmb-spectrum/internal/observability"
)

// ErrFitFailed wraps every fit error returned by Run, whatever its cause.
var ErrFitFailed = errors.New("fit failed")

// Fetcher produces the dataset for a run. It never fails.
type Fetcher interface {
	Fetch(ctx context.Context) domain.Dataset
}

// Fitter fits the blackbody model to an observation table.
type Fitter interface {
	Fit(table domain.ObservationTable) (domain.FitResult, error)
}

// Reporter consumes a finished report.
type Reporter interface {
	Name() string
	Report(ctx context.Context, report domain.Report) error
}

// Pipeline orchestrates the ingest-fit-report sequence.
type Pipeline struct {
	fetcher   Fetcher
	fitter    Fitter
	reporters []Reporter
	logger    *slog.Logger
	metrics   *observability.Metrics
	latest    atomic.Pointer[domain.Report]
}

// New creates a Pipeline with the given stages and observability.
func New(f Fetcher, fitter Fitter, reporters []Reporter, logger *slog.Logger, metrics *observability.Metrics) *Pipeline {
	return &Pipeline{
		fetcher:   f,
		fitter:    fitter,
		reporters: reporters,
		logger:    logger,
		metrics:   metrics,
	}
}

// CheckReadiness returns nil once a run has produced a report.
func (p *Pipeline) CheckReadiness(_ context.Context) error {
	if p.latest.Load() == nil {
		return errors.New("no fit has completed yet")
	}
	return nil
}

// Latest returns the most recent report, if any.
func (p *Pipeline) Latest() (domain.Report, bool) {
	r := p.latest.Load()
	if r == nil {
		return domain.Report{}, false
	}
	return *r, true
}

// Run executes one ingest-fit-report sequence. A fit failure aborts the run
// before any reporter is called and matches ErrFitFailed. Reporter failures do not stop the remaining
// reporters; they are joined into the returned error alongside the report.
func (p *Pipeline) Run(ctx context.Context) (domain.Report, error) {
	p.metrics.PipelineRuns.Inc()

	ds := p.fetcher.Fetch(ctx)
	p.metrics.Observations.Set(float64(len(ds.Observations)))
	p.logger.Info("fitting blackbody spectrum", "observations", len(ds.Observations), "origin", ds.Origin)

	start := time.Now()
	result, err := p.fitter.Fit(ds.Observations)
	p.metrics.FitDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		p.metrics.FitFailures.Inc()
		return domain.Report{}, fmt.Errorf("%w: %s spectrum: %w", ErrFitFailed, ds.Origin, err)
	}

	p.metrics.FitTemperature.Set(result.Temperature)
	p.metrics.FitTemperatureErr.Set(result.TemperatureErr)
	p.metrics.FitReducedChiSq.Set(result.ReducedChiSquare())

	report := domain.NewReport(ds, result)
	p.latest.Store(&report)

	p.logger.Info("fit converged",
		"run_id", report.RunID,
		"temperature", result.Temperature,
		"temperature_err", result.TemperatureErr,
		"amplitude", result.Amplitude,
		"reduced_chi_square", result.ReducedChiSquare(),
	)

	return report, p.report(ctx, report)
}

func (p *Pipeline) report(ctx context.Context, report domain.Report) error {
	var errs []error
	for _, r := range p.reporters {
		if err := r.Report(ctx, report); err != nil {
			p.logger.Error("reporter failed", "reporter", r.Name(), "error", err)
			p.metrics.ReportErrors.WithLabelValues(r.Name()).Inc()
			errs = append(errs, fmt.Errorf("%s: %w", r.Name(), err))
		}
	}
	return errors.Join(errs...)
}
