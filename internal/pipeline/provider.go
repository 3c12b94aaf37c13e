package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/couchcryptid/cmb-spectrum/internal/domain"
	"github.com/couchcryptid/cmb-spectrum/internal/observability"
)

// SpectrumSource retrieves a spectrum from a remote archive.
type SpectrumSource interface {
	FetchSpectrum(ctx context.Context) (domain.ObservationTable, error)
}

var errRemoteDisabled = errors.New("remote source disabled")

// Provider supplies the observation table for a run. It tries the remote
// source once and falls back to the embedded backup on any failure.
type Provider struct {
	source  SpectrumSource
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewProvider creates a Provider. A nil source always yields the backup table.
func NewProvider(source SpectrumSource, logger *slog.Logger, metrics *observability.Metrics) *Provider {
	return &Provider{
		source:  source,
		logger:  logger,
		metrics: metrics,
	}
}

// attempt is the outcome of one remote retrieval.
type attempt struct {
	table domain.ObservationTable
	err   error
}

// Fetch always returns a usable dataset. Remote failures are logged and
// recorded in the dataset's FallbackReason.
func (p *Provider) Fetch(ctx context.Context) domain.Dataset {
	res := p.tryRemote(ctx)
	if res.err == nil {
		p.logger.Info("spectrum fetched from remote archive", "observations", len(res.table))
		p.metrics.Ingest.WithLabelValues(string(domain.OriginRemote)).Inc()
		return domain.Dataset{Observations: res.table, Origin: domain.OriginRemote}
	}

	if errors.Is(res.err, errRemoteDisabled) {
		p.logger.Info("using embedded backup spectrum", "reason", res.err)
	} else {
		p.logger.Warn("could not fetch remote spectrum, using embedded backup", "error", res.err)
	}
	p.metrics.Ingest.WithLabelValues(string(domain.OriginFallback)).Inc()
	return domain.Dataset{
		Observations:   domain.BackupTable(),
		Origin:         domain.OriginFallback,
		FallbackReason: res.err.Error(),
	}
}

func (p *Provider) tryRemote(ctx context.Context) attempt {
	if p.source == nil {
		return attempt{err: errRemoteDisabled}
	}

	start := time.Now()
	table, err := p.source.FetchSpectrum(ctx)
	p.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return attempt{err: err}
	}
	if err := table.CheckFittable(); err != nil {
		return attempt{err: err}
	}
	return attempt{table: table}
}
