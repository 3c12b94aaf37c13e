package observability

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/couchcryptid/cmb-spectrum/internal/domain"
)

// TextfileReporter writes the metric registry to a file in the Prometheus text
// exposition format, for pickup by node_exporter's textfile collector.
type TextfileReporter struct {
	path     string
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// NewTextfileReporter creates a reporter that dumps gatherer to path after each run.
func NewTextfileReporter(path string, gatherer prometheus.Gatherer, logger *slog.Logger) *TextfileReporter {
	return &TextfileReporter{path: path, gatherer: gatherer, logger: logger}
}

// Name identifies the reporter in logs and metrics.
func (r *TextfileReporter) Name() string { return "textfile" }

// Report writes the current metric values. The report itself is already
// reflected in the gauges set by the pipeline.
func (r *TextfileReporter) Report(_ context.Context, report domain.Report) error {
	if err := prometheus.WriteToTextfile(r.path, r.gatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	r.logger.Debug("metrics textfile written", "path", r.path, "run_id", report.RunID)
	return nil
}
