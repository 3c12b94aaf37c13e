package pipeline

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/couchcryptid/cmb-spectrum/internal/domain"
)

// ConsoleReporter prints a human-readable summary of a report.
type ConsoleReporter struct {
	w io.Writer
}

// NewConsoleReporter writes summaries to w.
func NewConsoleReporter(w io.Writer) *ConsoleReporter {
	return &ConsoleReporter{w: w}
}

// Name identifies the reporter in logs and metrics.
func (c *ConsoleReporter) Name() string { return "console" }

// Report writes the analysis summary for r.
func (c *ConsoleReporter) Report(_ context.Context, r domain.Report) error {
	rule := strings.Repeat("=", 40)
	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\nANALYSIS RESULTS\n%s\n", rule, rule)
	fmt.Fprintf(&b, "Calculated CMB Temperature: %.4f +/- %.2e K\n", r.Fit.Temperature, r.Fit.TemperatureErr)
	fmt.Fprintf(&b, "Literature Value (Mather):  %.4f K\n", domain.LiteratureTemperature)
	fmt.Fprintf(&b, "%s\n", strings.Repeat("-", 40))
	fmt.Fprintf(&b, "Amplitude:                  %.4e +/- %.2e\n", r.Fit.Amplitude, r.Fit.AmplitudeErr)
	fmt.Fprintf(&b, "Chi-square / dof:           %.2f / %d\n", r.Fit.ChiSquare, r.Fit.DegreesOfFreedom)
	fmt.Fprintf(&b, "Data origin:                %s (%d points)\n", r.Dataset.Origin, len(r.Dataset.Observations))
	if r.Dataset.FallbackReason != "" {
		fmt.Fprintf(&b, "Fallback reason:            %s\n", r.Dataset.FallbackReason)
	}
	fmt.Fprintf(&b, "Run ID:                     %s\n", r.RunID)

	_, err := io.WriteString(c.w, b.String())
	return err
}
