package render

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"
	"os"
	"slices"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/couchcryptid/cmb-spectrum/internal/domain"
)

const (
	spectrumTitle = "Cosmic Microwave Background Spectrum Analysis (NASA Data)"
	curvePoints   = 500

	// SpectrumWidth and SpectrumHeight are the size of the spectrum figure.
	SpectrumWidth  = 10 * vg.Inch
	SpectrumHeight = 8 * vg.Inch
)

var (
	dataColor  = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	fitColor   = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	guideColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
)

type errorPoints struct {
	plotter.XYs
	plotter.YErrors
}

// SpectrumPlot writes the spectrum figure of each report to a PNG file.
type SpectrumPlot struct {
	path   string
	logger *slog.Logger
}

// NewSpectrumPlot creates a reporter writing to path, replacing any existing file.
func NewSpectrumPlot(path string, logger *slog.Logger) *SpectrumPlot {
	return &SpectrumPlot{path: path, logger: logger}
}

// Name identifies the reporter in logs and metrics.
func (s *SpectrumPlot) Name() string { return "plot" }

// Report renders r to the configured PNG path.
func (s *SpectrumPlot) Report(_ context.Context, r domain.Report) (err error) {
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("create plot file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close plot file: %w", cerr)
		}
	}()

	if err := WriteSpectrum(f, r); err != nil {
		return err
	}
	s.logger.Info("spectrum plot saved", "path", s.path)
	return nil
}

// WriteSpectrum renders the two-panel figure for r as PNG: observations with
// error bars and the fitted curve on top, residuals below.
func WriteSpectrum(w io.Writer, r domain.Report) error {
	obs := r.Dataset.Observations
	if len(obs) == 0 {
		return errors.New("render spectrum: no observations")
	}
	if len(r.Residuals) != len(obs) {
		return fmt.Errorf("render spectrum: %d residuals for %d observations", len(r.Residuals), len(obs))
	}

	top, err := fitPanel(r)
	if err != nil {
		return fmt.Errorf("render spectrum: %w", err)
	}
	bottom, err := residualPanel(r)
	if err != nil {
		return fmt.Errorf("render spectrum: %w", err)
	}

	img := vgimg.New(SpectrumWidth, SpectrumHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows:      2,
		Cols:      1,
		PadTop:    vg.Points(4),
		PadBottom: vg.Points(4),
		PadLeft:   vg.Points(4),
		PadRight:  vg.Points(12),
		PadY:      vg.Points(12),
	}
	plots := [][]*plot.Plot{{top}, {bottom}}
	canvases := plot.Align(plots, tiles, dc)
	for i := range plots {
		plots[i][0].Draw(canvases[i][0])
	}

	if _, err := (vgimg.PngCanvas{Canvas: img}).WriteTo(w); err != nil {
		return fmt.Errorf("encode spectrum png: %w", err)
	}
	return nil
}

func fitPanel(r domain.Report) (*plot.Plot, error) {
	obs := r.Dataset.Observations

	p := plot.New()
	p.Title.Text = spectrumTitle
	p.Y.Label.Text = "Intensity [MJy/sr]"
	p.Add(plotter.NewGrid())

	pts := errorPoints{XYs: make(plotter.XYs, len(obs)), YErrors: make(plotter.YErrors, len(obs))}
	for i, o := range obs {
		pts.XYs[i].X, pts.XYs[i].Y = o.Frequency, o.Intensity
		pts.YErrors[i].Low, pts.YErrors[i].High = o.Uncertainty, o.Uncertainty
	}
	data, bars, err := scatterWithErrors(pts)
	if err != nil {
		return nil, err
	}

	curve := make(plotter.XYs, curvePoints)
	lo, hi := frequencyRange(obs)
	for i := range curve {
		nu := lo + (hi-lo)*float64(i)/float64(curvePoints-1)
		curve[i].X, curve[i].Y = nu, r.Fit.Model(nu)
	}
	line, err := plotter.NewLine(curve)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Width = vg.Points(2)
	line.LineStyle.Color = fitColor

	p.Add(bars, data, line)
	p.Legend.Add(fmt.Sprintf("%s data", r.Dataset.Origin), data)
	p.Legend.Add(fmt.Sprintf("Planck fit: T=%.4fK", r.Fit.Temperature), line)
	p.Legend.Top = true
	return p, nil
}

func residualPanel(r domain.Report) (*plot.Plot, error) {
	obs := r.Dataset.Observations

	p := plot.New()
	p.X.Label.Text = "Frequency [1/cm]"
	p.Y.Label.Text = "Residuals [MJy/sr]"
	p.Add(plotter.NewGrid())

	pts := errorPoints{XYs: make(plotter.XYs, len(obs)), YErrors: make(plotter.YErrors, len(obs))}
	for i, o := range obs {
		pts.XYs[i].X, pts.XYs[i].Y = o.Frequency, r.Residuals[i]
		pts.YErrors[i].Low, pts.YErrors[i].High = o.Uncertainty, o.Uncertainty
	}
	data, bars, err := scatterWithErrors(pts)
	if err != nil {
		return nil, err
	}

	lo, hi := frequencyRange(obs)
	zero, err := plotter.NewLine(plotter.XYs{{X: lo, Y: 0}, {X: hi, Y: 0}})
	if err != nil {
		return nil, err
	}
	zero.LineStyle.Color = guideColor
	zero.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}

	p.Add(zero, bars, data)
	return p, nil
}

func scatterWithErrors(pts errorPoints) (*plotter.Scatter, *plotter.YErrorBars, error) {
	s, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, nil, err
	}
	s.GlyphStyle.Color = dataColor
	s.GlyphStyle.Radius = vg.Points(2)
	s.GlyphStyle.Shape = draw.CircleGlyph{}

	e, err := plotter.NewYErrorBars(pts)
	if err != nil {
		return nil, nil, err
	}
	e.LineStyle.Color = dataColor
	return s, e, nil
}

func frequencyRange(obs domain.ObservationTable) (lo, hi float64) {
	nu := obs.Frequencies()
	return slices.Min(nu), slices.Max(nu)
}
