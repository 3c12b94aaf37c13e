package domain

import (
	"time"

	"github.com/google/uuid"
)

// FitResult holds the best-fit blackbody parameters and their standard errors.
type FitResult struct {
	Temperature    float64 `json:"temperature"`
	TemperatureErr float64 `json:"temperature_err"`
	Amplitude      float64 `json:"amplitude"`
	AmplitudeErr   float64 `json:"amplitude_err"`

	// Covariance is ordered (T, A).
	Covariance [2][2]float64 `json:"covariance"`

	ChiSquare        float64 `json:"chi_square"`
	DegreesOfFreedom int     `json:"degrees_of_freedom"`
	Points           int     `json:"points"`
}

// ReducedChiSquare returns chi^2 per degree of freedom, or 0 when there are none.
func (r FitResult) ReducedChiSquare() float64 {
	if r.DegreesOfFreedom <= 0 {
		return 0
	}
	return r.ChiSquare / float64(r.DegreesOfFreedom)
}

// Model evaluates the fitted blackbody at nu.
func (r FitResult) Model(nu float64) float64 {
	return Planck(nu, r.Temperature, r.Amplitude)
}

// Report is the outcome of one pipeline run, handed to every reporter.
type Report struct {
	RunID     string    `json:"run_id"`
	Dataset   Dataset   `json:"dataset"`
	Fit       FitResult `json:"fit"`
	Residuals []float64 `json:"residuals"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReport assembles a report for a dataset and its fit, computing the
// observed-minus-model residuals.
func NewReport(ds Dataset, fit FitResult) Report {
	residuals := make([]float64, len(ds.Observations))
	for i, o := range ds.Observations {
		residuals[i] = o.Intensity - fit.Model(o.Frequency)
	}
	return Report{
		RunID:     uuid.NewString(),
		Dataset:   ds,
		Fit:       fit,
		Residuals: residuals,
		CreatedAt: clock.Now(),
	}
}
