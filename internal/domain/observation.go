package domain

import (
	"errors"
	"fmt"
	"math"
)

// UncertaintyScale converts FIRAS uncertainties from kJy/sr to MJy/sr.
const UncertaintyScale = 1000.0

// ErrInvalidTable is returned when an observation table violates its invariants.
var ErrInvalidTable = errors.New("invalid observation table")

// MinObservations is the smallest table the two-parameter fit accepts: one
// point per parameter plus one degree of freedom.
const MinObservations = 3

// Observation is a single spectral measurement.
type Observation struct {
	Frequency   float64 `json:"frequency"`   // cm^-1
	Intensity   float64 `json:"intensity"`   // MJy/sr
	Uncertainty float64 `json:"uncertainty"` // MJy/sr, 1 sigma
}

// ObservationTable is an ordered sequence of observations, kept in source order.
type ObservationTable []Observation

// Validate checks that the table is non-empty, every value is finite, and
// frequencies and uncertainties are strictly positive.
func (t ObservationTable) Validate() error {
	if len(t) == 0 {
		return fmt.Errorf("%w: no observations", ErrInvalidTable)
	}
	for i, o := range t {
		if !finite(o.Frequency) || !finite(o.Intensity) || !finite(o.Uncertainty) {
			return fmt.Errorf("%w: row %d: non-finite value", ErrInvalidTable, i)
		}
		if o.Frequency <= 0 {
			return fmt.Errorf("%w: row %d: frequency %g is not positive", ErrInvalidTable, i, o.Frequency)
		}
		if o.Uncertainty <= 0 {
			return fmt.Errorf("%w: row %d: uncertainty %g is not positive", ErrInvalidTable, i, o.Uncertainty)
		}
	}
	return nil
}

// CheckFittable validates the table and requires at least MinObservations rows.
func (t ObservationTable) CheckFittable() error {
	if err := t.Validate(); err != nil {
		return err
	}
	if len(t) < MinObservations {
		return fmt.Errorf("%w: %d observations, need at least %d", ErrInvalidTable, len(t), MinObservations)
	}
	return nil
}

// Frequencies returns a copy of the frequency column.
func (t ObservationTable) Frequencies() []float64 {
	return t.column(func(o Observation) float64 { return o.Frequency })
}

// Intensities returns a copy of the intensity column.
func (t ObservationTable) Intensities() []float64 {
	return t.column(func(o Observation) float64 { return o.Intensity })
}

// Uncertainties returns a copy of the uncertainty column.
func (t ObservationTable) Uncertainties() []float64 {
	return t.column(func(o Observation) float64 { return o.Uncertainty })
}

func (t ObservationTable) column(get func(Observation) float64) []float64 {
	out := make([]float64, len(t))
	for i, o := range t {
		out[i] = get(o)
	}
	return out
}

// Origin records where a dataset came from.
type Origin string

const (
	OriginRemote   Origin = "remote"
	OriginFallback Origin = "fallback"
)

// Dataset is the table handed from ingestion to the fit, with its provenance.
type Dataset struct {
	Observations   ObservationTable `json:"observations"`
	Origin         Origin           `json:"origin"`
	FallbackReason string           `json:"fallback_reason,omitempty"`
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
