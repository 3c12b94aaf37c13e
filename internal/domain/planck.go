package domain

import "math"

// Physical constants used by the blackbody model. They are fixed literals,
// not configuration.
const (
	PlanckConstant    = 6.626e-34 // J s
	SpeedOfLight      = 2.998e10  // cm/s
	BoltzmannConstant = 1.381e-23 // J/K
)

// LiteratureTemperature is the FIRAS calibration value of the CMB temperature (Mather et al. 1999).
const LiteratureTemperature = 2.7250

// Planck evaluates the scaled blackbody radiance at frequency nu (cm^-1) for
// temperature t (K) and amplitude a.
//
// An exponent that overflows makes the denominator +Inf, and a denominator
// that rounds to exactly zero is replaced by +Inf, so saturated points
// evaluate to zero instead of Inf or NaN.
func Planck(nu, t, a float64) float64 {
	nuHz := nu * SpeedOfLight
	return a * nuHz * nuHz * nuHz / planckDenominator(nuHz, t)
}

// PlanckShape is Planck with unit amplitude.
func PlanckShape(nu, t float64) float64 {
	return Planck(nu, t, 1)
}

// PlanckTemperatureDerivative returns dI/dT of the scaled blackbody at nu.
func PlanckTemperatureDerivative(nu, t, a float64) float64 {
	nuHz := nu * SpeedOfLight
	x := PlanckConstant * nuHz / (BoltzmannConstant * t)
	den := planckDenominator(nuHz, t)
	// exp(x)/den^2 == q + q^2 with q = 1/den; stays finite when den is +Inf.
	q := 1 / den
	return a * nuHz * nuHz * nuHz * x / t * (q + q*q)
}

func planckDenominator(nuHz, t float64) float64 {
	den := math.Expm1(PlanckConstant * nuHz / (BoltzmannConstant * t))
	if den == 0 {
		return math.Inf(1)
	}
	return den
}
