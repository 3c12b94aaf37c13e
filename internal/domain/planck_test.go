package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlanck_ZeroAmplitude(t *testing.T) {
	for _, nu := range []float64{0.5, 2.27, 5.45, 21.33, 1e4} {
		assert.Zero(t, Planck(nu, LiteratureTemperature, 0), "nu=%g", nu)
	}
}

func TestPlanck_LinearInAmplitude(t *testing.T) {
	base := Planck(5.45, LiteratureTemperature, 1e-30)
	assert.InEpsilon(t, 2*base, Planck(5.45, LiteratureTemperature, 2e-30), 1e-12)
}

func TestPlanck_ExponentOverflowIsZero(t *testing.T) {
	// h*nu_hz/(k_B*T) is far beyond the float64 exp range here.
	v := Planck(1e6, 0.01, 1)
	assert.False(t, math.IsNaN(v))
	assert.False(t, math.IsInf(v, 0))
	assert.Zero(t, v)
}

func TestPlanck_ZeroDenominatorIsZero(t *testing.T) {
	// An infinite temperature makes the exponent exactly zero.
	v := Planck(5.45, math.Inf(1), 1)
	assert.False(t, math.IsNaN(v))
	assert.Zero(t, v)
}

func TestPlanck_PeaksNearWienFrequency(t *testing.T) {
	// Peak of nu^3/(e^x-1) sits at x ~= 2.821, about 5.34 cm^-1 for 2.725 K.
	peak := PlanckShape(5.34, LiteratureTemperature)
	assert.Greater(t, peak, PlanckShape(4.5, LiteratureTemperature))
	assert.Greater(t, peak, PlanckShape(6.2, LiteratureTemperature))
}

func TestPlanckTemperatureDerivative_MatchesFiniteDifference(t *testing.T) {
	const (
		a = 1.5e-30
		h = 1e-6
	)
	for _, nu := range []float64{2.27, 5.45, 12.25, 21.33} {
		want := (Planck(nu, LiteratureTemperature+h, a) - Planck(nu, LiteratureTemperature-h, a)) / (2 * h)
		got := PlanckTemperatureDerivative(nu, LiteratureTemperature, a)
		assert.InEpsilon(t, want, got, 1e-5, "nu=%g", nu)
	}
}

func TestPlanckTemperatureDerivative_OverflowIsZero(t *testing.T) {
	assert.Zero(t, PlanckTemperatureDerivative(1e6, 0.01, 1))
}
