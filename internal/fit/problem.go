package fit

import (
	"math"

	"github.com/couchcryptid/cmb-spectrum/internal/domain"
)

// problem caches the columns of a table for repeated residual evaluation.
type problem struct {
	nu    []float64
	y     []float64
	sigma []float64
	shape []float64 // scratch for PlanckShape at the current T
}

func newProblem(table domain.ObservationTable) *problem {
	return &problem{
		nu:    table.Frequencies(),
		y:     table.Intensities(),
		sigma: table.Uncertainties(),
		shape: make([]float64, len(table)),
	}
}

func (p *problem) size() int { return len(p.nu) }

// residuals writes (y - Planck(nu, t, a)) / sigma into dst.
func (p *problem) residuals(dst []float64, t, a float64) {
	for i := range p.nu {
		dst[i] = (p.y[i] - domain.Planck(p.nu[i], t, a)) / p.sigma[i]
	}
}

func (p *problem) finiteAt(t, a float64) bool {
	r := make([]float64, p.size())
	p.residuals(r, t, a)
	for _, v := range r {
		if !finite(v) {
			return false
		}
	}
	return true
}

// bestAmplitude is the weighted linear least-squares amplitude for fixed t.
// It returns 0 when the shape vanishes or overflows.
func (p *problem) bestAmplitude(t float64) float64 {
	var num, den float64
	for i := range p.nu {
		g := domain.PlanckShape(p.nu[i], t)
		w := 1 / (p.sigma[i] * p.sigma[i])
		num += w * g * p.y[i]
		den += w * g * g
	}
	a := num / den
	if den == 0 || !finite(a) {
		return 0
	}
	return a
}

// profiledResiduals writes the residuals at (t, A*(t)) into dst.
func (p *problem) profiledResiduals(dst []float64, t float64) {
	var num, den float64
	for i := range p.nu {
		g := domain.PlanckShape(p.nu[i], t)
		p.shape[i] = g
		w := 1 / (p.sigma[i] * p.sigma[i])
		num += w * g * p.y[i]
		den += w * g * g
	}
	a := num / den
	if den == 0 || !finite(a) {
		a = 0
	}
	for i := range p.nu {
		dst[i] = (p.y[i] - a*p.shape[i]) / p.sigma[i]
	}
}

// jacobian returns the weighted model derivatives, one row per observation,
// columns ordered (T, A). Residuals are (y - model)/sigma, so these are the
// residual derivatives up to sign.
func (p *problem) jacobian(t, a float64) [][numParams]float64 {
	j := make([][numParams]float64, p.size())
	for i := range p.nu {
		j[i][0] = domain.PlanckTemperatureDerivative(p.nu[i], t, a) / p.sigma[i]
		j[i][1] = domain.PlanckShape(p.nu[i], t) / p.sigma[i]
	}
	return j
}

// stationary applies a scale-free gradient test: every Jacobian column must be
// nearly orthogonal to the residual vector. Residuals at rounding level relative
// to the weighted data count as an exact fit.
func (p *problem) stationary(j [][numParams]float64, r []float64) bool {
	rNorm := math.Sqrt(sumSquares(r))
	var dataSq float64
	for i := range p.y {
		v := p.y[i] / p.sigma[i]
		dataSq += v * v
	}
	if rNorm <= exactFitTol*math.Sqrt(dataSq) {
		return true
	}
	for c := range numParams {
		var dot, colSq float64
		for i := range j {
			dot += j[i][c] * r[i]
			colSq += j[i][c] * j[i][c]
		}
		if colSq == 0 {
			continue
		}
		if math.Abs(dot)/(math.Sqrt(colSq)*rNorm) > stationaryTol {
			return false
		}
	}
	return true
}
