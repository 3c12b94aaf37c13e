package fit

import (
	"fmt"
	"math"

	"github.com/maorshutman/lm"

	"github.com/couchcryptid/cmb-spectrum/internal/domain"
)

// numParams is the number of fitted parameters (T, A).
const numParams = 2

// stationaryTol bounds the cosine between the residual vector and each
// Jacobian column at an accepted optimum.
const stationaryTol = 1e-5

// exactFitTol is the relative residual norm below which a fit is exact.
const exactFitTol = 1e-9

// Params is a point in parameter space.
type Params struct {
	Temperature float64
	Amplitude   float64
}

// DefaultInitialGuess is the fixed starting point of the fit.
var DefaultInitialGuess = Params{Temperature: 3, Amplitude: 1e-15}

// Fitter fits the blackbody model to observation tables. It holds no state
// between fits.
type Fitter struct {
	initial       Params
	maxIterations int
}

// Option configures a Fitter.
type Option func(*Fitter)

// WithInitialGuess overrides the starting point.
func WithInitialGuess(p Params) Option {
	return func(f *Fitter) { f.initial = p }
}

// WithMaxIterations bounds the solver iterations.
func WithMaxIterations(n int) Option {
	return func(f *Fitter) { f.maxIterations = n }
}

// New creates a Fitter starting from DefaultInitialGuess.
func New(opts ...Option) *Fitter {
	f := &Fitter{
		initial:       DefaultInitialGuess,
		maxIterations: 500,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fit returns the best-fit temperature and amplitude with standard errors.
// An invalid table yields an error wrapping domain.ErrInvalidTable; a fit that
// does not converge yields a *ConvergenceError.
func (f *Fitter) Fit(table domain.ObservationTable) (domain.FitResult, error) {
	if err := table.CheckFittable(); err != nil {
		return domain.FitResult{}, err
	}

	p := newProblem(table)

	if !p.finiteAt(f.initial.Temperature, f.initial.Amplitude) {
		return domain.FitResult{}, &ConvergenceError{Reason: "initial guess produces non-finite residuals"}
	}

	residuals := func(dst, x []float64) {
		p.profiledResiduals(dst, x[0])
	}
	jac := lm.NumJac{Func: residuals}

	result, err := lm.LM(lm.LMProblem{
		Dim:        1,
		Size:       p.size(),
		Func:       residuals,
		Jac:        jac.Jac,
		InitParams: []float64{f.initial.Temperature},
		Tau:        1e-3,
		Eps1:       1e-8,
		Eps2:       1e-10,
	}, &lm.Settings{Iterations: f.maxIterations, ObjectiveTol: 1e-16})
	if err != nil {
		return domain.FitResult{}, &ConvergenceError{Reason: "solver failed", Err: err}
	}

	t := result.X[0]
	if !finite(t) || t <= 0 {
		return domain.FitResult{}, &ConvergenceError{Reason: fmt.Sprintf("non-physical temperature %g", t)}
	}
	a := p.bestAmplitude(t)
	if a <= 0 {
		return domain.FitResult{}, &ConvergenceError{Reason: fmt.Sprintf("non-physical amplitude %g", a)}
	}

	jacobian := p.jacobian(t, a)
	r := make([]float64, p.size())
	p.residuals(r, t, a)
	if !p.stationary(jacobian, r) {
		return domain.FitResult{}, &ConvergenceError{Reason: "solver stopped away from a minimum"}
	}

	cov, err := covariance(jacobian)
	if err != nil {
		return domain.FitResult{}, &ConvergenceError{Reason: "singular covariance", Err: err}
	}

	return domain.FitResult{
		Temperature:      t,
		TemperatureErr:   math.Sqrt(cov[0][0]),
		Amplitude:        a,
		AmplitudeErr:     math.Sqrt(cov[1][1]),
		Covariance:       cov,
		ChiSquare:        sumSquares(r),
		DegreesOfFreedom: p.size() - numParams,
		Points:           p.size(),
	}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func sumSquares(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x * x
	}
	return s
}
