// Package fit estimates blackbody temperature and amplitude from a spectrum by
// weighted nonlinear least squares.
//
// The objective is
//
//	chi2(T, A) = sum_i ((I_i - A*g_i(T)) / sigma_i)^2,   g_i(T) = domain.PlanckShape(nu_i, T)
//
// with sigma taken as absolute standard deviations. A enters linearly, so for
// every trial T the optimal amplitude has the closed form
//
//	A*(T) = sum(w*g*I) / sum(w*g^2),   w = 1/sigma^2
//
// and the Levenberg-Marquardt solver only searches over T (variable
// projection). The minimiser of the profiled problem is the minimiser of the
// full problem, and the parameter covariance is taken from the full
// two-parameter Jacobian at the optimum.
package fit
