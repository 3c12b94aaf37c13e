package fit

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

var errSingular = errors.New("normal matrix is singular")

// covariance returns (J^T J)^-1 for a weighted Jacobian. Columns are scaled to
// unit norm before factorisation because T and A differ by ~30 orders of
// magnitude.
func covariance(j [][numParams]float64) ([numParams][numParams]float64, error) {
	var cov [numParams][numParams]float64

	var norms [numParams]float64
	for c := range numParams {
		var sq float64
		for i := range j {
			sq += j[i][c] * j[i][c]
		}
		norms[c] = math.Sqrt(sq)
		if norms[c] == 0 || !finite(norms[c]) {
			return cov, errSingular
		}
	}

	scaled := mat.NewDense(len(j), numParams, nil)
	for i := range j {
		for c := range numParams {
			scaled.Set(i, c, j[i][c]/norms[c])
		}
	}

	var normal mat.SymDense
	normal.SymOuterK(1, scaled.T())

	var chol mat.Cholesky
	if ok := chol.Factorize(&normal); !ok {
		return cov, errSingular
	}
	var inv mat.SymDense
	if err := chol.InverseTo(&inv); err != nil {
		return cov, err
	}

	for r := range numParams {
		for c := range numParams {
			cov[r][c] = inv.At(r, c) / (norms[r] * norms[c])
		}
	}
	return cov, nil
}
