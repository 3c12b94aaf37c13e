package fit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCovariance_Diagonal(t *testing.T) {
	// Orthogonal columns with norms 2 and 1e20 give cov = diag(1/4, 1e-40).
	j := [][numParams]float64{
		{2, 0},
		{0, 1e20},
	}

	cov, err := covariance(j)
	require.NoError(t, err)
	assert.InEpsilon(t, 0.25, cov[0][0], 1e-12)
	assert.InEpsilon(t, 1e-40, cov[1][1], 1e-12)
	assert.InDelta(t, 0, cov[0][1], 1e-30)
}

func TestCovariance_ParallelColumnsAreSingular(t *testing.T) {
	j := [][numParams]float64{
		{1, 5},
		{0, 0},
	}

	_, err := covariance(j)
	require.Error(t, err)
}

func TestCovariance_ZeroColumnIsSingular(t *testing.T) {
	j := [][numParams]float64{
		{1, 0},
		{2, 0},
	}

	_, err := covariance(j)
	assert.ErrorIs(t, err, errSingular)
}
