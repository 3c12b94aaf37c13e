// Package randomwalk simulates a two-dimensional lattice random walk.
package randomwalk

import (
	"errors"
	"math/rand/v2"

	"gonum.org/v1/gonum/floats"
)

// ErrInvalidSteps is returned for a non-positive step count.
var ErrInvalidSteps = errors.New("steps must be at least 1")

// moves are the four unit lattice steps: up, down, right, left.
var moves = [4][2]float64{
	{0, 1},
	{0, -1},
	{1, 0},
	{-1, 0},
}

// Trajectory is the sequence of visited lattice points, origin first.
// It satisfies gonum plotter.XYer.
type Trajectory struct {
	X []float64
	Y []float64
}

// Len returns the number of points, including the origin.
func (t Trajectory) Len() int { return len(t.X) }

// XY returns the i-th point.
func (t Trajectory) XY(i int) (x, y float64) { return t.X[i], t.Y[i] }

// End returns the final position.
func (t Trajectory) End() (x, y float64) { return t.XY(t.Len() - 1) }

// Simulate draws steps moves uniformly from the four lattice directions and
// integrates them. The result has steps+1 points starting at (0, 0).
func Simulate(steps int, rng *rand.Rand) (Trajectory, error) {
	if steps < 1 {
		return Trajectory{}, ErrInvalidSteps
	}

	dx := make([]float64, steps+1)
	dy := make([]float64, steps+1)
	for i := 1; i <= steps; i++ {
		m := moves[rng.IntN(len(moves))]
		dx[i], dy[i] = m[0], m[1]
	}

	return Trajectory{
		X: floats.CumSum(make([]float64, steps+1), dx),
		Y: floats.CumSum(make([]float64, steps+1), dy),
	}, nil
}
