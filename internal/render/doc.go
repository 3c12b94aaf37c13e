// Package render draws PNG charts with gonum/plot: the two-panel spectrum
// with its blackbody fit and residuals, and random walk trajectories.
package render
