// Package particlefilter implements one-dimensional Monte Carlo
// localization on a circular track. A ParticleFilter maintains a
// weighted ensemble of position hypotheses and refines it each tick
// from a motion command and a noisy nearest-landmark range reading,
// with conditional resampling when the ensemble degenerates. A Robot
// simulator provides the matching noisy data source for examples and
// tests.
package particlefilter
