package particlefilter

import "golang.org/x/exp/rand"

// Option configures a ParticleFilter.
type Option func(*ParticleFilter)

// WithRandSource sets the random source used for particle seeding,
// process noise and resampling draws. Pass rand.NewSource(seed) for a
// fully deterministic filter. When unset, draws come from the package
// default source.
func WithRandSource(src rand.Source) Option {
	return func(pf *ParticleFilter) { pf.src = src }
}

// WithHistory installs a recorder that receives a snapshot of the
// ensemble at construction and after every FilterStep. Without one the
// filter keeps no history.
func WithHistory(rec HistoryRecorder) Option {
	return func(pf *ParticleFilter) { pf.history = rec }
}
