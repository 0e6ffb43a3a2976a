package particlefilter

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ParticleFilter estimates a scalar position on a circular track from
// noisy motion commands and noisy nearest-landmark range observations.
// One instance owns one ensemble; it is not safe for concurrent use.
type ParticleFilter struct {
	cfg       Config
	landmarks []float64

	particles []float64
	weights   []float64

	// scratch buffer for per-particle likelihoods, reused across updates
	likelihoods []float64

	src         rand.Source
	motionNoise distuv.Normal

	history HistoryRecorder
	step    int
}

// New builds a filter from cfg, seeding the ensemble uniformly over
// [0, WorldSize) with uniform weights 1/N. Configuration problems are
// rejected here; the running filter has no failure modes after this.
func New(cfg Config, opts ...Option) (*ParticleFilter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	pf := &ParticleFilter{
		cfg:         cfg,
		landmarks:   append([]float64(nil), cfg.LandmarkPositions...),
		particles:   make([]float64, cfg.NumParticles),
		weights:     make([]float64, cfg.NumParticles),
		likelihoods: make([]float64, cfg.NumParticles),
	}
	for _, opt := range opts {
		opt(pf)
	}

	pf.motionNoise = distuv.Normal{Mu: 0, Sigma: cfg.ProcessNoise, Src: pf.src}

	seed := distuv.Uniform{Min: 0, Max: cfg.WorldSize, Src: pf.src}
	for i := range pf.particles {
		pf.particles[i] = seed.Rand()
	}
	pf.resetUniformWeights()
	pf.record()

	return pf, nil
}

// Predict advances every particle by control plus an independent draw
// of process noise, wrapping back into [0, WorldSize). Weights are
// untouched.
func (pf *ParticleFilter) Predict(control float64) {
	for i, p := range pf.particles {
		pf.particles[i] = wrap(p+control+pf.motionNoise.Rand(), pf.cfg.WorldSize)
	}
}

// Update reweights the ensemble against a range measurement. Each
// particle's predicted observation is its distance to the nearest
// landmark; its weight is multiplied by the Gaussian likelihood of the
// measurement given that prediction, then the weight vector is
// renormalized to sum to 1.
//
// If every likelihood numerically vanishes (the measurement is
// inconsistent with the whole ensemble) the weights are reset to
// uniform instead of dividing by zero. That is a recovery policy, not
// an error: the filter widens rather than fails.
func (pf *ParticleFilter) Update(measurement float64) {
	invVar := 1 / (pf.cfg.MeasurementNoise * pf.cfg.MeasurementNoise)
	for i, p := range pf.particles {
		diff := measurement - pf.nearestLandmarkDistance(p)
		pf.likelihoods[i] = math.Exp(-0.5 * diff * diff * invVar)
	}

	floats.Mul(pf.weights, pf.likelihoods)
	sum := floats.Sum(pf.weights)
	if sum <= 0 || math.IsInf(sum, 0) || math.IsNaN(sum) {
		pf.resetUniformWeights()
		return
	}
	floats.Scale(1/sum, pf.weights)
}

// Resample redraws the ensemble when weight degeneracy sets in.
// If the effective sample size has dropped below ResampleThreshold*N,
// N indices are drawn i.i.d. from the categorical distribution defined
// by the weights, the particles at those indices become the new
// ensemble, and weights reset to uniform. Otherwise particles and
// weights are left untouched.
func (pf *ParticleFilter) Resample() {
	if pf.EffectiveSampleSize() >= pf.cfg.ResampleThreshold*float64(len(pf.particles)) {
		return
	}

	cat := distuv.NewCategorical(pf.weights, pf.src)
	next := make([]float64, len(pf.particles))
	for i := range next {
		next[i] = pf.particles[int(cat.Rand())]
	}
	pf.particles = next
	pf.resetUniformWeights()
}

// FilterStep runs one full predict, update, resample cycle and, when
// a history recorder is installed, captures a snapshot of the resulting
// ensemble.
func (pf *ParticleFilter) FilterStep(control, measurement float64) {
	pf.Predict(control)
	pf.Update(measurement)
	pf.Resample()
	pf.step++
	pf.record()
}

// EstimatePosition returns the weighted mean of the particle positions.
//
// Known limitation: the mean is linear, not circular, so an ensemble
// straddling the wrap seam averages to the middle of the track (e.g.
// particles at 1 and 99 on a 100-unit track estimate near 50, not 0).
func (pf *ParticleFilter) EstimatePosition() float64 {
	return stat.Mean(pf.particles, pf.weights)
}

// Confidence returns one over the square root of the sum of squared
// weights, a degeneracy diagnostic that grows as
// weight spreads evenly over the ensemble. Its range is [1, N]: it is
// deliberately not normalized by N and is not a probability.
func (pf *ParticleFilter) Confidence() float64 {
	return 1 / math.Sqrt(floats.Dot(pf.weights, pf.weights))
}

// EffectiveSampleSize returns one over the sum of squared weights, an
// estimate of how many particles
// are effectively contributing information.
func (pf *ParticleFilter) EffectiveSampleSize() float64 {
	return 1 / floats.Dot(pf.weights, pf.weights)
}

// NumParticles returns the ensemble size N.
func (pf *ParticleFilter) NumParticles() int {
	return len(pf.particles)
}

// Particles returns a copy of the current particle positions.
func (pf *ParticleFilter) Particles() []float64 {
	return append([]float64(nil), pf.particles...)
}

// Weights returns a copy of the current particle weights.
func (pf *ParticleFilter) Weights() []float64 {
	return append([]float64(nil), pf.weights...)
}

func (pf *ParticleFilter) nearestLandmarkDistance(pos float64) float64 {
	min := math.Abs(pos - pf.landmarks[0])
	for _, lm := range pf.landmarks[1:] {
		if d := math.Abs(pos - lm); d < min {
			min = d
		}
	}
	return min
}

func (pf *ParticleFilter) resetUniformWeights() {
	w := 1 / float64(len(pf.weights))
	for i := range pf.weights {
		pf.weights[i] = w
	}
}

func (pf *ParticleFilter) record() {
	if pf.history == nil {
		return
	}
	pf.history.Record(Snapshot{
		Step:      pf.step,
		Particles: append([]float64(nil), pf.particles...),
		Weights:   append([]float64(nil), pf.weights...),
	})
}

// wrap maps x onto the circular track [0, size). A value landing
// exactly on size wraps to 0, including when adding size to a tiny
// negative remainder rounds back up to size itself.
func wrap(x, size float64) float64 {
	m := math.Mod(x, size)
	if m < 0 {
		m += size
	}
	if m >= size {
		m = 0
	}
	return m
}
