package particlefilter

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Robot simulates the agent being localized: it holds the true position
// on the same circular track and produces the noisy observations fed to
// the filter. The filter never calls into it; a driver moves the robot,
// reads a measurement, and hands both to FilterStep.
type Robot struct {
	cfg       Config
	landmarks []float64
	pos       float64

	motionNoise distuv.Normal
	sensorNoise distuv.Normal

	positions    []float64
	measurements []float64
}

// NewRobot places a simulated robot at start. src may be nil for the
// package default source; pass rand.NewSource(seed) for a reproducible
// run.
func NewRobot(start float64, cfg Config, src rand.Source) (*Robot, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if start < 0 || start >= cfg.WorldSize {
		return nil, fmt.Errorf("start position %v is outside [0, %v)", start, cfg.WorldSize)
	}
	return &Robot{
		cfg:         cfg,
		landmarks:   append([]float64(nil), cfg.LandmarkPositions...),
		pos:         start,
		motionNoise: distuv.Normal{Mu: 0, Sigma: cfg.ProcessNoise, Src: src},
		sensorNoise: distuv.Normal{Mu: 0, Sigma: cfg.MeasurementNoise, Src: src},
		positions:   []float64{start},
	}, nil
}

// Move advances the true position by control plus process noise,
// wrapping on the track like the filter's predict step.
func (r *Robot) Move(control float64) {
	r.pos = wrap(r.pos+control+r.motionNoise.Rand(), r.cfg.WorldSize)
	r.positions = append(r.positions, r.pos)
}

// ObserveLandmark returns the distance to the nearest landmark plus
// sensor noise. Negative readings are floored at zero; a range sensor
// cannot report a negative distance.
func (r *Robot) ObserveLandmark() float64 {
	min := math.Abs(r.pos - r.landmarks[0])
	for _, lm := range r.landmarks[1:] {
		if d := math.Abs(r.pos - lm); d < min {
			min = d
		}
	}
	obs := min + r.sensorNoise.Rand()
	if obs < 0 {
		obs = 0
	}
	r.measurements = append(r.measurements, obs)
	return obs
}

// TruePosition returns the current true position.
func (r *Robot) TruePosition() float64 { return r.pos }

// PositionHistory returns a copy of every position the robot has held,
// starting with its initial placement.
func (r *Robot) PositionHistory() []float64 {
	return append([]float64(nil), r.positions...)
}

// MeasurementHistory returns a copy of every observation produced so far.
func (r *Robot) MeasurementHistory() []float64 {
	return append([]float64(nil), r.measurements...)
}
