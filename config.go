package particlefilter

import "fmt"

// Config holds the construction-time parameters for a filter or robot.
// Values are read once at construction; mutating a Config afterwards has
// no effect on already-built instances.
type Config struct {
	WorldSize         float64   // track length; positions live in [0, WorldSize) with wraparound
	NumParticles      int       // ensemble size N
	ProcessNoise      float64   // stddev of motion noise added per tick
	MeasurementNoise  float64   // stddev of the range sensor noise
	ResampleThreshold float64   // resample when ESS < ResampleThreshold * N, in (0, 1]
	LandmarkPositions []float64 // fixed landmark positions in [0, WorldSize)
}

// DefaultConfig returns the standard simulation parameters:
// a 100-unit circular track, 1000 particles and four evenly spaced
// landmarks.
func DefaultConfig() Config {
	return Config{
		WorldSize:         100.0,
		NumParticles:      1000,
		ProcessNoise:      1.0,
		MeasurementNoise:  5.0,
		ResampleThreshold: 0.5,
		LandmarkPositions: []float64{20, 40, 60, 80},
	}
}

// Validate reports the first configuration problem found, or nil.
// MeasurementNoise must be strictly positive because the likelihood
// divides by its square; ProcessNoise may be zero (noiseless motion).
func (c Config) Validate() error {
	if c.WorldSize <= 0 {
		return fmt.Errorf("world size must be positive, got %v", c.WorldSize)
	}
	if c.NumParticles <= 0 {
		return fmt.Errorf("particle count must be positive, got %d", c.NumParticles)
	}
	if c.ProcessNoise < 0 {
		return fmt.Errorf("process noise must be non-negative, got %v", c.ProcessNoise)
	}
	if c.MeasurementNoise <= 0 {
		return fmt.Errorf("measurement noise must be positive, got %v", c.MeasurementNoise)
	}
	if c.ResampleThreshold <= 0 || c.ResampleThreshold > 1 {
		return fmt.Errorf("resample threshold must be in (0, 1], got %v", c.ResampleThreshold)
	}
	if len(c.LandmarkPositions) == 0 {
		return fmt.Errorf("at least one landmark is required")
	}
	for i, lm := range c.LandmarkPositions {
		if lm < 0 || lm >= c.WorldSize {
			return fmt.Errorf("landmark %d at %v is outside [0, %v)", i, lm, c.WorldSize)
		}
	}
	return nil
}
