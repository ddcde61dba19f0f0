package selftest

import "math"

// A Sample pairs what the motor believes about its shaft with what the rotation sensor
// measured at the same instant. Positions are in rotations and velocities in RPM.
type Sample struct {
	TrackedPosition float64
	TrackedVelocity float64
	SensedPosition  float64
	SensedVelocity  float64
}

// PositionError is the absolute difference between tracked and sensed position.
func (s Sample) PositionError() float64 {
	return math.Abs(s.TrackedPosition - s.SensedPosition)
}

// Comparator counts samples whose positions disagree by more than Tolerance.
type Comparator struct {
	Tolerance float64

	mismatches int
	maxError   float64
}

// NewComparator returns a Comparator using PositionTolerance.
func NewComparator() *Comparator {
	return &Comparator{Tolerance: PositionTolerance}
}

// Observe records one sample and reports whether it was a mismatch.
func (c *Comparator) Observe(s Sample) bool {
	diff := s.PositionError()
	if diff > c.maxError {
		c.maxError = diff
	}
	if diff > c.Tolerance {
		c.mismatches++
		return true
	}
	return false
}

// Mismatches is the number of mismatched samples observed so far.
func (c *Comparator) Mismatches() int {
	return c.mismatches
}

// MaxError is the largest position difference observed so far.
func (c *Comparator) MaxError() float64 {
	return c.maxError
}
