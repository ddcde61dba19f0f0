// Package selftest drives a motor through forward and reverse runs while an independent
// rotation sensor watches the same shaft, and reports whether the two agree.
//
// The harness resolves the motor and sensor ports once, then repeats forever: wait for
// the motor to be connected, run the forward and reverse tests, render both reports and
// idle. All timing goes through an injectable DelayFunc.
package selftest

import "time"

const (
	// MotorPollInterval is how often a missing motor is re-checked.
	MotorPollInterval = 1000 * time.Millisecond
	// SettleDelay follows reconnection, before the first run of a cycle.
	SettleDelay = 1000 * time.Millisecond
	// RunDuration is the length of one directional run.
	RunDuration = 3000 * time.Millisecond
	// SamplePeriod is the delay after each sample.
	SamplePeriod = 10 * time.Millisecond
	// SamplesPerRun is RunDuration / SamplePeriod.
	SamplesPerRun = int(RunDuration / SamplePeriod)
	// IdleDelay separates cycles.
	IdleDelay = 10000 * time.Millisecond

	// TestMillivolts is the voltage magnitude commanded during a run.
	TestMillivolts = 12000
	// PositionTolerance is the largest tracked vs sensed position difference, in
	// rotations, that still counts as a match.
	PositionTolerance = 0.2
	// SpeedThreshold is the RPM the final sample must exceed in the run's direction.
	SpeedThreshold = 200.0
)
