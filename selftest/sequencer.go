package selftest

import (
	"context"
	"math"
	"time"

	"github.com/pkg/errors"

	"go.viam.com/motorcheck/components/encoder"
	"go.viam.com/motorcheck/components/motor"
	"go.viam.com/motorcheck/logging"
	"go.viam.com/motorcheck/terminal"
)

// Direction is the sense in which a run drives the motor.
type Direction int

// The two runs of a cycle, in order.
const (
	Forward Direction = iota
	Reverse
)

// Directions lists the runs of a cycle in the order they execute.
var Directions = [2]Direction{Forward, Reverse}

func (d Direction) String() string {
	if d == Reverse {
		return "REVERSE"
	}
	return "FORWARD"
}

// Number is the 1-based test number shown to the operator.
func (d Direction) Number() int {
	return int(d) + 1
}

// Millivolts is the voltage commanded for a run in this direction.
func (d Direction) Millivolts() int {
	if d == Reverse {
		return -TestMillivolts
	}
	return TestMillivolts
}

// A TestRun is the raw outcome of one directional run.
type TestRun struct {
	Direction           Direction
	CommandedMillivolts int
	Duration            time.Duration
	SamplePeriod        time.Duration
	Mismatches          int
	LastSample          Sample

	// Informational.
	PeakSensedVelocity float64
	MaxPositionError   float64
}

// A Sequencer runs the forward and reverse tests against one motor and one sensor.
type Sequencer struct {
	motor   motor.Motor
	encoder encoder.Encoder
	delay   DelayFunc
	logger  logging.Logger
	term    terminal.Terminal
}

// NewSequencer returns a Sequencer for m and enc. A nil term discards terminal output.
func NewSequencer(m motor.Motor, enc encoder.Encoder, delay DelayFunc, logger logging.Logger, term terminal.Terminal) *Sequencer {
	if term == nil {
		term = terminal.Discard
	}
	return &Sequencer{motor: m, encoder: enc, delay: delay, logger: logger, term: term}
}

// RunCycle runs the forward test then the reverse test, rendering each report as soon
// as its run completes.
func (s *Sequencer) RunCycle(ctx context.Context) ([2]TestReport, error) {
	var reports [2]TestReport
	for i, dir := range Directions {
		run, err := s.Run(ctx, dir)
		if err != nil {
			return reports, err
		}
		reports[i] = Evaluate(run)
		RenderReport(reports[i], s.logger, s.term)
	}
	return reports, nil
}

// Run configures the motor, zeroes the sensor and drives the motor at full voltage in
// dir for RunDuration, comparing motor and sensor every SamplePeriod. The motor is
// stopped before Run returns, including when ctx is cancelled mid-run.
func (s *Sequencer) Run(ctx context.Context, dir Direction) (TestRun, error) {
	run := TestRun{
		Direction:           dir,
		CommandedMillivolts: dir.Millivolts(),
		Duration:            RunDuration,
		SamplePeriod:        SamplePeriod,
	}

	if err := motor.ApplyConfig(ctx, s.motor, motor.DefaultConfig()); err != nil {
		return run, errors.Wrap(err, "failed to configure motor")
	}
	if err := s.encoder.ResetPosition(ctx); err != nil {
		return run, errors.Wrap(err, "failed to reset rotation sensor")
	}

	s.logger.Infof("TEST %d - %s performance", dir.Number(), dir)
	s.term.Print("TEST %d - %s performance", dir.Number(), terminal.Colorize(terminal.Blue, dir.String()))
	if err := s.motor.SetVoltage(ctx, run.CommandedMillivolts); err != nil {
		s.stop(ctx)
		return run, errors.Wrapf(err, "failed to command %d mV", run.CommandedMillivolts)
	}
	defer s.stop(ctx)

	comparator := NewComparator()
	var sample Sample
	for i := 0; i < SamplesPerRun; i++ {
		sample = s.read(ctx, sample)
		comparator.Observe(sample)
		if v := math.Abs(sample.SensedVelocity); v > run.PeakSensedVelocity {
			run.PeakSensedVelocity = v
		}
		s.logger.Debugf("Measured speed %f, sensed %f", sample.TrackedVelocity, sample.SensedVelocity)
		s.logger.Debugf("Measured position %f, sensed %f", sample.TrackedPosition, sample.SensedPosition)

		if err := s.delay(ctx, SamplePeriod); err != nil {
			run.Mismatches = comparator.Mismatches()
			run.LastSample = sample
			run.MaxPositionError = comparator.MaxError()
			return run, err
		}
	}

	run.Mismatches = comparator.Mismatches()
	run.LastSample = sample
	run.MaxPositionError = comparator.MaxError()
	return run, nil
}

// read takes one sample. A value that cannot be read keeps its previous reading.
func (s *Sequencer) read(ctx context.Context, prev Sample) Sample {
	next := prev
	if v, err := s.motor.Velocity(ctx); err != nil {
		s.logger.Warnw("failed to read motor velocity", "error", err)
	} else {
		next.TrackedVelocity = v
	}
	if v, err := s.encoder.Velocity(ctx); err != nil {
		s.logger.Warnw("failed to read sensor velocity", "error", err)
	} else {
		next.SensedVelocity = encoder.DegreesPerSecondToRPM(v)
	}
	if p, err := s.motor.Position(ctx); err != nil {
		s.logger.Warnw("failed to read motor position", "error", err)
	} else {
		next.TrackedPosition = p
	}
	if p, err := s.encoder.Position(ctx); err != nil {
		s.logger.Warnw("failed to read sensor position", "error", err)
	} else {
		next.SensedPosition = encoder.TicksToRotations(p)
	}
	return next
}

func (s *Sequencer) stop(ctx context.Context) {
	if err := s.motor.Stop(context.WithoutCancel(ctx)); err != nil {
		s.logger.Warnw("failed to stop motor", "error", err)
	}
}
