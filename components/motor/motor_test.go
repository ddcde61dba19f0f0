package motor

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/multierr"
	"go.viam.com/test"
)

type recordingMotor struct {
	Motor
	applied []string
	failOn  string
}

func (m *recordingMotor) record(setting string) error {
	m.applied = append(m.applied, setting)
	if setting == m.failOn {
		return errors.New(setting + " failed")
	}
	return nil
}

func (m *recordingMotor) SetBrakeMode(ctx context.Context, mode BrakeMode) error {
	return m.record("brake_mode=" + mode.String())
}

func (m *recordingMotor) SetGearing(ctx context.Context, gearing Gearing) error {
	return m.record("gearing=" + gearing.String())
}

func (m *recordingMotor) SetZeroPosition(ctx context.Context, position float64) error {
	return m.record("zero")
}

func (m *recordingMotor) SetEncoderUnits(ctx context.Context, units EncoderUnits) error {
	return m.record("units=" + units.String())
}

func (m *recordingMotor) SetReversed(ctx context.Context, reversed bool) error {
	if reversed {
		return m.record("reversed")
	}
	return m.record("forward")
}

func TestApplyConfig(t *testing.T) {
	ctx := context.Background()

	m := &recordingMotor{}
	test.That(t, ApplyConfig(ctx, m, DefaultConfig()), test.ShouldBeNil)
	test.That(t, m.applied, test.ShouldResemble, []string{
		"brake_mode=coast", "gearing=green", "zero", "units=rotations", "forward",
	})

	t.Run("keeps going after a failure", func(t *testing.T) {
		m := &recordingMotor{failOn: "gearing=green"}
		err := ApplyConfig(ctx, m, DefaultConfig())
		test.That(t, err, test.ShouldNotBeNil)
		test.That(t, len(multierr.Errors(err)), test.ShouldEqual, 1)
		test.That(t, len(m.applied), test.ShouldEqual, 5)
	})
}

func TestGearing(t *testing.T) {
	test.That(t, Green.RatedRPM(), test.ShouldEqual, 200)
	test.That(t, Red.RatedRPM(), test.ShouldEqual, 100)
	test.That(t, Blue.RatedRPM(), test.ShouldEqual, 600)
	test.That(t, Green.TicksPerRotation(), test.ShouldEqual, 900)
}

func TestClampMillivolts(t *testing.T) {
	test.That(t, ClampMillivolts(13000), test.ShouldEqual, 12000)
	test.That(t, ClampMillivolts(-20000), test.ShouldEqual, -12000)
	test.That(t, ClampMillivolts(-6000), test.ShouldEqual, -6000)
}
