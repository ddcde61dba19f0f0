package config

import (
	"context"
	"testing"

	"github.com/benbjohnson/clock"
	"go.viam.com/test"

	"go.viam.com/motorcheck/components/board"
	"go.viam.com/motorcheck/logging"
	"go.viam.com/motorcheck/selftest"
)

func TestNewBench(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewTestLogger(t)

	bench, err := NewBench(clock.NewMock(), BenchConfig{
		MotorPort:       3,
		SensorPort:      9,
		ExtraMotorPorts: []int{1},
		OtherPorts:      []int{5},
	}, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, bench.Board.OccupiedPorts(), test.ShouldResemble, []int{1, 3, 5, 9})
	test.That(t, bench.Board.String(), test.ShouldEqual, "[1:motor 3:motor 5:other 9:rotation_sensor]")

	m, err := bench.Board.Motor(3)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, m, test.ShouldEqual, bench.Motor)
	enc, err := bench.Board.Encoder(9)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, enc, test.ShouldEqual, bench.Encoder)
	extra, err := bench.Board.Motor(1)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, extra, test.ShouldNotEqual, bench.Motor)

	hw, err := selftest.Scan(ctx, bench.Board, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, hw, test.ShouldResemble, selftest.ResolvedHardware{MotorPort: 3, SensorPort: 9})

	// the motor under test drives the sensor
	test.That(t, bench.Motor.SetVoltage(ctx, 12000), test.ShouldBeNil)
	vel, err := bench.Encoder.Velocity(ctx)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, vel, test.ShouldAlmostEqual, 1230)
}

func TestNewBenchMissingSensor(t *testing.T) {
	logger := logging.NewTestLogger(t)
	bench, err := NewBench(clock.NewMock(), BenchConfig{MotorPort: 3}, logger)
	test.That(t, err, test.ShouldBeNil)

	class, err := bench.Board.DeviceClass(context.Background(), 9)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, class, test.ShouldEqual, board.None)

	hw, err := selftest.Scan(context.Background(), bench.Board, logger)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, selftest.IsMissingHardware(hw.Validate()), test.ShouldBeTrue)

	_, err = NewBench(clock.NewMock(), BenchConfig{MotorPort: 3, SensorPort: 3}, logger)
	test.That(t, err, test.ShouldNotBeNil)
}
