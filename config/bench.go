package config

import (
	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/motorcheck/components/board"
	fakeboard "go.viam.com/motorcheck/components/board/fake"
	fakeencoder "go.viam.com/motorcheck/components/encoder/fake"
	fakemotor "go.viam.com/motorcheck/components/motor/fake"
	"go.viam.com/motorcheck/logging"
)

// A Bench is a simulated brain with a motor coupled to a rotation sensor, plus any
// distractor devices.
type Bench struct {
	Board   *fakeboard.Board
	Motor   *fakemotor.Motor
	Encoder *fakeencoder.Encoder
}

// NewBench builds the simulated hardware described by conf on clk. The motor and sensor
// are always created; they are only plugged in if their port is set.
func NewBench(clk clock.Clock, conf BenchConfig, logger logging.Logger) (*Bench, error) {
	if err := conf.Validate("bench"); err != nil {
		return nil, err
	}

	brain, err := fakeboard.NewBoard(nil, logger.Sublogger("board"))
	if err != nil {
		return nil, err
	}
	enc, err := fakeencoder.NewEncoder(clk, &fakeencoder.Config{
		Slip:     conf.SensorSlip,
		Inverted: conf.SensorInverted,
	}, brain, conf.SensorPort)
	if err != nil {
		return nil, err
	}
	motorConf := &fakemotor.Config{FreeSpeedRPM: conf.FreeSpeedRPM}
	m, err := fakemotor.NewMotor(clk, motorConf, brain, conf.MotorPort, logger.Sublogger("motor"))
	if err != nil {
		return nil, err
	}
	m.Encoder = enc

	if conf.MotorPort != 0 {
		if err := plug(brain, conf.MotorPort, board.Motor); err != nil {
			return nil, err
		}
		if err := brain.AttachMotor(conf.MotorPort, m); err != nil {
			return nil, err
		}
	}
	if conf.SensorPort != 0 {
		if err := plug(brain, conf.SensorPort, board.RotationSensor); err != nil {
			return nil, err
		}
		if err := brain.AttachEncoder(conf.SensorPort, enc); err != nil {
			return nil, err
		}
	}
	for _, port := range conf.ExtraMotorPorts {
		extra, err := fakemotor.NewMotor(clk, motorConf, brain, port, logger.Sublogger("motor"))
		if err != nil {
			return nil, err
		}
		if err := plug(brain, port, board.Motor); err != nil {
			return nil, err
		}
		if err := brain.AttachMotor(port, extra); err != nil {
			return nil, err
		}
	}
	for _, port := range conf.OtherPorts {
		if err := plug(brain, port, board.Other); err != nil {
			return nil, err
		}
	}
	return &Bench{Board: brain, Motor: m, Encoder: enc}, nil
}

func plug(brain *fakeboard.Board, port int, class board.DeviceClass) error {
	return errors.Wrapf(brain.Plug(port, class), "cannot plug %s into port %d", class, port)
}
