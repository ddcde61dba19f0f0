package selftest

import (
	"context"

	"go.viam.com/motorcheck/components/board"
	"go.viam.com/motorcheck/logging"
)

// WaitForMotor blocks until brain reports a motor on port. Every pass reads the port,
// logs and waits MotorPollInterval, including the pass that finds the motor. It never
// gives up on its own; only ctx ends the wait early.
func WaitForMotor(ctx context.Context, brain board.Board, port int, delay DelayFunc, logger logging.Logger) error {
	for {
		class, err := brain.DeviceClass(ctx, port)
		if err != nil {
			logger.Debugw("failed to read device class", "port", port, "error", err)
		}
		connected := err == nil && class == board.Motor
		logger.Info("Waiting for motor to be plugged in")
		if err := delay(ctx, MotorPollInterval); err != nil {
			return err
		}
		if connected {
			return nil
		}
	}
}
