package selftest

import (
	"context"

	"go.viam.com/motorcheck/components/board"
	"go.viam.com/motorcheck/logging"
)

// ResolvedHardware names the ports chosen for the motor and the rotation sensor. A port
// of 0 means the device was not found.
type ResolvedHardware struct {
	MotorPort  int `json:"motor_port"`
	SensorPort int `json:"sensor_port"`
}

// Validate returns a *MissingHardwareError unless both devices were found.
func (hw ResolvedHardware) Validate() error {
	if hw.MotorPort > 0 && hw.SensorPort > 0 {
		return nil
	}
	return NewMissingHardwareError(hw)
}

// Scan queries every port once and resolves the motor and sensor ports. If a class
// appears on more than one port, the highest numbered port wins. A port whose class
// cannot be read is treated as empty.
func Scan(ctx context.Context, brain board.Board, logger logging.Logger) (ResolvedHardware, error) {
	var hw ResolvedHardware
	for _, port := range board.Ports() {
		if err := ctx.Err(); err != nil {
			return ResolvedHardware{}, err
		}
		class, err := brain.DeviceClass(ctx, port)
		if err != nil {
			logger.Warnw("failed to read device class, treating port as empty", "port", port, "error", err)
			class = board.None
		}
		logger.Debugf("Port %02d has device class %s", port, class)
		switch class {
		case board.Motor:
			hw.MotorPort = port
		case board.RotationSensor:
			hw.SensorPort = port
		case board.None, board.Other:
		}
	}
	return hw, nil
}
