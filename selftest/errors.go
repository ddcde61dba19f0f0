package selftest

import (
	"fmt"

	"github.com/pkg/errors"
)

// MissingHardwareError is returned when the port scan did not find both a motor and a
// rotation sensor. The diagnostic cannot start until the hardware is connected and the
// harness restarted.
type MissingHardwareError struct {
	Hardware ResolvedHardware
}

// NewMissingHardwareError returns a *MissingHardwareError for hw.
func NewMissingHardwareError(hw ResolvedHardware) error {
	return &MissingHardwareError{Hardware: hw}
}

func (e *MissingHardwareError) Error() string {
	switch {
	case e.MissingSensor() && !e.MissingMotor():
		return fmt.Sprintf("found motor %d but could not find sensor", e.Hardware.MotorPort)
	case e.MissingMotor() && !e.MissingSensor():
		return fmt.Sprintf("found sensor %d but could not find motor", e.Hardware.SensorPort)
	default:
		return "could not find motor or sensor"
	}
}

// MissingMotor is true if no motor was found.
func (e *MissingHardwareError) MissingMotor() bool {
	return e.Hardware.MotorPort <= 0
}

// MissingSensor is true if no rotation sensor was found.
func (e *MissingHardwareError) MissingSensor() bool {
	return e.Hardware.SensorPort <= 0
}

// IsMissingHardware reports whether err is, or wraps, a *MissingHardwareError.
func IsMissingHardware(err error) bool {
	var missing *MissingHardwareError
	return errors.As(err, &missing)
}
