package motor

import "github.com/pkg/errors"

// NewMotorNotConnectedError returns a standard error for a command sent to a port with
// no motor on it.
func NewMotorNotConnectedError(port int) error {
	return errors.Errorf("no motor connected on port %d", port)
}

// NewUnknownGearingError returns an error for a gearing the motor does not have.
func NewUnknownGearingError(g Gearing) error {
	return errors.Errorf("unknown gearing %v", g)
}
