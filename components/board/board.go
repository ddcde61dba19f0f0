// Package board defines the robot brain: a set of numbered smart ports, each of which
// reports the class of device plugged into it.
package board

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/samber/lo"
)

// Smart ports are numbered from MinPort to MaxPort inclusive.
const (
	MinPort = 1
	MaxPort = 21
)

// DeviceClass is the kind of device the brain reports on a port.
type DeviceClass int

// Known device classes. Anything the harness does not care about is Other.
const (
	None DeviceClass = iota
	Motor
	RotationSensor
	Other
)

func (class DeviceClass) String() string {
	switch class {
	case None:
		return "none"
	case Motor:
		return "motor"
	case RotationSensor:
		return "rotation_sensor"
	case Other:
		return "other"
	default:
		return fmt.Sprintf("unknown(%d)", int(class))
	}
}

// DeviceClassFromString parses the names produced by DeviceClass.String.
func DeviceClassFromString(name string) (DeviceClass, error) {
	for _, class := range []DeviceClass{None, Motor, RotationSensor, Other} {
		if class.String() == name {
			return class, nil
		}
	}
	return None, errors.Errorf("unknown device class %q", name)
}

// A Board is the device registry of the brain.
type Board interface {
	// DeviceClass reports what is plugged into the given 1-indexed port right now.
	DeviceClass(ctx context.Context, port int) (DeviceClass, error)
}

// Ports returns every port number in scan order.
func Ports() []int {
	return lo.RangeFrom(MinPort, MaxPort-MinPort+1)
}

// ValidatePort returns an error if port is outside MinPort..MaxPort.
func ValidatePort(port int) error {
	if port < MinPort || port > MaxPort {
		return NewInvalidPortError(port)
	}
	return nil
}

// NewInvalidPortError returns a standard error for a port number the brain does not have.
func NewInvalidPortError(port int) error {
	return errors.Errorf("port %d is out of range [%d, %d]", port, MinPort, MaxPort)
}
