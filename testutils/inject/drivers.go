package inject

import (
	"github.com/pkg/errors"

	"go.viam.com/motorcheck/components/encoder"
	"go.viam.com/motorcheck/components/motor"
)

// Drivers hands out injected drivers.
type Drivers struct {
	MotorFunc   func(port int) (motor.Motor, error)
	EncoderFunc func(port int) (encoder.Encoder, error)
}

// Motor calls the injected Motor.
func (d *Drivers) Motor(port int) (motor.Motor, error) {
	if d.MotorFunc == nil {
		return nil, errors.Errorf("no motor driver for port %d", port)
	}
	return d.MotorFunc(port)
}

// Encoder calls the injected Encoder.
func (d *Drivers) Encoder(port int) (encoder.Encoder, error) {
	if d.EncoderFunc == nil {
		return nil, errors.Errorf("no rotation sensor driver for port %d", port)
	}
	return d.EncoderFunc(port)
}

// DriversFor returns Drivers that hand out m and enc for any port.
func DriversFor(m motor.Motor, enc encoder.Encoder) *Drivers {
	return &Drivers{
		MotorFunc:   func(port int) (motor.Motor, error) { return m, nil },
		EncoderFunc: func(port int) (encoder.Encoder, error) { return enc, nil },
	}
}
