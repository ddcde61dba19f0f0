// Package fake implements a fake smart motor that turns voltage into shaft speed and
// drives a coupled fake rotation sensor.
package fake

import (
	"context"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/motorcheck/components/board"
	"go.viam.com/motorcheck/components/encoder"
	fakeencoder "go.viam.com/motorcheck/components/encoder/fake"
	"go.viam.com/motorcheck/components/motor"
	"go.viam.com/motorcheck/logging"
)

const defaultFreeSpeedRPM = 205

// Config describes a fake motor.
type Config struct {
	// FreeSpeedRPM is the green-cartridge output speed at full voltage. Other cartridges
	// scale it by their rated speed.
	FreeSpeedRPM float64 `json:"free_speed_rpm,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.FreeSpeedRPM < 0 {
		return errors.Errorf("%s.free_speed_rpm cannot be negative, got %v", path, conf.FreeSpeedRPM)
	}
	return nil
}

var _ motor.Motor = &Motor{}

// A Motor tracks its shaft position by integrating speed over clock time. Speed follows
// the commanded voltage instantly. While its port is unplugged, commands fail and reads
// return zero.
type Motor struct {
	mu         sync.Mutex
	clk        clock.Clock
	logger     logging.Logger
	freeSpeed  float64
	settings   motor.Config
	millivolts int
	position   float64 // output rotations at lastUpdate, in the motor's own frame
	lastUpdate time.Time

	brain board.Board
	port  int

	// Encoder, if set, is told the physical shaft speed whenever it changes.
	Encoder *fakeencoder.Encoder
}

// NewMotor returns a fake motor. If brain is non-nil, the motor is only live while
// brain reports a motor on port.
func NewMotor(clk clock.Clock, conf *Config, brain board.Board, port int, logger logging.Logger) (*Motor, error) {
	if conf == nil {
		conf = &Config{}
	}
	if err := conf.Validate("motor"); err != nil {
		return nil, err
	}
	freeSpeed := conf.FreeSpeedRPM
	if freeSpeed == 0 {
		logger.Debugf("free speed not provided to a fake motor, defaulting to %v", defaultFreeSpeedRPM)
		freeSpeed = defaultFreeSpeedRPM
	}
	return &Motor{
		clk:        clk,
		logger:     logger,
		freeSpeed:  freeSpeed,
		settings:   motor.DefaultConfig(),
		lastUpdate: clk.Now(),
		brain:      brain,
		port:       port,
	}, nil
}

func (m *Motor) connected(ctx context.Context) bool {
	if m.brain == nil {
		return true
	}
	class, err := m.brain.DeviceClass(ctx, m.port)
	return err == nil && class == board.Motor
}

// rpm must be called with mu held. It is the output speed in the motor's own frame.
func (m *Motor) rpm() float64 {
	return m.freeSpeed * (m.settings.Gearing.RatedRPM() / motor.Green.RatedRPM()) *
		float64(m.millivolts) / motor.MaxMillivolts
}

// physicalRPM must be called with mu held.
func (m *Motor) physicalRPM() float64 {
	if m.settings.Reversed {
		return -m.rpm()
	}
	return m.rpm()
}

// advance must be called with mu held.
func (m *Motor) advance() {
	now := m.clk.Now()
	m.position += m.rpm() / 60 * now.Sub(m.lastUpdate).Seconds()
	m.lastUpdate = now
}

// command runs fn with the motor advanced to now, then updates the coupled encoder.
func (m *Motor) command(ctx context.Context, fn func() error) error {
	if !m.connected(ctx) {
		return motor.NewMotorNotConnectedError(m.port)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advance()
	if err := fn(); err != nil {
		return err
	}
	if m.Encoder != nil {
		return m.Encoder.SetSpeed(ctx, encoder.RPMToDegreesPerSecond(m.physicalRPM()))
	}
	return nil
}

// SetBrakeMode records the brake mode. The fake always stops instantly.
func (m *Motor) SetBrakeMode(ctx context.Context, mode motor.BrakeMode) error {
	return m.command(ctx, func() error {
		m.settings.BrakeMode = mode
		return nil
	})
}

// SetGearing changes the cartridge, which scales the speed.
func (m *Motor) SetGearing(ctx context.Context, gearing motor.Gearing) error {
	return m.command(ctx, func() error {
		switch gearing {
		case motor.Red, motor.Green, motor.Blue:
		default:
			return motor.NewUnknownGearingError(gearing)
		}
		m.settings.Gearing = gearing
		return nil
	})
}

// SetZeroPosition makes the current position read as position.
func (m *Motor) SetZeroPosition(ctx context.Context, position float64) error {
	return m.command(ctx, func() error {
		m.position = m.toRotations(position)
		return nil
	})
}

// SetEncoderUnits changes the unit Position reports in.
func (m *Motor) SetEncoderUnits(ctx context.Context, units motor.EncoderUnits) error {
	return m.command(ctx, func() error {
		m.settings.EncoderUnits = units
		return nil
	})
}

// SetReversed flips the physical direction of the shaft.
func (m *Motor) SetReversed(ctx context.Context, reversed bool) error {
	return m.command(ctx, func() error {
		m.settings.Reversed = reversed
		return nil
	})
}

// SetVoltage commands a voltage, clamped to the motor's range.
func (m *Motor) SetVoltage(ctx context.Context, millivolts int) error {
	return m.command(ctx, func() error {
		m.logger.Debugf("Motor SetVoltage %d", millivolts)
		m.millivolts = motor.ClampMillivolts(millivolts)
		return nil
	})
}

// Stop commands zero power.
func (m *Motor) Stop(ctx context.Context) error {
	return m.command(ctx, func() error {
		m.logger.Debug("Motor Stopped")
		m.millivolts = 0
		return nil
	})
}

// Position returns the tracked position in the configured encoder units.
func (m *Motor) Position(ctx context.Context) (float64, error) {
	if !m.connected(ctx) {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.advance()
	return m.fromRotations(m.position), nil
}

// Velocity returns the tracked velocity in RPM.
func (m *Motor) Velocity(ctx context.Context) (float64, error) {
	if !m.connected(ctx) {
		return 0, nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rpm(), nil
}

// Settings returns the last applied settings.
func (m *Motor) Settings() motor.Config {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// Millivolts returns the commanded voltage.
func (m *Motor) Millivolts() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.millivolts
}

// fromRotations must be called with mu held.
func (m *Motor) fromRotations(rotations float64) float64 {
	switch m.settings.EncoderUnits {
	case motor.Degrees:
		return rotations * 360
	case motor.Counts:
		return rotations * m.settings.Gearing.TicksPerRotation()
	default:
		return rotations
	}
}

// toRotations must be called with mu held.
func (m *Motor) toRotations(value float64) float64 {
	switch m.settings.EncoderUnits {
	case motor.Degrees:
		return value / 360
	case motor.Counts:
		return value / m.settings.Gearing.TicksPerRotation()
	default:
		return value
	}
}
