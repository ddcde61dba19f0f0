// Package motor defines the smart motor driven by the self-test: a voltage-commanded
// motor with its own integrated encoder.
package motor

import (
	"context"
	"fmt"

	"go.uber.org/multierr"
)

// MaxMillivolts is the largest voltage magnitude a motor accepts.
const MaxMillivolts = 12000

// BrakeMode is the motor's behavior when commanded to zero.
type BrakeMode int

// Brake modes.
const (
	Coast BrakeMode = iota
	Brake
	Hold
)

func (mode BrakeMode) String() string {
	switch mode {
	case Coast:
		return "coast"
	case Brake:
		return "brake"
	case Hold:
		return "hold"
	}
	return fmt.Sprintf("BrakeMode(%d)", int(mode))
}

// Gearing is the internal gear cartridge of the motor.
type Gearing int

// Gear cartridges.
const (
	Red Gearing = iota
	Green
	Blue
)

// RatedRPM is the cartridge's rated output speed.
func (g Gearing) RatedRPM() float64 {
	switch g {
	case Red:
		return 100
	case Blue:
		return 600
	default:
		return 200
	}
}

// TicksPerRotation is the number of integrated encoder counts per output rotation.
func (g Gearing) TicksPerRotation() float64 {
	switch g {
	case Red:
		return 1800
	case Blue:
		return 300
	default:
		return 900
	}
}

func (g Gearing) String() string {
	switch g {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	}
	return fmt.Sprintf("Gearing(%d)", int(g))
}

// EncoderUnits selects the unit of Motor.Position.
type EncoderUnits int

// Encoder units.
const (
	Degrees EncoderUnits = iota
	Rotations
	Counts
)

func (u EncoderUnits) String() string {
	switch u {
	case Degrees:
		return "degrees"
	case Rotations:
		return "rotations"
	case Counts:
		return "counts"
	}
	return fmt.Sprintf("EncoderUnits(%d)", int(u))
}

// A Motor is a smart motor on one port.
type Motor interface {
	SetBrakeMode(ctx context.Context, mode BrakeMode) error
	SetGearing(ctx context.Context, gearing Gearing) error
	// SetZeroPosition makes the current position read as position.
	SetZeroPosition(ctx context.Context, position float64) error
	SetEncoderUnits(ctx context.Context, units EncoderUnits) error
	SetReversed(ctx context.Context, reversed bool) error

	// SetVoltage commands a constant voltage in millivolts, negative for reverse.
	SetVoltage(ctx context.Context, millivolts int) error
	// Stop commands zero power; the motor then follows its brake mode.
	Stop(ctx context.Context) error

	// Position reports the tracked position in the configured encoder units.
	Position(ctx context.Context) (float64, error)
	// Velocity reports the tracked velocity in RPM.
	Velocity(ctx context.Context) (float64, error)
}

// Config is the set of motor settings applied before each self-test run.
type Config struct {
	BrakeMode    BrakeMode
	Gearing      Gearing
	ZeroPosition float64
	EncoderUnits EncoderUnits
	Reversed     bool
}

// DefaultConfig returns the self-test configuration: coast, green cartridge, zeroed,
// rotations, not reversed.
func DefaultConfig() Config {
	return Config{
		BrakeMode:    Coast,
		Gearing:      Green,
		ZeroPosition: 0.0,
		EncoderUnits: Rotations,
		Reversed:     false,
	}
}

// ApplyConfig pushes every setting in cfg to m. All settings are attempted even if an
// earlier one fails; the failures are combined.
func ApplyConfig(ctx context.Context, m Motor, cfg Config) error {
	return multierr.Combine(
		m.SetBrakeMode(ctx, cfg.BrakeMode),
		m.SetGearing(ctx, cfg.Gearing),
		m.SetZeroPosition(ctx, cfg.ZeroPosition),
		m.SetEncoderUnits(ctx, cfg.EncoderUnits),
		m.SetReversed(ctx, cfg.Reversed),
	)
}

// ClampMillivolts limits a voltage command to ±MaxMillivolts.
func ClampMillivolts(millivolts int) int {
	return max(-MaxMillivolts, min(MaxMillivolts, millivolts))
}
