// Package config defines the configuration file for running the self-test against a
// simulated bench.
package config

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"go.viam.com/motorcheck/components/board"
	"go.viam.com/motorcheck/logging"
)

// A Config describes how to run the self-test.
type Config struct {
	// LogLevel is the default level for every logger.
	LogLevel string `json:"log_level,omitempty"`
	// Log overrides LogLevel for loggers matching a pattern.
	Log []logging.LoggerPatternConfig `json:"log,omitempty"`
	// Color enables terminal colors. Defaults to true.
	Color *bool `json:"color,omitempty"`
	// Cycles bounds the number of self-test cycles. Zero runs forever.
	Cycles int `json:"cycles,omitempty"`
	// IdleDelayMS overrides the pause between cycles.
	IdleDelayMS int `json:"idle_delay_ms,omitempty"`

	Bench BenchConfig `json:"bench"`

	ConfigFilePath string `json:"-"`
}

// BenchConfig describes the simulated hardware.
type BenchConfig struct {
	// MotorPort is where the motor under test is plugged in. Zero leaves it out.
	MotorPort int `json:"motor_port"`
	// SensorPort is where the rotation sensor is plugged in. Zero leaves it out.
	SensorPort int `json:"sensor_port"`
	// ExtraMotorPorts hold additional motors that the scan must skip past.
	ExtraMotorPorts []int `json:"extra_motor_ports,omitempty"`
	// OtherPorts hold devices that are neither motors nor rotation sensors.
	OtherPorts []int `json:"other_ports,omitempty"`

	FreeSpeedRPM   float64 `json:"free_speed_rpm,omitempty"`
	SensorSlip     float64 `json:"sensor_slip,omitempty"`
	SensorInverted bool    `json:"sensor_inverted,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate() error {
	if c.LogLevel != "" {
		if _, err := logging.LevelFromString(c.LogLevel); err != nil {
			return errors.Wrap(err, "log_level")
		}
	}
	for idx, lpc := range c.Log {
		if !logging.ValidatePattern(lpc.Pattern) {
			return errors.Errorf("log.%d: invalid pattern %q", idx, lpc.Pattern)
		}
		if _, err := logging.LevelFromString(lpc.Level); err != nil {
			return errors.Wrapf(err, "log.%d", idx)
		}
	}
	if c.Cycles < 0 {
		return errors.Errorf("cycles cannot be negative, got %d", c.Cycles)
	}
	if c.IdleDelayMS < 0 {
		return errors.Errorf("idle_delay_ms cannot be negative, got %d", c.IdleDelayMS)
	}
	return c.Bench.Validate("bench")
}

// Level returns the configured default log level.
func (c *Config) Level() logging.Level {
	level, err := logging.LevelFromString(c.LogLevel)
	if err != nil {
		return logging.INFO
	}
	return level
}

// UseColor reports whether terminal colors are enabled.
func (c *Config) UseColor() bool {
	return c.Color == nil || *c.Color
}

// IdleDelay returns the configured pause between cycles, or zero for the default.
func (c *Config) IdleDelay() time.Duration {
	return time.Duration(c.IdleDelayMS) * time.Millisecond
}

// Validate ensures all parts of the config are valid.
func (b *BenchConfig) Validate(path string) error {
	used := map[int]string{}
	claim := func(port int, field string) error {
		if err := board.ValidatePort(port); err != nil {
			return errors.Wrapf(err, "%s.%s", path, field)
		}
		if prev, ok := used[port]; ok {
			return errors.Errorf("%s.%s: port %d already used by %s", path, field, port, prev)
		}
		used[port] = field
		return nil
	}

	if b.MotorPort != 0 {
		if err := claim(b.MotorPort, "motor_port"); err != nil {
			return err
		}
	}
	if b.SensorPort != 0 {
		if err := claim(b.SensorPort, "sensor_port"); err != nil {
			return err
		}
	}
	for idx, port := range b.ExtraMotorPorts {
		if err := claim(port, fmt.Sprintf("extra_motor_ports.%d", idx)); err != nil {
			return err
		}
	}
	for idx, port := range b.OtherPorts {
		if err := claim(port, fmt.Sprintf("other_ports.%d", idx)); err != nil {
			return err
		}
	}
	if b.FreeSpeedRPM < 0 {
		return errors.Errorf("%s.free_speed_rpm cannot be negative, got %v", path, b.FreeSpeedRPM)
	}
	if b.SensorSlip < 0 || b.SensorSlip >= 1 {
		return errors.Errorf("%s.sensor_slip must be in [0, 1), got %v", path, b.SensorSlip)
	}
	return nil
}
