// Package fake implements a fake rotation sensor that follows a simulated shaft.
package fake

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"

	"go.viam.com/motorcheck/components/board"
	"go.viam.com/motorcheck/components/encoder"
)

// Config describes faults to inject into a fake rotation sensor.
type Config struct {
	// Slip is the fraction of shaft motion the sensor misses, in [0, 1).
	Slip float64 `json:"slip,omitempty"`
	// Inverted reports motion with the opposite sign, as if mounted backwards.
	Inverted bool `json:"inverted,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	if conf.Slip < 0 || conf.Slip >= 1 {
		return errors.Errorf("%s.slip must be in [0, 1), got %v", path, conf.Slip)
	}
	return nil
}

var _ encoder.Encoder = &Encoder{}

// Encoder integrates the shaft speed it is given over clock time. While its port is
// unplugged it keeps returning the last values it reported.
type Encoder struct {
	mu         sync.Mutex
	clk        clock.Clock
	ticks      float64 // at lastUpdate
	speed      float64 // shaft degrees per second
	lastUpdate time.Time
	slip       float64
	inverted   bool

	brain      board.Board
	port       int
	staleTicks int64
	staleSpeed float64
}

// NewEncoder returns a fake rotation sensor. If brain is non-nil, the sensor is only
// live while brain reports a rotation sensor on port.
func NewEncoder(clk clock.Clock, conf *Config, brain board.Board, port int) (*Encoder, error) {
	if conf == nil {
		conf = &Config{}
	}
	if err := conf.Validate("encoder"); err != nil {
		return nil, err
	}
	return &Encoder{
		clk:        clk,
		lastUpdate: clk.Now(),
		slip:       conf.Slip,
		inverted:   conf.Inverted,
		brain:      brain,
		port:       port,
	}, nil
}

// advance must be called with mu held.
func (e *Encoder) advance() {
	now := e.clk.Now()
	e.ticks += e.observedSpeed() * now.Sub(e.lastUpdate).Seconds() * encoder.TicksPerDegree
	e.lastUpdate = now
}

// observedSpeed must be called with mu held.
func (e *Encoder) observedSpeed() float64 {
	speed := e.speed * (1 - e.slip)
	if e.inverted {
		speed = -speed
	}
	return speed
}

func (e *Encoder) connected(ctx context.Context) bool {
	if e.brain == nil {
		return true
	}
	class, err := e.brain.DeviceClass(ctx, e.port)
	return err == nil && class == board.RotationSensor
}

// SetSpeed sets the shaft speed, in degrees per second, that the sensor is measuring.
func (e *Encoder) SetSpeed(ctx context.Context, degPerSec float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance()
	e.speed = degPerSec
	return nil
}

// ResetPosition zeroes the tick count.
func (e *Encoder) ResetPosition(ctx context.Context) error {
	if !e.connected(ctx) {
		return nil
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance()
	e.ticks = 0
	return nil
}

// Position returns the ticks since the last reset.
func (e *Encoder) Position(ctx context.Context) (int64, error) {
	connected := e.connected(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.advance()
	if connected {
		e.staleTicks = int64(math.Round(e.ticks))
	}
	return e.staleTicks, nil
}

// Velocity returns the measured speed in degrees per second.
func (e *Encoder) Velocity(ctx context.Context) (float64, error) {
	connected := e.connected(ctx)
	e.mu.Lock()
	defer e.mu.Unlock()
	if connected {
		e.staleSpeed = e.observedSpeed()
	}
	return e.staleSpeed, nil
}
