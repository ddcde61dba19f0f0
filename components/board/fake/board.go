// Package fake implements a fake brain whose ports can be plugged and unplugged.
package fake

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/motorcheck/components/board"
	"go.viam.com/motorcheck/components/encoder"
	"go.viam.com/motorcheck/components/motor"
	"go.viam.com/motorcheck/logging"
)

// PortConfig describes one occupied port.
type PortConfig struct {
	Port  int    `json:"port"`
	Class string `json:"class"`
}

// A Config describes the devices plugged into a fake board at startup.
type Config struct {
	Ports []PortConfig `json:"ports,omitempty"`
}

// Validate ensures all parts of the config are valid.
func (conf *Config) Validate(path string) error {
	seen := map[int]bool{}
	for idx, pc := range conf.Ports {
		if err := board.ValidatePort(pc.Port); err != nil {
			return errors.Wrapf(err, "%s.ports.%d", path, idx)
		}
		if _, err := board.DeviceClassFromString(pc.Class); err != nil {
			return errors.Wrapf(err, "%s.ports.%d", path, idx)
		}
		if seen[pc.Port] {
			return errors.Errorf("%s.ports.%d: port %d configured twice", path, idx, pc.Port)
		}
		seen[pc.Port] = true
	}
	return nil
}

var _ board.Board = &Board{}

// A Board reports whatever has been plugged into its ports. Unplugged ports report None.
// It also hands out the drivers attached to its ports.
type Board struct {
	mu       sync.RWMutex
	ports    map[int]board.DeviceClass
	motors   map[int]motor.Motor
	encoders map[int]encoder.Encoder
	logger   logging.Logger
}

// NewBoard returns a new fake board populated from conf.
func NewBoard(conf *Config, logger logging.Logger) (*Board, error) {
	b := &Board{
		ports:    map[int]board.DeviceClass{},
		motors:   map[int]motor.Motor{},
		encoders: map[int]encoder.Encoder{},
		logger:   logger,
	}
	if conf == nil {
		return b, nil
	}
	if err := conf.Validate("board"); err != nil {
		return nil, err
	}
	for _, pc := range conf.Ports {
		class, err := board.DeviceClassFromString(pc.Class)
		if err != nil {
			return nil, err
		}
		b.ports[pc.Port] = class
	}
	return b, nil
}

// DeviceClass returns the class of the device on port.
func (b *Board) DeviceClass(ctx context.Context, port int) (board.DeviceClass, error) {
	if err := board.ValidatePort(port); err != nil {
		return board.None, err
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.ports[port], nil
}

// Plug attaches a device of the given class to port, replacing whatever was there.
func (b *Board) Plug(port int, class board.DeviceClass) error {
	if err := board.ValidatePort(port); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.logger.Debugf("port %02d plugged: %s", port, class)
	if class == board.None {
		delete(b.ports, port)
		return nil
	}
	b.ports[port] = class
	return nil
}

// Unplug detaches whatever is on port.
func (b *Board) Unplug(port int) error {
	return b.Plug(port, board.None)
}

// OccupiedPorts returns the occupied ports in ascending order.
func (b *Board) OccupiedPorts() []int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ports := lo.Keys(b.ports)
	sort.Ints(ports)
	return ports
}

// String summarizes the occupied ports, e.g. "3:motor 9:rotation_sensor".
func (b *Board) String() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	ports := lo.Keys(b.ports)
	sort.Ints(ports)
	return fmt.Sprint(lo.Map(ports, func(port, _ int) string {
		return fmt.Sprintf("%d:%s", port, b.ports[port])
	}))
}

// AttachMotor makes m the driver for port. The port's class is unchanged.
func (b *Board) AttachMotor(port int, m motor.Motor) error {
	if err := board.ValidatePort(port); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.motors[port] = m
	return nil
}

// AttachEncoder makes enc the driver for port. The port's class is unchanged.
func (b *Board) AttachEncoder(port int, enc encoder.Encoder) error {
	if err := board.ValidatePort(port); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.encoders[port] = enc
	return nil
}

// Motor returns the motor driver attached to port.
func (b *Board) Motor(port int) (motor.Motor, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	m, ok := b.motors[port]
	if !ok {
		return nil, errors.Errorf("no motor driver attached to port %d", port)
	}
	return m, nil
}

// Encoder returns the rotation sensor driver attached to port.
func (b *Board) Encoder(port int) (encoder.Encoder, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	enc, ok := b.encoders[port]
	if !ok {
		return nil, errors.Errorf("no rotation sensor driver attached to port %d", port)
	}
	return enc, nil
}
