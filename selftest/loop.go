package selftest

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"go.viam.com/motorcheck/components/board"
	"go.viam.com/motorcheck/components/encoder"
	"go.viam.com/motorcheck/components/motor"
	"go.viam.com/motorcheck/logging"
	"go.viam.com/motorcheck/terminal"
)

// Drivers hands out the motor and sensor drivers for a port.
type Drivers interface {
	Motor(port int) (motor.Motor, error)
	Encoder(port int) (encoder.Encoder, error)
}

// A Cycle is the outcome of one pass of the loop. Err is set if the cycle was aborted
// by a device error; Reports then holds whatever completed before it.
type Cycle struct {
	Number   int
	Hardware ResolvedHardware
	Reports  [2]TestReport
	Err      error
}

// Options configure a Loop. Board, Drivers, Delay and Logger are required.
type Options struct {
	Board    board.Board
	Drivers  Drivers
	Delay    DelayFunc
	Logger   logging.Logger
	Terminal terminal.Terminal

	// MaxCycles bounds the number of cycles. Zero runs forever.
	MaxCycles int
	// IdleDelay overrides the pause between cycles when non-zero.
	IdleDelay time.Duration
	// OnCycle, if set, is called after every cycle.
	OnCycle func(Cycle)
}

// A Loop is the diagnostic: resolve the hardware once, then test the motor every time
// it is connected.
type Loop struct {
	opts Options
}

// NewLoop validates opts and returns a Loop.
func NewLoop(opts Options) (*Loop, error) {
	switch {
	case opts.Board == nil:
		return nil, errors.New("loop requires a board")
	case opts.Drivers == nil:
		return nil, errors.New("loop requires drivers")
	case opts.Delay == nil:
		return nil, errors.New("loop requires a delay")
	case opts.Logger == nil:
		return nil, errors.New("loop requires a logger")
	case opts.MaxCycles < 0:
		return nil, errors.Errorf("max cycles cannot be negative, got %d", opts.MaxCycles)
	}
	if opts.Terminal == nil {
		opts.Terminal = terminal.Discard
	}
	if opts.IdleDelay == 0 {
		opts.IdleDelay = IdleDelay
	}
	return &Loop{opts: opts}, nil
}

// Run resolves the hardware and then runs cycles until MaxCycles is reached or ctx
// ends. If the hardware cannot be resolved, Run returns the *MissingHardwareError
// without touching the motor.
func (l *Loop) Run(ctx context.Context) error {
	hw, err := l.Resolve(ctx)
	if err != nil {
		return err
	}
	return l.RunResolved(ctx, hw)
}

// Resolve scans the ports and tells the operator what was found.
func (l *Loop) Resolve(ctx context.Context) (ResolvedHardware, error) {
	logger, term := l.opts.Logger, l.opts.Terminal

	hw, err := Scan(ctx, l.opts.Board, logger)
	if err != nil {
		return hw, err
	}
	if err := hw.Validate(); err != nil {
		var missing *MissingHardwareError
		if errors.As(err, &missing) {
			l.reportMissing(missing)
		}
		return hw, err
	}
	logger.Alwaysf("Using motor %d and sensor %d", hw.MotorPort, hw.SensorPort)
	term.Print("Using motor %d and sensor %d", hw.MotorPort, hw.SensorPort)
	return hw, nil
}

func (l *Loop) reportMissing(err *MissingHardwareError) {
	logger, term := l.opts.Logger, l.opts.Terminal
	hw := err.Hardware
	switch {
	case !err.MissingMotor():
		logger.Errorf("Found motor %d but could not find sensor, please connect and restart", hw.MotorPort)
		term.Print("Found motor %d but %s", hw.MotorPort, terminal.Colorize(terminal.Red, "could not find sensor"))
		term.Print("%s", terminal.Colorize(terminal.Orange, "Please connect sensor and restart program"))
	case !err.MissingSensor():
		logger.Errorf("Found sensor %d but could not find motor, please connect and restart", hw.SensorPort)
		term.Print("Found sensor %d but %s", hw.SensorPort, terminal.Colorize(terminal.Red, "could not find motor"))
		term.Print("%s", terminal.Colorize(terminal.Orange, "Please connect motor and restart program"))
	default:
		logger.Error("Could not find motor or sensor, please connect and restart")
		term.Print("%s", terminal.Colorize(terminal.Red, "Could not find motor or sensor"))
		term.Print("%s", terminal.Colorize(terminal.Orange, "Please connect both and restart program"))
	}
}

// RunResolved runs cycles against already resolved hardware, starting with the wait for
// the motor.
func (l *Loop) RunResolved(ctx context.Context, hw ResolvedHardware) error {
	if err := hw.Validate(); err != nil {
		return err
	}
	logger := l.opts.Logger
	for number := 1; ; number++ {
		cycle := Cycle{Number: number, Hardware: hw}
		reports, err := l.runCycle(ctx, hw)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		cycle.Reports = reports
		if err != nil {
			logger.Errorw("self-test cycle aborted", "cycle", number, "error", err)
			cycle.Err = err
		}
		if l.opts.OnCycle != nil {
			l.opts.OnCycle(cycle)
		}
		if l.opts.MaxCycles > 0 && number >= l.opts.MaxCycles {
			return nil
		}
		if err := l.opts.Delay(ctx, l.opts.IdleDelay); err != nil {
			return err
		}
	}
}

func (l *Loop) runCycle(ctx context.Context, hw ResolvedHardware) ([2]TestReport, error) {
	logger, term := l.opts.Logger, l.opts.Terminal
	if err := WaitForMotor(ctx, l.opts.Board, hw.MotorPort, l.opts.Delay, logger); err != nil {
		return [2]TestReport{}, err
	}
	if err := l.opts.Delay(ctx, SettleDelay); err != nil {
		return [2]TestReport{}, err
	}
	logger.Info("Running self-test sequence now")
	term.Print("Running self-test sequence")

	m, err := l.opts.Drivers.Motor(hw.MotorPort)
	if err != nil {
		return [2]TestReport{}, errors.Wrapf(err, "no motor driver for port %d", hw.MotorPort)
	}
	enc, err := l.opts.Drivers.Encoder(hw.SensorPort)
	if err != nil {
		return [2]TestReport{}, errors.Wrapf(err, "no rotation sensor driver for port %d", hw.SensorPort)
	}
	return NewSequencer(m, enc, l.opts.Delay, logger, term).RunCycle(ctx)
}
