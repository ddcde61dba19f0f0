// Package competition adapts the self-test harness to the host's competition lifecycle.
// The host calls Initialize once, then one entry point per mode change.
package competition

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"go.viam.com/motorcheck/logging"
	"go.viam.com/motorcheck/selftest"
	"go.viam.com/motorcheck/terminal"
)

// Callbacks are the entry points the host invokes.
type Callbacks interface {
	Initialize()
	Disabled()
	CompetitionInitialize()
	Autonomous()
	OpControl()
}

// Mode is a competition mode.
type Mode int

// Modes the host can enter after initialization.
const (
	ModeDisabled Mode = iota
	ModeCompetitionInitialize
	ModeAutonomous
	ModeOpControl
)

func (m Mode) String() string {
	switch m {
	case ModeDisabled:
		return "disabled"
	case ModeCompetitionInitialize:
		return "competition_initialize"
	case ModeAutonomous:
		return "autonomous"
	case ModeOpControl:
		return "opcontrol"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// ModeFromString parses a mode name.
func ModeFromString(s string) (Mode, error) {
	for _, m := range []Mode{ModeDisabled, ModeCompetitionInitialize, ModeAutonomous, ModeOpControl} {
		if m.String() == s {
			return m, nil
		}
	}
	return ModeDisabled, errors.Errorf("unknown competition mode %q", s)
}

// Dispatch calls the entry point for mode.
func Dispatch(cb Callbacks, mode Mode) error {
	switch mode {
	case ModeDisabled:
		cb.Disabled()
	case ModeCompetitionInitialize:
		cb.CompetitionInitialize()
	case ModeAutonomous:
		cb.Autonomous()
	case ModeOpControl:
		cb.OpControl()
	default:
		return errors.Errorf("unknown competition mode %v", mode)
	}
	return nil
}

var _ Callbacks = &Robot{}

// Robot runs the self-test during operator control. Every other mode stops it; the next
// operator control period resumes it from the wait for the motor.
type Robot struct {
	ctx     context.Context
	harness *selftest.Harness
	logger  logging.Logger
	term    terminal.Terminal
}

// NewRobot returns a Robot whose harness runs under ctx.
func NewRobot(ctx context.Context, harness *selftest.Harness, logger logging.Logger, term terminal.Terminal) *Robot {
	if term == nil {
		term = terminal.Discard
	}
	return &Robot{ctx: ctx, harness: harness, logger: logger, term: term}
}

// Initialize announces that the program has started.
func (r *Robot) Initialize() {
	r.logger.Always("In Initialize")
	r.term.Print("In Initialize")
}

// Disabled stops the self-test.
func (r *Robot) Disabled() {
	r.harness.Stop()
}

// CompetitionInitialize does nothing.
func (r *Robot) CompetitionInitialize() {}

// Autonomous stops the self-test.
func (r *Robot) Autonomous() {
	r.harness.Stop()
}

// OpControl starts the self-test if it is not already running.
func (r *Robot) OpControl() {
	r.harness.Start(r.ctx)
}

// Harness is the harness the Robot drives.
func (r *Robot) Harness() *selftest.Harness {
	return r.harness
}
