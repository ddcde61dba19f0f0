// Package cli contains the motorcheck command line application.
package cli

import (
	"context"
	"io"
	"os"
	"os/signal"

	"github.com/benbjohnson/clock"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"go.viam.com/motorcheck/competition"
	"go.viam.com/motorcheck/config"
	"go.viam.com/motorcheck/logging"
	"go.viam.com/motorcheck/selftest"
	"go.viam.com/motorcheck/terminal"
)

const (
	flagConfig   = "config"
	flagCycles   = "cycles"
	flagDebug    = "debug"
	flagModes    = "modes"
	flagNoColor  = "no-color"
	flagSimulate = "simulate"
)

// NewApp returns the motorcheck application writing terminal output to out and logs to
// errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "motorcheck",
		Usage:           "check a motor against the rotation sensor on its shaft",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Commands: []*cli.Command{
			{
				Name:      "run",
				Usage:     "run the self-test on the simulated bench",
				UsageText: "motorcheck run --config FILE [--cycles N] [--modes MODE,...] [--debug] [--no-color] [--simulate]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     flagConfig,
						Aliases:  []string{"c"},
						Usage:    "load configuration from `FILE`",
						Required: true,
					},
					&cli.IntFlag{
						Name:  flagCycles,
						Usage: "stop after `N` cycles, overriding the config; 0 runs until interrupted",
					},
					&cli.StringSliceFlag{
						Name:  flagModes,
						Usage: "competition modes to enter in order after initialization; " +
							"opcontrol runs the self-test until it finishes",
						Value: cli.NewStringSlice(competition.ModeOpControl.String()),
					},
					&cli.BoolFlag{
						Name:    flagDebug,
						Aliases: []string{"vvv"},
						Usage:   "enable debug logging",
					},
					&cli.BoolFlag{
						Name:  flagNoColor,
						Usage: "print terminal markup as plain text",
					},
					&cli.BoolFlag{
						Name:  flagSimulate,
						Usage: "advance simulated time instantly instead of waiting in real time",
					},
				},
				Action: RunAction,
			},
		},
	}
}

// RunAction runs the self-test until the configured number of cycles completes, the
// hardware cannot be found, or the process is interrupted.
func RunAction(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt)
	defer stop()

	logger := logging.NewBlankLogger("motorcheck")
	logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
	logger.SetLevel(logging.INFO)
	//nolint:errcheck
	defer logger.Sync()

	cfg, err := config.Read(ctx, c.String(flagConfig), logger)
	if err != nil {
		return err
	}
	level := cfg.Level()
	if c.Bool(flagDebug) {
		level = logging.DEBUG
	}
	cycles := cfg.Cycles
	if c.IsSet(flagCycles) {
		cycles = c.Int(flagCycles)
	}
	modes := make([]competition.Mode, 0, len(c.StringSlice(flagModes)))
	for _, name := range c.StringSlice(flagModes) {
		mode, err := competition.ModeFromString(name)
		if err != nil {
			return err
		}
		modes = append(modes, mode)
	}

	registry := logging.NewRegistry(level)
	registry.Register("motorcheck", logger)
	selftestLogger := registry.Register("motorcheck.selftest", logger.Sublogger("selftest"))
	benchLogger := registry.Register("motorcheck.bench", logger.Sublogger("bench"))
	if err := registry.UpdateConfig(cfg.Log, logger); err != nil {
		return err
	}

	runID := uuid.New().String()
	logger.Infow("starting self-test", "run_id", runID, "config", cfg.ConfigFilePath, "cycles", cycles)

	var (
		clk   clock.Clock
		delay selftest.DelayFunc
	)
	if c.Bool(flagSimulate) {
		mock := clock.NewMock()
		clk, delay = mock, selftest.FastForwardDelay(mock)
	} else {
		clk = clock.New()
		delay = selftest.ClockDelay(clk)
	}
	bench, err := config.NewBench(clk, cfg.Bench, benchLogger)
	if err != nil {
		return err
	}
	benchLogger.Debugf("bench ports %s", bench.Board)

	term := terminal.NewConsole(c.App.Writer, cfg.UseColor() && !c.Bool(flagNoColor))
	results := newSummary(runID)
	loop, err := selftest.NewLoop(selftest.Options{
		Board:     bench.Board,
		Drivers:   bench.Board,
		Delay:     delay,
		Logger:    selftestLogger,
		Terminal:  term,
		MaxCycles: cycles,
		IdleDelay: cfg.IdleDelay(),
		OnCycle:   results.add,
	})
	if err != nil {
		return err
	}

	robot := competition.NewRobot(ctx, selftest.NewHarness(loop), selftestLogger, term)
	robot.Initialize()
	for _, mode := range modes {
		if ctx.Err() != nil {
			break
		}
		logger.Debugw("entering competition mode", "mode", mode)
		if err := competition.Dispatch(robot, mode); err != nil {
			return err
		}
		if mode == competition.ModeOpControl {
			select {
			case <-robot.Harness().Done():
			case <-ctx.Done():
			}
		}
	}
	robot.Disabled()

	results.render(c.App.Writer)
	runErr := robot.Harness().Err()
	if runErr == nil || errors.Is(runErr, context.Canceled) {
		return nil
	}
	return errors.Wrap(runErr, "self-test stopped")
}
