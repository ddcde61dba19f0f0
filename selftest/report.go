package selftest

import (
	"go.viam.com/motorcheck/logging"
	"go.viam.com/motorcheck/terminal"
)

// Verdict is the outcome of one check.
type Verdict bool

// Verdicts.
const (
	Fail Verdict = false
	Pass Verdict = true
)

// VerdictOf converts a check result to a Verdict.
func VerdictOf(ok bool) Verdict {
	return Verdict(ok)
}

func (v Verdict) String() string {
	if v {
		return "PASS"
	}
	return "FAIL"
}

// Label returns the verdict as shown to the operator, wrapped in color markup if color
// is set.
func (v Verdict) Label(color bool) string {
	if !color {
		return v.String()
	}
	if v {
		return terminal.Colorize(terminal.Green, v.String())
	}
	return terminal.Colorize(terminal.Red, v.String())
}

// A TestReport is the evaluated outcome of one run.
type TestReport struct {
	Direction       Direction
	SpeedReached    Verdict
	PositionMatched Verdict

	FinalVelocity float64
	Mismatches    int

	// Informational, not part of the verdicts.
	PeakVelocity     float64
	MaxPositionError float64
}

// Passed is true if both checks passed.
func (r TestReport) Passed() bool {
	return bool(r.SpeedReached && r.PositionMatched)
}

// Evaluate judges a run. The speed check uses only the final sensed velocity, which must
// exceed SpeedThreshold in the run's direction. The position check passes only if no
// sample was a mismatch.
func Evaluate(run TestRun) TestReport {
	final := run.LastSample.SensedVelocity
	reached := final > SpeedThreshold
	if run.Direction == Reverse {
		reached = final < -SpeedThreshold
	}
	return TestReport{
		Direction:       run.Direction,
		SpeedReached:    VerdictOf(reached),
		PositionMatched: VerdictOf(run.Mismatches == 0),
		FinalVelocity:   final,
		Mismatches:      run.Mismatches,

		PeakVelocity:     run.PeakSensedVelocity,
		MaxPositionError: run.MaxPositionError,
	}
}

// RenderReport writes the report to the log, regardless of level, and to the terminal
// with colored verdicts.
func RenderReport(report TestReport, logger logging.Logger, term terminal.Terminal) {
	logger.Always("REPORT:")
	term.Print("REPORT:")
	logger.Alwaysf("Motor reached speed of %f > %.0f? %s", report.FinalVelocity, SpeedThreshold, report.SpeedReached.Label(false))
	term.Print("Motor reached speed of %f > %.0f? %s", report.FinalVelocity, SpeedThreshold, report.SpeedReached.Label(true))
	logger.Alwaysf("Motor tracked position matched? %s", report.PositionMatched.Label(false))
	term.Print("Motor tracked position matched? %s", report.PositionMatched.Label(true))
}
