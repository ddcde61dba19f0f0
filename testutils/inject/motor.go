package inject

import (
	"context"

	"go.viam.com/motorcheck/components/motor"
)

// Motor is an injected motor.
type Motor struct {
	motor.Motor
	SetBrakeModeFunc    func(ctx context.Context, mode motor.BrakeMode) error
	SetGearingFunc      func(ctx context.Context, gearing motor.Gearing) error
	SetZeroPositionFunc func(ctx context.Context, position float64) error
	SetEncoderUnitsFunc func(ctx context.Context, units motor.EncoderUnits) error
	SetReversedFunc     func(ctx context.Context, reversed bool) error
	SetVoltageFunc      func(ctx context.Context, millivolts int) error
	StopFunc            func(ctx context.Context) error
	PositionFunc        func(ctx context.Context) (float64, error)
	VelocityFunc        func(ctx context.Context) (float64, error)
}

// NewMotor returns a new injected motor.
func NewMotor() *Motor {
	return &Motor{}
}

// SetBrakeMode calls the injected SetBrakeMode or the real version.
func (m *Motor) SetBrakeMode(ctx context.Context, mode motor.BrakeMode) error {
	if m.SetBrakeModeFunc == nil {
		return m.Motor.SetBrakeMode(ctx, mode)
	}
	return m.SetBrakeModeFunc(ctx, mode)
}

// SetGearing calls the injected SetGearing or the real version.
func (m *Motor) SetGearing(ctx context.Context, gearing motor.Gearing) error {
	if m.SetGearingFunc == nil {
		return m.Motor.SetGearing(ctx, gearing)
	}
	return m.SetGearingFunc(ctx, gearing)
}

// SetZeroPosition calls the injected SetZeroPosition or the real version.
func (m *Motor) SetZeroPosition(ctx context.Context, position float64) error {
	if m.SetZeroPositionFunc == nil {
		return m.Motor.SetZeroPosition(ctx, position)
	}
	return m.SetZeroPositionFunc(ctx, position)
}

// SetEncoderUnits calls the injected SetEncoderUnits or the real version.
func (m *Motor) SetEncoderUnits(ctx context.Context, units motor.EncoderUnits) error {
	if m.SetEncoderUnitsFunc == nil {
		return m.Motor.SetEncoderUnits(ctx, units)
	}
	return m.SetEncoderUnitsFunc(ctx, units)
}

// SetReversed calls the injected SetReversed or the real version.
func (m *Motor) SetReversed(ctx context.Context, reversed bool) error {
	if m.SetReversedFunc == nil {
		return m.Motor.SetReversed(ctx, reversed)
	}
	return m.SetReversedFunc(ctx, reversed)
}

// SetVoltage calls the injected SetVoltage or the real version.
func (m *Motor) SetVoltage(ctx context.Context, millivolts int) error {
	if m.SetVoltageFunc == nil {
		return m.Motor.SetVoltage(ctx, millivolts)
	}
	return m.SetVoltageFunc(ctx, millivolts)
}

// Stop calls the injected Stop or the real version.
func (m *Motor) Stop(ctx context.Context) error {
	if m.StopFunc == nil {
		return m.Motor.Stop(ctx)
	}
	return m.StopFunc(ctx)
}

// Position calls the injected Position or the real version.
func (m *Motor) Position(ctx context.Context) (float64, error) {
	if m.PositionFunc == nil {
		return m.Motor.Position(ctx)
	}
	return m.PositionFunc(ctx)
}

// Velocity calls the injected Velocity or the real version.
func (m *Motor) Velocity(ctx context.Context) (float64, error) {
	if m.VelocityFunc == nil {
		return m.Motor.Velocity(ctx)
	}
	return m.VelocityFunc(ctx)
}

// NoopMotor returns an injected motor whose settings and commands all succeed and whose
// telemetry reads zero. Callers override the funcs they care about.
func NoopMotor() *Motor {
	m := NewMotor()
	m.SetBrakeModeFunc = func(ctx context.Context, mode motor.BrakeMode) error { return nil }
	m.SetGearingFunc = func(ctx context.Context, gearing motor.Gearing) error { return nil }
	m.SetZeroPositionFunc = func(ctx context.Context, position float64) error { return nil }
	m.SetEncoderUnitsFunc = func(ctx context.Context, units motor.EncoderUnits) error { return nil }
	m.SetReversedFunc = func(ctx context.Context, reversed bool) error { return nil }
	m.SetVoltageFunc = func(ctx context.Context, millivolts int) error { return nil }
	m.StopFunc = func(ctx context.Context) error { return nil }
	m.PositionFunc = func(ctx context.Context) (float64, error) { return 0, nil }
	m.VelocityFunc = func(ctx context.Context) (float64, error) { return 0, nil }
	return m
}
