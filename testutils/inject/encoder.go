package inject

import (
	"context"

	"go.viam.com/motorcheck/components/encoder"
)

// Encoder is an injected rotation sensor.
type Encoder struct {
	encoder.Encoder
	ResetPositionFunc func(ctx context.Context) error
	PositionFunc      func(ctx context.Context) (int64, error)
	VelocityFunc      func(ctx context.Context) (float64, error)
}

// NewEncoder returns a new injected Encoder.
func NewEncoder() *Encoder {
	return &Encoder{}
}

// ResetPosition calls the injected ResetPosition or the real version.
func (e *Encoder) ResetPosition(ctx context.Context) error {
	if e.ResetPositionFunc == nil {
		return e.Encoder.ResetPosition(ctx)
	}
	return e.ResetPositionFunc(ctx)
}

// Position calls the injected Position or the real version.
func (e *Encoder) Position(ctx context.Context) (int64, error) {
	if e.PositionFunc == nil {
		return e.Encoder.Position(ctx)
	}
	return e.PositionFunc(ctx)
}

// Velocity calls the injected Velocity or the real version.
func (e *Encoder) Velocity(ctx context.Context) (float64, error) {
	if e.VelocityFunc == nil {
		return e.Encoder.Velocity(ctx)
	}
	return e.VelocityFunc(ctx)
}
