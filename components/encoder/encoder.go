// Package encoder defines the independent rotation sensor mounted on the motor shaft,
// and the conversions from its raw units.
package encoder

import (
	"context"
)

// An Encoder is an absolute rotation sensor on one port.
type Encoder interface {
	// ResetPosition makes the current position read as zero ticks.
	ResetPosition(ctx context.Context) error
	// Position reports the raw position in ticks since the last reset.
	Position(ctx context.Context) (int64, error)
	// Velocity reports the raw velocity in degrees per second.
	Velocity(ctx context.Context) (float64, error)
}
