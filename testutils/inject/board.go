package inject

import (
	"context"

	"go.viam.com/motorcheck/components/board"
)

// Board is an injected board.
type Board struct {
	board.Board
	DeviceClassFunc func(ctx context.Context, port int) (board.DeviceClass, error)
}

// NewBoard returns a new injected board.
func NewBoard() *Board {
	return &Board{}
}

// DeviceClass calls the injected DeviceClass or the real version.
func (b *Board) DeviceClass(ctx context.Context, port int) (board.DeviceClass, error) {
	if b.DeviceClassFunc == nil {
		return b.Board.DeviceClass(ctx, port)
	}
	return b.DeviceClassFunc(ctx, port)
}

// BoardWithPorts returns an injected board reporting the given classes. Ports missing
// from the map report None.
func BoardWithPorts(ports map[int]board.DeviceClass) *Board {
	b := NewBoard()
	b.DeviceClassFunc = func(ctx context.Context, port int) (board.DeviceClass, error) {
		return ports[port], nil
	}
	return b
}
