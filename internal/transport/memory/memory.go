// Package memory provides an in-process transport pair. The game end and the
// host end share two single-slot channels, which gives the same
// at-most-one-outstanding-frame behavior as the file exchange without any
// polling. Used by tests and by local mode, where the dev host and the game
// run in one binary.
package memory

import (
	"context"
	"sync"

	"github.com/qisge/qisge/internal/transport"
)

// GameEnd is the game-side endpoint of an in-process pair.
type GameEnd struct {
	frames chan []byte
	inputs chan []byte

	closeOnce sync.Once
	closed    chan struct{}
}

// HostEnd is the host-side endpoint of an in-process pair.
type HostEnd struct {
	frames chan []byte
	inputs chan []byte
	closed chan struct{}
}

// NewPair creates a connected game/host endpoint pair.
func NewPair() (*GameEnd, *HostEnd) {
	g := &GameEnd{
		frames: make(chan []byte, 1),
		inputs: make(chan []byte, 1),
		closed: make(chan struct{}),
	}
	h := &HostEnd{
		frames: g.frames,
		inputs: g.inputs,
		closed: g.closed,
	}
	return g, h
}

// Send delivers a frame, blocking while the previous one is unconsumed.
func (g *GameEnd) Send(ctx context.Context, frame []byte) error {
	select {
	case g.frames <- frame:
		return nil
	case <-g.closed:
		return transport.ErrHostUnresponsive
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ReadInput consumes the pending input snapshot, or returns nil when the host
// has not written a fresh one.
func (g *GameEnd) ReadInput(ctx context.Context) ([]byte, error) {
	select {
	case data := <-g.inputs:
		return data, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return nil, nil
	}
}

// Scrub empties both directions.
func (g *GameEnd) Scrub() error {
	for {
		select {
		case <-g.frames:
		case <-g.inputs:
		default:
			return nil
		}
	}
}

// Close tears the pair down; a blocked Send unblocks with an error.
func (g *GameEnd) Close() error {
	g.closeOnce.Do(func() {
		close(g.closed)
	})
	return nil
}

// PollFrame consumes the pending frame without blocking.
func (h *HostEnd) PollFrame() ([]byte, bool, error) {
	select {
	case data := <-h.frames:
		return data, true, nil
	default:
		return nil, false, nil
	}
}

// SendInput replaces any undelivered snapshot with the given one.
func (h *HostEnd) SendInput(ctx context.Context, snapshot []byte) error {
	for {
		select {
		case h.inputs <- snapshot:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		// Slot full: drop the stale snapshot so the latest one wins.
		select {
		case <-h.inputs:
		default:
		}
	}
}

// Close is a no-op on the host end; the game end owns the pair's lifetime.
func (h *HostEnd) Close() error {
	return nil
}

var (
	_ transport.Transport = (*GameEnd)(nil)
	_ transport.HostSide  = (*HostEnd)(nil)
)
