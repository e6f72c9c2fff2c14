// Package transport defines the channel between a game process and the host
// that renders it. A Transport carries frame payloads out and input snapshots
// back; a HostSide is the mirror image used by the dev host. Implementations
// live in the exchange (files), wsbridge (WebSocket) and memory (in-process)
// subpackages.
package transport

import (
	"context"
	"errors"
)

// ErrHostUnresponsive is returned when the host stops consuming frames and
// the configured wait budget runs out.
var ErrHostUnresponsive = errors.New("transport: host is not consuming frames")

// Transport is the game-side endpoint of the exchange.
//
// Send delivers one frame payload and enforces at-most-one-outstanding-frame:
// it does not return until the previous payload has been consumed by the host
// (or the implementation's wait budget is exhausted, in which case it returns
// an error wrapping ErrHostUnresponsive).
//
// ReadInput consumes the pending input snapshot. It never blocks waiting for
// the host: if no snapshot has arrived it returns a nil slice, which decodes
// to the zero-event default. A snapshot is delivered at most once.
type Transport interface {
	Send(ctx context.Context, frame []byte) error
	ReadInput(ctx context.Context) ([]byte, error)

	// Scrub resets both directions of the channel to empty. Called once at
	// session start so stale payloads from a previous run are not replayed.
	Scrub() error

	Close() error
}

// HostSide is the host-side endpoint of the exchange.
//
// PollFrame consumes the pending frame payload without blocking; the second
// return value reports whether a frame was present. SendInput replaces any
// undelivered input snapshot with the given one.
type HostSide interface {
	PollFrame() ([]byte, bool, error)
	SendInput(ctx context.Context, snapshot []byte) error
	Close() error
}
