// Package exchange implements the file-based transport: one file carries
// frame payloads out, another carries input snapshots back, and "consumed"
// means "truncated to empty". Writes go through a temp
// file and an atomic rename so the peer never observes a half-written
// payload, and the wait for a slow host is bounded by a configurable timeout
// instead of an infinite poll.
package exchange

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/qisge/qisge/internal/transport"
)

// File names of the two channel halves inside the exchange directory. The
// names are a contract with the host.
const (
	FrameFile = "sprite.txt"
	InputFile = "input.txt"
)

// DefaultPollInterval is the sleep between checks of a busy frame channel.
const DefaultPollInterval = 10 * time.Millisecond

// Options configures a file exchange.
type Options struct {
	// Dir is the exchange directory shared with the host. Created if absent.
	Dir string

	// PollInterval is the sleep between checks while the frame channel is
	// busy. Zero means DefaultPollInterval.
	PollInterval time.Duration

	// HostTimeout bounds how long Send waits for the host to consume the
	// previous frame before giving up with ErrHostUnresponsive. Zero means
	// wait forever.
	HostTimeout time.Duration

	// NoWait makes Send overwrite an unconsumed frame instead of waiting.
	NoWait bool
}

// Exchange is the game-side endpoint of a file exchange.
type Exchange struct {
	dir  string
	opts Options
}

// Open prepares the exchange directory and returns the game-side endpoint.
func Open(opts Options) (*Exchange, error) {
	if opts.Dir == "" {
		return nil, errors.New("exchange: directory not set")
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if err := os.MkdirAll(opts.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("exchange: create dir %s: %w", opts.Dir, err)
	}
	return &Exchange{dir: opts.Dir, opts: opts}, nil
}

// Send writes one frame payload. If the previous payload is still unconsumed
// it polls until the host drains it, the context is cancelled, or the host
// timeout expires.
func (e *Exchange) Send(ctx context.Context, frame []byte) error {
	if !e.opts.NoWait {
		if err := e.awaitDrained(ctx); err != nil {
			return err
		}
	}
	return writeAtomic(e.dir, FrameFile, frame)
}

// awaitDrained blocks until the frame file is empty.
func (e *Exchange) awaitDrained(ctx context.Context) error {
	var deadline time.Time
	if e.opts.HostTimeout > 0 {
		deadline = time.Now().Add(e.opts.HostTimeout)
	}

	for {
		pending, err := readFile(e.dir, FrameFile)
		if err != nil {
			return err
		}
		if len(pending) == 0 {
			return nil
		}
		if !deadline.IsZero() && time.Now().After(deadline) {
			return fmt.Errorf("frame unconsumed after %s: %w",
				e.opts.HostTimeout, transport.ErrHostUnresponsive)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.opts.PollInterval):
		}
	}
}

// ReadInput consumes the pending input snapshot and truncates the channel, so
// a repeated read without a fresh host write yields the empty default.
func (e *Exchange) ReadInput(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := readFile(e.dir, InputFile)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, nil
	}
	if err := writeAtomic(e.dir, InputFile, nil); err != nil {
		return nil, err
	}
	return data, nil
}

// Scrub empties both channel files.
func (e *Exchange) Scrub() error {
	if err := writeAtomic(e.dir, FrameFile, nil); err != nil {
		return err
	}
	return writeAtomic(e.dir, InputFile, nil)
}

// Close is a no-op; the exchange directory outlives the process.
func (e *Exchange) Close() error {
	return nil
}

// Host is the host-side endpoint of a file exchange.
type Host struct {
	dir string
}

// OpenHost prepares the exchange directory and returns the host-side
// endpoint.
func OpenHost(dir string) (*Host, error) {
	if dir == "" {
		return nil, errors.New("exchange: directory not set")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("exchange: create dir %s: %w", dir, err)
	}
	return &Host{dir: dir}, nil
}

// PollFrame consumes the pending frame payload, truncating the channel so the
// game sees it as drained.
func (h *Host) PollFrame() ([]byte, bool, error) {
	data, err := readFile(h.dir, FrameFile)
	if err != nil {
		return nil, false, err
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	if err := writeAtomic(h.dir, FrameFile, nil); err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// SendInput replaces the pending input snapshot.
func (h *Host) SendInput(ctx context.Context, snapshot []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(h.dir, InputFile, snapshot)
}

// Close is a no-op.
func (h *Host) Close() error {
	return nil
}

// readFile returns the contents of a channel file; a missing file reads as
// empty, since the peer may not have created it yet.
func readFile(dir, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("exchange: read %s: %w", name, err)
	}
	return data, nil
}

// writeAtomic replaces a channel file via temp file + rename, so the peer
// only ever observes complete payloads.
func writeAtomic(dir, name string, data []byte) error {
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("exchange: temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("exchange: write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("exchange: close %s: %w", name, err)
	}
	if err := os.Rename(tmpName, filepath.Join(dir, name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("exchange: rename %s: %w", name, err)
	}
	return nil
}

var (
	_ transport.Transport = (*Exchange)(nil)
	_ transport.HostSide  = (*Host)(nil)
)
