package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/qisge/qisge/internal/transport"
)

// Session is the per-process engine state: the change ledger, the identity id
// counters and the transport to the host. Construct one at process start and
// drive it once per game-loop iteration; there is no implicit shared instance.
type Session struct {
	ledger    *Ledger
	transport transport.Transport
	counters  map[Kind]int
	camera    *Camera
	frames    uint64
	logger    *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger attaches a logger for frame-level diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// NewSession creates a session on the given transport. Both directions of the
// channel are scrubbed so payloads left over from a previous run are not
// replayed, and the session's camera is created with its default fields.
func NewSession(t transport.Transport, opts ...Option) (*Session, error) {
	s := &Session{
		ledger:    NewLedger(),
		transport: t,
		counters:  make(map[Kind]int),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := t.Scrub(); err != nil {
		return nil, fmt.Errorf("scrub transport: %w", err)
	}

	s.camera = s.newCamera()
	return s, nil
}

// nextID hands out the next identity id for a kind. Ids start at 0, grow
// monotonically and are never reused within the session's lifetime.
func (s *Session) nextID(kind Kind) int {
	id := s.counters[kind]
	s.counters[kind] = id + 1
	return id
}

// Camera returns the session's camera.
func (s *Session) Camera() *Camera {
	return s.camera
}

// Frames returns the number of completed Update calls.
func (s *Session) Frames() uint64 {
	return s.frames
}

// Ledger exposes the session's change ledger.
func (s *Session) Ledger() *Ledger {
	return s.ledger
}

// Update performs one blocking round-trip with the host: it drains the ledger,
// sends the payload if it is non-empty, then consumes and decodes the host's
// input snapshot. Transport failures and malformed input propagate to the
// caller; a host that stops consuming frames surfaces as the transport's
// ErrHostUnresponsive.
func (s *Session) Update(ctx context.Context) (Snapshot, error) {
	payload := s.ledger.Drain()
	if !payload.Empty() {
		data, err := payload.Encode()
		if err != nil {
			return EmptySnapshot(), err
		}
		if err := s.transport.Send(ctx, data); err != nil {
			return EmptySnapshot(), fmt.Errorf("send frame: %w", err)
		}
		if s.logger != nil {
			s.logger.Debug("frame sent",
				"bytes", len(data),
				"sprites", len(payload.SpriteChanges),
				"texts", len(payload.TextChanges),
			)
		}
	}

	raw, err := s.transport.ReadInput(ctx)
	if err != nil {
		return EmptySnapshot(), fmt.Errorf("read input: %w", err)
	}

	s.frames++
	return DecodeSnapshot(raw)
}

// Close releases the underlying transport.
func (s *Session) Close() error {
	return s.transport.Close()
}
