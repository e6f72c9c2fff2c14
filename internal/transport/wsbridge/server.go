package wsbridge

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/qisge/qisge/internal/transport"
)

// frameBacklog bounds how many undelivered frames the server buffers while
// the host UI catches up. Payloads are diffs, so none may be discarded: when
// the backlog is full the read loop stalls and TCP flow control pushes back
// on the game's Send until the host drains.
const frameBacklog = 16

// Server is the host-side endpoint of a WebSocket exchange. It accepts one
// game connection at a time; a new connection replaces the previous one.
type Server struct {
	addr     string
	logger   *log.Logger
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	frames chan []byte
	done   chan struct{}
	ln     net.Listener

	closeOnce sync.Once

	mu   sync.Mutex
	conn *websocket.Conn
}

// NewServer creates a bridge server listening on addr.
func NewServer(addr string, logger *log.Logger) *Server {
	s := &Server{
		addr:   addr,
		logger: logger,
		frames: make(chan []byte, frameBacklog),
		done:   make(chan struct{}),
	}

	mux := http.NewServeMux()
	mux.HandleFunc(BridgePath, s.handleBridge)
	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Start begins accepting connections in the background.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("wsbridge: listen %s: %w", s.addr, err)
	}
	s.ln = ln

	go func() {
		if err := s.httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("bridge server error", "error", err)
		}
	}()

	s.logger.Info("bridge listening", "address", s.addr, "path", BridgePath)
	return nil
}

// handleBridge upgrades a game connection and pumps its frames into the
// backlog.
func (s *Server) handleBridge(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
	}
	s.conn = conn
	s.mu.Unlock()

	s.logger.Info("game connected", "remote", r.RemoteAddr)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.logger.Info("game disconnected", "remote", r.RemoteAddr)
			s.mu.Lock()
			if s.conn == conn {
				s.conn = nil
			}
			s.mu.Unlock()
			return
		}
		select {
		case s.frames <- data:
		case <-s.done:
			return
		}
	}
}

// Addr returns the bound listen address. Valid after Start.
func (s *Server) Addr() string {
	if s.ln == nil {
		return s.addr
	}
	return s.ln.Addr().String()
}

// PollFrame consumes the oldest buffered frame without blocking.
func (s *Server) PollFrame() ([]byte, bool, error) {
	select {
	case data := <-s.frames:
		return data, true, nil
	default:
		return nil, false, nil
	}
}

// SendInput ships an input snapshot to the connected game. Snapshots sent
// while no game is connected are dropped.
func (s *Server) SendInput(ctx context.Context, snapshot []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	conn := s.conn
	s.mu.Unlock()
	if conn == nil {
		return nil
	}

	if err := conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return fmt.Errorf("wsbridge: set deadline: %w", err)
	}
	if err := conn.WriteMessage(websocket.TextMessage, snapshot); err != nil {
		return fmt.Errorf("wsbridge: send input: %w", err)
	}
	return nil
}

// Close stops the server and drops the active connection.
func (s *Server) Close() error {
	s.closeOnce.Do(func() {
		close(s.done)
	})
	s.mu.Lock()
	if s.conn != nil {
		s.conn.Close()
		s.conn = nil
	}
	s.mu.Unlock()
	return s.httpSrv.Close()
}

var _ transport.HostSide = (*Server)(nil)
