// Package wsbridge implements the exchange over a WebSocket connection. The
// game dials the host and ships each frame payload as one message; input
// snapshots come back the same way. Message framing removes the busy-wait the
// file exchange needs: a frame is either in flight or delivered, never half
// written.
package wsbridge

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/qisge/qisge/internal/transport"
)

// BridgePath is the URL path the host serves the bridge on.
const BridgePath = "/bridge"

const writeTimeout = 10 * time.Second

// Client is the game-side endpoint of a WebSocket exchange.
type Client struct {
	conn    *websocket.Conn
	writeMu sync.Mutex

	inputs  chan []byte
	done    chan struct{}
	readErr error

	closeOnce sync.Once
}

// Dial connects to a bridge host at the given URL (ws://host:port/bridge).
func Dial(ctx context.Context, url string) (*Client, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("wsbridge: dial %s: %w", url, err)
	}

	c := &Client{
		conn:   conn,
		inputs: make(chan []byte, 1),
		done:   make(chan struct{}),
	}
	go c.readLoop()
	return c, nil
}

// readLoop pulls input snapshots off the socket; the latest undelivered
// snapshot wins, matching the consume-once file semantics.
func (c *Client) readLoop() {
	defer close(c.done)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			c.readErr = err
			return
		}
		for {
			select {
			case c.inputs <- data:
			default:
				select {
				case <-c.inputs:
				default:
				}
				continue
			}
			break
		}
	}
}

// Send ships one frame payload to the host. The host applies backpressure by
// stalling its reads, so a write that times out means the host stopped
// draining frames.
func (c *Client) Send(ctx context.Context, frame []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	deadline := time.Now().Add(writeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := c.conn.SetWriteDeadline(deadline); err != nil {
		return fmt.Errorf("wsbridge: set deadline: %w", err)
	}
	if err := c.conn.WriteMessage(websocket.TextMessage, frame); err != nil {
		if os.IsTimeout(err) {
			return fmt.Errorf("frame unconsumed after %s: %w",
				writeTimeout, transport.ErrHostUnresponsive)
		}
		return fmt.Errorf("wsbridge: send frame: %w", err)
	}
	return nil
}

// ReadInput consumes the pending input snapshot without blocking. A lost
// connection surfaces here as the read loop's error.
func (c *Client) ReadInput(ctx context.Context) ([]byte, error) {
	select {
	case data := <-c.inputs:
		return data, nil
	case <-c.done:
		return nil, fmt.Errorf("wsbridge: connection lost: %w", c.readErr)
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
		return nil, nil
	}
}

// Scrub drops any snapshot buffered before the session started.
func (c *Client) Scrub() error {
	select {
	case <-c.inputs:
	default:
	}
	return nil
}

// Close shuts the connection down.
func (c *Client) Close() error {
	var err error
	c.closeOnce.Do(func() {
		deadline := time.Now().Add(time.Second)
		//nolint:errcheck // Best-effort close handshake
		c.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = c.conn.Close()
	})
	return err
}

var _ transport.Transport = (*Client)(nil)
