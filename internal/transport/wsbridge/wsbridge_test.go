package wsbridge

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	srv := NewServer("127.0.0.1:0", log.New(io.Discard))
	if err := srv.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	t.Cleanup(func() { srv.Close() })
	return srv
}

func dialTestClient(t *testing.T, srv *Server) *Client {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	c, err := Dial(ctx, "ws://"+srv.Addr()+BridgePath)
	if err != nil {
		t.Fatalf("Dial() failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

// pollUntil retries a non-blocking poll until it yields or the deadline hits.
func pollUntil(t *testing.T, timeout time.Duration, poll func() ([]byte, bool)) []byte {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if data, ok := poll(); ok {
			return data
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Poll timed out")
	return nil
}

func TestFrameRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	c := dialTestClient(t, srv)

	frame := []byte(`{"sprite_changes":[{"sprite_id":0,"x":1}]}`)
	if err := c.Send(context.Background(), frame); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	got := pollUntil(t, 2*time.Second, func() ([]byte, bool) {
		data, ok, err := srv.PollFrame()
		if err != nil {
			t.Fatalf("PollFrame() failed: %v", err)
		}
		return data, ok
	})
	if !bytes.Equal(got, frame) {
		t.Errorf("Frame corrupted: %q", got)
	}
}

func TestInputRoundTrip(t *testing.T) {
	srv := newTestServer(t)
	c := dialTestClient(t, srv)

	// Wait for the server to register the connection.
	deadline := time.Now().Add(2 * time.Second)
	for {
		srv.mu.Lock()
		connected := srv.conn != nil
		srv.mu.Unlock()
		if connected {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("Game never connected")
		}
		time.Sleep(5 * time.Millisecond)
	}

	input := []byte(`{"key_presses":[1],"clicks":[]}`)
	if err := srv.SendInput(context.Background(), input); err != nil {
		t.Fatalf("SendInput() failed: %v", err)
	}

	got := pollUntil(t, 2*time.Second, func() ([]byte, bool) {
		data, err := c.ReadInput(context.Background())
		if err != nil {
			t.Fatalf("ReadInput() failed: %v", err)
		}
		return data, data != nil
	})
	if !bytes.Equal(got, input) {
		t.Errorf("Input corrupted: %q", got)
	}
}

// TestStalledHostLosesNoFrames overfills the backlog while the host is not
// polling. Payloads are diffs, so every frame must survive the stall and
// arrive in order once the host drains.
func TestStalledHostLosesNoFrames(t *testing.T) {
	srv := newTestServer(t)
	c := dialTestClient(t, srv)

	const total = frameBacklog + 24
	for i := 0; i < total; i++ {
		frame := []byte(fmt.Sprintf(`{"sprite_changes":[{"sprite_id":%d}]}`, i))
		if err := c.Send(context.Background(), frame); err != nil {
			t.Fatalf("Send(%d) failed: %v", i, err)
		}
	}

	for i := 0; i < total; i++ {
		want := fmt.Sprintf(`{"sprite_changes":[{"sprite_id":%d}]}`, i)
		got := pollUntil(t, 5*time.Second, func() ([]byte, bool) {
			data, ok, err := srv.PollFrame()
			if err != nil {
				t.Fatalf("PollFrame() failed: %v", err)
			}
			return data, ok
		})
		if string(got) != want {
			t.Errorf("Frame %d: got %q, want %q", i, got, want)
		}
	}
}

func TestReadInputNonBlocking(t *testing.T) {
	srv := newTestServer(t)
	c := dialTestClient(t, srv)

	data, err := c.ReadInput(context.Background())
	if err != nil {
		t.Fatalf("ReadInput() failed: %v", err)
	}
	if data != nil {
		t.Errorf("Expected no pending input, got %q", data)
	}
}

func TestSendInputWithoutGameDrops(t *testing.T) {
	srv := newTestServer(t)

	if err := srv.SendInput(context.Background(), []byte("{}")); err != nil {
		t.Errorf("SendInput() without a game should drop, got %v", err)
	}
}

func TestReadInputAfterServerClose(t *testing.T) {
	srv := newTestServer(t)
	c := dialTestClient(t, srv)

	srv.Close()

	deadline := time.Now().Add(2 * time.Second)
	for {
		_, err := c.ReadInput(context.Background())
		if err != nil {
			return
		}
		if time.Now().After(deadline) {
			t.Fatal("ReadInput never reported the lost connection")
		}
		time.Sleep(5 * time.Millisecond)
	}
}
