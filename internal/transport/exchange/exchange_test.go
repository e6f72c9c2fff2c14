package exchange

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/qisge/qisge/internal/transport"
)

func openPair(t *testing.T, opts Options) (*Exchange, *Host) {
	t.Helper()
	dir := t.TempDir()
	opts.Dir = dir

	e, err := Open(opts)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	h, err := OpenHost(dir)
	if err != nil {
		t.Fatalf("OpenHost() failed: %v", err)
	}
	return e, h
}

func TestSendAndPollFrame(t *testing.T) {
	ctx := context.Background()
	e, h := openPair(t, Options{})

	if err := e.Send(ctx, []byte(`{"sprite_changes":[]}`)); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	data, ok, err := h.PollFrame()
	if err != nil || !ok {
		t.Fatalf("PollFrame() ok=%v err=%v", ok, err)
	}
	if string(data) != `{"sprite_changes":[]}` {
		t.Errorf("Frame corrupted: %q", data)
	}

	// Consumption truncates: a second poll sees nothing.
	if _, ok, _ := h.PollFrame(); ok {
		t.Error("Second poll should find the channel drained")
	}
}

func TestSendWaitsForDrain(t *testing.T) {
	ctx := context.Background()
	e, h := openPair(t, Options{PollInterval: time.Millisecond})

	if err := e.Send(ctx, []byte("first")); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	// Drain the channel shortly after the second send starts polling.
	go func() {
		time.Sleep(20 * time.Millisecond)
		//nolint:errcheck // Test goroutine, failure surfaces as a timeout
		h.PollFrame()
	}()

	if err := e.Send(ctx, []byte("second")); err != nil {
		t.Fatalf("Second Send() failed: %v", err)
	}

	data, ok, err := h.PollFrame()
	if err != nil || !ok {
		t.Fatalf("PollFrame() ok=%v err=%v", ok, err)
	}
	if string(data) != "second" {
		t.Errorf("Expected second frame, got %q", data)
	}
}

func TestSendTimesOutOnStalledHost(t *testing.T) {
	ctx := context.Background()
	e, _ := openPair(t, Options{
		PollInterval: time.Millisecond,
		HostTimeout:  20 * time.Millisecond,
	})

	if err := e.Send(ctx, []byte("first")); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	err := e.Send(ctx, []byte("second"))
	if !errors.Is(err, transport.ErrHostUnresponsive) {
		t.Errorf("Expected ErrHostUnresponsive, got %v", err)
	}
}

func TestSendNoWaitOverwrites(t *testing.T) {
	ctx := context.Background()
	e, h := openPair(t, Options{NoWait: true})

	if err := e.Send(ctx, []byte("first")); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if err := e.Send(ctx, []byte("second")); err != nil {
		t.Fatalf("Overwriting Send() failed: %v", err)
	}

	data, _, _ := h.PollFrame()
	if string(data) != "second" {
		t.Errorf("Expected latest frame, got %q", data)
	}
}

func TestSendCancelled(t *testing.T) {
	e, _ := openPair(t, Options{PollInterval: time.Millisecond})

	if err := e.Send(context.Background(), []byte("first")); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Millisecond)
	defer cancel()
	if err := e.Send(ctx, []byte("second")); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected context deadline error, got %v", err)
	}
}

func TestReadInputConsumes(t *testing.T) {
	ctx := context.Background()
	e, h := openPair(t, Options{})

	if err := h.SendInput(ctx, []byte(`{"key_presses":[7]}`)); err != nil {
		t.Fatalf("SendInput() failed: %v", err)
	}

	data, err := e.ReadInput(ctx)
	if err != nil {
		t.Fatalf("ReadInput() failed: %v", err)
	}
	if string(data) != `{"key_presses":[7]}` {
		t.Errorf("Input corrupted: %q", data)
	}

	// A second read without a fresh host write yields nothing.
	data, err = e.ReadInput(ctx)
	if err != nil {
		t.Fatalf("ReadInput() failed: %v", err)
	}
	if len(data) != 0 {
		t.Errorf("Second read should be empty, got %q", data)
	}
}

func TestScrubEmptiesBothChannels(t *testing.T) {
	ctx := context.Background()
	e, h := openPair(t, Options{})

	if err := e.Send(ctx, []byte("frame")); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}
	if err := h.SendInput(ctx, []byte("input")); err != nil {
		t.Fatalf("SendInput() failed: %v", err)
	}

	if err := e.Scrub(); err != nil {
		t.Fatalf("Scrub() failed: %v", err)
	}
	if _, ok, _ := h.PollFrame(); ok {
		t.Error("Frame channel should be empty after scrub")
	}
	if data, _ := e.ReadInput(ctx); len(data) != 0 {
		t.Error("Input channel should be empty after scrub")
	}
}

func TestNoTempFilesLeftBehind(t *testing.T) {
	ctx := context.Background()
	e, _ := openPair(t, Options{})

	if err := e.Send(ctx, []byte("frame")); err != nil {
		t.Fatalf("Send() failed: %v", err)
	}

	entries, err := os.ReadDir(e.dir)
	if err != nil {
		t.Fatalf("ReadDir() failed: %v", err)
	}
	for _, entry := range entries {
		if entry.Name() != FrameFile && entry.Name() != InputFile {
			t.Errorf("Unexpected file in exchange dir: %s", entry.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(e.dir, FrameFile)); err != nil {
		t.Errorf("Frame file missing: %v", err)
	}
}
