package loop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/qisge/qisge/internal/core"
	"github.com/qisge/qisge/internal/engine"
	"github.com/qisge/qisge/internal/transport/memory"
)

// stepGame moves a sprite every frame and stops after a fixed number of
// steps, or earlier when the quit key arrives.
type stepGame struct {
	limit  int
	steps  int
	sprite *engine.Sprite
}

func (g *stepGame) ID() string    { return "steptest" }
func (g *stepGame) Title() string { return "Step Test" }

func (g *stepGame) Init(s *engine.Session, cfg core.RuntimeConfig) error {
	s.Images("dot.png")
	g.sprite = s.NewSprite(0)
	return nil
}

func (g *stepGame) Step(in engine.Snapshot) (bool, error) {
	if in.Quit() {
		return false, nil
	}
	g.steps++
	g.sprite.SetX(float64(g.steps))
	return g.steps < g.limit, nil
}

// drainHost consumes frames so the single-slot channel never stalls the game.
func drainHost(ctx context.Context, h *memory.HostEnd) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		//nolint:errcheck // Memory host cannot fail
		h.PollFrame()
		time.Sleep(time.Millisecond)
	}
}

func TestRunStopsWhenGameStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	game, host := memory.NewPair()
	go drainHost(ctx, host)

	s, err := engine.NewSession(game)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	r := &Runner{Session: s}

	g := &stepGame{limit: 5}
	stats, err := r.Run(ctx, g, core.RuntimeConfig{FPS: 250})
	if err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if g.steps != 5 {
		t.Errorf("Expected 5 steps, got %d", g.steps)
	}
	if stats.Frames == 0 {
		t.Error("Stats should count completed frames")
	}
}

func TestRunStopsOnQuitKey(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	game, host := memory.NewPair()
	go drainHost(ctx, host)

	s, err := engine.NewSession(game)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	quit, err := engine.Snapshot{KeyPresses: []int{engine.KeyQuit}, Clicks: []engine.Click{}}.Encode()
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			default:
			}
			//nolint:errcheck // Memory host cannot fail
			host.SendInput(ctx, quit)
			time.Sleep(time.Millisecond)
		}
	}()

	r := &Runner{Session: s}
	g := &stepGame{limit: 1 << 30}
	if _, err := r.Run(ctx, g, core.RuntimeConfig{FPS: 250}); err != nil {
		t.Fatalf("Run() failed: %v", err)
	}
	if g.steps >= 1<<30 {
		t.Error("Game should have stopped on the quit key")
	}
}

func TestRunHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	game, host := memory.NewPair()
	go drainHost(ctx, host)

	s, err := engine.NewSession(game)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}

	runCtx, runCancel := context.WithTimeout(ctx, 30*time.Millisecond)
	defer runCancel()

	r := &Runner{Session: s}
	g := &stepGame{limit: 1 << 30}
	_, err = r.Run(runCtx, g, core.RuntimeConfig{FPS: 30})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Expected deadline error, got %v", err)
	}
}
