package park

import (
	"context"
	"math/rand"
	"testing"

	"github.com/qisge/qisge/internal/core"
	"github.com/qisge/qisge/internal/engine"
	"github.com/qisge/qisge/internal/transport/memory"
)

func TestTerrainDeterministic(t *testing.T) {
	a := newTerrain(rand.New(rand.NewSource(7)), len(terrainImages))
	b := newTerrain(rand.New(rand.NewSource(7)), len(terrainImages))

	for x := -20; x <= 20; x += 5 {
		for y := -20; y <= 20; y += 5 {
			if a.imageID(x, y) != b.imageID(x, y) {
				t.Fatalf("Equal seeds disagree at (%d,%d)", x, y)
			}
		}
	}
}

func TestTerrainIDsInRange(t *testing.T) {
	terr := newTerrain(rand.New(rand.NewSource(42)), len(terrainImages))

	for x := -50; x <= 50; x += 3 {
		for y := -50; y <= 50; y += 3 {
			id := terr.imageID(x, y)
			if id < 0 || id >= len(terrainImages) {
				t.Fatalf("Tile id %d at (%d,%d) out of range", id, x, y)
			}
		}
	}
}

func TestTerrainVaries(t *testing.T) {
	terr := newTerrain(rand.New(rand.NewSource(1)), len(terrainImages))

	seen := make(map[int]bool)
	for x := -50; x <= 50; x++ {
		for y := -50; y <= 50; y++ {
			seen[terr.imageID(x, y)] = true
		}
	}
	if len(seen) < 2 {
		t.Errorf("Expected a varied landscape, got %d tile type(s)", len(seen))
	}
}

func newTestSetup(t *testing.T) (*Game, *engine.Session, *memory.HostEnd) {
	t.Helper()

	end, host := memory.NewPair()
	s, err := engine.NewSession(end)
	if err != nil {
		t.Fatalf("NewSession() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	g := New()
	if err := g.Init(s, core.RuntimeConfig{ScreenW: 28, ScreenH: 16, FPS: 30, Seed: 99}); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}
	return g, s, host
}

func TestInitFillsScreen(t *testing.T) {
	g, s, _ := newTestSetup(t)

	p := s.Ledger().Drain()
	if got := len(p.Changes(engine.KindSprite)); got != 28*16 {
		t.Errorf("Expected %d pending sprites, got %d", 28*16, got)
	}
	if got := len(p.Changes(engine.KindText)); got != 1 {
		t.Errorf("Expected 1 pending text, got %d", got)
	}
	if g.images.Len() != len(terrainImages) {
		t.Errorf("Expected %d images, got %d", len(terrainImages), g.images.Len())
	}
}

func TestStepScrollsOnArrows(t *testing.T) {
	g, s, host := newTestSetup(t)

	ctx := context.Background()
	if _, err := s.Update(ctx); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if _, ok, err := host.PollFrame(); err != nil || !ok {
		t.Fatalf("PollFrame() = ok=%v err=%v", ok, err)
	}

	running, err := g.Step(engine.Snapshot{KeyPresses: []int{engine.KeyRight}})
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if !running {
		t.Fatal("Step() should keep running on movement")
	}
	if x, y := g.Position(); x != 1 || y != 0 {
		t.Errorf("Expected position (1,0), got (%d,%d)", x, y)
	}

	// Scrolling retiles; at least one visible tile should change image.
	if len(s.Ledger().Drain().Changes(engine.KindSprite)) == 0 {
		t.Error("Scrolling should journal sprite changes")
	}
}

func TestStepIdleJournalsNothing(t *testing.T) {
	g, s, host := newTestSetup(t)

	ctx := context.Background()
	if _, err := s.Update(ctx); err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	//nolint:errcheck // Memory host cannot fail
	host.PollFrame()

	if _, err := g.Step(engine.Snapshot{}); err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if s.Ledger().Pending() {
		t.Error("Idle frame should journal nothing")
	}
}

func TestStepQuitStops(t *testing.T) {
	g, _, _ := newTestSetup(t)

	running, err := g.Step(engine.Snapshot{KeyPresses: []int{engine.KeyQuit}})
	if err != nil {
		t.Fatalf("Step() failed: %v", err)
	}
	if running {
		t.Error("Quit key should stop the game")
	}
}
