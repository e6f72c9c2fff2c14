package host

import (
	"strings"
	"testing"

	"github.com/qisge/qisge/internal/core"
	"github.com/qisge/qisge/internal/engine"
)

func applyPayload(t *testing.T, sc *Scene, p engine.Payload) {
	t.Helper()
	if _, err := sc.Apply(p); err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
}

func TestRenderPlacesSprite(t *testing.T) {
	sc := NewScene()
	applyPayload(t, sc, engine.Payload{
		ImageChanges:  []engine.ImageChange{{ImageID: 0, Filename: "dot.png"}},
		SpriteChanges: []engine.ChangeSet{{"sprite_id": 0, "image_id": 0, "x": 3.0, "y": 2.0}},
	})

	screen := core.NewScreen(10, 5)
	Render(sc, screen)

	// World y grows upward; row 0 is the top of the terminal.
	cell := screen.Get(3, screen.Height()-1-2)
	if cell.Rune == ' ' {
		t.Error("Sprite cell is blank")
	}
	if !cell.FgSet {
		t.Error("Sprite cell should carry a color")
	}
}

func TestRenderAppliesCameraOffset(t *testing.T) {
	sc := NewScene()
	applyPayload(t, sc, engine.Payload{
		SpriteChanges: []engine.ChangeSet{{"sprite_id": 0, "image_id": 0, "x": 5.0, "y": 5.0}},
		CameraChanges: []engine.ChangeSet{{"camera_id": 0, "x": 3.0, "y": 4.0}},
	})

	screen := core.NewScreen(10, 5)
	Render(sc, screen)

	cell := screen.Get(2, screen.Height()-1-1)
	if cell.Rune == ' ' {
		t.Error("Sprite should appear shifted by the camera offset")
	}
}

func TestRenderZOrder(t *testing.T) {
	sc := NewScene()
	applyPayload(t, sc, engine.Payload{
		SpriteChanges: []engine.ChangeSet{
			{"sprite_id": 0, "image_id": 0, "x": 1.0, "y": 1.0, "z": 1.0},
			{"sprite_id": 1, "image_id": 1, "x": 1.0, "y": 1.0, "z": 0.0},
		},
	})

	screen := core.NewScreen(5, 3)
	Render(sc, screen)

	// The higher z sprite wins the shared cell.
	want := spriteCell(0, "").Rune
	if got := screen.Get(1, screen.Height()-1-1).Rune; got != want {
		t.Errorf("Expected front sprite glyph %q, got %q", want, got)
	}
}

func TestRenderDrawsVisibleText(t *testing.T) {
	sc := NewScene()
	applyPayload(t, sc, engine.Payload{
		TextChanges: []engine.ChangeSet{
			{"text_id": 0, "text": "hi", "width": 10.0, "x": 1.0, "y": 0.0,
				"font_color": []any{0.0, 255.0, 0.0}},
			{"text_id": 1, "text": "nope", "width": 0.0, "x": 1.0, "y": 2.0},
		},
	})

	screen := core.NewScreen(10, 4)
	Render(sc, screen)

	row := screen.Height() - 1
	if screen.Get(1, row).Rune != 'h' || screen.Get(2, row).Rune != 'i' {
		t.Errorf("Text not drawn: %q", screen.String())
	}
	if screen.Get(1, row).Fg != core.ColorGreen {
		t.Errorf("Font color lost: %v", screen.Get(1, row).Fg)
	}
	if strings.Contains(screen.String(), "nope") {
		t.Error("Zero-width text should be hidden")
	}
}

func TestRenderTruncatesTextToWidth(t *testing.T) {
	sc := NewScene()
	applyPayload(t, sc, engine.Payload{
		TextChanges: []engine.ChangeSet{
			{"text_id": 0, "text": "abcdef", "width": 3.0, "x": 0.0, "y": 0.0},
		},
	})

	screen := core.NewScreen(10, 2)
	Render(sc, screen)

	got := screen.String()
	if strings.Contains(got, "abcd") {
		t.Errorf("Text should be cut at its width: %q", got)
	}
	if !strings.Contains(got, "abc") {
		t.Errorf("Truncated text missing: %q", got)
	}
}

func TestStyledEmitsEveryRow(t *testing.T) {
	screen := core.NewScreen(4, 3)
	screen.DrawText(0, 1, "ab", core.ColorRed, core.ColorBlack, false)

	out := Styled(screen)
	if got := strings.Count(out, "\n"); got != 2 {
		t.Errorf("Expected 2 newlines for 3 rows, got %d", got)
	}
	if !strings.Contains(out, "ab") {
		t.Errorf("Styled output lost the text: %q", out)
	}
}

func TestFilenameColorStable(t *testing.T) {
	a := filenameColor("grass.png")
	b := filenameColor("grass.png")
	if a != b {
		t.Error("Same filename must map to the same color")
	}
}
