// Package bounce is a small exercise scene: a walled room, a player moved with
// the arrow keys, a banner that follows the player, and a tune toggled with
// the action key. It touches every proxy kind, which makes it the standard
// smoke test for a freshly wired host.
package bounce

import (
	"github.com/qisge/qisge/internal/core"
	"github.com/qisge/qisge/internal/engine"
	"github.com/qisge/qisge/internal/registry"
)

const step = 0.2

// Game implements the bounce room.
type Game struct {
	player *engine.Sprite
	banner *engine.Text
	tune   *engine.Sound

	width  int
	height int
	x, y   float64
}

// New creates a bounce room.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("bounce", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "bounce" }

// Title returns the display name.
func (g *Game) Title() string { return "Bounce Room" }

// Init builds the walls, the player, the banner, and the tune.
func (g *Game) Init(s *engine.Session, cfg core.RuntimeConfig) error {
	g.width = cfg.ScreenW
	g.height = cfg.ScreenH
	if g.width <= 0 || g.height <= 0 {
		def := core.DefaultConfig()
		g.width, g.height = def.ScreenW, def.ScreenH
	}

	s.Images("wall.png", "player.png")
	s.Sounds("tune.wav")

	for x := 0; x < g.width; x++ {
		s.NewSpriteAt(0, float64(x), 0, 0)
		s.NewSpriteAt(0, float64(x), float64(g.height-1), 0)
	}
	for y := 1; y < g.height-1; y++ {
		s.NewSpriteAt(0, 0, float64(y), 0)
		s.NewSpriteAt(0, float64(g.width-1), float64(y), 0)
	}

	g.x = float64(g.width) / 2
	g.y = float64(g.height) / 2
	g.player = s.NewSpriteAt(1, g.x, g.y, 1)

	g.banner = s.NewText("Arrows move, space sings", 24, 1)
	g.banner.SetX(g.x)
	g.banner.SetY(float64(g.height - 2))
	g.banner.SetBackgroundColor(core.ColorSky)

	g.tune = s.NewSound(0)
	return nil
}

// Step moves the player inside the walls and toggles the tune on the action
// key. The banner trails the player horizontally.
func (g *Game) Step(in engine.Snapshot) (bool, error) {
	if in.Quit() {
		return false, nil
	}

	if in.Pressed(engine.KeyUp) {
		g.y += step
	}
	if in.Pressed(engine.KeyDown) {
		g.y -= step
	}
	if in.Pressed(engine.KeyRight) {
		g.x += step
	}
	if in.Pressed(engine.KeyLeft) {
		g.x -= step
	}
	g.x = core.ClampF(g.x, 1, float64(g.width-2))
	g.y = core.ClampF(g.y, 1, float64(g.height-2))

	g.player.SetPosition(g.x, g.y)
	g.banner.SetX(g.x)

	if in.Pressed(engine.KeyAction) {
		if g.tune.Playmode() == engine.PlaymodeLoop {
			g.tune.Stop()
		} else {
			g.tune.Loop()
		}
	}
	return true, nil
}
