// Package park implements the quantum park walker: an endless terrain of
// tiles derived from single-qubit circuits, scrolled with the arrow keys.
package park

import (
	"math/rand"
	"time"

	"github.com/qisge/qisge/internal/core"
	"github.com/qisge/qisge/internal/engine"
	"github.com/qisge/qisge/internal/registry"
)

var terrainImages = []string{
	"terrain-water.png",
	"terrain-red-flower.png",
	"terrain-grass.png",
	"terrain-path.png",
	"terrain-grass.png",
	"terrain-purple-flower.png",
	"terrain-tree.png",
}

// Game implements the park walker.
type Game struct {
	terr   terrain
	images *engine.ImageList
	tiles  [][]*engine.Sprite

	posX, posY int
	width      int
	height     int
}

// New creates a park walker.
func New() *Game {
	return &Game{}
}

func init() {
	registry.Register("park", func() registry.Game {
		return New()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string { return "park" }

// Title returns the display name.
func (g *Game) Title() string { return "Quantum Park" }

// Init registers the terrain tiles and fills the screen with one sprite per
// visible tile.
func (g *Game) Init(s *engine.Session, cfg core.RuntimeConfig) error {
	g.width = cfg.ScreenW
	g.height = cfg.ScreenH
	if g.width <= 0 || g.height <= 0 {
		def := core.DefaultConfig()
		g.width, g.height = def.ScreenW, def.ScreenH
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g.terr = newTerrain(rand.New(rand.NewSource(seed)), len(terrainImages))

	loading := s.NewText("Creating Park", 16, 2)
	loading.SetX(6)
	loading.SetY(8)
	loading.SetFontColor(core.ColorBlue)

	g.images = s.Images(terrainImages...)

	g.tiles = make([][]*engine.Sprite, g.width)
	for dx := 0; dx < g.width; dx++ {
		g.tiles[dx] = make([]*engine.Sprite, g.height)
		for dy := 0; dy < g.height; dy++ {
			id := g.terr.imageID(g.posX+dx, g.posY+dy)
			g.tiles[dx][dy] = s.NewSpriteAt(id, float64(dx), float64(dy), 0)
		}
	}

	loading.SetWidth(0)
	return nil
}

// Step scrolls the map on arrow presses. Only tiles whose image actually
// changes produce journal entries, so standing still sends nothing.
func (g *Game) Step(in engine.Snapshot) (bool, error) {
	if in.Quit() {
		return false, nil
	}

	moved := false
	if in.Pressed(engine.KeyUp) {
		g.posY++
		moved = true
	}
	if in.Pressed(engine.KeyRight) {
		g.posX++
		moved = true
	}
	if in.Pressed(engine.KeyDown) {
		g.posY--
		moved = true
	}
	if in.Pressed(engine.KeyLeft) {
		g.posX--
		moved = true
	}

	if moved {
		g.retile()
	}
	return true, nil
}

func (g *Game) retile() {
	for dx := 0; dx < g.width; dx++ {
		for dy := 0; dy < g.height; dy++ {
			g.tiles[dx][dy].SetImageID(g.terr.imageID(g.posX+dx, g.posY+dy))
		}
	}
}

// Position returns the current map offset.
func (g *Game) Position() (int, int) {
	return g.posX, g.posY
}
