package host

import (
	"hash/fnv"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/qisge/qisge/internal/core"
)

// tileRunes is the glyph palette for sprites. The terminal cannot show image
// files, so each image id gets a stable glyph and each filename a stable hue.
var tileRunes = []rune{'░', '▒', '▓', '█', '●', '◆', '▲', '■', '◉', '✦'}

// Render draws the scene into the screen buffer. World coordinates follow the
// game: y grows upward and the camera position is the view's bottom-left
// corner. Sprites go back to front, visible texts on top.
func Render(sc *Scene, screen *core.Screen) {
	screen.Clear()

	camX, camY := sc.Camera.X, sc.Camera.Y

	for _, sp := range sc.SpritesByDepth() {
		sx := int(math.Round(sp.X - camX))
		sy := screen.Height() - 1 - int(math.Round(sp.Y-camY))
		screen.Set(sx, sy, spriteCell(sp.ImageID, sc.Images[sp.ImageID]))
	}

	for _, tx := range sc.TextsByDepth() {
		x := int(math.Round(tx.X - camX))
		y := screen.Height() - 1 - int(math.Round(tx.Y-camY))
		text := tx.Text
		if w := int(tx.Width); w > 0 && len([]rune(text)) > w {
			text = string([]rune(text)[:w])
		}
		screen.DrawText(x, y, text, tx.FontColor, tx.BgColor, tx.BgColor != core.ColorBlack)
	}
}

// spriteCell picks the glyph and color for an image id.
func spriteCell(imageID int, filename string) core.Cell {
	r := tileRunes[((imageID%len(tileRunes))+len(tileRunes))%len(tileRunes)]
	return core.Cell{Rune: r, Fg: filenameColor(filename), FgSet: true}
}

// filenameColor derives a stable, reasonably bright color from a filename.
func filenameColor(name string) core.RGB {
	if name == "" {
		return core.ColorWhite
	}
	h := fnv.New32a()
	//nolint:errcheck // fnv writes cannot fail
	h.Write([]byte(name))
	sum := h.Sum32()
	return core.RGB{
		96 + uint8(sum)%160,
		96 + uint8(sum>>8)%160,
		96 + uint8(sum>>16)%160,
	}
}

// Styled converts a rendered screen buffer to a styled terminal string.
// Adjacent cells with identical styling share one escape sequence.
func Styled(screen *core.Screen) string {
	var sb strings.Builder
	sb.Grow(screen.Width()*screen.Height()*2 + screen.Height())

	for y := 0; y < screen.Height(); y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < screen.Width() {
			start := screen.Get(x, y)

			var run strings.Builder
			for x < screen.Width() {
				cell := screen.Get(x, y)
				if !sameStyle(cell, start) {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			sb.WriteString(cellStyle(start).Render(run.String()))
		}
	}
	return sb.String()
}

func sameStyle(a, b core.Cell) bool {
	return a.FgSet == b.FgSet && a.BgSet == b.BgSet &&
		(!a.FgSet || a.Fg == b.Fg) && (!a.BgSet || a.Bg == b.Bg)
}

func cellStyle(c core.Cell) lipgloss.Style {
	style := lipgloss.NewStyle()
	if c.FgSet {
		style = style.Foreground(lipgloss.Color(c.Fg.Hex()))
	}
	if c.BgSet {
		style = style.Background(lipgloss.Color(c.Bg.Hex()))
	}
	return style
}
