package core

import "fmt"

// RGB is a 24-bit color triple. It is comparable, so proxies can use it
// directly in change detection, and it marshals to the [r, g, b] array the
// host expects.
type RGB [3]uint8

// NewRGB builds a color from its components.
func NewRGB(r, g, b uint8) RGB {
	return RGB{r, g, b}
}

// R returns the red component.
func (c RGB) R() uint8 { return c[0] }

// G returns the green component.
func (c RGB) G() uint8 { return c[1] }

// B returns the blue component.
func (c RGB) B() uint8 { return c[2] }

// Hex returns the color as a #rrggbb string, the form terminal styling
// libraries accept.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// Predefined colors used by the sample games and the dev host.
var (
	ColorBlack = RGB{0, 0, 0}
	ColorWhite = RGB{255, 255, 255}
	ColorRed   = RGB{255, 0, 0}
	ColorGreen = RGB{0, 255, 0}
	ColorBlue  = RGB{0, 0, 255}
	ColorSky   = RGB{0, 128, 255}
)
