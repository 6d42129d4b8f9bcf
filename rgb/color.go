package rgb

import "fmt"

// Color is a single color as three 0-255 channels.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	Black = Color{0, 0, 0}
	White = Color{255, 255, 255}
)

// New builds a color from channel values.
func New(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b}
}

// Gray returns the luma approximation (r*11 + g*16 + b*5) / 32.
// Single-channel fixtures (amber, white, UV, dimmer) take this value.
func (c Color) Gray() uint8 {
	return uint8((int(c.R)*11 + int(c.G)*16 + int(c.B)*5) / 32)
}

// IsBlack reports whether all channels are zero.
func (c Color) IsBlack() bool {
	return c.R == 0 && c.G == 0 && c.B == 0
}

// Hex formats the color as "#rrggbb" for terminal styling.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Clamp bounds v to the 0-255 channel range.
func Clamp(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
