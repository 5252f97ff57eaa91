package palette

import (
	"encoding/hex"
	"fmt"
	"image/color"
	"strings"
)

// Color is an 8-bit-per-channel RGB color.
type Color struct {
	R, G, B uint8
}

var _ color.Color = Color{}

// ParseHex parses a "#RRGGBB" or "RRGGBB" string.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: want 6 digits", s)
	}

	var rgb [3]byte
	if _, err := hex.Decode(rgb[:], []byte(s)); err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}

	return Color{R: rgb[0], G: rgb[1], B: rgb[2]}, nil
}

// RGBA implements color.Color. The color is fully opaque.
func (c Color) RGBA() (r, g, b, a uint32) {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}.RGBA()
}

// Hex returns the color as "#RRGGBB".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

// Normalized returns the channels in the 0-1 range.
func (c Color) Normalized() (r, g, b float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255
}
