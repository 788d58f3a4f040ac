package color

import (
	"fmt"
	"github.com/lucasb-eyer/go-colorful"
	"math"
	"strings"
)

// Normalize returns hex as a lowercase #rrggbb triplet. Alacritty's 0xrrggbb form is accepted
func Normalize(hex string) (string, error) {
	s := strings.TrimSpace(hex)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = "#" + s[2:]
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return "", fmt.Errorf("invalid hex color %q: %w", hex, err)
	}
	return toHex(c.RGB255()), nil
}

// Lighten moves each channel of hex towards white by factor, truncating to whole channel values.
// Invalid colors are returned unchanged
func Lighten(hex string, factor float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	r, g, b := c.RGB255()
	lighten := func(v uint8) uint8 {
		return uint8(min(255, int(float64(v)+float64(255-v)*factor)))
	}
	return toHex(lighten(r), lighten(g), lighten(b))
}

// Adjust scales saturation by factor and shifts lightness proportionally, as used for muted variants of a color
func Adjust(hex string, factor float64) string {
	c, err := colorful.Hex(hex)
	if err != nil {
		return hex
	}
	h, s, l := c.Hsl()

	l = math.Max(0, math.Min(1, l+(factor-1)*0.1))
	if s > 0 {
		s = math.Max(0, math.Min(1, s*factor))
	}
	return toHex(colorful.Hsl(h, s, l).Clamped().RGB255())
}

func toHex(r, g, b uint8) string {
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}
