// Package hexcolor parses CSS-style hex colors for both the settings file and
// the overlay stylesheet.
package hexcolor

import "fmt"

// RGBA is a parsed color, 0-255 per channel.
type RGBA struct{ R, G, B, A uint8 }

// Parse accepts #RGB, #RGBA, #RRGGBB and #RRGGBBAA. The leading # is
// required; alpha defaults to 255.
func Parse(s string) (RGBA, error) {
	if len(s) < 4 || s[0] != '#' {
		return RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	hex := s[1:]
	var ch [4]uint8
	ch[3] = 255
	for i := range len(hex) {
		if _, ok := nibble(hex[i]); !ok {
			return RGBA{}, fmt.Errorf("invalid hex color %q", s)
		}
	}
	switch len(hex) {
	case 3, 4:
		for i := range len(hex) {
			v, _ := nibble(hex[i])
			ch[i] = v * 17
		}
	case 6, 8:
		for i := range len(hex) / 2 {
			hi, _ := nibble(hex[2*i])
			lo, _ := nibble(hex[2*i+1])
			ch[i] = hi<<4 | lo
		}
	default:
		return RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	return RGBA{ch[0], ch[1], ch[2], ch[3]}, nil
}

// Floats returns the color channels scaled to [0,1].
func (c RGBA) Floats() (r, g, b, a float32) {
	return float32(c.R) / 255, float32(c.G) / 255, float32(c.B) / 255, float32(c.A) / 255
}

func nibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
