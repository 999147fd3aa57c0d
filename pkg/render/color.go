// pkg/render/color.go
package render

import (
	"fmt"
	"image/color"
	"strings"
)

// Palette holds the colors needed to render the map background and overlays.
type Palette struct {
	Background  color.RGBA
	Grass       color.RGBA
	Water       color.RGBA
	Shore       color.RGBA
	Soil        color.RGBA
	Structure   color.RGBA
	Spawn       color.RGBA
	Goal        color.RGBA
	Agent       color.RGBA
	Path        color.RGBA
	Text        color.RGBA
	StrokeWidth float32
}

// DarkenColor reduces the brightness of a color.
func DarkenColor(c color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8(float64(c.R) * 0.5),
		G: uint8(float64(c.G) * 0.5),
		B: uint8(float64(c.B) * 0.5),
		A: c.A,
	}
}

// LightenColor adds delta to every channel, clamped at 255.
func LightenColor(c color.RGBA, delta int) color.RGBA {
	return color.RGBA{
		R: uint8(min(255, int(c.R)+delta)),
		G: uint8(min(255, int(c.G)+delta)),
		B: uint8(min(255, int(c.B)+delta)),
		A: 255,
	}
}

// ParseHex reads "#rrggbb" or "rrggbb".
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	var c color.RGBA
	if len(s) != 6 {
		return c, fmt.Errorf("bad color %q", s)
	}
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B); err != nil {
		return c, fmt.Errorf("bad color %q: %w", s, err)
	}
	c.A = 255
	return c, nil
}
