package constellation

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// ColorWithAlpha returns c with its alpha replaced. Alpha outside [0,1] is
// clamped here, at the point the color reaches a surface.
func ColorWithAlpha(c color.RGBA, alpha float64) color.NRGBA {
	if math.IsNaN(alpha) || alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(math.Round(alpha * 255))}
}

// ParseColor accepts "rgb(r, g, b)", "#rrggbb" and "#rgb" notations and
// returns an opaque color. Edge and node opacity come from the simulation, so
// there is no alpha form.
func ParseColor(s string) (color.RGBA, error) {
	s = strings.TrimSpace(s)
	lower := strings.ToLower(s)

	if strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")") {
		parts := strings.Split(lower[len("rgb("):len(lower)-1], ",")
		if len(parts) != 3 {
			return color.RGBA{}, fmt.Errorf("invalid color %q: want 3 components", s)
		}
		var ch [3]uint8
		for i, p := range parts {
			v, err := strconv.Atoi(strings.TrimSpace(p))
			if err != nil || v < 0 || v > 255 {
				return color.RGBA{}, fmt.Errorf("invalid color %q: component %q", s, strings.TrimSpace(p))
			}
			ch[i] = uint8(v)
		}
		return color.RGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
	}

	c, err := colorful.Hex(s)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: want rgb(r, g, b), #rrggbb or #rgb", s)
	}
	r, g, b := c.RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}
