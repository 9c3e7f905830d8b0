// Package backdrop renders the slowly drifting noise texture shown behind
// the constellation in the window host.
package backdrop

import (
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
	opensimplex "github.com/ojrac/opensimplex-go"
)

const noiseScale = 0.045

// Texture is a low resolution RGBA noise field tinted from black toward a
// color. It is scaled up when drawn.
type Texture struct {
	Scale int
	Drift float64

	noise   opensimplex.Noise
	palette [256]color.RGBA
	time    float64
	width   int
	height  int
	pix     []byte
}

// New creates a texture. scale is the number of screen pixels per texel and
// drift the noise time added per frame.
func New(seed int64, tint color.RGBA, scale int, drift float64) *Texture {
	t := &Texture{
		Scale: max(scale, 1),
		Drift: drift,
		noise: opensimplex.New(seed),
	}

	black := colorful.Color{}
	target, _ := colorful.MakeColor(color.RGBA{R: tint.R, G: tint.G, B: tint.B, A: 0xff})
	for i := range t.palette {
		r, g, b := black.BlendLab(target, float64(i)/255).Clamped().RGB255()
		t.palette[i] = color.RGBA{R: r, G: g, B: b, A: 0xff}
	}
	return t
}

// Resize sets the texture size for a screen of width x height pixels.
func (t *Texture) Resize(width, height int) {
	t.width = ceilDiv(max(width, 0), t.Scale)
	t.height = ceilDiv(max(height, 0), t.Scale)
	t.pix = make([]byte, t.width*t.height*4)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

// Size is the texture size in texels.
func (t *Texture) Size() (int, int) { return t.width, t.height }

// Advance moves the noise forward by one frame.
func (t *Texture) Advance() {
	t.time += t.Drift
}

// Render fills and returns the texel buffer for the current time, in the
// layout ebiten.Image.WritePixels expects.
func (t *Texture) Render() []byte {
	i := 0
	for y := 0; y < t.height; y++ {
		for x := 0; x < t.width; x++ {
			n := t.noise.Eval3(float64(x)*noiseScale, float64(y)*noiseScale, t.time)
			c := t.palette[shade(n)]
			t.pix[i] = c.R
			t.pix[i+1] = c.G
			t.pix[i+2] = c.B
			t.pix[i+3] = c.A
			i += 4
		}
	}
	return t.pix
}

// shade maps noise in [-1,1] to a palette index, keeping the darker half of
// the field black so the tint reads as patches rather than a wash.
func shade(n float64) uint8 {
	v := n
	if v < 0 {
		return 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(v * 255)
}
