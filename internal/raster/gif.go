package raster

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"io"

	"github.com/iburimskiy/constellation/internal/constellation"
)

// ErrStalled is returned by Record when the simulation stops scheduling frames.
var ErrStalled = errors.New("raster: no frame scheduled")

// GIFEncoder collects canvas frames into an animated GIF. Every drawn color is
// a node or edge color at some opacity over the background, so the palette is
// two ramps from the background toward each of them.
type GIFEncoder struct {
	Background color.RGBA
	Delay      int // hundredths of a second per frame

	palette color.Palette
	index   map[color.RGBA]uint8
	anim    gif.GIF
}

// NewGIFEncoder builds the palette and derives the frame delay from tps.
func NewGIFEncoder(bg, nodeColor, edgeColor color.RGBA, tps int) *GIFEncoder {
	bg.A = 0xff
	palette := make(color.Palette, 0, 256)
	palette = append(palette, bg)
	palette = append(palette, ramp(bg, nodeColor, 128)...)
	palette = append(palette, ramp(bg, edgeColor, 127)...)

	delay := 2
	if tps > 0 {
		delay = max(2, 100/tps)
	}

	return &GIFEncoder{
		Background: bg,
		Delay:      delay,
		palette:    palette,
		index:      make(map[color.RGBA]uint8),
	}
}

func ramp(from, to color.RGBA, steps int) []color.Color {
	out := make([]color.Color, steps)
	for i := range steps {
		t := float64(i+1) / float64(steps)
		out[i] = color.RGBA{
			R: lerp(from.R, to.R, t),
			G: lerp(from.G, to.G, t),
			B: lerp(from.B, to.B, t),
			A: 0xff,
		}
	}
	return out
}

func lerp(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}

// AddFrame flattens img over the background and appends it.
func (e *GIFEncoder) AddFrame(img *image.RGBA) {
	b := img.Bounds()
	frame := image.NewPaletted(b, e.palette)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			frame.SetColorIndex(x, y, e.lookup(Flatten(img.RGBAAt(x, y), e.Background)))
		}
	}
	e.anim.Image = append(e.anim.Image, frame)
	e.anim.Delay = append(e.anim.Delay, e.Delay)
}

func (e *GIFEncoder) lookup(c color.RGBA) uint8 {
	if i, ok := e.index[c]; ok {
		return i
	}
	i := uint8(e.palette.Index(c))
	e.index[c] = i
	return i
}

func (e *GIFEncoder) Frames() int { return len(e.anim.Image) }

// Encode writes the animation, looping forever.
func (e *GIFEncoder) Encode(w io.Writer) error {
	if len(e.anim.Image) == 0 {
		return errors.New("raster: no frames to encode")
	}
	e.anim.LoopCount = 0
	return gif.EncodeAll(w, &e.anim)
}

// Record runs warmup ticks without keeping them, then frames ticks, adding the
// canvas to enc after each one.
func Record(ctx context.Context, queue *constellation.FrameQueue, canvas *Canvas, enc *GIFEncoder, warmup, frames int) error {
	for i := range warmup + frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !queue.RunPending() {
			return fmt.Errorf("frame %d: %w", i, ErrStalled)
		}
		if i >= warmup {
			enc.AddFrame(canvas.Image())
		}
	}
	return nil
}
