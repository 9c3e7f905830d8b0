package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// layerSurface draws the constellation into an offscreen image. The image is
// swapped on resize while the simulation keeps the same surface.
type layerSurface struct {
	img *ebiten.Image
}

func (s *layerSurface) resize(width, height int) {
	if s.img != nil {
		s.img.Deallocate()
		s.img = nil
	}
	if width > 0 && height > 0 {
		s.img = ebiten.NewImage(width, height)
	}
}

func (s *layerSurface) Clear() {
	if s.img != nil {
		s.img.Clear()
	}
}

func (s *layerSurface) FillCircle(cx, cy, radius float64, clr color.Color) {
	if s.img == nil {
		return
	}
	vector.DrawFilledCircle(s.img, float32(cx), float32(cy), float32(radius), clr, true)
}

func (s *layerSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	if s.img == nil {
		return
	}
	vector.StrokeLine(s.img, float32(x0), float32(y0), float32(x1), float32(y1), float32(width), clr, true)
}
