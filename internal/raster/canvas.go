// Package raster draws the constellation in memory, for hosts without a GPU
// surface: the terminal renderer and the GIF exporter.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points for a quarter circle.
const kappa = 0.5522847498

// Canvas is an anti-aliased RGBA drawing surface. The zero value is not
// usable; create one with NewCanvas.
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewCanvas returns a transparent canvas. Negative sizes are treated as zero.
func NewCanvas(width, height int) *Canvas {
	width, height = max(width, 0), max(height, 0)
	z := vector.NewRasterizer(width, height)
	z.DrawOp = draw.Over
	return &Canvas{
		img: image.NewRGBA(image.Rect(0, 0, width, height)),
		z:   z,
	}
}

// Image exposes the backing pixels (premultiplied alpha).
func (c *Canvas) Image() *image.RGBA { return c.img }

func (c *Canvas) Size() (int, int) {
	b := c.img.Bounds()
	return b.Dx(), b.Dy()
}

func (c *Canvas) empty() bool {
	w, h := c.Size()
	return w == 0 || h == 0
}

// Clear makes every pixel fully transparent.
func (c *Canvas) Clear() {
	clear(c.img.Pix)
}

func (c *Canvas) FillCircle(cx, cy, radius float64, clr color.Color) {
	if radius <= 0 || c.empty() {
		return
	}
	r, ok := c.begin(cx-radius, cy-radius, cx+radius, cy+radius)
	if !ok {
		return
	}

	x, y := float32(cx)-float32(r.Min.X), float32(cy)-float32(r.Min.Y)
	rad := float32(radius)
	k := rad * kappa
	c.z.MoveTo(x+rad, y)
	c.z.CubeTo(x+rad, y+k, x+k, y+rad, x, y+rad)
	c.z.CubeTo(x-k, y+rad, x-rad, y+k, x-rad, y)
	c.z.CubeTo(x-rad, y-k, x-k, y-rad, x, y-rad)
	c.z.CubeTo(x+k, y-rad, x+rad, y-k, x+rad, y)
	c.z.ClosePath()

	c.paint(r, clr)
}

// StrokeLine draws a butt-capped segment. A zero-length segment draws nothing.
func (c *Canvas) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	if width <= 0 || c.empty() {
		return
	}
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l == 0 {
		return
	}

	nx, ny := -dy/l*width/2, dx/l*width/2
	corners := [4][2]float64{
		{x0 + nx, y0 + ny},
		{x1 + nx, y1 + ny},
		{x1 - nx, y1 - ny},
		{x0 - nx, y0 - ny},
	}
	minX, minY := corners[0][0], corners[0][1]
	maxX, maxY := minX, minY
	for _, p := range corners[1:] {
		minX, maxX = min(minX, p[0]), max(maxX, p[0])
		minY, maxY = min(minY, p[1]), max(maxY, p[1])
	}
	r, ok := c.begin(minX, minY, maxX, maxY)
	if !ok {
		return
	}

	ox, oy := float64(r.Min.X), float64(r.Min.Y)
	c.z.MoveTo(float32(corners[0][0]-ox), float32(corners[0][1]-oy))
	for _, p := range corners[1:] {
		c.z.LineTo(float32(p[0]-ox), float32(p[1]-oy))
	}
	c.z.ClosePath()

	c.paint(r, clr)
}

// shapeBounds is the pixel rectangle covering the given extent, padded by one
// pixel for anti-aliasing and clipped to the canvas.
func (c *Canvas) shapeBounds(minX, minY, maxX, maxY float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(minX))-1,
		int(math.Floor(minY))-1,
		int(math.Ceil(maxX))+1,
		int(math.Ceil(maxY))+1,
	).Intersect(c.img.Bounds())
}

// begin sizes the rasterizer to the shape's bounds. Path coordinates are then
// relative to the returned rectangle's origin.
func (c *Canvas) begin(minX, minY, maxX, maxY float64) (image.Rectangle, bool) {
	r := c.shapeBounds(minX, minY, maxX, maxY)
	if r.Empty() {
		return r, false
	}
	c.z.Reset(r.Dx(), r.Dy())
	c.z.DrawOp = draw.Over
	return r, true
}

func (c *Canvas) paint(r image.Rectangle, clr color.Color) {
	c.z.Draw(c.img, r, image.NewUniform(clr), image.Point{})
}

// Flatten composites a premultiplied pixel over an opaque background.
func Flatten(p color.RGBA, bg color.RGBA) color.RGBA {
	inv := 255 - uint32(p.A)
	return color.RGBA{
		R: uint8(uint32(p.R) + uint32(bg.R)*inv/255),
		G: uint8(uint32(p.G) + uint32(bg.G)*inv/255),
		B: uint8(uint32(p.B) + uint32(bg.B)*inv/255),
		A: 0xff,
	}
}
