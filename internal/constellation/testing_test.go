package constellation

import (
	"image/color"
	"math/rand/v2"
)

type circleCall struct {
	x, y, r float64
	clr     color.Color
}

type lineCall struct {
	x0, y0, x1, y1, width float64
	clr                   color.Color
}

// recordingSurface remembers every draw call in order.
type recordingSurface struct {
	ops     []string
	circles []circleCall
	lines   []lineCall
}

func (r *recordingSurface) Clear() {
	r.ops = append(r.ops, "clear")
}

func (r *recordingSurface) FillCircle(cx, cy, radius float64, clr color.Color) {
	r.ops = append(r.ops, "circle")
	r.circles = append(r.circles, circleCall{cx, cy, radius, clr})
}

func (r *recordingSurface) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	r.ops = append(r.ops, "line")
	r.lines = append(r.lines, lineCall{x0, y0, x1, y1, width, clr})
}

func (r *recordingSurface) reset() {
	r.ops, r.circles, r.lines = nil, nil, nil
}

func testRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed+1))
}

func testField(width, height int) *Field {
	return NewField(width, height, testRand(42))
}

func placedNode(f *Field, x, y, age float64) *Node {
	n := NewNode(f, DefaultColor, DefaultNodeRadius)
	n.X, n.Y, n.Age = x, y, age
	return n
}

func testOptions() Options {
	opts := DefaultOptions()
	opts.Seed = 7
	return opts
}
