package constellation

import "image/color"

// Edge is a line between two nodes that were within the distance threshold
// when it was built. It never modifies its nodes and lives for one tick.
type Edge struct {
	Start, End *Node
	Color      color.RGBA
	Width      float64
	Alpha      float64

	threshold float64
}

// NewEdge connects two distinct nodes. Distinctness is the caller's concern.
func NewEdge(start, end *Node, threshold float64, clr color.RGBA, width float64) Edge {
	return Edge{
		Start:     start,
		End:       end,
		Color:     clr,
		Width:     width,
		threshold: threshold,
	}
}

// CalculateAlpha sets and returns the edge opacity: closeness to the threshold
// scaled by the product of both node ages. The result is not clamped.
func (e *Edge) CalculateAlpha() float64 {
	if e.threshold <= 0 {
		e.Alpha = 0
		return 0
	}
	d := e.Start.PixelDistanceTo(e.End)
	e.Alpha = ((e.threshold - d) / e.threshold) * (e.Start.Age * e.End.Age)
	return e.Alpha
}

func (e *Edge) Draw(s Surface) {
	x0, y0 := e.Start.PixelPosition()
	x1, y1 := e.End.PixelPosition()
	alpha := e.CalculateAlpha()
	s.StrokeLine(x0, y0, x1, y1, e.Width, ColorWithAlpha(e.Color, alpha))
}
