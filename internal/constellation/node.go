package constellation

import (
	"image/color"
	"math"
	"math/rand/v2"
)

// Field is the pixel space a population of nodes lives in. Node positions are
// fractions of Width and Height.
type Field struct {
	Width  int
	Height int

	// AgeStep is added to a node's age every update until it reaches 1.
	AgeStep float64
	// MaxSpeed bounds the per-tick drift, as a fraction of a surface
	// dimension in pixels.
	MaxSpeed float64

	rng *rand.Rand
}

// NewField creates a field with the default age step and speed bound.
// Negative dimensions are treated as zero.
func NewField(width, height int, rng *rand.Rand) *Field {
	return &Field{
		Width:    max(width, 0),
		Height:   max(height, 0),
		AgeStep:  DefaultAgeStep,
		MaxSpeed: DefaultMaxSpeed,
		rng:      rng,
	}
}

// Threshold is the longest pixel distance at which two nodes are connected.
func (f *Field) Threshold(maxDistance float64) float64 {
	return float64(min(f.Width, f.Height)) * maxDistance
}

// Population is the number of nodes for the field's area.
func (f *Field) Population(inverseDensity float64) int {
	if f.Width <= 0 || f.Height <= 0 || inverseDensity <= 0 {
		return 0
	}
	return int(math.Floor(float64(f.Width) * float64(f.Height) / inverseDensity))
}

func (f *Field) speed(dim int) float64 {
	if dim <= 0 {
		return 0
	}
	return (f.rng.Float64()*2*f.MaxSpeed - f.MaxSpeed) / float64(dim)
}

// Node is a drifting point. X and Y stay in [0,1) after every Update.
type Node struct {
	X, Y           float64
	SpeedX, SpeedY float64
	Age            float64
	Color          color.RGBA
	Radius         float64

	field *Field
}

// NewNode returns a node at the origin; call Spawn to place it.
func NewNode(f *Field, clr color.RGBA, radius float64) *Node {
	return &Node{Color: clr, Radius: radius, field: f}
}

// Spawn gives the node a new random position and velocity and resets its age,
// so it appears to be a new node.
func (n *Node) Spawn() {
	f := n.field
	n.X = f.rng.Float64()
	n.Y = f.rng.Float64()
	n.SpeedX = f.speed(f.Width)
	n.SpeedY = f.speed(f.Height)
	n.Age = 0
}

// Update ages the node and moves it by one tick. A node leaving the field on
// either axis is respawned.
func (n *Node) Update() {
	if n.Age < 1 {
		n.Age = math.Min(1, n.Age+n.field.AgeStep)
	}

	n.X += n.SpeedX
	n.Y += n.SpeedY

	if outside(n.X) || outside(n.Y) {
		n.Spawn()
	}
}

func outside(v float64) bool {
	return v < 0 || v >= 1
}

// DistanceTo returns the distance to o in normalized space.
func (n *Node) DistanceTo(o *Node) float64 {
	return math.Hypot(n.X-o.X, n.Y-o.Y)
}

// PixelDistanceTo returns the distance to o after scaling both positions to
// the field's pixel dimensions.
func (n *Node) PixelDistanceTo(o *Node) float64 {
	w, h := float64(n.field.Width), float64(n.field.Height)
	return math.Hypot(n.X*w-o.X*w, n.Y*h-o.Y*h)
}

// PixelPosition returns the node's position rounded to whole pixels.
func (n *Node) PixelPosition() (float64, float64) {
	return math.Round(float64(n.field.Width) * n.X), math.Round(float64(n.field.Height) * n.Y)
}

func (n *Node) Draw(s Surface) {
	x, y := n.PixelPosition()
	s.FillCircle(x, y, n.Radius, n.Color)
}
