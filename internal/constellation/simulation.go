package constellation

import (
	"context"
	"image/color"
	"log/slog"
	"math/rand/v2"

	"github.com/iburimskiy/constellation/internal/logging"
)

const (
	DefaultInverseDensity = 10000
	DefaultMaxDistance    = 0.8
	DefaultNodeRadius     = 2
	DefaultEdgeWidth      = 1
	DefaultAgeStep        = 0.01
	DefaultMaxSpeed       = 0.2
)

// DefaultColor is rgb(86, 226, 125).
var DefaultColor = color.RGBA{R: 86, G: 226, B: 125, A: 0xff}

// Options tune a Simulation.
type Options struct {
	NodeColor  color.RGBA
	EdgeColor  color.RGBA
	NodeRadius float64
	EdgeWidth  float64

	// InverseDensity is the surface area in square pixels per node.
	InverseDensity float64
	// MaxDistance is the edge threshold as a fraction of the shorter side.
	MaxDistance float64
	AgeStep     float64
	MaxSpeed    float64

	// DedupeEdges builds one edge per connected pair instead of one per
	// direction. Two strokes per pair is the classic look.
	DedupeEdges bool

	// Seed for node placement; 0 picks a random seed.
	Seed uint64

	Logger *slog.Logger
}

func DefaultOptions() Options {
	return Options{
		NodeColor:      DefaultColor,
		EdgeColor:      DefaultColor,
		NodeRadius:     DefaultNodeRadius,
		EdgeWidth:      DefaultEdgeWidth,
		InverseDensity: DefaultInverseDensity,
		MaxDistance:    DefaultMaxDistance,
		AgeStep:        DefaultAgeStep,
		MaxSpeed:       DefaultMaxSpeed,
	}
}

// Simulation owns the node population of one surface and redraws it once per
// frame. It is driven from a single goroutine: Tick and Reinit must not run
// concurrently.
type Simulation struct {
	opts      Options
	surface   Surface
	scheduler Scheduler
	logger    *slog.Logger
	rng       *rand.Rand

	field     *Field
	threshold float64
	nodes     []*Node
	edges     []Edge

	started bool
	frames  uint64
}

// New binds a simulation to a surface and the first available scheduler.
// Both are required; without them the simulation cannot begin.
func New(surface Surface, opts Options, schedulers ...Scheduler) (*Simulation, error) {
	if surface == nil {
		return nil, ErrNoSurface
	}
	sched, err := SelectScheduler(schedulers...)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	return &Simulation{
		opts:      opts,
		surface:   surface,
		scheduler: sched,
		logger:    logger,
		rng:       rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)),
		field:     NewField(0, 0, nil),
	}, nil
}

// Init captures the surface size and derives the distance threshold.
func (s *Simulation) Init(width, height int) {
	f := NewField(width, height, s.rng)
	f.AgeStep = s.opts.AgeStep
	f.MaxSpeed = s.opts.MaxSpeed
	s.field = f
	s.threshold = f.Threshold(s.opts.MaxDistance)
}

// CreateNodes spawns a population sized from the surface area.
func (s *Simulation) CreateNodes() {
	count := s.field.Population(s.opts.InverseDensity)
	s.nodes = make([]*Node, 0, count)
	for range count {
		n := NewNode(s.field, s.opts.NodeColor, s.opts.NodeRadius)
		n.Spawn()
		s.nodes = append(s.nodes, n)
	}
}

// Start handles the surface becoming ready: it creates the population and
// schedules the first tick. Later calls do nothing.
func (s *Simulation) Start(width, height int) {
	if s.started {
		return
	}
	s.Init(width, height)
	s.CreateNodes()
	s.started = true

	s.logger.Info("constellation started",
		"width", s.field.Width,
		"height", s.field.Height,
		"nodes", len(s.nodes),
		"threshold", s.threshold)

	s.scheduler.RequestFrame(s.Tick)
}

// Reinit replaces the population for a new surface size. The tick loop is
// not restarted; the next scheduled tick sees the new collections.
func (s *Simulation) Reinit(width, height int) {
	s.edges = nil
	s.nodes = nil
	s.Init(width, height)
	s.CreateNodes()

	s.logger.Info("constellation resized",
		"width", s.field.Width,
		"height", s.field.Height,
		"nodes", len(s.nodes),
		"threshold", s.threshold)
}

// Tick advances and redraws one frame, then schedules the next one.
func (s *Simulation) Tick() {
	s.surface.Clear()

	for _, n := range s.nodes {
		n.Update()
		n.Draw(s.surface)
	}

	s.RebuildEdges()

	for i := range s.edges {
		s.edges[i].Draw(s.surface)
	}

	s.frames++
	if s.logger.Enabled(context.Background(), logging.LevelTrace) {
		s.logger.Log(context.Background(), logging.LevelTrace, "frame",
			"frame", s.frames, "nodes", len(s.nodes), "edges", len(s.edges))
	}

	s.scheduler.RequestFrame(s.Tick)
}

// RebuildEdges discards the edge set and connects every pair of distinct
// nodes closer than the threshold. Without DedupeEdges each pair is connected
// once per direction.
func (s *Simulation) RebuildEdges() {
	s.edges = s.edges[:0]

	for i, a := range s.nodes {
		j := 0
		if s.opts.DedupeEdges {
			j = i + 1
		}
		for ; j < len(s.nodes); j++ {
			if i == j {
				continue
			}
			b := s.nodes[j]
			if a.PixelDistanceTo(b) < s.threshold {
				s.edges = append(s.edges, NewEdge(a, b, s.threshold, s.opts.EdgeColor, s.opts.EdgeWidth))
			}
		}
	}
}

// Nodes returns the current population.
func (s *Simulation) Nodes() []*Node { return s.nodes }

// Edges returns the edges of the last tick. The slice is reused by the next
// tick.
func (s *Simulation) Edges() []Edge { return s.edges }

func (s *Simulation) Threshold() float64 { return s.threshold }

func (s *Simulation) Size() (int, int) { return s.field.Width, s.field.Height }

// Frames counts completed ticks.
func (s *Simulation) Frames() uint64 { return s.frames }

func (s *Simulation) Started() bool { return s.started }
