package constellation

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/iburimskiy/constellation/internal/logging"
)

func newTestSimulation(t *testing.T, opts Options) (*Simulation, *recordingSurface, *FrameQueue) {
	t.Helper()
	surface := &recordingSurface{}
	queue := &FrameQueue{}
	sim, err := New(surface, opts, queue)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return sim, surface, queue
}

func TestNewRequiresSurfaceAndScheduler(t *testing.T) {
	if _, err := New(nil, testOptions(), &FrameQueue{}); !errors.Is(err, ErrNoSurface) {
		t.Errorf("expected ErrNoSurface, got %v", err)
	}
	if _, err := New(&recordingSurface{}, testOptions()); !errors.Is(err, ErrNoScheduler) {
		t.Errorf("expected ErrNoScheduler, got %v", err)
	}
	var missing SchedulerFunc
	if _, err := New(&recordingSurface{}, testOptions(), missing, nil); !errors.Is(err, ErrNoScheduler) {
		t.Errorf("expected ErrNoScheduler for absent primitives, got %v", err)
	}
}

func TestStartSquareSurface(t *testing.T) {
	sim, _, queue := newTestSimulation(t, testOptions())

	sim.Start(1000, 1000)

	if got := len(sim.Nodes()); got != 100 {
		t.Errorf("expected 100 nodes, got %d", got)
	}
	if got := sim.Threshold(); got != 800 {
		t.Errorf("expected threshold 800, got %v", got)
	}
	if w, h := sim.Size(); w != 1000 || h != 1000 {
		t.Errorf("expected size 1000x1000, got %dx%d", w, h)
	}
	if !queue.Pending() {
		t.Errorf("expected the first tick to be scheduled")
	}
	for _, n := range sim.Nodes() {
		if n.Age != 0 {
			t.Fatalf("expected fresh nodes with age 0, got %v", n.Age)
		}
	}
}

func TestStartIsIdempotent(t *testing.T) {
	sim, _, queue := newTestSimulation(t, testOptions())
	sim.Start(400, 300)
	nodes := sim.Nodes()
	queue.RunPending()

	sim.Start(800, 600)

	if w, h := sim.Size(); w != 400 || h != 300 {
		t.Errorf("expected second Start to be ignored, size is %dx%d", w, h)
	}
	if &sim.Nodes()[0] != &nodes[0] {
		t.Errorf("expected the population to be kept")
	}
}

func TestTickOrderAndReschedule(t *testing.T) {
	sim, surface, queue := newTestSimulation(t, testOptions())
	sim.Start(300, 200)

	if !queue.RunPending() {
		t.Fatalf("expected a pending tick")
	}

	if len(surface.ops) == 0 || surface.ops[0] != "clear" {
		t.Fatalf("expected the frame to start with clear, got %v", surface.ops)
	}
	nodes := len(sim.Nodes())
	edges := len(sim.Edges())
	if len(surface.circles) != nodes {
		t.Errorf("expected %d circles, got %d", nodes, len(surface.circles))
	}
	if len(surface.lines) != edges {
		t.Errorf("expected %d lines, got %d", edges, len(surface.lines))
	}
	for i, op := range surface.ops[1:] {
		want := "circle"
		if i >= nodes {
			want = "line"
		}
		if op != want {
			t.Fatalf("op %d: expected %s, got %s", i+1, want, op)
		}
	}
	if !queue.Pending() {
		t.Errorf("expected tick to schedule the next one")
	}
	if sim.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", sim.Frames())
	}
}

func TestTicksKeepInvariants(t *testing.T) {
	sim, surface, queue := newTestSimulation(t, testOptions())
	sim.Start(640, 480)

	for frame := 0; frame < 300; frame++ {
		surface.reset()
		if !queue.RunPending() {
			t.Fatalf("frame %d: tick loop stopped", frame)
		}
		for _, n := range sim.Nodes() {
			if n.X < 0 || n.X >= 1 || n.Y < 0 || n.Y >= 1 {
				t.Fatalf("frame %d: node outside field (%v, %v)", frame, n.X, n.Y)
			}
		}
		for _, e := range sim.Edges() {
			if e.Start == e.End {
				t.Fatalf("frame %d: edge pairs a node with itself", frame)
			}
			if d := e.Start.PixelDistanceTo(e.End); d >= sim.Threshold() {
				t.Fatalf("frame %d: edge at distance %v >= threshold %v", frame, d, sim.Threshold())
			}
		}
	}
}

func TestRebuildEdgesOnlyBelowThreshold(t *testing.T) {
	sim, _, _ := newTestSimulation(t, testOptions())
	sim.Init(100, 100) // threshold 80

	f := sim.field
	a := placedNode(f, 0.1, 0.1, 1)
	b := placedNode(f, 0.5, 0.1, 1)  // 40px from a
	c := placedNode(f, 0.95, 0.1, 1) // 85px from a, 45px from b
	sim.nodes = []*Node{a, b, c}

	sim.RebuildEdges()

	pairs := map[[2]*Node]int{}
	for _, e := range sim.Edges() {
		pairs[[2]*Node{e.Start, e.End}]++
	}
	want := map[[2]*Node]int{
		{a, b}: 1, {b, a}: 1,
		{b, c}: 1, {c, b}: 1,
	}
	if len(pairs) != len(want) {
		t.Fatalf("expected edges %v, got %v", want, pairs)
	}
	for k, v := range want {
		if pairs[k] != v {
			t.Errorf("expected %d edge(s) for pair, got %d", v, pairs[k])
		}
	}
}

func TestRebuildEdgesIdenticalPositions(t *testing.T) {
	for _, dedupe := range []bool{false, true} {
		opts := testOptions()
		opts.DedupeEdges = dedupe
		sim, _, _ := newTestSimulation(t, opts)
		sim.Init(1000, 1000)

		a := placedNode(sim.field, 0.4, 0.4, 1)
		b := placedNode(sim.field, 0.4, 0.4, 1)
		sim.nodes = []*Node{a, b}
		sim.RebuildEdges()

		want := 2
		if dedupe {
			want = 1
		}
		if got := len(sim.Edges()); got != want {
			t.Errorf("dedupe=%v: expected %d edges, got %d", dedupe, want, got)
		}
		for _, e := range sim.Edges() {
			if math.Abs(e.CalculateAlpha()-1) > 1e-12 {
				t.Errorf("expected alpha 1 at zero distance, got %v", e.Alpha)
			}
		}
	}
}

func TestRebuildEdgesDiscardsPreviousSet(t *testing.T) {
	sim, _, _ := newTestSimulation(t, testOptions())
	sim.Init(1000, 1000)
	a := placedNode(sim.field, 0.1, 0.1, 1)
	b := placedNode(sim.field, 0.2, 0.1, 1)
	sim.nodes = []*Node{a, b}

	sim.RebuildEdges()
	if len(sim.Edges()) != 2 {
		t.Fatalf("expected 2 edges, got %d", len(sim.Edges()))
	}

	b.X = 0.99 // 890px away, past the 800px threshold
	sim.RebuildEdges()
	if len(sim.Edges()) != 0 {
		t.Errorf("expected stale edges to be dropped, got %d", len(sim.Edges()))
	}
}

func TestZeroAreaSurface(t *testing.T) {
	for _, size := range [][2]int{{0, 0}, {0, 500}, {500, 0}} {
		sim, surface, queue := newTestSimulation(t, testOptions())
		sim.Start(size[0], size[1])

		for i := 0; i < 10; i++ {
			if !queue.RunPending() {
				t.Fatalf("%v: tick loop stopped", size)
			}
		}
		if len(sim.Nodes()) != 0 || len(sim.Edges()) != 0 {
			t.Errorf("%v: expected no nodes and edges, got %d and %d", size, len(sim.Nodes()), len(sim.Edges()))
		}
		if sim.Threshold() != 0 {
			t.Errorf("%v: expected zero threshold, got %v", size, sim.Threshold())
		}
		if len(surface.circles) != 0 || len(surface.lines) != 0 {
			t.Errorf("%v: expected nothing drawn", size)
		}
	}
}

func TestReinitReplacesPopulationWithoutRescheduling(t *testing.T) {
	var queue FrameQueue
	requests := 0
	counting := SchedulerFunc(func(fn func()) {
		requests++
		queue.RequestFrame(fn)
	})
	sim, err := New(&recordingSurface{}, testOptions(), counting)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	sim.Start(1000, 1000)
	queue.RunPending()
	old := sim.Nodes()[0]

	before := requests
	sim.Reinit(500, 200)

	if requests != before {
		t.Errorf("expected Reinit not to schedule a tick, got %d new requests", requests-before)
	}
	if got := len(sim.Nodes()); got != 10 {
		t.Errorf("expected 10 nodes for 500x200, got %d", got)
	}
	if got := sim.Threshold(); got != 160 {
		t.Errorf("expected threshold 160, got %v", got)
	}
	if len(sim.Edges()) != 0 {
		t.Errorf("expected edges to be cleared, got %d", len(sim.Edges()))
	}
	for _, n := range sim.Nodes() {
		if n == old {
			t.Fatalf("expected a fresh population")
		}
	}

	if !queue.RunPending() {
		t.Fatalf("expected the tick scheduled before Reinit to still run")
	}
	if w, h := sim.Size(); w != 500 || h != 200 {
		t.Errorf("expected next tick on 500x200, got %dx%d", w, h)
	}
	for _, e := range sim.Edges() {
		if e.threshold != 160 {
			t.Fatalf("expected edges built against the new threshold, got %v", e.threshold)
		}
	}
}

func TestSeedIsDeterministic(t *testing.T) {
	a, _, _ := newTestSimulation(t, testOptions())
	b, _, _ := newTestSimulation(t, testOptions())
	a.Start(400, 400)
	b.Start(400, 400)

	for i := range a.Nodes() {
		na, nb := a.Nodes()[i], b.Nodes()[i]
		if na.X != nb.X || na.Y != nb.Y || na.SpeedX != nb.SpeedX || na.SpeedY != nb.SpeedY {
			t.Fatalf("node %d differs between equally seeded simulations", i)
		}
	}
}

func TestTickLogsAtTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	opts := testOptions()
	opts.Logger = logging.NewLogger("trace", &buf)
	sim, _, queue := newTestSimulation(t, opts)

	sim.Start(200, 200)
	queue.RunPending()

	out := buf.String()
	if !strings.Contains(out, "constellation started") {
		t.Errorf("expected start record, got %q", out)
	}
	if !strings.Contains(out, "level=TRACE msg=frame") {
		t.Errorf("expected frame record, got %q", out)
	}
}
