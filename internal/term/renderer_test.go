package term

import (
	"context"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/constellation/internal/constellation"
)

var black = color.RGBA{A: 255}

func newTestRenderer(t *testing.T, cols, rows int) (*Renderer, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	opts := constellation.DefaultOptions()
	opts.Seed = 11
	opts.InverseDensity = 100

	r, err := New(screen, opts, black, 30, nil)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r, screen
}

func TestStartUsesTwoPixelsPerRow(t *testing.T) {
	r, _ := newTestRenderer(t, 80, 24)
	r.Start()

	w, h := r.Simulation().Size()
	if w != 80 || h != 48 {
		t.Errorf("expected an 80x48 pixel field, got %dx%d", w, h)
	}
	// 80*48/100
	if got := len(r.Simulation().Nodes()); got != 38 {
		t.Errorf("expected 38 nodes, got %d", got)
	}
}

func TestFramePaintsHalfBlocks(t *testing.T) {
	r, screen := newTestRenderer(t, 40, 20)
	r.Start()

	for i := 0; i < 5; i++ {
		r.Frame()
	}

	if r.Simulation().Frames() != 5 {
		t.Fatalf("expected 5 frames, got %d", r.Simulation().Frames())
	}

	lit := 0
	for y := 0; y < 20; y++ {
		for x := 0; x < 40; x++ {
			ch, _, style, _ := screen.GetContent(x, y)
			if ch != halfBlock {
				t.Fatalf("cell (%d,%d): expected half block, got %q", x, y, ch)
			}
			fg, bg, _ := style.Decompose()
			if fg != cellColor(black) || bg != cellColor(black) {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Errorf("expected some cells to show nodes")
	}
}

func TestResizeReinitializes(t *testing.T) {
	r, screen := newTestRenderer(t, 40, 20)
	r.Start()
	r.Frame()

	screen.SetSize(60, 10)
	if !r.HandleEvent(tcell.NewEventResize(60, 10)) {
		t.Fatalf("expected resize not to stop the renderer")
	}

	w, h := r.Simulation().Size()
	if w != 60 || h != 20 {
		t.Errorf("expected a 60x20 pixel field, got %dx%d", w, h)
	}
	if cw, ch := r.canvas.Size(); cw != 60 || ch != 20 {
		t.Errorf("expected a 60x20 canvas, got %dx%d", cw, ch)
	}

	before := r.Simulation().Frames()
	r.Frame()
	if r.Simulation().Frames() != before+1 {
		t.Errorf("expected the tick loop to continue after resize")
	}
}

func TestIsQuit(t *testing.T) {
	tests := []struct {
		key  tcell.Key
		ch   rune
		want bool
	}{
		{tcell.KeyEscape, 0, true},
		{tcell.KeyCtrlC, 0, true},
		{tcell.KeyRune, 'q', true},
		{tcell.KeyRune, 'x', false},
		{tcell.KeyEnter, 0, false},
	}
	for _, tt := range tests {
		if got := isQuit(tt.key, tt.ch); got != tt.want {
			t.Errorf("isQuit(%v, %q) = %v, want %v", tt.key, tt.ch, got, tt.want)
		}
	}
}

func TestRunStopsOnContext(t *testing.T) {
	r, _ := newTestRenderer(t, 20, 10)
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	if err := r.Run(ctx); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if r.Simulation().Frames() == 0 {
		t.Errorf("expected frames to be rendered before the deadline")
	}
}
