// Package term renders the constellation in a terminal. Every cell shows two
// vertically stacked pixels using the upper half block glyph.
package term

import (
	"context"
	"image/color"
	"log/slog"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/iburimskiy/constellation/internal/constellation"
	"github.com/iburimskiy/constellation/internal/raster"
)

const halfBlock = '▀'

// Renderer drives a Simulation from a ticker and presents it on a tcell screen.
// It is also the simulation's Surface, delegating to a canvas that is
// replaced whenever the terminal is resized.
type Renderer struct {
	screen tcell.Screen
	canvas *raster.Canvas
	queue  constellation.FrameQueue
	sim    *constellation.Simulation
	bg     color.RGBA
	tps    int
	logger *slog.Logger
}

// New prepares a renderer for an initialized screen.
func New(screen tcell.Screen, opts constellation.Options, bg color.RGBA, tps int, logger *slog.Logger) (*Renderer, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if tps <= 0 {
		tps = 30
	}
	r := &Renderer{
		screen: screen,
		canvas: raster.NewCanvas(0, 0),
		bg:     bg,
		tps:    tps,
		logger: logger,
	}
	sim, err := constellation.New(r, opts, &r.queue)
	if err != nil {
		return nil, err
	}
	r.sim = sim
	return r, nil
}

func (r *Renderer) Clear() { r.canvas.Clear() }

func (r *Renderer) FillCircle(cx, cy, radius float64, clr color.Color) {
	r.canvas.FillCircle(cx, cy, radius, clr)
}

func (r *Renderer) StrokeLine(x0, y0, x1, y1, width float64, clr color.Color) {
	r.canvas.StrokeLine(x0, y0, x1, y1, width, clr)
}

// Simulation exposes the driven simulation.
func (r *Renderer) Simulation() *constellation.Simulation { return r.sim }

// Start sizes the canvas to the screen and starts the simulation.
func (r *Renderer) Start() {
	cols, rows := r.screen.Size()
	r.canvas = raster.NewCanvas(cols, rows*2)
	r.sim.Start(r.canvas.Size())
}

// Run starts the simulation and renders until ctx is done or the user quits.
func (r *Renderer) Run(ctx context.Context) error {
	r.Start()

	ticker := time.NewTicker(time.Second / time.Duration(r.tps))
	defer ticker.Stop()

	done := make(chan struct{})
	defer close(done)

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := r.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-done:
				return
			}
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-events:
			if !r.HandleEvent(ev) {
				return nil
			}
		case <-ticker.C:
			r.Frame()
		}
	}
}

// HandleEvent reacts to resize and quit events. It returns false when the
// renderer should stop.
func (r *Renderer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if isQuit(ev.Key(), ev.Rune()) {
			return false
		}
	case *tcell.EventResize:
		cols, rows := ev.Size()
		r.canvas = raster.NewCanvas(cols, rows*2)
		r.sim.Reinit(r.canvas.Size())
		r.screen.Sync()
		r.logger.Debug("terminal resized", "cols", cols, "rows", rows)
	}
	return true
}

func isQuit(key tcell.Key, ch rune) bool {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ch == 'q' || ch == 'Q'
	}
	return false
}

// Frame runs the scheduled tick, if any, and shows the result.
func (r *Renderer) Frame() {
	if !r.queue.RunPending() {
		return
	}
	r.present()
}

func (r *Renderer) present() {
	img := r.canvas.Image()
	cols, pixelRows := r.canvas.Size()

	for y := 0; y < pixelRows/2; y++ {
		for x := 0; x < cols; x++ {
			top := raster.Flatten(img.RGBAAt(x, 2*y), r.bg)
			bottom := raster.Flatten(img.RGBAAt(x, 2*y+1), r.bg)
			style := tcell.StyleDefault.Foreground(cellColor(top)).Background(cellColor(bottom))
			r.screen.SetContent(x, y, halfBlock, nil, style)
		}
	}
	r.screen.Show()
}

func cellColor(c color.RGBA) tcell.Color {
	return tcell.NewRGBColor(int32(c.R), int32(c.G), int32(c.B))
}
