// Package game hosts the constellation in a desktop window. Each ebiten
// Update runs the pending animation frame, so the simulation advances at the
// configured TPS.
package game

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/iburimskiy/constellation/internal/backdrop"
	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/constellation"
	"github.com/iburimskiy/constellation/internal/soundtrack"
)

// Game implements ebiten.Game.
type Game struct {
	cfg    *config.Config
	logger *slog.Logger

	sim   *constellation.Simulation
	queue constellation.FrameQueue
	layer layerSurface
	sizes sizeTracker

	backdrop     *backdrop.Texture
	backdropImg  *ebiten.Image
	backdropOpts ebiten.DrawImageOptions

	track *soundtrack.Track
	meter soundtrack.Meter
}

// New prepares a game. track may be nil.
func New(cfg *config.Config, logger *slog.Logger, track *soundtrack.Track) (*Game, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		cfg:    cfg,
		logger: logger,
		track:  track,
		meter:  soundtrack.Meter{Smoothing: soundtrack.SmoothingFactor},
	}

	opts := cfg.Options()
	opts.Logger = logger
	sim, err := constellation.New(&g.layer, opts, &g.queue)
	if err != nil {
		return nil, err
	}
	g.sim = sim

	if cfg.Backdrop.Enabled {
		tint, err := constellation.ParseColor(cfg.Backdrop.Color)
		if err != nil {
			return nil, fmt.Errorf("backdrop color: %w", err)
		}
		g.backdrop = backdrop.New(int64(cfg.Constellation.Seed), tint, cfg.Backdrop.Scale, cfg.Backdrop.Drift)
	}
	return g, nil
}

func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}

	g.applySize()

	if g.track != nil {
		g.meter.Update(g.track.Level())
	}
	if g.backdrop != nil {
		g.backdrop.Advance()
	}
	g.queue.RunPending()
	return nil
}

func (g *Game) applySize() {
	size, ev := g.sizes.Next()
	if ev == sizeNone {
		return
	}
	g.layer.resize(size.X, size.Y)
	if g.backdrop != nil {
		g.backdrop.Resize(size.X, size.Y)
		g.resizeBackdrop()
	}

	switch ev {
	case sizeReady:
		g.sim.Start(size.X, size.Y)
	case sizeChanged:
		g.logger.Debug("window resized", "width", size.X, "height", size.Y)
		g.sim.Reinit(size.X, size.Y)
	}
}

func (g *Game) resizeBackdrop() {
	if g.backdropImg != nil {
		g.backdropImg.Deallocate()
		g.backdropImg = nil
	}
	w, h := g.backdrop.Size()
	if w == 0 || h == 0 {
		return
	}
	g.backdropImg = ebiten.NewImage(w, h)
	g.backdropOpts.GeoM.Reset()
	g.backdropOpts.GeoM.Scale(float64(g.backdrop.Scale), float64(g.backdrop.Scale))
	g.backdropOpts.Filter = ebiten.FilterLinear
}

// brightness of the backdrop: full without a track, otherwise following the
// music from half brightness up.
func (g *Game) brightness() float64 {
	if g.track == nil {
		return 1
	}
	return 0.5 + 0.5*clamp01(g.meter.Value())
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.drawBackdrop(screen)

	if g.layer.img != nil {
		screen.DrawImage(g.layer.img, nil)
	}

	if g.cfg.Window.HUD {
		ebitenutil.DebugPrintAt(screen, g.stats().String(), 12, 12)
	}
}

func (g *Game) drawBackdrop(screen *ebiten.Image) {
	if g.backdropImg == nil {
		return
	}
	g.backdropImg.WritePixels(g.backdrop.Render())

	b := float32(g.brightness())
	op := g.backdropOpts
	op.ColorScale.Reset()
	op.ColorScale.Scale(b, b, b, 1)
	screen.DrawImage(g.backdropImg, &op)
}

func (g *Game) stats() hudStats {
	s := hudStats{
		FPS:       ebiten.ActualFPS(),
		TPS:       ebiten.ActualTPS(),
		Nodes:     len(g.sim.Nodes()),
		Edges:     len(g.sim.Edges()),
		Threshold: g.sim.Threshold(),
		Uptime:    uptime(g.sim.Frames(), g.cfg.Window.TPS),
	}
	if g.track != nil {
		s.Track = g.track.Path
		s.Level = g.meter.Value()
	}
	return s
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.sizes.Observe(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

// Run opens the window and blocks until it is closed.
func Run(cfg *config.Config, logger *slog.Logger, track *soundtrack.Track) error {
	if err := cfg.Window.RequireArea(); err != nil {
		return err
	}
	g, err := New(cfg, logger, track)
	if err != nil {
		return err
	}

	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetTPS(cfg.Window.TPS)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}

	if track != nil {
		if err := track.Play(); err != nil {
			return err
		}
	}

	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
