package cmd

import (
	"fmt"
	"image/color"
	"os"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/constellation/internal/constellation"
	"github.com/iburimskiy/constellation/internal/raster"
	"github.com/iburimskiy/constellation/internal/ui"
)

// background behind the software-rendered hosts.
var background = color.RGBA{A: 0xff}

func exportCmd() *cobra.Command {
	var (
		out    string
		frames int
		warmup int
	)

	c := &cobra.Command{
		Use:   "export",
		Short: "Record the animation as a GIF",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if frames <= 0 {
				return fmt.Errorf("--frames must be positive, got %d", frames)
			}
			if warmup < 0 {
				return fmt.Errorf("--warmup must not be negative, got %d", warmup)
			}
			if err := cfg.Window.RequireArea(); err != nil {
				return err
			}

			canvas := raster.NewCanvas(cfg.Window.Width, cfg.Window.Height)
			queue := &constellation.FrameQueue{}
			opts := cfg.Options()
			opts.Logger = logger
			sim, err := constellation.New(canvas, opts, queue)
			if err != nil {
				return err
			}
			sim.Start(canvas.Size())

			enc := raster.NewGIFEncoder(background, opts.NodeColor, opts.EdgeColor, cfg.Window.TPS)
			if err := raster.Record(cmd.Context(), queue, canvas, enc, warmup, frames); err != nil {
				return err
			}

			f, err := os.Create(out)
			if err != nil {
				return err
			}
			defer f.Close()
			if err := enc.Encode(f); err != nil {
				return fmt.Errorf("encode %s: %w", out, err)
			}
			if err := f.Close(); err != nil {
				return err
			}

			logger.Info("animation exported", "path", out, "frames", enc.Frames(), "nodes", len(sim.Nodes()))
			fmt.Fprintf(cmd.OutOrStdout(), "%s wrote %d frames to %s\n", ui.Good.Sprint(ui.Star), enc.Frames(), out)
			return nil
		},
	}

	f := c.Flags()
	f.StringVarP(&out, "out", "o", "constellation.gif", "output file")
	f.IntVar(&frames, "frames", 120, "number of frames to record")
	f.IntVar(&warmup, "warmup", 100, "ticks to run before recording, so nodes have faded in")
	return c
}
