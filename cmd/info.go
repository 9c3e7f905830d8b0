package cmd

import (
	"fmt"
	"io"
	"math"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/constellation"
	"github.com/iburimskiy/constellation/internal/ui"
)

func infoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the population and reach derived for the configured size",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			printInfo(cmd.OutOrStdout(), cfg)
			return nil
		},
	}
}

func printInfo(w io.Writer, c *config.Config) {
	opts := c.Options()
	field := constellation.NewField(c.Window.Width, c.Window.Height, nil)

	ui.Banner(w, "derived parameters")
	ui.Field(w, "size", fmt.Sprintf("%dx%d", field.Width, field.Height))
	ui.Field(w, "nodes", field.Population(opts.InverseDensity))
	ui.Field(w, "reach", fmt.Sprintf("%.1fpx", field.Threshold(opts.MaxDistance)))
	ui.Field(w, "speed", fmt.Sprintf("up to %.2fpx per tick on each axis", opts.MaxSpeed))

	ticks := int(math.Ceil(1/opts.AgeStep - 1e-9))
	ui.Field(w, "fade in", fmt.Sprintf("%d ticks (%s)", ticks, formatSeconds(ticks, c.Window.TPS)))

	if opts.DedupeEdges {
		ui.Field(w, "edges", "one per linked pair")
	} else {
		ui.Field(w, "edges", "one per direction of a linked pair")
	}

	if opts.Seed == 0 {
		ui.Field(w, "seed", ui.Subtle.Sprint("random"))
	} else {
		ui.Field(w, "seed", opts.Seed)
	}
}

func formatSeconds(ticks, tps int) string {
	if tps <= 0 {
		return "?"
	}
	return fmt.Sprintf("%.1fs at %d tps", float64(ticks)/float64(tps), tps)
}
