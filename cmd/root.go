package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/ui"
)

var version = "0.3.0"

var (
	configPath string
	logLevel   string
	seed       uint64
	dedupe     bool
	width      int
	height     int

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "constellation",
	Short: "Drifting nodes joined by fading edges",
	Long: ui.Brand.Sprint(ui.Star+" constellation") + " renders nodes that drift across the screen\n" +
		ui.Subtle.Sprint("Nearby nodes are linked by edges that fade with distance and age"),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setup(cmd)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWindow(cmd)
	},
}

func init() {
	rootCmd.SetVersionTemplate("constellation {{ .Version }}\n")

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "TOML or YAML config file")
	pf.StringVar(&logLevel, "log-level", "", "trace, debug, info, warn or error")
	pf.Uint64Var(&seed, "seed", 0, "node placement seed (0 is random)")
	pf.BoolVar(&dedupe, "dedupe-edges", false, "draw one edge per connected pair")
	pf.IntVar(&width, "width", 0, "window and export width in pixels")
	pf.IntVar(&height, "height", 0, "window and export height in pixels")

	addWindowFlags(rootCmd)

	rootCmd.AddCommand(
		windowCmd(),
		termCmd(),
		exportCmd(),
		infoCmd(),
		configCmd(),
	)
}

// setup loads the config, applies flag overrides and builds the logger.
func setup(cmd *cobra.Command) error {
	c, err := config.Load(configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		c.Constellation.Seed = seed
	}
	if flags.Changed("dedupe-edges") {
		c.Constellation.DedupeEdges = dedupe
	}
	if flags.Changed("width") {
		c.Window.Width = width
	}
	if flags.Changed("height") {
		c.Window.Height = height
	}
	if flags.Changed("log-level") {
		c.Logging.Level = logLevel
	}
	if err := c.Validate(); err != nil {
		return err
	}

	cfg = c
	logger = newLogger(os.Stderr)
	logger.Debug("config loaded", "path", configPath, "seed", c.Constellation.Seed)
	return nil
}

// Execute runs the command line.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		ui.Bad.Fprintf(os.Stderr, "constellation: %v\n", err)
	}
	return err
}
