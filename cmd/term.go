package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/iburimskiy/constellation/internal/logging"
	"github.com/iburimskiy/constellation/internal/term"
)

func termCmd() *cobra.Command {
	var logFile string

	c := &cobra.Command{
		Use:   "term",
		Short: "Render the constellation in the terminal",
		Long:  "Render the constellation in the terminal, two pixels per cell.\nEsc, q or Ctrl-C quits.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// The screen owns the terminal, so logs go to a file or nowhere.
			termLogger := slog.New(slog.DiscardHandler)
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
				if err != nil {
					return fmt.Errorf("open log file: %w", err)
				}
				defer f.Close()
				termLogger = newLogger(f)
			}

			screen, err := tcell.NewScreen()
			if err != nil {
				return fmt.Errorf("open terminal: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("init terminal: %w", err)
			}
			defer screen.Fini()

			opts := cfg.Options()
			opts.Logger = termLogger
			r, err := term.New(screen, opts, background, cfg.Window.TPS, termLogger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return r.Run(ctx)
		},
	}
	c.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return c
}

func newLogger(w io.Writer) *slog.Logger {
	l, _ := logging.WithRun(logging.NewLogger(cfg.Logging.Level, w))
	return l
}
