package cmd

import (
	"github.com/spf13/cobra"

	"github.com/iburimskiy/constellation/internal/config"
	"github.com/iburimskiy/constellation/internal/game"
	"github.com/iburimskiy/constellation/internal/soundtrack"
)

var (
	audioPath  string
	pickAudio  bool
	volume     float64
	noBackdrop bool
	showHUD    bool
)

func addWindowFlags(c *cobra.Command) {
	f := c.Flags()
	f.StringVar(&audioPath, "audio", "", "loop a wav, mp3 or flac file in the background")
	f.BoolVar(&pickAudio, "pick-audio", false, "choose the background track with a file dialog")
	f.Float64Var(&volume, "volume", 0, "track gain as a power of two (0 is unchanged)")
	f.BoolVar(&noBackdrop, "no-backdrop", false, "draw on plain black")
	f.BoolVar(&showHUD, "hud", false, "show frame statistics")
}

func windowCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "window",
		Short: "Open the constellation in a window (default)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWindow(cmd)
		},
	}
	addWindowFlags(c)
	return c
}

func runWindow(cmd *cobra.Command) error {
	flags := cmd.Flags()
	if flags.Changed("audio") {
		cfg.Audio.Path = audioPath
	}
	if flags.Changed("pick-audio") {
		cfg.Audio.Pick = pickAudio
	}
	if flags.Changed("volume") {
		cfg.Audio.Volume = volume
	}
	if noBackdrop {
		cfg.Backdrop.Enabled = false
	}
	if flags.Changed("hud") {
		cfg.Window.HUD = showHUD
	}

	if err := cfg.Window.RequireArea(); err != nil {
		return err
	}

	track, err := openTrack(cfg.Audio)
	if err != nil {
		return err
	}
	if track != nil {
		defer func() {
			if err := track.Close(); err != nil {
				logger.Warn("closing soundtrack", "err", err)
			}
		}()
	}

	return game.Run(cfg, logger, track)
}

// openTrack returns nil without an error when no track is configured or the
// file dialog is canceled.
func openTrack(audio config.AudioConfig) (*soundtrack.Track, error) {
	path := audio.Path
	if path == "" && audio.Pick {
		picked, err := soundtrack.Pick()
		if err != nil {
			return nil, err
		}
		if picked == "" {
			logger.Info("no soundtrack chosen")
			return nil, nil
		}
		path = picked
	}
	if path == "" {
		return nil, nil
	}

	track, err := soundtrack.Open(path, audio.Volume, config.VisualRingSize)
	if err != nil {
		return nil, err
	}
	logger.Info("soundtrack loaded", "path", path, "rate", int(track.Format().SampleRate))
	return track, nil
}
