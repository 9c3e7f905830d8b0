// Package soundtrack plays an optional looping background track and reports
// how loud it currently is.
package soundtrack

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"
	"github.com/ncruces/zenity"
)

const (
	SmoothingFactor = 0.6
	LevelWindow     = 2048
)

// ErrUnsupported is returned for files that are not wav, mp3 or flac.
var ErrUnsupported = errors.New("unsupported audio file")

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// Track is a decoded file ready to loop through the speaker.
type Track struct {
	Path string

	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	tap      *Tap
	ctrl     *beep.Ctrl
	volume   *effects.Volume
}

func decoderFor(path string) (func(f *os.File) (beep.StreamSeekCloser, beep.Format, error), error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".wav":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return wav.Decode(f) }, nil
	case ".mp3":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return mp3.Decode(f) }, nil
	case ".flac":
		return func(f *os.File) (beep.StreamSeekCloser, beep.Format, error) { return flac.Decode(f) }, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, filepath.Ext(path))
	}
}

// Open decodes path and prepares the chain streamer -> loop -> tap -> ctrl ->
// volume. volume is a power-of-two gain; 0 leaves the track unchanged.
func Open(path string, volume float64, ringSize int) (*Track, error) {
	decode, err := decoderFor(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	streamer, format, err := decode(f)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}

	tap := NewTap(beep.Loop(-1, streamer), ringSize)
	ctrl := &beep.Ctrl{Streamer: tap}
	vol := &effects.Volume{Streamer: ctrl, Base: 2, Volume: volume}

	return &Track{
		Path:     path,
		file:     f,
		streamer: streamer,
		format:   format,
		tap:      tap,
		ctrl:     ctrl,
		volume:   vol,
	}, nil
}

// Play starts the track, initializing the speaker on first use or when the
// sample rate changes.
func (t *Track) Play() error {
	speakerMu.Lock()
	defer speakerMu.Unlock()

	if speakerRate != t.format.SampleRate {
		if speakerRate != 0 {
			speaker.Clear()
		}
		if err := speaker.Init(t.format.SampleRate, t.format.SampleRate.N(time.Second/20)); err != nil {
			return fmt.Errorf("init speaker: %w", err)
		}
		speakerRate = t.format.SampleRate
	} else {
		speaker.Clear()
	}

	speaker.Play(t.volume)
	return nil
}

// Level is the current loudness in [0,1].
func (t *Track) Level() float64 {
	return t.tap.Level(LevelWindow)
}

// Format reports the decoded sample format.
func (t *Track) Format() beep.Format { return t.format }

// Close stops playback and releases the file.
func (t *Track) Close() error {
	speakerMu.Lock()
	if speakerRate != 0 {
		speaker.Lock()
		t.ctrl.Paused = true
		speaker.Unlock()
		speaker.Clear()
	}
	speakerMu.Unlock()

	err := t.streamer.Close()
	_ = t.file.Close()
	return err
}

// Pick asks for a track with a file dialog. A canceled dialog returns "".
func Pick() (string, error) {
	filename, err := zenity.SelectFile(
		zenity.Title("Choose a soundtrack"),
		zenity.FileFilters{{
			Name:     "Audio",
			Patterns: []string{"*.wav", "*.mp3", "*.flac"},
		}},
	)
	if err != nil {
		if errors.Is(err, zenity.ErrCanceled) {
			return "", nil
		}
		return "", err
	}
	return filename, nil
}
