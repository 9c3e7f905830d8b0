package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/constellation/internal/constellation"
)

const (
	WindowWidth  = 1024
	WindowHeight = 512
	WindowTitle  = "Constellation"
	TPS          = 60

	// Constellation parameters
	InverseNodeDensity = 10000
	NodeColor          = "rgb(86, 226, 125)"
	EdgeColor          = NodeColor
	NodeMaxDistance    = 0.8
	NodeRadius         = 2
	EdgeWidth          = 1
	AgeStep            = 0.01
	MaxSpeed           = 0.2

	// Backdrop parameters
	BackdropColor = "#0b1a2a"
	BackdropScale = 8
	BackdropDrift = 0.002

	VisualRingSize = 8192
	AudioVolume    = 0.0
)

var (
	// ErrUnknownFormat is returned by Load for files that are neither TOML nor YAML.
	ErrUnknownFormat = errors.New("unknown config format")
	// ErrEmptyWindow is returned by RequireArea for a window without pixels.
	ErrEmptyWindow = errors.New("window needs a positive width and height")
)

// Config holds every setting of the constellation renderer.
type Config struct {
	Window        WindowConfig        `toml:"window" yaml:"window"`
	Constellation ConstellationConfig `toml:"constellation" yaml:"constellation"`
	Backdrop      BackdropConfig      `toml:"backdrop" yaml:"backdrop"`
	Audio         AudioConfig         `toml:"audio" yaml:"audio"`
	Logging       LoggingConfig       `toml:"logging" yaml:"logging"`
}

// WindowConfig controls the host window or terminal.
type WindowConfig struct {
	Width     int    `toml:"width" yaml:"width"`
	Height    int    `toml:"height" yaml:"height"`
	Title     string `toml:"title" yaml:"title"`
	TPS       int    `toml:"tps" yaml:"tps"`
	Resizable bool   `toml:"resizable" yaml:"resizable"`
	HUD       bool   `toml:"hud" yaml:"hud"`
}

// RequireArea rejects sizes a window or an image cannot be created with.
// Validate allows them because the simulation itself runs on an empty surface.
func (w WindowConfig) RequireArea() error {
	if w.Width <= 0 || w.Height <= 0 {
		return fmt.Errorf("%w, got %dx%d", ErrEmptyWindow, w.Width, w.Height)
	}
	return nil
}

// ConstellationConfig controls the nodes and edges. Colors are written as
// "rgb(r, g, b)", "#rrggbb" or "#rgb".
type ConstellationConfig struct {
	NodeColor      string  `toml:"node_color" yaml:"node_color"`
	EdgeColor      string  `toml:"edge_color" yaml:"edge_color"`
	NodeRadius     float64 `toml:"node_radius" yaml:"node_radius"`
	EdgeWidth      float64 `toml:"edge_width" yaml:"edge_width"`
	InverseDensity float64 `toml:"inverse_density" yaml:"inverse_density"`
	MaxDistance    float64 `toml:"max_distance" yaml:"max_distance"`
	AgeStep        float64 `toml:"age_step" yaml:"age_step"`
	MaxSpeed       float64 `toml:"max_speed" yaml:"max_speed"`
	DedupeEdges    bool    `toml:"dedupe_edges" yaml:"dedupe_edges"`
	Seed           uint64  `toml:"seed" yaml:"seed"` // 0 picks a random seed
}

// BackdropConfig controls the noise texture drawn behind the constellation.
// Color takes the same notations as the constellation colors.
type BackdropConfig struct {
	Enabled bool    `toml:"enabled" yaml:"enabled"`
	Color   string  `toml:"color" yaml:"color"`
	Scale   int     `toml:"scale" yaml:"scale"`
	Drift   float64 `toml:"drift" yaml:"drift"`
}

// AudioConfig controls the optional background track.
type AudioConfig struct {
	Path   string  `toml:"path" yaml:"path"`
	Pick   bool    `toml:"pick" yaml:"pick"`
	Volume float64 `toml:"volume" yaml:"volume"` // exponent base 2, 0 is unchanged
}

// LoggingConfig sets the log verbosity: "info", "debug" or "trace".
type LoggingConfig struct {
	Level string `toml:"level" yaml:"level"`
}

// Default returns the configuration matching the built-in constants.
func Default() *Config {
	return &Config{
		Window: WindowConfig{
			Width:     WindowWidth,
			Height:    WindowHeight,
			Title:     WindowTitle,
			TPS:       TPS,
			Resizable: true,
		},
		Constellation: ConstellationConfig{
			NodeColor:      NodeColor,
			EdgeColor:      EdgeColor,
			NodeRadius:     NodeRadius,
			EdgeWidth:      EdgeWidth,
			InverseDensity: InverseNodeDensity,
			MaxDistance:    NodeMaxDistance,
			AgeStep:        AgeStep,
			MaxSpeed:       MaxSpeed,
		},
		Backdrop: BackdropConfig{
			Enabled: true,
			Color:   BackdropColor,
			Scale:   BackdropScale,
			Drift:   BackdropDrift,
		},
		Audio: AudioConfig{
			Volume: AudioVolume,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads path over the defaults. The format follows the file extension.
// An empty path returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes cfg to path, as YAML for .yaml and .yml and as TOML otherwise.
func Save(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	format := "toml"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		format = "yaml"
	}
	if err := cfg.Write(f, format); err != nil {
		return err
	}
	return f.Close()
}

// Write encodes the config as "toml" or "yaml".
func (c *Config) Write(w io.Writer, format string) error {
	switch format {
	case "toml":
		return toml.NewEncoder(w).Encode(c)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(c); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
}

// Validate rejects values the renderer cannot work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Window.Width < 0 || c.Window.Height < 0 {
		errs = append(errs, fmt.Errorf("window size %dx%d is negative", c.Window.Width, c.Window.Height))
	}
	if c.Window.TPS <= 0 {
		errs = append(errs, fmt.Errorf("tps must be positive, got %d", c.Window.TPS))
	}
	if c.Constellation.InverseDensity <= 0 {
		errs = append(errs, fmt.Errorf("inverse_density must be positive, got %v", c.Constellation.InverseDensity))
	}
	if c.Constellation.MaxDistance < 0 {
		errs = append(errs, fmt.Errorf("max_distance must not be negative, got %v", c.Constellation.MaxDistance))
	}
	if c.Constellation.AgeStep <= 0 {
		errs = append(errs, fmt.Errorf("age_step must be positive, got %v", c.Constellation.AgeStep))
	}
	if _, err := constellation.ParseColor(c.Constellation.NodeColor); err != nil {
		errs = append(errs, fmt.Errorf("node_color: %w", err))
	}
	if _, err := constellation.ParseColor(c.Constellation.EdgeColor); err != nil {
		errs = append(errs, fmt.Errorf("edge_color: %w", err))
	}
	if c.Backdrop.Enabled {
		if _, err := constellation.ParseColor(c.Backdrop.Color); err != nil {
			errs = append(errs, fmt.Errorf("backdrop color: %w", err))
		}
		if c.Backdrop.Scale <= 0 {
			errs = append(errs, fmt.Errorf("backdrop scale must be positive, got %d", c.Backdrop.Scale))
		}
	}
	return errors.Join(errs...)
}

// Options converts the constellation section into simulation options.
// Call Validate first; unparsable colors fall back to the defaults.
func (c *Config) Options() constellation.Options {
	opts := constellation.DefaultOptions()

	if clr, err := constellation.ParseColor(c.Constellation.NodeColor); err == nil {
		opts.NodeColor = clr
	}
	if clr, err := constellation.ParseColor(c.Constellation.EdgeColor); err == nil {
		opts.EdgeColor = clr
	}
	opts.NodeRadius = c.Constellation.NodeRadius
	opts.EdgeWidth = c.Constellation.EdgeWidth
	opts.InverseDensity = c.Constellation.InverseDensity
	opts.MaxDistance = c.Constellation.MaxDistance
	opts.AgeStep = c.Constellation.AgeStep
	opts.MaxSpeed = c.Constellation.MaxSpeed
	opts.DedupeEdges = c.Constellation.DedupeEdges
	opts.Seed = c.Constellation.Seed
	return opts
}
