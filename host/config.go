package host

import (
	"flag"
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// RunConfig holds window and runtime settings for Run.
type RunConfig struct {
	Title      string `env:"CADENCE_TITLE"       envDefault:"cadence"`
	Width      int    `env:"CADENCE_WIDTH"       envDefault:"1280"`
	Height     int    `env:"CADENCE_HEIGHT"      envDefault:"720"`
	TPS        int    `env:"CADENCE_TPS"         envDefault:"60"`
	ShowFPS    bool   `env:"CADENCE_SHOW_FPS"`
	Debug      bool   `env:"CADENCE_DEBUG"`
	ConfigPath string `env:"CADENCE_PAGE_CONFIG"`
	Script     string `env:"CADENCE_SCRIPT"`
	LogLevel   string `env:"CADENCE_LOG_LEVEL"   envDefault:"info"`
	// WheelStep is the page distance scrolled per mouse wheel notch.
	WheelStep float64 `env:"CADENCE_WHEEL_STEP" envDefault:"60"`
}

// LoadRunConfig reads the environment, then applies flag overrides from
// args.
func LoadRunConfig(fs *flag.FlagSet, args []string) (RunConfig, error) {
	var cfg RunConfig
	if err := env.Parse(&cfg); err != nil {
		return RunConfig{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Title, "title", cfg.Title, "window title")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "window width in pixels")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "window height in pixels")
	fs.IntVar(&cfg.TPS, "tps", cfg.TPS, "engine ticks per second")
	fs.BoolVar(&cfg.ShowFPS, "fps", cfg.ShowFPS, "show the FPS overlay")
	fs.BoolVar(&cfg.Debug, "debug", cfg.Debug, "log per-tick engine stats")
	fs.StringVar(&cfg.ConfigPath, "config", cfg.ConfigPath, "path to a YAML page config")
	fs.StringVar(&cfg.Script, "script", cfg.Script, "path to a JSON input script")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level (debug, info, warn, error)")
	fs.Float64Var(&cfg.WheelStep, "wheel-step", cfg.WheelStep, "pixels scrolled per wheel notch")
	if err := fs.Parse(args); err != nil {
		return RunConfig{}, err
	}
	if err := cfg.Validate(); err != nil {
		return RunConfig{}, err
	}
	return cfg, nil
}

// Validate checks for settings the host cannot run with.
func (c RunConfig) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("window size must be positive, got %dx%d", c.Width, c.Height)
	}
	if c.TPS <= 0 {
		return fmt.Errorf("tps must be positive, got %d", c.TPS)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c RunConfig) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToLower(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
