package cli

import (
	"os"

	"github.com/BurntSushi/toml"

	"github.com/wiretrace/wiretrace/pkg/pipeline"
)

// Config holds per-project render defaults, loaded from wiretrace.toml in
// the working directory. Flags always win over config values.
type Config struct {
	Render RenderConfig `toml:"render"`
	Serve  ServeConfig  `toml:"serve"`
}

// RenderConfig are the defaults for render and watch.
type RenderConfig struct {
	Formats     []string `toml:"formats"`
	Zoom        float64  `toml:"zoom"`
	Strict      bool     `toml:"strict"`
	NoGrid      bool     `toml:"no_grid"`
	GridSpacing float64  `toml:"grid_spacing"`
	Output      string   `toml:"output"`
}

// ServeConfig are the defaults for serve.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the built-in defaults used when no config file exists.
func DefaultConfig() Config {
	return Config{
		Render: RenderConfig{
			Formats: []string{pipeline.FormatSVG},
			Zoom:    pipeline.DefaultZoom,
		},
		Serve: ServeConfig{
			Addr: ":8080",
		},
	}
}

// LoadConfig reads path and layers it over the defaults. A missing file is
// not an error; a malformed one is.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, err
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}

	if err := pipeline.ValidateFormats(cfg.Render.Formats); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}
