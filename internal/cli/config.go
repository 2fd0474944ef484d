package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ethanknights/shap/pkg/pipeline"
)

// configFileName is the per-project configuration file looked up in the
// working directory.
const configFileName = "shap.toml"

// config holds defaults loaded from a TOML file. Zero values leave the
// built-in defaults untouched; command-line flags win over both.
type config struct {
	InputOrder  string   `toml:"input_order"`
	SampleOrder string   `toml:"sample_order"`
	MaxDisplay  int      `toml:"max_display"`
	Palette     string   `toml:"palette"`
	Formats     []string `toml:"formats"`
	Width       float64  `toml:"width"`
	Height      float64  `toml:"height"`
}

// loadConfig reads configuration from path. When path is empty it tries
// shap.toml in the working directory, then $XDG_CONFIG_HOME/shap/config.toml.
// A missing file is not an error; a malformed one is.
func loadConfig(path string) (config, error) {
	var cfg config

	explicit := path != ""
	if !explicit {
		path = findConfig()
		if path == "" {
			return cfg, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, err
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// findConfig returns the first existing config path, or "".
func findConfig() string {
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	path := filepath.Join(dir, "shap", "config.toml")
	if _, err := os.Stat(path); err == nil {
		return path
	}
	return ""
}

// apply copies the config's non-zero values onto unset pipeline options.
func (c config) apply(opts *pipeline.Options) {
	if opts.InputOrder == "" && c.InputOrder != "" {
		opts.InputOrder = c.InputOrder
	}
	if opts.SampleOrder == "" && c.SampleOrder != "" {
		opts.SampleOrder = c.SampleOrder
	}
	if opts.MaxDisplay == 0 && c.MaxDisplay != 0 {
		opts.MaxDisplay = c.MaxDisplay
	}
	if opts.Palette == "" && c.Palette != "" {
		opts.Palette = c.Palette
	}
	if len(opts.Formats) == 0 && len(c.Formats) > 0 {
		opts.Formats = c.Formats
	}
	if opts.Width == 0 && c.Width != 0 {
		opts.Width = c.Width
	}
	if opts.Height == 0 && c.Height != 0 {
		opts.Height = c.Height
	}
}
