package engine

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"
	"github.com/spaghettifunk/gulag/engine/core"
	"github.com/spaghettifunk/gulag/engine/platform"
)

// DefaultConfigFile is read when no other path is given. It is optional.
const DefaultConfigFile = "gulag.toml"

var ErrInvalidConfig = errors.New("invalid application config")

type ApplicationConfig struct {
	// The application name, used as the window title.
	Name string `toml:"name"`
	// Window starting width.
	Width uint32 `toml:"width"`
	// Window starting height.
	Height    uint32 `toml:"height"`
	Resizable bool   `toml:"resizable"`
	// One of debug, info, warn, error, fatal.
	LogLevel string `toml:"log_level"`
	// Route driver debug messages to the log.
	Debug      bool       `toml:"debug"`
	ClearColor [4]float32 `toml:"clear_color"`
}

// DefaultConfig mirrors the window builder defaults.
func DefaultConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:       platform.DefaultTitle,
		Width:      platform.DefaultWidth,
		Height:     platform.DefaultHeight,
		Resizable:  true,
		LogLevel:   "info",
		Debug:      true,
		ClearColor: [4]float32{0, 0, 0, 1},
	}
}

// LoadConfig overlays the TOML file at path on base, or on DefaultConfig
// when base is nil. A missing DefaultConfigFile is not an error. Unknown
// keys are rejected.
func LoadConfig(path string, base *ApplicationConfig) (*ApplicationConfig, error) {
	cfg := DefaultConfig()
	if base != nil {
		c := *base
		cfg = &c
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && path == DefaultConfigFile {
			core.LogDebug("no %s found, using defaults", DefaultConfigFile)
			return cfg, cfg.Validate()
		}
		return nil, fmt.Errorf("could not read config %s: %w", path, err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		var derr *toml.DecodeError
		if errors.As(err, &derr) {
			row, col := derr.Position()
			return nil, fmt.Errorf("%w: %s:%d:%d: %s", ErrInvalidConfig, path, row, col, derr)
		}
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidConfig, path, err)
	}
	return cfg, cfg.Validate()
}

func (c *ApplicationConfig) Validate() error {
	if c.Width == 0 || c.Height == 0 {
		return fmt.Errorf("%w: resolution %dx%d is not positive", ErrInvalidConfig, c.Width, c.Height)
	}
	if _, err := core.ParseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for _, v := range c.ClearColor {
		if v < 0 || v > 1 {
			return fmt.Errorf("%w: clear color %v outside [0,1]", ErrInvalidConfig, c.ClearColor)
		}
	}
	return nil
}

// Level returns the parsed log level. Call Validate first.
func (c *ApplicationConfig) Level() core.LogLevel {
	level, err := core.ParseLogLevel(c.LogLevel)
	if err != nil {
		return core.InfoLevel
	}
	return level
}
