package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/ziadkadry99/edition-advisor/internal/viewport"
)

// EnvPrefix marks environment variables that override file settings.
const EnvPrefix = "ADVISOR_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (ADVISOR_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// Overlay environment variables: ADVISOR_PORT -> port, etc.
	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// validLogLevels is the set of recognized log levels.
var validLogLevels = map[LogLevel]bool{
	LogDebug: true,
	LogInfo:  true,
	LogWarn:  true,
	LogError: true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if _, err := viewport.ProfileByName(c.ViewportProfile); err != nil {
		return err
	}
	if c.NodeWidth <= 0 || c.NodeHeight <= 0 {
		return fmt.Errorf("node_width and node_height must be positive")
	}
	if c.FontSize <= 0 {
		return fmt.Errorf("font_size must be positive")
	}
	if c.InitialDelayMS < 0 || c.ResizeDebounce < 0 {
		return fmt.Errorf("initial_delay_ms and resize_debounce_ms must be non-negative")
	}
	if c.FrameIntervalMS <= 0 {
		return fmt.Errorf("frame_interval_ms must be positive")
	}
	if c.YesLabel == "" || c.NoLabel == "" {
		return fmt.Errorf("yes_label and no_label are required")
	}
	if c.LogLevel != "" && !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log_level %q: must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// Watch reloads the file whenever it changes and passes the result to fn.
// The returned function stops watching.
func Watch(path string, fn func(*Config, error)) (func() error, error) {
	fp := file.Provider(path)
	err := fp.Watch(func(_ interface{}, err error) {
		if err != nil {
			fn(nil, fmt.Errorf("watching %s: %w", path, err))
			return
		}
		cfg, err := Load(path)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			fn(nil, err)
			return
		}
		fn(cfg, nil)
	})
	if err != nil {
		return nil, fmt.Errorf("watching %s: %w", path, err)
	}
	return fp.Unwatch, nil
}
