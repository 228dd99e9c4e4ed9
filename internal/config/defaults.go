package config

import (
	"log/slog"
	"time"

	"github.com/ziadkadry99/edition-advisor/internal/layout"
	"github.com/ziadkadry99/edition-advisor/internal/viewport"
)

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".advisor.yml"

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	opts := layout.DefaultOptions()
	return &Config{
		Port:            8080,
		ViewportProfile: viewport.Explorer.Name,
		NodeWidth:       opts.NodeWidth,
		NodeHeight:      opts.NodeHeight,
		FontSize:        opts.FontSize,
		InitialDelayMS:  100,
		ResizeDebounce:  150,
		FrameIntervalMS: 16,
		YesLabel:        opts.YesLabel,
		NoLabel:         opts.NoLabel,
		LogLevel:        LogInfo,
	}
}

// LayoutOptions returns the layout geometry with the configured overrides.
func (c *Config) LayoutOptions() layout.Options {
	opts := layout.DefaultOptions()
	opts.NodeWidth = c.NodeWidth
	opts.NodeHeight = c.NodeHeight
	opts.FontSize = c.FontSize
	opts.YesLabel = c.YesLabel
	opts.NoLabel = c.NoLabel
	return opts
}

// Profile returns the configured viewport profile.
func (c *Config) Profile() (viewport.Profile, error) {
	return viewport.ProfileByName(c.ViewportProfile)
}

// InitialDelay is how long a session waits before its first layout.
func (c *Config) InitialDelay() time.Duration {
	return time.Duration(c.InitialDelayMS) * time.Millisecond
}

// ResizeWait is the quiet period that coalesces resize events.
func (c *Config) ResizeWait() time.Duration {
	return time.Duration(c.ResizeDebounce) * time.Millisecond
}

// FrameInterval is the delay between animation frames.
func (c *Config) FrameInterval() time.Duration {
	return time.Duration(c.FrameIntervalMS) * time.Millisecond
}

// SlogLevel maps the log level to slog.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case LogDebug:
		return slog.LevelDebug
	case LogWarn:
		return slog.LevelWarn
	case LogError:
		return slog.LevelError
	}
	return slog.LevelInfo
}
