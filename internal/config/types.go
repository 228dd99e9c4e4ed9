package config

// LogLevel is the minimum level written by the logger.
type LogLevel string

const (
	LogDebug LogLevel = "debug"
	LogInfo  LogLevel = "info"
	LogWarn  LogLevel = "warn"
	LogError LogLevel = "error"
)

// Config is the top-level advisor configuration, corresponding to .advisor.yml.
type Config struct {
	Port            int      `yaml:"port" koanf:"port"`
	AllowAllOrigins bool     `yaml:"allow_all_origins" koanf:"allow_all_origins"`
	ViewportProfile string   `yaml:"viewport_profile" koanf:"viewport_profile"`
	FullTree        bool     `yaml:"full_tree" koanf:"full_tree"`
	NodeWidth       float64  `yaml:"node_width" koanf:"node_width"`
	NodeHeight      float64  `yaml:"node_height" koanf:"node_height"`
	FontSize        float64  `yaml:"font_size" koanf:"font_size"`
	InitialDelayMS  int      `yaml:"initial_delay_ms" koanf:"initial_delay_ms"`
	ResizeDebounce  int      `yaml:"resize_debounce_ms" koanf:"resize_debounce_ms"`
	FrameIntervalMS int      `yaml:"frame_interval_ms" koanf:"frame_interval_ms"`
	YesLabel        string   `yaml:"yes_label" koanf:"yes_label"`
	NoLabel         string   `yaml:"no_label" koanf:"no_label"`
	LogLevel        LogLevel `yaml:"log_level" koanf:"log_level"`
}
