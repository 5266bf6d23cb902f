package config

import "time"

// Config is the complete emcapi configuration. Values come from defaults,
// an optional YAML file, EMCAPI_* environment variables and flags, in
// increasing precedence.
type Config struct {
	Client  ClientConfig  `mapstructure:"client"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// ClientConfig configures the API session.
type ClientConfig struct {
	BaseURL string `mapstructure:"base_url"`
	Server  string `mapstructure:"server"`

	// MaxRequestsPerWindow bounds admissions per WindowSize. Zero means unlimited.
	MaxRequestsPerWindow int           `mapstructure:"max_requests_per_window"`
	WindowSize           time.Duration `mapstructure:"window_size"`

	// Retries is the number of extra attempts after a 504.
	Retries   int           `mapstructure:"retries"`
	Timeout   time.Duration `mapstructure:"timeout"`
	UserAgent string        `mapstructure:"user_agent"`
}

// ServerConfig contains local gateway configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	IdleTimeout     time.Duration `mapstructure:"idle_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	// Level controls the minimum log level
	// Valid values: trace, debug, info, warn, error
	Level string `mapstructure:"level"`

	// Profile selects the logging complexity level
	// Valid values: simple, structured
	Profile string `mapstructure:"profile"`
}

// MetricsConfig contains Prometheus metrics configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Port is the dedicated Prometheus exporter port
	Port int `mapstructure:"port"`
}
