// Package config loads emcapi configuration through viper and decodes it
// with mapstructure hooks.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"time"

	gfconfig "github.com/fulmenhq/gofulmen/config"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/emcapi/emcapi/internal/core/client"
	"github.com/emcapi/emcapi/internal/core/engine"
)

const (
	// AppName names the config directory and binary.
	AppName = "emcapi"

	// EnvPrefix is prepended to environment overrides, e.g. EMCAPI_CLIENT_SERVER.
	EnvPrefix = "EMCAPI"
)

var (
	appConfig *Config
	configMu  sync.RWMutex
)

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("client.base_url", client.DefaultBaseURL)
	v.SetDefault("client.server", client.DefaultServer)
	v.SetDefault("client.max_requests_per_window", 0)
	v.SetDefault("client.window_size", engine.DefaultWindow.String())
	v.SetDefault("client.retries", engine.DefaultRetries)
	v.SetDefault("client.timeout", "30s")
	v.SetDefault("client.user_agent", engine.DefaultUserAgent)

	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "60s")
	v.SetDefault("server.idle_timeout", "120s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.profile", "structured")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.port", 9090)
}

// BindEnv makes EMCAPI_SECTION_KEY variables override section.key.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes and validates the configuration held by v. Defaults must
// already be registered. The result is also stored for GetConfig.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		return nil, errors.New("viper instance is required")
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	setConfig(cfg)
	return cfg, nil
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if u, err := url.Parse(strings.TrimSpace(c.Client.BaseURL)); err != nil || u.Scheme == "" || u.Host == "" {
		errs = append(errs, fmt.Errorf("client.base_url %q must be an absolute URL", c.Client.BaseURL))
	}
	if strings.TrimSpace(c.Client.Server) == "" || strings.Contains(c.Client.Server, "/") {
		errs = append(errs, fmt.Errorf("client.server %q is not a valid server name", c.Client.Server))
	}
	if c.Client.MaxRequestsPerWindow < 0 {
		errs = append(errs, fmt.Errorf("client.max_requests_per_window must not be negative, got %d", c.Client.MaxRequestsPerWindow))
	}
	if c.Client.WindowSize <= 0 {
		errs = append(errs, fmt.Errorf("client.window_size must be positive, got %s", c.Client.WindowSize))
	}
	if c.Client.Retries < 0 {
		errs = append(errs, fmt.Errorf("client.retries must not be negative, got %d", c.Client.Retries))
	}
	if c.Client.Timeout < 0 {
		errs = append(errs, fmt.Errorf("client.timeout must not be negative, got %s", c.Client.Timeout))
	}
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d is out of range", c.Server.Port))
	}

	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// ClientOptions converts the client section into options for client.New.
func (c ClientConfig) ClientOptions() client.Options {
	opts := client.DefaultOptions()
	opts.BaseURL = c.BaseURL
	opts.Server = c.Server
	opts.RateLimit = engine.RateLimit{
		Quota:  engine.QuotaFromInt(c.MaxRequestsPerWindow),
		Window: c.WindowSize,
	}
	opts.Retries = c.Retries
	if strings.TrimSpace(c.UserAgent) != "" {
		opts.UserAgent = c.UserAgent
	}
	return opts
}

// RequestTimeout returns the per-request HTTP timeout, defaulting to 30s.
func (c ClientConfig) RequestTimeout() time.Duration {
	if c.Timeout <= 0 {
		return 30 * time.Second
	}
	return c.Timeout
}

// GetConfig returns the last loaded configuration (thread-safe)
func GetConfig() *Config {
	configMu.RLock()
	defer configMu.RUnlock()
	return appConfig
}

func setConfig(cfg *Config) {
	configMu.Lock()
	defer configMu.Unlock()
	appConfig = cfg
}

// DefaultConfigPath returns the XDG-compliant path to the user config file.
func DefaultConfigPath() string {
	configDir := gfconfig.GetAppConfigDir(AppName)
	if strings.TrimSpace(configDir) == "" {
		return ""
	}
	return filepath.Join(configDir, "config.yaml")
}
