package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the application configuration loaded from files and environment variables.
type Config struct {
	AppName  string `mapstructure:"app_name"`
	Env      string `mapstructure:"app_env"`
	LogLevel string `mapstructure:"log_level"`
	HTTPAddr string `mapstructure:"http_addr"`

	WordPressAPIURL    string `mapstructure:"wordpress_api_url"`
	WordPressUserAgent string `mapstructure:"wordpress_user_agent"`
	SiteLocale         string `mapstructure:"site_locale"`
	FallbackFile       string `mapstructure:"fallback_file"`
	PublishersFile     string `mapstructure:"publishers_file"`

	RequestTimeoutSeconds    int64         `mapstructure:"request_timeout_seconds"`
	DiagnosticTimeoutSeconds int64         `mapstructure:"diagnostic_timeout_seconds"`
	ShutdownTimeoutSeconds   int64         `mapstructure:"shutdown_timeout_seconds"`
	RequestTimeout           time.Duration `mapstructure:"-"`
	DiagnosticTimeout        time.Duration `mapstructure:"-"`
	ShutdownTimeout          time.Duration `mapstructure:"-"`

	PageTTLSeconds int64         `mapstructure:"page_ttl_seconds"`
	ListTTLSeconds int64         `mapstructure:"list_ttl_seconds"`
	PageTTL        time.Duration `mapstructure:"-"`
	ListTTL        time.Duration `mapstructure:"-"`

	CacheType                   string        `mapstructure:"cache_type"`
	BBoltPath                   string        `mapstructure:"bbolt_path"`
	CacheCleanupIntervalSeconds int64         `mapstructure:"cache_cleanup_interval_seconds"`
	CacheCleanupInterval        time.Duration `mapstructure:"-"`
	RedisAddr                   string        `mapstructure:"redis_addr"`
	RedisPassword               string        `mapstructure:"redis_password"`
	RedisDB                     int           `mapstructure:"redis_db"`

	// WarmIntervalSeconds of zero disables the background cache warmer.
	WarmIntervalSeconds int64         `mapstructure:"warm_interval_seconds"`
	WarmInterval        time.Duration `mapstructure:"-"`
}

// Load reads configuration from environment variables and config files.
func Load() (*Config, error) {
	_ = godotenv.Load("configs/.env")

	v := viper.New()

	v.SetDefault("app_name", "genego-site")
	v.SetDefault("app_env", "development")
	v.SetDefault("log_level", "info")
	v.SetDefault("http_addr", ":3000")
	v.SetDefault("wordpress_api_url", "")
	v.SetDefault("wordpress_user_agent", "genego-site/1.0")
	v.SetDefault("site_locale", "de-CH")
	v.SetDefault("fallback_file", "")
	v.SetDefault("publishers_file", "")
	v.SetDefault("request_timeout_seconds", 15)
	v.SetDefault("diagnostic_timeout_seconds", 10)
	v.SetDefault("shutdown_timeout_seconds", 10)
	v.SetDefault("page_ttl_seconds", 60)
	v.SetDefault("list_ttl_seconds", 300)
	v.SetDefault("cache_type", "bbolt")
	v.SetDefault("bbolt_path", "./data/cache.db")
	v.SetDefault("cache_cleanup_interval_seconds", 600)
	v.SetDefault("redis_addr", "localhost:6379")
	v.SetDefault("redis_password", "")
	v.SetDefault("redis_db", 0)
	v.SetDefault("warm_interval_seconds", 0)

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finalize validates numeric settings and derives durations.
func (c *Config) finalize() error {
	c.WordPressAPIURL = strings.TrimSpace(c.WordPressAPIURL)
	c.CacheType = strings.ToLower(strings.TrimSpace(c.CacheType))

	seconds := []struct {
		name  string
		value int64
		dst   *time.Duration
	}{
		{"request_timeout_seconds", c.RequestTimeoutSeconds, &c.RequestTimeout},
		{"diagnostic_timeout_seconds", c.DiagnosticTimeoutSeconds, &c.DiagnosticTimeout},
		{"shutdown_timeout_seconds", c.ShutdownTimeoutSeconds, &c.ShutdownTimeout},
		{"page_ttl_seconds", c.PageTTLSeconds, &c.PageTTL},
		{"list_ttl_seconds", c.ListTTLSeconds, &c.ListTTL},
		{"cache_cleanup_interval_seconds", c.CacheCleanupIntervalSeconds, &c.CacheCleanupInterval},
	}
	for _, s := range seconds {
		if s.value <= 0 {
			return fmt.Errorf("invalid %s (must be positive seconds)", s.name)
		}
		*s.dst = time.Duration(s.value) * time.Second
	}
	if c.WarmIntervalSeconds < 0 {
		return fmt.Errorf("invalid warm_interval_seconds (must not be negative)")
	}
	c.WarmInterval = time.Duration(c.WarmIntervalSeconds) * time.Second
	return nil
}
