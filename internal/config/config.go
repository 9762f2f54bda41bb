package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	HTTP    HTTPConfig
	Parser  ParserConfig
	Log     LogConfig
	Server  ServerConfig
	Catalog CatalogConfig
}

// HTTPConfig holds settings for fetching rating pages.
type HTTPConfig struct {
	Timeout     time.Duration `mapstructure:"timeout"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	SizeCap     int64         `mapstructure:"size_cap"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// ParserConfig holds table extraction settings.
type ParserConfig struct {
	// Encoding overrides charset detection when set, e.g. "windows-1251".
	Encoding         string `mapstructure:"encoding"`
	SequentialTables bool   `mapstructure:"sequential_tables"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ServerConfig holds HTTP API settings.
type ServerConfig struct {
	Addr         string        `mapstructure:"addr"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// CatalogConfig points at a user catalog; empty uses the built-in one.
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// Load reads configuration from environment variables with the ABIT_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("ABIT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("http.timeout", "15s")
	v.SetDefault("http.dial_timeout", "5s")
	v.SetDefault("http.size_cap", 5*1024*1024)
	v.SetDefault("http.user_agent", "abit-rating/1.0")

	v.SetDefault("parser.encoding", "")
	v.SetDefault("parser.sequential_tables", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.read_timeout", "10s")
	v.SetDefault("server.write_timeout", "60s")

	v.SetDefault("catalog.path", "")

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.HTTP.Timeout <= 0 {
		return fmt.Errorf("http.timeout must be positive, got %s", c.HTTP.Timeout)
	}
	if c.HTTP.SizeCap <= 0 {
		return fmt.Errorf("http.size_cap must be positive, got %d", c.HTTP.SizeCap)
	}
	return nil
}
