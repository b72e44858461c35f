package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Data     DataConfig     `mapstructure:"data"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Timeouts TimeoutsConfig `mapstructure:"timeouts"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         string        `mapstructure:"port"`
	InternalPort string        `mapstructure:"internal_port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle_timeout"`
}

// DatabaseConfig contains database connection configuration.
// An empty URL disables saved snapshots.
type DatabaseConfig struct {
	URL               string        `mapstructure:"url"`
	MaxConnections    int           `mapstructure:"max_connections"`
	MaxIdleTime       time.Duration `mapstructure:"max_idle_time"`
	HealthCheckPeriod time.Duration `mapstructure:"health_check_period"`
	PingTimeout       time.Duration `mapstructure:"ping_timeout"`
}

// RedisConfig contains Redis connection configuration.
// An empty URL switches the document cache to in-process memory.
type RedisConfig struct {
	URL            string        `mapstructure:"url"`
	MaxConnections int           `mapstructure:"max_connections"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	MaxRetries     int           `mapstructure:"max_retries"`
	PingTimeout    time.Duration `mapstructure:"ping_timeout"`
}

// DataConfig describes where the catalog documents come from
type DataConfig struct {
	RemoteURL       string        `mapstructure:"remote_url"`
	LocalDir        string        `mapstructure:"local_dir"`
	RequestTimeout  time.Duration `mapstructure:"request_timeout"`
	CacheTTL        time.Duration `mapstructure:"cache_ttl"`
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	Encoding string `mapstructure:"encoding"`
}

// CORSConfig lists origins allowed to call the public API (the game page for the userscript)
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	MaxAge         int      `mapstructure:"max_age"`
}

// TimeoutsConfig contains various timeout configurations
type TimeoutsConfig struct {
	HTTPMiddleware   time.Duration `mapstructure:"http_middleware"`
	GracefulShutdown time.Duration `mapstructure:"graceful_shutdown"`
	InitialLoad      time.Duration `mapstructure:"initial_load"`
	DatabaseHealth   time.Duration `mapstructure:"database_health"`
	RedisHealth      time.Duration `mapstructure:"redis_health"`
}

// MetricsConfig contains metrics collection configuration
type MetricsConfig struct {
	UpdateInterval time.Duration `mapstructure:"update_interval"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/codex-service")

	// Set environment variable prefix and key replacement
	v.SetEnvPrefix("CODEX_SVC")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Keys without defaults must be bound explicitly to be picked up by Unmarshal
	_ = v.BindEnv("database.url", "CODEX_SVC_DATABASE_URL")
	_ = v.BindEnv("redis.url", "CODEX_SVC_REDIS_URL")
	_ = v.BindEnv("data.remote_url", "CODEX_SVC_DATA_REMOTE_URL")
	_ = v.BindEnv("data.local_dir", "CODEX_SVC_DATA_LOCAL_DIR")

	setDefaults(v)

	// Try to read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default values for configuration
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.internal_port", "8090")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.idle_timeout", "60s")

	// Database defaults (URL intentionally unset)
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_time", "5m")
	v.SetDefault("database.health_check_period", "1m")
	v.SetDefault("database.ping_timeout", "5s")

	// Redis defaults
	v.SetDefault("redis.max_connections", 10)
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("redis.write_timeout", "3s")
	v.SetDefault("redis.max_retries", 3)
	v.SetDefault("redis.ping_timeout", "5s")

	// Data source defaults
	v.SetDefault("data.request_timeout", "10s")
	v.SetDefault("data.cache_ttl", "10m")
	v.SetDefault("data.refresh_interval", "15m")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.encoding", "json")

	// CORS defaults
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.max_age", 300)

	// Timeout defaults
	v.SetDefault("timeouts.http_middleware", "60s")
	v.SetDefault("timeouts.graceful_shutdown", "30s")
	v.SetDefault("timeouts.initial_load", "30s")
	v.SetDefault("timeouts.database_health", "2s")
	v.SetDefault("timeouts.redis_health", "2s")

	// Metrics defaults
	v.SetDefault("metrics.update_interval", "10s")
}

// Validate validates the configuration and ensures required fields are present
func (c *Config) Validate() error {
	if c.Data.RemoteURL == "" && c.Data.LocalDir == "" {
		return fmt.Errorf("at least one data source is required (set CODEX_SVC_DATA_REMOTE_URL or CODEX_SVC_DATA_LOCAL_DIR)")
	}

	if c.Server.Port == "" || c.Server.InternalPort == "" {
		return fmt.Errorf("server.port and server.internal_port cannot be empty")
	}
	if c.Server.Port == c.Server.InternalPort {
		return fmt.Errorf("server.port and server.internal_port must differ, both are %s", c.Server.Port)
	}

	// Validate timeout values are reasonable
	timeouts := map[string]time.Duration{
		"server.read_timeout":      c.Server.ReadTimeout,
		"server.write_timeout":     c.Server.WriteTimeout,
		"data.request_timeout":     c.Data.RequestTimeout,
		"timeouts.initial_load":    c.Timeouts.InitialLoad,
		"timeouts.http_middleware": c.Timeouts.HTTPMiddleware,
	}

	for name, timeout := range timeouts {
		if timeout <= 0 {
			return fmt.Errorf("timeout '%s' must be positive, got %v", name, timeout)
		}
		if timeout > 10*time.Minute {
			return fmt.Errorf("timeout '%s' seems too large, got %v", name, timeout)
		}
	}

	if c.Data.RefreshInterval < 0 {
		return fmt.Errorf("data.refresh_interval cannot be negative, got %v", c.Data.RefreshInterval)
	}
	if c.Data.CacheTTL < 0 {
		return fmt.Errorf("data.cache_ttl cannot be negative, got %v", c.Data.CacheTTL)
	}

	// Validate numeric values
	if c.Database.URL != "" && c.Database.MaxConnections <= 0 {
		return fmt.Errorf("database.max_connections must be positive, got %d", c.Database.MaxConnections)
	}
	if c.Redis.URL != "" && c.Redis.MaxConnections <= 0 {
		return fmt.Errorf("redis.max_connections must be positive, got %d", c.Redis.MaxConnections)
	}
	if c.Redis.MaxRetries < 0 {
		return fmt.Errorf("redis.max_retries cannot be negative, got %d", c.Redis.MaxRetries)
	}

	return nil
}

// SnapshotsEnabled reports whether saved snapshots have a database behind them
func (c *Config) SnapshotsEnabled() bool {
	return c.Database.URL != ""
}
