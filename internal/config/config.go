package config

import (
	"fmt"
	"net"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Cache drivers
const (
	CacheDriverNone   = "none"
	CacheDriverMemory = "memory"
	CacheDriverRedis  = "redis"
)

// Product catalog sources
const (
	ProductSourceStatic   = "static"
	ProductSourcePostgres = "postgres"
)

// ScheduleParser accepts the six-field cron expressions used by the scheduler
var ScheduleParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Config holds all configuration for our application.
// Sections are squashed so every key maps to a flat environment variable.
type Config struct {
	Server    ServerConfig    `mapstructure:",squash"`
	Logging   LoggingConfig   `mapstructure:",squash"`
	Cache     CacheConfig     `mapstructure:",squash"`
	Redis     RedisConfig     `mapstructure:",squash"`
	Products  ProductConfig   `mapstructure:",squash"`
	Database  DatabaseConfig  `mapstructure:",squash"`
	RateLimit RateLimitConfig `mapstructure:",squash"`
	Health    HealthConfig    `mapstructure:",squash"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"SERVER_PORT"`
	Host            string        `mapstructure:"SERVER_HOST"`
	Env             string        `mapstructure:"ENV"`
	ReadTimeout     time.Duration `mapstructure:"SERVER_READ_TIMEOUT"`
	WriteTimeout    time.Duration `mapstructure:"SERVER_WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `mapstructure:"SERVER_SHUTDOWN_TIMEOUT"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type CacheConfig struct {
	Driver        string        `mapstructure:"CACHE_DRIVER"`
	TTL           time.Duration `mapstructure:"CACHE_TTL"`
	PurgeSchedule string        `mapstructure:"CACHE_PURGE_SCHEDULE"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type ProductConfig struct {
	Source          string `mapstructure:"PRODUCT_SOURCE"`
	RefreshSchedule string `mapstructure:"PRODUCT_REFRESH_SCHEDULE"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"DATABASE_URL"`
	MaxOpenConns    int           `mapstructure:"DATABASE_MAX_OPEN_CONNS"`
	MaxIdleConns    int           `mapstructure:"DATABASE_MAX_IDLE_CONNS"`
	ConnMaxLifetime time.Duration `mapstructure:"DATABASE_CONN_MAX_LIFETIME"`
	RunMigrations   bool          `mapstructure:"DATABASE_RUN_MIGRATIONS"`
}

type RateLimitConfig struct {
	RequestsPerSecond float64 `mapstructure:"RATE_LIMIT_RPS"`
	Burst             int     `mapstructure:"RATE_LIMIT_BURST"`
}

type HealthConfig struct {
	Timeout time.Duration `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

var defaults = map[string]interface{}{
	"SERVER_PORT":             "8080",
	"SERVER_HOST":             "0.0.0.0",
	"ENV":                     "development",
	"SERVER_READ_TIMEOUT":     "15s",
	"SERVER_WRITE_TIMEOUT":    "15s",
	"SERVER_SHUTDOWN_TIMEOUT": "30s",

	"LOG_LEVEL":  "info",
	"LOG_FORMAT": "json",

	"CACHE_DRIVER":         CacheDriverMemory,
	"CACHE_TTL":            "10m",
	"CACHE_PURGE_SCHEDULE": "0 */5 * * * *",

	"REDIS_HOST":     "localhost",
	"REDIS_PORT":     "6379",
	"REDIS_PASSWORD": "",
	"REDIS_DB":       0,

	"PRODUCT_SOURCE":           ProductSourceStatic,
	"PRODUCT_REFRESH_SCHEDULE": "0 */15 * * * *",

	"DATABASE_URL":               "",
	"DATABASE_MAX_OPEN_CONNS":    10,
	"DATABASE_MAX_IDLE_CONNS":    5,
	"DATABASE_CONN_MAX_LIFETIME": "30m",
	"DATABASE_RUN_MIGRATIONS":    true,

	"RATE_LIMIT_RPS":   20,
	"RATE_LIMIT_BURST": 40,

	"HEALTH_CHECK_TIMEOUT": "5s",
}

// Load reads configuration from environment variables. Files listed in
// envFiles (default ".env") are loaded first when present and never
// override variables that are already set.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, file := range envFiles {
		// Missing files are fine
		_ = godotenv.Load(file)
	}

	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	// Read from environment variables
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Server.ReadTimeout <= 0 || c.Server.WriteTimeout <= 0 || c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server timeouts must be greater than 0")
	}

	if c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("LOG_FORMAT must be json or console, got %q", c.Logging.Format)
	}

	switch c.Cache.Driver {
	case CacheDriverNone:
	case CacheDriverMemory, CacheDriverRedis:
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("CACHE_TTL must be greater than 0")
		}
	default:
		return fmt.Errorf("CACHE_DRIVER must be one of none, memory, redis, got %q", c.Cache.Driver)
	}

	if _, err := ScheduleParser.Parse(c.Cache.PurgeSchedule); err != nil {
		return fmt.Errorf("CACHE_PURGE_SCHEDULE must be a valid cron expression: %w", err)
	}

	switch c.Products.Source {
	case ProductSourceStatic:
	case ProductSourcePostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("DATABASE_URL is required when PRODUCT_SOURCE is postgres")
		}
		if _, err := ScheduleParser.Parse(c.Products.RefreshSchedule); err != nil {
			return fmt.Errorf("PRODUCT_REFRESH_SCHEDULE must be a valid cron expression: %w", err)
		}
	default:
		return fmt.Errorf("PRODUCT_SOURCE must be static or postgres, got %q", c.Products.Source)
	}

	if c.RateLimit.RequestsPerSecond < 0 {
		return fmt.Errorf("RATE_LIMIT_RPS cannot be negative")
	}
	if c.RateLimit.RequestsPerSecond > 0 && c.RateLimit.Burst <= 0 {
		return fmt.Errorf("RATE_LIMIT_BURST must be greater than 0 when rate limiting is enabled")
	}

	// Validate health check timeout
	if c.Health.Timeout <= 0 {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be greater than 0")
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// Addr returns the listen address of the HTTP server
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// Addr returns the redis address
func (c *RedisConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}
