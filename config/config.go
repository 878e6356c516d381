package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// ConfigPathEnvVar overrides the config file location.
	ConfigPathEnvVar = "CONFIG_PATH"

	defaultJWTSecret = "your-secret-key-change-this-in-production"

	PublishAdminOnly    = "admin_only"
	PublishOwnerOrAdmin = "owner_or_admin"
)

var defaultConfigPaths = []string{"config.yaml", "config.yml"}

type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	JWT       JWTConfig       `koanf:"jwt"`
	Redis     RedisConfig     `koanf:"redis"`
	Log       LogConfig       `koanf:"log"`
	Policy    PolicyConfig    `koanf:"policy"`
	RateLimit RateLimitConfig `koanf:"ratelimit"`
	Stats     StatsConfig     `koanf:"stats"`
}

type ServerConfig struct {
	Host           string   `koanf:"host"`
	Port           string   `koanf:"port"`
	Mode           string   `koanf:"mode"` // "debug", "release", "test"
	TrustedProxies []string `koanf:"trusted_proxies"`
	CORSOrigins    []string `koanf:"cors_origins"`
}

type DatabaseConfig struct {
	Driver   string `koanf:"driver"` // "postgres" or "sqlite"
	Host     string `koanf:"host"`
	Port     string `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name"`
	SSLMode  string `koanf:"sslmode"`
	Path     string `koanf:"path"`
}

type JWTConfig struct {
	Secret     string        `koanf:"secret"`
	AccessTTL  time.Duration `koanf:"access_ttl"`
	RefreshTTL time.Duration `koanf:"refresh_ttl"`
}

type RedisConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Addr     string `koanf:"addr"`
	Password string `koanf:"password"`
	DB       int    `koanf:"db"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
}

type PolicyConfig struct {
	// Publish is either "admin_only" or "owner_or_admin".
	Publish string `koanf:"publish"`
}

type RateLimitConfig struct {
	AuthPerMinute int `koanf:"auth_per_minute"`
	AuthBurst     int `koanf:"auth_burst"`
}

type StatsConfig struct {
	CacheTTL time.Duration `koanf:"cache_ttl"`
}

// Default returns the configuration used before any file or environment
// variable is applied.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        "8080",
			Mode:        "debug",
			CORSOrigins: []string{"*"},
		},
		Database: DatabaseConfig{
			Driver:  "postgres",
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "blog",
			SSLMode: "disable",
			Path:    "blog.db",
		},
		JWT: JWTConfig{
			Secret:     defaultJWTSecret,
			AccessTTL:  60 * time.Minute,
			RefreshTTL: 24 * time.Hour,
		},
		Redis: RedisConfig{
			Addr: "localhost:6379",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
		Policy: PolicyConfig{
			Publish: PublishAdminOnly,
		},
		RateLimit: RateLimitConfig{
			AuthPerMinute: 20,
			AuthBurst:     5,
		},
		Stats: StatsConfig{
			CacheTTL: time.Minute,
		},
	}
}

// Load reads configuration in three layers: defaults, an optional YAML file,
// then environment variables. A .env file is applied to the environment first.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path := findConfigFile(); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	for _, key := range []string{"server.trusted_proxies", "server.cors_origins"} {
		if raw, ok := k.Get(key).(string); ok {
			if err := k.Set(key, splitList(raw)); err != nil {
				return nil, fmt.Errorf("failed to split %s: %w", key, err)
			}
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unknown database driver %q", c.Database.Driver)
	}
	switch c.Policy.Publish {
	case PublishAdminOnly, PublishOwnerOrAdmin:
	default:
		return fmt.Errorf("unknown publish policy %q", c.Policy.Publish)
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET must not be empty")
	}
	if c.IsProduction() && c.JWT.Secret == defaultJWTSecret {
		return errors.New("JWT_SECRET must be set in release mode")
	}
	if c.JWT.AccessTTL <= 0 || c.JWT.RefreshTTL <= 0 {
		return errors.New("token lifetimes must be positive")
	}
	if c.RateLimit.AuthPerMinute <= 0 || c.RateLimit.AuthBurst <= 0 {
		return errors.New("rate limit values must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Server.Mode == "release"
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.Database.Driver == "sqlite" {
		return c.Database.Path
	}
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Password, c.Database.Name, c.Database.SSLMode,
	)
}

func findConfigFile() string {
	if path := os.Getenv(ConfigPathEnvVar); path != "" {
		return path
	}
	for _, path := range defaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

var envMappings = map[string]string{
	"host":            "server.host",
	"port":            "server.port",
	"gin_mode":        "server.mode",
	"trusted_proxies": "server.trusted_proxies",
	"cors_origins":    "server.cors_origins",

	"db_driver":   "database.driver",
	"db_host":     "database.host",
	"db_port":     "database.port",
	"db_user":     "database.user",
	"db_password": "database.password",
	"db_name":     "database.name",
	"db_sslmode":  "database.sslmode",
	"sqlite_path": "database.path",

	"jwt_secret":      "jwt.secret",
	"jwt_access_ttl":  "jwt.access_ttl",
	"jwt_refresh_ttl": "jwt.refresh_ttl",

	"redis_enabled":  "redis.enabled",
	"redis_addr":     "redis.addr",
	"redis_password": "redis.password",
	"redis_db":       "redis.db",

	"log_level":  "log.level",
	"log_format": "log.format",

	"publish_policy": "policy.publish",

	"auth_rate_per_minute": "ratelimit.auth_per_minute",
	"auth_rate_burst":      "ratelimit.auth_burst",

	"stats_cache_ttl": "stats.cache_ttl",
}

// envTransformFunc maps DB_HOST style variables onto koanf paths. Unknown
// variables map to "" and are skipped.
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
