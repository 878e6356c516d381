package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, PublishAdminOnly, cfg.Policy.Publish)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "unknown driver", mutate: func(c *Config) { c.Database.Driver = "mysql" }},
		{name: "unknown publish policy", mutate: func(c *Config) { c.Policy.Publish = "anyone" }},
		{name: "default secret in release", mutate: func(c *Config) { c.Server.Mode = "release" }},
		{name: "empty secret", mutate: func(c *Config) { c.JWT.Secret = "" }},
		{name: "zero access ttl", mutate: func(c *Config) { c.JWT.AccessTTL = 0 }},
		{name: "zero rate limit", mutate: func(c *Config) { c.RateLimit.AuthPerMinute = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("SQLITE_PATH", "/tmp/blog-test.db")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_ACCESS_TTL", "15m")
	t.Setenv("PUBLISH_POLICY", PublishOwnerOrAdmin)
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Database.Driver)
	assert.Equal(t, "/tmp/blog-test.db", cfg.DSN())
	assert.Equal(t, "s3cret", cfg.JWT.Secret)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessTTL)
	assert.Equal(t, 24*time.Hour, cfg.JWT.RefreshTTL)
	assert.Equal(t, PublishOwnerOrAdmin, cfg.Policy.Publish)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestLoadRejectsInvalidEnvironment(t *testing.T) {
	t.Setenv(ConfigPathEnvVar, "")
	t.Setenv("PUBLISH_POLICY", "everyone")

	_, err := Load()
	assert.Error(t, err)
}

func TestPostgresDSN(t *testing.T) {
	cfg := Default()
	cfg.Database.Password = "pw"
	assert.Equal(t, "host=localhost port=5432 user=postgres password=pw dbname=blog sslmode=disable", cfg.DSN())
}
