package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndEnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("INVESTFOLIO_DB_DRIVER", "sqlite")
	t.Setenv("INVESTFOLIO_AUTH_LOCKOUT_DURATION", "15m")

	cfg, err := Load("missing.yaml", true)

	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.App.Env)
	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, 3, cfg.Auth.MaxFailedAttempts)
	assert.Equal(t, 15*time.Minute, cfg.Auth.LockoutDuration)
	assert.Equal(t, "memory", cfg.Session.Store)
	assert.True(t, cfg.Seed.AssetTypes)
}

func TestLoad_YAMLFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: prod
db:
  driver: postgres
  host: db.internal
  name: portfolios
auth:
  jwt_secret: s3cret
session:
  store: redis
`), 0o600))

	cfg, err := Load(path, false)

	require.NoError(t, err)
	assert.Equal(t, "prod", cfg.App.Env)
	assert.Equal(t, "redis", cfg.Session.Store)
	assert.Equal(t, "host=db.internal port=5432 user=postgres password=postgres dbname=portfolios sslmode=disable", cfg.DB.ConnectionString())
}

func TestValidate(t *testing.T) {
	valid := Config{
		App:     AppConfig{Env: "dev"},
		DB:      DBConfig{Driver: "postgres"},
		Auth:    AuthConfig{MaxFailedAttempts: 3},
		Session: SessionConfig{Store: "memory"},
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "Valid", mutate: func(c *Config) {}},
		{name: "Unknown driver", mutate: func(c *Config) { c.DB.Driver = "mysql" }, wantErr: true},
		{name: "Unknown session store", mutate: func(c *Config) { c.Session.Store = "memcached" }, wantErr: true},
		{name: "No failure threshold", mutate: func(c *Config) { c.Auth.MaxFailedAttempts = 0 }, wantErr: true},
		{name: "Missing secret outside dev", mutate: func(c *Config) { c.App.Env = "prod" }, wantErr: true},
		{name: "Secret outside dev", mutate: func(c *Config) { c.App.Env = "prod"; c.Auth.JWTSecret = "x" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDBConfig_ConnectionString(t *testing.T) {
	assert.Equal(t, "custom", DBConfig{DSN: "custom"}.ConnectionString())
	assert.Equal(t, "file:investfolio.db", DBConfig{Driver: "sqlite"}.ConnectionString())
}
