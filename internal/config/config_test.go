package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":5000", cfg.Server.Addr)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "data/newsdesk.db", cfg.Database.Path)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, 10*time.Second, cfg.News.Timeout)
	assert.Equal(t, "https://gnews.io/api/v4", cfg.News.BaseURL)
	assert.False(t, cfg.Articles.EnforceOwnership)
	assert.Error(t, cfg.Validate(), "jwt secret has no default")
}

func TestLoad_PrefixedEnv(t *testing.T) {
	t.Setenv("NEWSDESK_AUTH_JWTSECRET", "s3cret")
	t.Setenv("NEWSDESK_AUTH_TOKENTTL", "2h")
	t.Setenv("NEWSDESK_DATABASE_DRIVER", "Mongo")
	t.Setenv("NEWSDESK_DATABASE_URI", "mongodb://localhost:27017")
	t.Setenv("NEWSDESK_ARTICLES_ENFORCEOWNERSHIP", "true")
	t.Setenv("NEWSDESK_SERVER_ALLOWEDORIGINS", "http://localhost:3000,https://news.example.com")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 2*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, DriverMongo, cfg.Database.Driver)
	assert.True(t, cfg.Articles.EnforceOwnership)
	assert.Equal(t, []string{"http://localhost:3000", "https://news.example.com"}, cfg.Server.AllowedOrigins)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_LegacyEnv(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("JWT_SECRET", "legacy")
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("GNEWS_API_KEY", "key-123")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "legacy", cfg.Auth.JWTSecret)
	assert.Equal(t, "mongodb://db:27017", cfg.Database.URI)
	assert.Equal(t, "key-123", cfg.News.APIKey)
	assert.Equal(t, DriverMongo, cfg.Database.Driver, "a mongo uri without a driver selects mongo")
	assert.NoError(t, cfg.Validate())
}

func TestLoad_ExplicitDriverWinsOverURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db:27017")
	t.Setenv("NEWSDESK_DATABASE_DRIVER", "sqlite")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: "127.0.0.1:9000"
auth:
  jwtsecret: from-file
news:
  timeout: 3s
log:
  level: debug
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr)
	assert.Equal(t, "from-file", cfg.Auth.JWTSecret)
	assert.Equal(t, 3*time.Second, cfg.News.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	var cfg Config
	cfg.Auth.JWTSecret = "s"
	cfg.Database.Driver = DriverSQLite
	cfg.Database.Path = "x.db"
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = DriverMongo
	assert.ErrorContains(t, cfg.Validate(), "database uri is required")

	cfg.Database.Driver = "postgres"
	assert.ErrorContains(t, cfg.Validate(), "unsupported database driver")
}
