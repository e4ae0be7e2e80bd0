package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	DriverSQLite = "sqlite"
	DriverMongo  = "mongo"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr           string
		Port           int
		AllowedOrigins []string
	}
	Database struct {
		Driver string
		Path   string
		URI    string
		Name   string
	}
	Auth struct {
		JWTSecret  string
		TokenTTL   time.Duration
		BcryptCost int
	}
	News struct {
		APIKey  string
		BaseURL string
		Timeout time.Duration
	}
	Articles struct {
		EnforceOwnership bool
	}
	Log struct {
		Level  string
		Format string
	}
}

// legacyEnv maps config keys onto unprefixed variable names so existing
// .env files keep working.
var legacyEnv = map[string]string{
	"server.port":    "PORT",
	"database.uri":   "MONGODB_URI",
	"auth.jwtsecret": "JWT_SECRET",
	"news.apikey":    "GNEWS_API_KEY",
}

// Load reads configuration from .env, environment variables and an optional
// config file. configFile may be empty to search the working directory.
func Load(configFile string) (Config, error) {
	_ = godotenv.Load() // optional file

	v := viper.New()
	v.SetEnvPrefix("NEWSDESK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	for key, env := range legacyEnv {
		_ = v.BindEnv(key, "NEWSDESK_"+strings.ToUpper(strings.ReplaceAll(key, ".", "_")), env)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		_ = v.ReadInConfig() // optional file
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if cfg.Server.Port > 0 {
		cfg.Server.Addr = fmt.Sprintf(":%d", cfg.Server.Port)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = DriverSQLite
		if strings.TrimSpace(cfg.Database.URI) != "" {
			cfg.Database.Driver = DriverMongo
		}
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.port", 0)
	v.SetDefault("server.allowedorigins", []string{})
	v.SetDefault("database.driver", "") // resolved after load from database.uri
	v.SetDefault("database.path", "data/newsdesk.db")
	v.SetDefault("database.uri", "")
	v.SetDefault("database.name", "newsdesk")
	v.SetDefault("auth.jwtsecret", "")
	v.SetDefault("auth.tokenttl", "24h")
	v.SetDefault("auth.bcryptcost", 10)
	v.SetDefault("news.apikey", "")
	v.SetDefault("news.baseurl", "https://gnews.io/api/v4")
	v.SetDefault("news.timeout", "10s")
	v.SetDefault("articles.enforceownership", false)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate reports settings the server cannot start without.
func (c Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		errs = append(errs, errors.New("auth jwt secret is required"))
	}
	switch c.Database.Driver {
	case DriverSQLite:
		if strings.TrimSpace(c.Database.Path) == "" {
			errs = append(errs, errors.New("database path is required for sqlite"))
		}
	case DriverMongo:
		if strings.TrimSpace(c.Database.URI) == "" {
			errs = append(errs, errors.New("database uri is required for mongo"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.Database.Driver))
	}
	return errors.Join(errs...)
}
