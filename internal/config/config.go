package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envKeys maps recognised environment variables onto koanf key paths.
// Anything not listed here is ignored.
var envKeys = map[string]string{
	"PORT":             "port",
	"SHUTDOWN_TIMEOUT": "shutdown_timeout",
	"DB_HOST":          "db.host",
	"DB_PORT":          "db.port",
	"DB_USER":          "db.user",
	"DB_PASSWORD":      "db.password",
	"DB_NAME":          "db.name",
	"DB_SSLMODE":       "db.sslmode",
	"LOG_LEVEL":        "log.level",
	"LOG_FORMAT":       "log.format",
}

// DatabaseConfig holds the PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string `koanf:"host" validate:"required"`
	Port     int    `koanf:"port" validate:"required,min=1,max=65535"`
	User     string `koanf:"user" validate:"required"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required"`
	SSLMode  string `koanf:"sslmode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
}

// LogConfig selects the log level and output encoding.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=debug info warn error"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// Config aggregates application-wide configuration values.
type Config struct {
	Port            string         `koanf:"port" validate:"required,numeric"`
	ShutdownTimeout time.Duration  `koanf:"shutdown_timeout" validate:"gt=0"`
	Database        DatabaseConfig `koanf:"db"`
	Log             LogConfig      `koanf:"log"`
}

// Defaults returns the configuration used when no environment overrides are set.
func Defaults() *Config {
	return &Config{
		Port:            "8080",
		ShutdownTimeout: 10 * time.Second,
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    5432,
			User:    "ragnarok",
			Name:    "ragnarok",
			SSLMode: "disable",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads configuration from environment variables on top of Defaults
// and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")

	err := k.Load(env.ProviderWithValue("", ".", func(key, value string) (string, interface{}) {
		if value == "" {
			return "", nil
		}
		return envKeys[key], value
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	cfg := Defaults()
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// DatabaseURL renders the pgx connection string for the configured database.
func (c *Config) DatabaseURL() string {
	db := c.Database

	user := url.User(db.User)
	if db.Password != "" {
		user = url.UserPassword(db.User, db.Password)
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     user,
		Host:     net.JoinHostPort(db.Host, strconv.Itoa(db.Port)),
		Path:     "/" + db.Name,
		RawQuery: url.Values{"sslmode": []string{db.SSLMode}}.Encode(),
	}
	return u.String()
}
