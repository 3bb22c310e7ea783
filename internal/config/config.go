package config

import (
	"fmt"
	"net/url"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Store drivers.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
)

// Config holds all configuration for the application.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
	Store  StoreConfig
}

// ServerConfig holds server-related configuration.
type ServerConfig struct {
	Port            string `envconfig:"SERVER_PORT" default:"3000"`
	ShutdownTimeout int    `envconfig:"SHUTDOWN_TIMEOUT" default:"30"` // seconds
	CORSOrigins     string `envconfig:"CORS_ALLOW_ORIGINS" default:"*"`
}

// DBConfig holds database-related configuration. It is only read when STORE_DRIVER=postgres.
// WARNING: Default password is for local development only.
// In production, always set DB_PASSWORD via environment variable
// and set DB_SSLMODE to "require" or "verify-full".
type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     int    `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" default:"postgres"`
	Password string `envconfig:"DB_PASSWORD" default:"postgres"` // CHANGE IN PRODUCTION
	Name     string `envconfig:"DB_NAME" default:"keepup_db"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns int    `envconfig:"DB_MAX_CONNS" default:"10"`
	MinConns int    `envconfig:"DB_MIN_CONNS" default:"2"`
}

// DSN returns the PostgreSQL connection string. Credentials are URL-escaped.
func (c DBConfig) DSN() string {
	q := url.Values{}
	q.Set("sslmode", c.SSLMode)
	q.Set("pool_max_conns", fmt.Sprint(c.MaxConns))
	q.Set("pool_min_conns", fmt.Sprint(c.MinConns))

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.Name,
		RawQuery: q.Encode(),
	}
	return u.String()
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level  string `envconfig:"LOG_LEVEL" default:"info"`
	Pretty bool   `envconfig:"LOG_PRETTY" default:"false"`
}

// StoreConfig selects where loyalty and scheduling data live.
// SEED_FILE replaces the embedded demo dataset when set. DB_MIGRATE and SEED_ON_START
// only apply to the postgres driver; the memory store always starts seeded.
type StoreConfig struct {
	Driver      string `envconfig:"STORE_DRIVER" default:"memory"`
	SeedFile    string `envconfig:"SEED_FILE"`
	Migrate     bool   `envconfig:"DB_MIGRATE" default:"true"`
	SeedOnStart bool   `envconfig:"SEED_ON_START" default:"true"`
}

// Load reads an optional .env file, then parses environment variables into the Config struct.
// Variables already set in the environment take precedence over the file.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return load()
}

func load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	switch cfg.Store.Driver {
	case StoreMemory, StorePostgres:
	default:
		return nil, fmt.Errorf("unsupported STORE_DRIVER %q (want %s or %s)", cfg.Store.Driver, StoreMemory, StorePostgres)
	}
	return &cfg, nil
}
