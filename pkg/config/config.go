package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const (
	BackendMemory   = "memory"
	BackendFile     = "file"
	BackendRedis    = "redis"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
)

type Config struct {
	App   AppConfig
	Store StoreConfig
	Redis RedisConfig
	SQL   SQLConfig
}

// Load reads an optional .env file and then the IMPORTDESK_* environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && len(envFiles) > 0 {
		return nil, fmt.Errorf("loading env file: %w", err)
	}
	return FromEnv()
}

// FromEnv parses the process environment without touching .env files.
func FromEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	LogLevel     string `envconfig:"IMPORTDESK_LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"IMPORTDESK_LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"IMPORTDESK_LOG_WARN_STACK" default:"false"`
}

type StoreConfig struct {
	Backend   string `envconfig:"IMPORTDESK_STORE_BACKEND" default:"file"`
	Path      string `envconfig:"IMPORTDESK_STORE_PATH" default:"./data"`
	Namespace string `envconfig:"IMPORTDESK_STORE_NAMESPACE" default:"importdesk"`
}

type RedisConfig struct {
	URL          string        `envconfig:"IMPORTDESK_REDIS_URL"`
	Address      string        `envconfig:"IMPORTDESK_REDIS_ADDR"`
	Password     string        `envconfig:"IMPORTDESK_REDIS_PASSWORD"`
	DB           int           `envconfig:"IMPORTDESK_REDIS_DB" default:"0"`
	DialTimeout  time.Duration `envconfig:"IMPORTDESK_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"IMPORTDESK_REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"IMPORTDESK_REDIS_WRITE_TIMEOUT" default:"3s"`
}

type SQLConfig struct {
	DSN string `envconfig:"IMPORTDESK_SQL_DSN"`
}

func (c *Config) Validate() error {
	c.Store.Backend = strings.ToLower(strings.TrimSpace(c.Store.Backend))
	switch c.Store.Backend {
	case BackendMemory:
	case BackendFile:
		if c.Store.Path == "" {
			return fmt.Errorf("IMPORTDESK_STORE_PATH is required for the file backend")
		}
	case BackendRedis:
		if c.Redis.URL == "" && c.Redis.Address == "" {
			return fmt.Errorf("IMPORTDESK_REDIS_URL or IMPORTDESK_REDIS_ADDR is required for the redis backend")
		}
	case BackendSQLite:
		if c.SQL.DSN == "" {
			c.SQL.DSN = "importdesk.db"
		}
	case BackendPostgres:
		if c.SQL.DSN == "" {
			return fmt.Errorf("IMPORTDESK_SQL_DSN is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unsupported store backend %q", c.Store.Backend)
	}
	return nil
}
