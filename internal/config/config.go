package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Environment string `toml:"environment"`
	Host        string `toml:"host"`
	Port        int    `toml:"port"`
	MetricsHost string `toml:"metrics_host"`
	MetricsPort string `toml:"metrics_port"`
	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// time zone the calendar days are counted in, e.g. "Europe/Berlin"; empty is local
	Timezone string `toml:"timezone"`
	// store
	StoreBackend   string `toml:"store_backend"`
	StoreCacheSize int    `toml:"store_cache_size"`
	RedisHost      string `toml:"redis_host"`
	RedisPort      string `toml:"redis_port"`
	RedisKeyPrefix string `toml:"redis_key_prefix"`
	PostgresHost   string `toml:"postgres_host"`
	PostgresPort   string `toml:"postgres_port"`
	PostgresDBName string `toml:"postgres_db_name"`
	SQLitePath     string `toml:"sqlite_path"`
	// scheduling
	SnoozeMinutes   int      `toml:"snooze_minutes"`
	RefreshInterval Duration `toml:"refresh_interval"`
	// telemetry
	TracingEnabled bool `toml:"tracing_enabled"`

	// secrets, from env only
	RedisPassword string `toml:"-"`
	SentryDSN     string `toml:"-"`
}

// Duration reads "10m" style strings from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file, picks the table of the given env, applies defaults and
// takes secrets from env vars (GROOVE_REDIS_PASS, SENTRY_DSN).
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] missing in [%s]", env, path)
	}

	if cfg.Environment == "" {
		cfg.Environment = strings.ToLower(env)
	}
	cfg.applyDefaults()
	cfg.RedisPassword = os.Getenv("GROOVE_REDIS_PASS")
	cfg.SentryDSN = os.Getenv("SENTRY_DSN")

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 9500
	}
	if c.MetricsHost == "" {
		c.MetricsHost = "localhost"
	}
	if c.MetricsPort == "" {
		c.MetricsPort = "9501"
	}
	if c.StoreBackend == "" {
		c.StoreBackend = "sqlite"
	}
	if c.SQLitePath == "" {
		c.SQLitePath = "./groove.db"
	}
	if c.RedisKeyPrefix == "" {
		c.RedisKeyPrefix = "groove"
	}
	if c.SnoozeMinutes <= 0 {
		c.SnoozeMinutes = 15
	}
	if c.RefreshInterval.Duration <= 0 {
		c.RefreshInterval.Duration = 5 * time.Minute
	}
}

// Location resolves Timezone; empty means the local time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone [%s]: %w", c.Timezone, err)
	}
	return loc, nil
}

func (c *Config) SnoozeDuration() time.Duration {
	return time.Duration(c.SnoozeMinutes) * time.Minute
}
