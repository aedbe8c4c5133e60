// Package config loads the TOML settings file and applies environment
// overrides on top of it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/estudai/estudai/internal/constants"
	"github.com/estudai/estudai/internal/utils"
)

const (
	EnvDatabase     = "ESTUDAI_DATABASE"
	EnvDBConnection = "ESTUDAI_DB_CONNECTION"
	EnvRedisAddr    = "ESTUDAI_REDIS_ADDR"
	EnvAPIAddr      = "ESTUDAI_API_ADDR"
	EnvTimezone     = "ESTUDAI_TIMEZONE"
	EnvDebug        = "ESTUDAI_DEBUG"
	EnvRateLimit    = "ESTUDAI_RATE_LIMIT"
)

type Config struct {
	// Database is a SQLite file path or a PostgreSQL connection string
	// without a password.
	Database  string `toml:"database"`
	Timezone  string `toml:"timezone"`
	Debug     bool   `toml:"debug"`
	LogLevel  string `toml:"log_level"`
	RedisAddr string `toml:"redis_addr"`
	API       API    `toml:"api"`
}

type API struct {
	Addr               string `toml:"addr"`
	RateLimitPerMinute int    `toml:"rate_limit_per_minute"`
}

func Default() Config {
	return Config{
		Database: constants.DefaultConfigPath,
		Timezone: constants.DefaultTimezone,
		LogLevel: "info",
		API: API{
			Addr:               constants.DefaultAPIAddr,
			RateLimitPerMinute: constants.DefaultRateLimitPerMin,
		},
	}
}

// DefaultPath returns ~/.config/estudai/config.toml, expanded.
func DefaultPath() string {
	return utils.ExpandHome(filepath.Join(constants.DefaultConfigDir, constants.ConfigFileName))
}

// Dir returns the directory holding the config file, which is also where
// logs are written.
func Dir(path string) string {
	return filepath.Dir(utils.ExpandHome(path))
}

// LoadOrCreate reads the file at path, writing the defaults first when it
// does not exist. Missing keys keep their defaults.
func LoadOrCreate(path string) (Config, error) {
	path = utils.ExpandHome(path)
	cfg := Default()

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err := Write(path, cfg); err != nil {
			return cfg, err
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	cfg.fillDefaults()
	return cfg, nil
}

func Write(path string, cfg Config) error {
	path = utils.ExpandHome(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
}

func (c *Config) fillDefaults() {
	def := Default()
	if c.Database == "" {
		c.Database = def.Database
	}
	if c.Timezone == "" {
		c.Timezone = def.Timezone
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
	if c.API.Addr == "" {
		c.API.Addr = def.API.Addr
	}
	if c.API.RateLimitPerMinute <= 0 {
		c.API.RateLimitPerMinute = def.API.RateLimitPerMinute
	}
}

// LoadEnv reads .env files into the process environment. Variables that are
// already set win. A missing file is not an error.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	return godotenv.Load(existing...)
}

// ApplyEnv overrides fields from ESTUDAI_* variables. A PostgreSQL
// connection in ESTUDAI_DB_CONNECTION takes precedence over ESTUDAI_DATABASE.
func (c *Config) ApplyEnv() error {
	if v := os.Getenv(EnvDatabase); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvDBConnection); v != "" {
		c.Database = v
	}
	if v := os.Getenv(EnvRedisAddr); v != "" {
		c.RedisAddr = v
	}
	if v := os.Getenv(EnvAPIAddr); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv(EnvTimezone); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv(EnvDebug); v != "" {
		debug, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvDebug, err)
		}
		c.Debug = debug
	}
	if v := os.Getenv(EnvRateLimit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s must be a positive integer", EnvRateLimit)
		}
		c.API.RateLimitPerMinute = n
	}
	return nil
}

// Validate checks values that would otherwise fail late.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Database) == "" {
		return errors.New("database must not be empty")
	}
	if !utils.ValidateTimezone(c.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Timezone)
	}
	if c.API.RateLimitPerMinute <= 0 {
		return errors.New("api.rate_limit_per_minute must be greater than 0")
	}
	return nil
}

// Load is LoadOrCreate followed by .env loading, environment overrides and
// validation.
func Load(path string) (Config, error) {
	cfg, err := LoadOrCreate(path)
	if err != nil {
		return cfg, err
	}
	if err := LoadEnv(); err != nil {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	if err := cfg.ApplyEnv(); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
