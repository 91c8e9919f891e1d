// Package config loads the server configuration from defaults, an
// optional YAML file, a .env file and KW_* environment variables, in
// increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Storage backends for session state.
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
)

// Config is the server configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Storage  StorageConfig  `yaml:"storage"`
	Session  SessionConfig  `yaml:"session"`
	Auth     AuthConfig     `yaml:"auth"`
	Admin    AdminConfig    `yaml:"admin"`
	Messages MessagesConfig `yaml:"messages"`
}

// ServerConfig contains HTTP listener settings.
type ServerConfig struct {
	Addr    string `yaml:"addr"`
	DevMode bool   `yaml:"dev_mode"`
}

// StorageConfig selects where session state lives.
type StorageConfig struct {
	Backend    string      `yaml:"backend"`
	SQLitePath string      `yaml:"sqlite_path"`
	Redis      RedisConfig `yaml:"redis"`
}

// RedisConfig contains Redis connection settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// SessionConfig contains browser session settings.
type SessionConfig struct {
	TTL           time.Duration `yaml:"ttl"`
	SweepSchedule string        `yaml:"sweep_schedule"`
}

// AuthConfig contains login settings.
type AuthConfig struct {
	LoginDelay time.Duration `yaml:"login_delay"`
}

// AdminConfig contains admin console settings.
type AdminConfig struct {
	Email    string        `yaml:"email"`
	Password string        `yaml:"password"`
	Secret   string        `yaml:"secret"`
	TokenTTL time.Duration `yaml:"token_ttl"`
}

// MessagesConfig contains chat settings.
type MessagesConfig struct {
	ReplyDelay time.Duration `yaml:"reply_delay"`
}

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Storage: StorageConfig{
			Backend: BackendMemory,
			Redis:   RedisConfig{Addr: "localhost:6379"},
		},
		Session: SessionConfig{
			TTL:           30 * 24 * time.Hour,
			SweepSchedule: "@every 10m",
		},
		Auth:     AuthConfig{LoginDelay: 500 * time.Millisecond},
		Admin:    AdminConfig{Email: "admin@kwartayo.com", Password: "admin123", TokenTTL: 12 * time.Hour},
		Messages: MessagesConfig{ReplyDelay: time.Second},
	}
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "kwartayo", "config.yaml")
}

// Load builds the configuration. A missing file at path is not an error;
// an empty path skips the file. envFile names a dotenv file, ".env" when
// empty; it is optional and never overrides variables already set.
func Load(path, envFile string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("loading %s: %w", envFile, err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}
	var errs []error
	dur := func(key string, dst *time.Duration) {
		if v, ok := lookup(key); ok && v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = d
		}
	}

	str("KW_ADDR", &c.Server.Addr)
	if v, ok := lookup("KW_DEV_MODE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("KW_DEV_MODE: %w", err))
		}
		c.Server.DevMode = b
	}
	str("KW_STORAGE", &c.Storage.Backend)
	str("KW_DB_PATH", &c.Storage.SQLitePath)
	str("KW_REDIS_ADDR", &c.Storage.Redis.Addr)
	str("KW_REDIS_PASSWORD", &c.Storage.Redis.Password)
	if v, ok := lookup("KW_REDIS_DB"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("KW_REDIS_DB: %w", err))
		}
		c.Storage.Redis.DB = n
	}
	dur("KW_SESSION_TTL", &c.Session.TTL)
	str("KW_SWEEP_SCHEDULE", &c.Session.SweepSchedule)
	dur("KW_LOGIN_DELAY", &c.Auth.LoginDelay)
	str("KW_ADMIN_EMAIL", &c.Admin.Email)
	str("KW_ADMIN_PASSWORD", &c.Admin.Password)
	str("KW_ADMIN_SECRET", &c.Admin.Secret)
	dur("KW_ADMIN_TOKEN_TTL", &c.Admin.TokenTTL)
	dur("KW_REPLY_DELAY", &c.Messages.ReplyDelay)

	return errors.Join(errs...)
}

// Validate checks the configuration for values the server cannot use.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr is required"))
	}
	switch c.Storage.Backend {
	case BackendMemory, BackendSQLite:
	case BackendRedis:
		if c.Storage.Redis.Addr == "" {
			errs = append(errs, errors.New("storage.redis.addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend %q: want memory, sqlite or redis", c.Storage.Backend))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("session.ttl must be positive"))
	}
	if _, err := cron.ParseStandard(c.Session.SweepSchedule); err != nil {
		errs = append(errs, fmt.Errorf("session.sweep_schedule: %w", err))
	}
	if c.Auth.LoginDelay < 0 {
		errs = append(errs, errors.New("auth.login_delay must not be negative"))
	}
	if c.Messages.ReplyDelay < 0 {
		errs = append(errs, errors.New("messages.reply_delay must not be negative"))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
