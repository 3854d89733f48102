// Package config loads the optional algotrace configuration file.
//
// The file is TOML and lives at $XDG_CONFIG_HOME/algotrace/config.toml
// (falling back to ~/.config/algotrace/config.toml):
//
//	[cache]
//	backend = "file"      # file, redis or none
//	ttl = "24h"
//	dir = "/var/cache/algotrace"
//	redis_url = "redis://localhost:6379/0"
//
//	[server]
//	addr = ":8080"
//
//	[log]
//	level = "info"
//
// Every key is optional. Missing keys keep their [Default] value, and
// ALGOTRACE_* environment variables override the file.
package config

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/algotrace/pkg/cache"
	errs "github.com/matzehuels/algotrace/pkg/errors"
)

const appName = "algotrace"

// Environment variables read by [Config.ApplyEnv].
const (
	EnvCacheBackend = "ALGOTRACE_CACHE_BACKEND"
	EnvCacheDir     = "ALGOTRACE_CACHE_DIR"
	EnvRedisURL     = "ALGOTRACE_REDIS_URL"
	EnvServerAddr   = "ALGOTRACE_ADDR"
	EnvLogLevel     = "ALGOTRACE_LOG_LEVEL"
)

// Config is the full configuration.
type Config struct {
	Cache  Cache  `toml:"cache"`
	Server Server `toml:"server"`
	Log    Log    `toml:"log"`
}

// Cache configures execution memoization.
type Cache struct {
	Backend  string   `toml:"backend"`
	TTL      Duration `toml:"ttl"`
	Dir      string   `toml:"dir,omitempty"`
	RedisURL string   `toml:"redis_url,omitempty"`
}

// Server configures algotrace serve.
type Server struct {
	Addr string `toml:"addr"`
}

// Log configures the logger.
type Log struct {
	Level string `toml:"level"`
}

// Duration is a time.Duration written as a Go duration string ("90s", "24h").
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Cache: Cache{
			Backend: cache.BackendFile,
			TTL:     Duration{cache.DefaultTTL},
		},
		Server: Server{Addr: ":8080"},
		Log:    Log{Level: "info"},
	}
}

// Path returns the default config file location.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// CacheDir returns the default file cache directory (~/.cache/algotrace/).
func CacheDir() (string, error) {
	if dir := os.Getenv("XDG_CACHE_HOME"); dir != "" {
		return filepath.Join(dir, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// Load reads the file at path over the defaults. A missing file is not an
// error. The result is validated.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return cfg, nil
	case err != nil:
		return Config{}, errs.Wrap(errs.ErrCodeInvalidPath, err, "read config %s", path)
	}
	if err := cfg.Decode(bytes.NewReader(data)); err != nil {
		return Config{}, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse config %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Decode reads TOML from r over the current values. Unknown keys are
// rejected.
func (c *Config) Decode(r io.Reader) error {
	md, err := toml.NewDecoder(r).Decode(c)
	if err != nil {
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errs.New(errs.ErrCodeInvalidFormat, "unknown config key %q", undecoded[0].String())
	}
	return nil
}

// Encode writes c as TOML.
func (c Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c)
}

// ApplyEnv overrides values from ALGOTRACE_* environment variables.
func (c *Config) ApplyEnv() {
	for env, dst := range map[string]*string{
		EnvCacheBackend: &c.Cache.Backend,
		EnvCacheDir:     &c.Cache.Dir,
		EnvRedisURL:     &c.Cache.RedisURL,
		EnvServerAddr:   &c.Server.Addr,
		EnvLogLevel:     &c.Log.Level,
	} {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*dst = v
		}
	}
}

// Validate checks enumerated values.
func (c Config) Validate() error {
	switch c.Cache.Backend {
	case cache.BackendFile, cache.BackendRedis, cache.BackendNone:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "cache.backend must be file, redis or none, got %q", c.Cache.Backend)
	}
	if c.Cache.Backend == cache.BackendRedis {
		if err := errs.ValidateRedisURL(c.Cache.RedisURL); err != nil {
			return err
		}
	}
	if c.Cache.TTL.Duration < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "cache.ttl must not be negative")
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	return nil
}

// LogLevel parses the configured log level.
func (c Config) LogLevel() (log.Level, error) {
	lvl, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel, errs.Wrap(errs.ErrCodeInvalidInput, err, "log.level")
	}
	return lvl, nil
}

// CacheOptions resolves the cache backend options, filling the default
// cache directory when none is configured.
func (c Config) CacheOptions() (cache.Options, error) {
	opts := cache.Options{
		Backend:  c.Cache.Backend,
		Dir:      c.Cache.Dir,
		RedisURL: c.Cache.RedisURL,
	}
	if opts.Backend == cache.BackendFile && opts.Dir == "" {
		dir, err := CacheDir()
		if err != nil {
			return cache.Options{}, errs.Wrap(errs.ErrCodeInvalidPath, err, "resolve cache dir")
		}
		opts.Dir = dir
	}
	return opts, nil
}
