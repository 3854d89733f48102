package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/algotrace/pkg/cache"
	errs "github.com/matzehuels/algotrace/pkg/errors"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(Default(), cfg); diff != "" {
		t.Errorf("missing file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
[cache]
backend = "redis"
ttl = "90m"
redis_url = "redis://localhost:6379/1"

[log]
level = "debug"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	want := Default()
	want.Cache.Backend = cache.BackendRedis
	want.Cache.TTL = Duration{90 * time.Minute}
	want.Cache.RedisURL = "redis://localhost:6379/1"
	want.Log.Level = "debug"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Errorf("Load() (-want +got):\n%s", diff)
	}

	lvl, err := cfg.LogLevel()
	if err != nil || lvl != log.DebugLevel {
		t.Errorf("LogLevel() = %v, %v, want debug", lvl, err)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		code errs.Code
	}{
		{"syntax", "[cache\n", errs.ErrCodeInvalidFormat},
		{"unknown key", "[cache]\ncolour = 1\n", errs.ErrCodeInvalidFormat},
		{"bad duration", "[cache]\nttl = \"soon\"\n", errs.ErrCodeInvalidFormat},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errs.ErrCodeInvalidInput},
		{"redis without url", "[cache]\nbackend = \"redis\"\n", errs.ErrCodeInvalidInput},
		{"negative ttl", "[cache]\nttl = \"-1h\"\n", errs.ErrCodeInvalidInput},
		{"bad level", "[log]\nlevel = \"loud\"\n", errs.ErrCodeInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errs.Is(err, tt.code) {
				t.Errorf("Load() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	cfg := Default()
	cfg.Cache.Dir = "/tmp/traces"
	cfg.Server.Addr = "127.0.0.1:9000"

	var buf bytes.Buffer
	if err := cfg.Encode(&buf); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `ttl = "24h0m0s"`) {
		t.Errorf("ttl not written as a duration string:\n%s", buf.String())
	}

	got := Default()
	if err := got.Decode(&buf); err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip (-want +got):\n%s", diff)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvCacheBackend, "none")
	t.Setenv(EnvServerAddr, ":9999")
	t.Setenv(EnvRedisURL, "")

	cfg := Default()
	cfg.Cache.RedisURL = "redis://keep"
	cfg.ApplyEnv()

	if cfg.Cache.Backend != "none" {
		t.Errorf("backend = %q, want none", cfg.Cache.Backend)
	}
	if cfg.Server.Addr != ":9999" {
		t.Errorf("addr = %q, want :9999", cfg.Server.Addr)
	}
	if cfg.Cache.RedisURL != "redis://keep" {
		t.Errorf("empty env var overrode redis_url: %q", cfg.Cache.RedisURL)
	}
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/xdg/config")
	t.Setenv("XDG_CACHE_HOME", "/xdg/cache")

	if got, _ := Path(); got != filepath.Join("/xdg/config", "algotrace", "config.toml") {
		t.Errorf("Path() = %q", got)
	}
	if got, _ := CacheDir(); got != filepath.Join("/xdg/cache", "algotrace") {
		t.Errorf("CacheDir() = %q", got)
	}

	opts, err := Default().CacheOptions()
	if err != nil {
		t.Fatal(err)
	}
	if opts.Dir != filepath.Join("/xdg/cache", "algotrace") {
		t.Errorf("CacheOptions().Dir = %q, want default cache dir", opts.Dir)
	}
}
