package buildinfo

import (
	"strings"
	"testing"
)

func TestCacheScope(t *testing.T) {
	oldVersion, oldCommit := Version, Commit
	t.Cleanup(func() { Version, Commit = oldVersion, oldCommit })

	Version, Commit = "v1.4.0", "abc123"
	if got := CacheScope(); got != "v1.4.0:" {
		t.Errorf("CacheScope() = %q, want %q", got, "v1.4.0:")
	}

	Version = "dev"
	if got := CacheScope(); got != "dev-abc123:" {
		t.Errorf("CacheScope() = %q, want %q", got, "dev-abc123:")
	}
}

func TestString(t *testing.T) {
	if s := String(); !strings.HasPrefix(s, "version: "+Version) {
		t.Errorf("String() = %q", s)
	}
	if got := Get(); got.Version != Version || got.Commit != Commit || got.Date != Date {
		t.Errorf("Get() = %+v", got)
	}
}
