package config

import (
	"testing"
	"time"
)

func TestLoadCacheConfig_Defaults(t *testing.T) {
	cfg := LoadCacheConfig()
	if !cfg.Enabled {
		t.Error("cache disabled by default")
	}
	if !cfg.Methods["GET"] {
		t.Error("GET not cached by default")
	}
	if cfg.TTL != 30*time.Second {
		t.Errorf("TTL = %v, want 30s", cfg.TTL)
	}
	if cfg.Prefix != "plants" {
		t.Errorf("Prefix = %q, want plants", cfg.Prefix)
	}
}

func TestLoadCacheConfig_Overrides(t *testing.T) {
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("CACHE_METHODS", "get, head")
	t.Setenv("CACHE_TTL", "2m")

	cfg := LoadCacheConfig()
	if cfg.Enabled {
		t.Error("cache still enabled")
	}
	if !cfg.Methods["GET"] || !cfg.Methods["HEAD"] {
		t.Errorf("methods = %v, want GET and HEAD", cfg.Methods)
	}
	if cfg.TTL != 2*time.Minute {
		t.Errorf("TTL = %v, want 2m", cfg.TTL)
	}
}

func TestParseDur_Invalid(t *testing.T) {
	if d := parseDur("nonsense"); d != time.Second {
		t.Errorf("parseDur fallback = %v, want 1s", d)
	}
}
