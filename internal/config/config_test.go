package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("WORDPRESS_API_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.HTTPAddr != ":3000" {
		t.Errorf("HTTPAddr = %q", cfg.HTTPAddr)
	}
	if cfg.PageTTL != 60*time.Second || cfg.ListTTL != 300*time.Second {
		t.Errorf("unexpected ttls page=%v list=%v", cfg.PageTTL, cfg.ListTTL)
	}
	if cfg.DiagnosticTimeout != 10*time.Second {
		t.Errorf("DiagnosticTimeout = %v", cfg.DiagnosticTimeout)
	}
	if cfg.SiteLocale != "de-CH" {
		t.Errorf("SiteLocale = %q", cfg.SiteLocale)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("WORDPRESS_API_URL", "  https://wp.example.ch/  ")
	t.Setenv("CACHE_TYPE", "Redis")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "3")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.WordPressAPIURL != "https://wp.example.ch/" {
		t.Errorf("WordPressAPIURL = %q", cfg.WordPressAPIURL)
	}
	if cfg.CacheType != "redis" {
		t.Errorf("CacheType = %q", cfg.CacheType)
	}
	if cfg.RequestTimeout != 3*time.Second {
		t.Errorf("RequestTimeout = %v", cfg.RequestTimeout)
	}
}

func TestLoadRejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("PAGE_TTL_SECONDS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for zero page ttl")
	}
}

func TestLoadWarmInterval(t *testing.T) {
	t.Setenv("WARM_INTERVAL_SECONDS", "45")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.WarmInterval != 45*time.Second {
		t.Errorf("WarmInterval = %v", cfg.WarmInterval)
	}

	t.Setenv("WARM_INTERVAL_SECONDS", "-1")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for negative warm interval")
	}
}
