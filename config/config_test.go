package config

import (
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	if cfg.Search.TargetURL != "https://www.foundit.in/" {
		t.Errorf("TargetURL = %q", cfg.Search.TargetURL)
	}
	if cfg.Search.ClickableTimeout != 10*time.Second {
		t.Errorf("ClickableTimeout = %v, want 10s", cfg.Search.ClickableTimeout)
	}
	if cfg.Search.SettleTimeout != 5*time.Second {
		t.Errorf("SettleTimeout = %v, want 5s", cfg.Search.SettleTimeout)
	}
	if cfg.Search.MaxConcurrent != 1 {
		t.Errorf("MaxConcurrent = %d, want 1", cfg.Search.MaxConcurrent)
	}
	if cfg.Browser.WindowWidth != 1920 || cfg.Browser.WindowHeight != 1080 {
		t.Errorf("window = %dx%d, want 1920x1080", cfg.Browser.WindowWidth, cfg.Browser.WindowHeight)
	}
	if !cfg.Browser.NoSandbox || !cfg.Browser.DisableGPU || !cfg.Browser.IgnoreCertErrors {
		t.Errorf("browser flags not enabled by default: %+v", cfg.Browser)
	}
	if cfg.Search.CardSelector != "" {
		t.Errorf("CardSelector should default to empty, got %q", cfg.Search.CardSelector)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JOBSCOUT_PORT", "9090")
	t.Setenv("JOBSCOUT_HEADLESS", "false")
	t.Setenv("JOBSCOUT_SETTLE_TIMEOUT", "1500ms")
	t.Setenv("JOBSCOUT_BLOCKED_RESOURCES", " Image , ,Media")
	t.Setenv("JOBSCOUT_CARD_SELECTOR", ".srpResultCard")

	cfg := Load()

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Browser.Headless {
		t.Error("Headless should be false")
	}
	if cfg.Search.SettleTimeout != 1500*time.Millisecond {
		t.Errorf("SettleTimeout = %v", cfg.Search.SettleTimeout)
	}
	if want := []string{"Image", "Media"}; !reflect.DeepEqual(cfg.Browser.BlockedResourceTypes, want) {
		t.Errorf("BlockedResourceTypes = %v, want %v", cfg.Browser.BlockedResourceTypes, want)
	}
	if cfg.Search.CardSelector != ".srpResultCard" {
		t.Errorf("CardSelector = %q", cfg.Search.CardSelector)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("JOBSCOUT_PORT", "not-a-number")
	t.Setenv("JOBSCOUT_CLICKABLE_TIMEOUT", "ten")
	t.Setenv("JOBSCOUT_NO_SANDBOX", "maybe")

	cfg := Load()

	if cfg.Server.Port != 8080 {
		t.Errorf("Port = %d, want fallback 8080", cfg.Server.Port)
	}
	if cfg.Search.ClickableTimeout != 10*time.Second {
		t.Errorf("ClickableTimeout = %v, want fallback 10s", cfg.Search.ClickableTimeout)
	}
	if !cfg.Browser.NoSandbox {
		t.Error("NoSandbox should fall back to true")
	}
}
