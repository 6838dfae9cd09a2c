package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Browser BrowserConfig
	Search  SearchConfig
	Auth    AuthConfig
	Log     LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the Chrome instance launched for every search.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox.
	NoSandbox bool // default: true

	// DisableGPU turns off GPU hardware acceleration.
	DisableGPU bool // default: true

	// WindowWidth and WindowHeight size both the window and the viewport.
	WindowWidth  int // default: 1920
	WindowHeight int // default: 1080

	// IgnoreCertErrors disables TLS certificate validation.
	IgnoreCertErrors bool // default: true

	// CaptureConsole forwards browser console messages to the debug log.
	CaptureConsole bool // default: true

	// Proxy is an optional proxy URL passed to Chrome.
	Proxy string

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// BlockedResourceTypes lists resource types the page never loads.
	// default: ["Image", "Font", "Media"]
	BlockedResourceTypes []string
}

// SearchConfig describes the job board and how long each step may take.
type SearchConfig struct {
	// TargetURL is the job board home page.
	TargetURL string // default: "https://www.foundit.in/"

	// TriggerSelector matches the element that reveals the search field.
	TriggerSelector string

	// InputSelector matches the text input nested inside the trigger.
	InputSelector string

	// CardSelector, when set, scopes each listing to one result card.
	CardSelector string

	TitleSelector    string // default: ".jobTitle"
	CompanySelector  string // default: ".companyName"
	LocationSelector string // default: ".details.location"

	// ClickableTimeout bounds each wait for the trigger and the input.
	ClickableTimeout time.Duration // default: 10s

	// SettleTimeout bounds the wait for the first result after submitting.
	SettleTimeout time.Duration // default: 5s

	// SearchTimeout is the deadline for one whole search.
	SearchTimeout time.Duration // default: 60s

	// MaxConcurrent is the number of browser sessions allowed at once.
	MaxConcurrent int // default: 1
}

// AuthConfig controls API key authentication of the JSON API.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	APIKeys []string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("JOBSCOUT_HOST", "0.0.0.0"),
			Port: envIntOr("JOBSCOUT_PORT", 8080),
			Mode: envOr("JOBSCOUT_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:         envBoolOr("JOBSCOUT_HEADLESS", true),
			NoSandbox:        envBoolOr("JOBSCOUT_NO_SANDBOX", true),
			DisableGPU:       envBoolOr("JOBSCOUT_DISABLE_GPU", true),
			WindowWidth:      envIntOr("JOBSCOUT_WINDOW_WIDTH", 1920),
			WindowHeight:     envIntOr("JOBSCOUT_WINDOW_HEIGHT", 1080),
			IgnoreCertErrors: envBoolOr("JOBSCOUT_IGNORE_CERT_ERRORS", true),
			CaptureConsole:   envBoolOr("JOBSCOUT_CAPTURE_CONSOLE", true),
			Proxy:            os.Getenv("JOBSCOUT_PROXY"),
			BrowserBin:       os.Getenv("JOBSCOUT_BROWSER_BIN"),
			BlockedResourceTypes: envSliceOr("JOBSCOUT_BLOCKED_RESOURCES", []string{
				"Image", "Font", "Media",
			}),
		},
		Search: SearchConfig{
			TargetURL:        envOr("JOBSCOUT_TARGET_URL", "https://www.foundit.in/"),
			TriggerSelector:  envOr("JOBSCOUT_TRIGGER_SELECTOR", "#heroSectionDesktop-skillsAutoComplete"),
			InputSelector:    envOr("JOBSCOUT_INPUT_SELECTOR", "#heroSectionDesktop-skillsAutoComplete--input"),
			CardSelector:     os.Getenv("JOBSCOUT_CARD_SELECTOR"),
			TitleSelector:    envOr("JOBSCOUT_TITLE_SELECTOR", ".jobTitle"),
			CompanySelector:  envOr("JOBSCOUT_COMPANY_SELECTOR", ".companyName"),
			LocationSelector: envOr("JOBSCOUT_LOCATION_SELECTOR", ".details.location"),
			ClickableTimeout: envDurationOr("JOBSCOUT_CLICKABLE_TIMEOUT", 10*time.Second),
			SettleTimeout:    envDurationOr("JOBSCOUT_SETTLE_TIMEOUT", 5*time.Second),
			SearchTimeout:    envDurationOr("JOBSCOUT_SEARCH_TIMEOUT", 60*time.Second),
			MaxConcurrent:    envIntOr("JOBSCOUT_MAX_CONCURRENT_SEARCHES", 1),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("JOBSCOUT_AUTH_ENABLED", false),
			APIKeys: envSliceOr("JOBSCOUT_API_KEYS", nil),
		},
		Log: LogConfig{
			Level:  envOr("JOBSCOUT_LOG_LEVEL", "info"),
			Format: envOr("JOBSCOUT_LOG_FORMAT", "json"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
