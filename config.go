package inkwell

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// SiteConfig holds all configuration for an inkwell site.
type SiteConfig struct {
	Name        string // Site name (default "Blog")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for RSS and meta tags
	Author      string // Author name for JSON-LD

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/inkwell.db")

	AdminPassword     string // Admin login password (plaintext)
	AdminPasswordHash string // Optional bcrypt hash; takes precedence over AdminPassword
	SessionSecret     string // Required: cookie encryption secret
	CookieSecure      bool   // Set true for HTTPS

	SessionTTL      time.Duration // Admin session lifetime (default 12h)
	ArticleCacheTTL time.Duration // Published-article cache TTL (default 5min)

	Shortcuts []Shortcut // Static name/URL entries merged into search results

	LogLevel string // debug|info|warn|error (default "info")
	LogFile  string // When set, logs rotate in this file in addition to stdout
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Blog"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/inkwell.db"
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 12 * time.Hour
	}
	if c.ArticleCacheTTL == 0 {
		c.ArticleCacheTTL = 5 * time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// ConfigFromEnv loads a .env file when present and builds a SiteConfig from
// environment variables. SHORTCUTS is a JSON array of {"name","url"} objects.
func ConfigFromEnv() (SiteConfig, error) {
	_ = godotenv.Load(".env")

	cfg := SiteConfig{
		Name:              os.Getenv("SITE_NAME"),
		URL:               os.Getenv("SITE_URL"),
		Description:       os.Getenv("SITE_DESCRIPTION"),
		Author:            os.Getenv("SITE_AUTHOR"),
		Addr:              os.Getenv("ADDR"),
		DatabasePath:      os.Getenv("DATABASE_PATH"),
		AdminPassword:     os.Getenv("ADMIN_PASSWORD"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		SessionSecret:     os.Getenv("SESSION_SECRET"),
		CookieSecure:      os.Getenv("COOKIE_SECURE") == "true",
		LogLevel:          os.Getenv("LOG_LEVEL"),
		LogFile:           os.Getenv("LOG_FILE"),
	}

	if raw := os.Getenv("SESSION_TTL_MINUTES"); raw != "" {
		minutes, err := strconv.Atoi(raw)
		if err != nil {
			return SiteConfig{}, fmt.Errorf("invalid SESSION_TTL_MINUTES %q: %w", raw, err)
		}
		cfg.SessionTTL = time.Duration(minutes) * time.Minute
	}

	if raw := os.Getenv("SHORTCUTS"); raw != "" {
		var shortcuts []struct {
			Name string `json:"name"`
			URL  string `json:"url"`
		}
		if err := json.Unmarshal([]byte(raw), &shortcuts); err != nil {
			return SiteConfig{}, fmt.Errorf("parsing SHORTCUTS: %w", err)
		}
		for _, sc := range shortcuts {
			cfg.Shortcuts = append(cfg.Shortcuts, Shortcut{Name: sc.Name, URL: sc.URL})
		}
	}

	cfg.setDefaults()
	return cfg, nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
