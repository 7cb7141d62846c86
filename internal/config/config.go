// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sdweddings/backend/internal/cms"
	"github.com/sdweddings/backend/internal/mailer"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string for contact inquiries. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat is "json" (default) or "console".
	LogFormat string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (Next.js dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// CMS is the Sanity project the content is read from.
	CMS cms.Config

	// RedisURL enables the CMS read cache. Empty disables caching.
	RedisURL string
	CacheTTL time.Duration

	// ResendAPIKey authorises the transactional email API. Required.
	ResendAPIKey string

	// Mail is the sender identity. MAIL_FROM is required; MAIL_NOTIFY_TO is
	// the optional business inbox that receives a copy of each inquiry.
	Mail mailer.Business

	// KafkaBrokers enables publishing analytics events. Empty means events
	// are written to the log.
	KafkaBrokers   []string
	AnalyticsTopic string

	// MaxBodyBytes caps request bodies. Defaults to 64 KiB.
	MaxBodyBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set or
// malformed.
func Load() (Config, error) {
	p := &parser{}
	cfg := Config{
		Port:           getEnv("PORT", "8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "json"),
		CORSOrigins:    splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		CMS:            p.cms(true),
		RedisURL:       os.Getenv("REDIS_URL"),
		CacheTTL:       p.duration("CACHE_TTL", 5*time.Minute),
		KafkaBrokers:   splitCSV(os.Getenv("KAFKA_BROKERS")),
		AnalyticsTopic: getEnv("ANALYTICS_TOPIC", "site.analytics"),
		MaxBodyBytes:   p.int64("MAX_BODY_BYTES", 64<<10),
		DatabaseURL:    p.required("DATABASE_URL"),
		ResendAPIKey:   p.required("RESEND_API_KEY"),
		Mail: mailer.Business{
			Name:  getEnv("BUSINESS_NAME", "SD Weddings"),
			From:  p.required("MAIL_FROM"),
			Inbox: os.Getenv("MAIL_NOTIFY_TO"),
		},
	}
	if err := p.err(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Migration holds configuration for the one-shot migration commands.
type Migration struct {
	CMS       cms.Config
	LogLevel  string
	LogFormat string
}

// LoadMigration reads the migration command configuration. A write token is
// required unless dryRun is set.
func LoadMigration(dryRun bool) (Migration, error) {
	p := &parser{}
	cfg := Migration{
		CMS:       p.cms(false),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
	if !dryRun && cfg.CMS.Token == "" {
		p.missing = append(p.missing, "SANITY_API_TOKEN")
	}
	if err := p.err(); err != nil {
		return Migration{}, err
	}
	return cfg, nil
}

// parser collects missing and malformed variables so they are reported
// together.
type parser struct {
	missing   []string
	malformed []string
}

func (p *parser) required(key string) string {
	v := os.Getenv(key)
	if v == "" {
		p.missing = append(p.missing, key)
	}
	return v
}

func (p *parser) duration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d < 0 {
		p.malformed = append(p.malformed, key)
		return fallback
	}
	return d
}

func (p *parser) int64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		p.malformed = append(p.malformed, key)
		return fallback
	}
	return n
}

func (p *parser) bool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.malformed = append(p.malformed, key)
		return fallback
	}
	return b
}

// cms reads the SANITY_* variables. useCDN is the SANITY_USE_CDN default.
func (p *parser) cms(useCDN bool) cms.Config {
	return cms.Config{
		ProjectID:  p.required("SANITY_PROJECT_ID"),
		Dataset:    getEnv("SANITY_DATASET", "production"),
		APIVersion: getEnv("SANITY_API_VERSION", "2024-01-01"),
		Token:      os.Getenv("SANITY_API_TOKEN"),
		UseCDN:     p.bool("SANITY_USE_CDN", useCDN),
		Timeout:    p.duration("SANITY_TIMEOUT", 15*time.Second),
	}
}

func (p *parser) err() error {
	var parts []string
	if len(p.missing) > 0 {
		parts = append(parts, "required environment variables not set: "+strings.Join(p.missing, ", "))
	}
	if len(p.malformed) > 0 {
		parts = append(parts, "malformed environment variables: "+strings.Join(p.malformed, ", "))
	}
	if len(parts) == 0 {
		return nil
	}
	return fmt.Errorf("%s", strings.Join(parts, "; "))
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
