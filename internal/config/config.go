// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/pkordes/tripweaver/internal/itinerary"
)

const (
	DefaultPrimaryURL     = "https://ai.gateway.lovable.dev/v1/chat/completions"
	DefaultPrimaryModel   = "google/gemini-2.5-flash"
	DefaultSecondaryURL   = "https://api.openai.com/v1/chat/completions"
	DefaultSecondaryModel = "gpt-4o-mini"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// JWTSecret is the HS256 key bearer tokens are verified with. Required.
	JWTSecret string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["*"]. Set CORS_ORIGINS to a comma-separated list to restrict.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// RedisAddr enables the shared-trip cache when set.
	RedisAddr     string
	RedisPassword string
	ShareCacheTTL time.Duration

	// LLMTimeout bounds a single provider call. Defaults to 60s.
	LLMTimeout time.Duration

	// Providers is the LLM provider selection. Either entry is nil when its
	// API key is not set.
	Providers itinerary.ProvidersConfig
}

// LoadDotEnv seeds the process environment from the given files (".env" when
// none are given). Variables already set win. Missing files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config.LoadDotEnv: %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or any
// variable whose value cannot be parsed.
func Load() (Config, error) {
	p := &parser{}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "*")),
		MaxBodyBytes:  p.getInt64("MAX_BODY_BYTES", 1<<20),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		ShareCacheTTL: p.getDuration("SHARE_CACHE_TTL", 5*time.Minute),
	}

	cfg.LLMTimeout = p.getDuration("LLM_TIMEOUT", itinerary.DefaultTimeout)
	maxTokens := int(p.getInt64("LLM_MAX_TOKENS", itinerary.DefaultMaxTokens))
	cfg.Providers = itinerary.ProvidersConfig{
		Primary:   p.provider("primary", "PRIMARY_LLM", DefaultPrimaryURL, DefaultPrimaryModel, false, cfg.LLMTimeout, maxTokens),
		Secondary: p.provider("secondary", "SECONDARY_LLM", DefaultSecondaryURL, DefaultSecondaryModel, true, cfg.LLMTimeout, maxTokens),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}
	if len(p.invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment variables: %s", strings.Join(p.invalid, "; "))
	}

	return cfg, nil
}

// parser reads typed variables and collects every malformed one, so a single
// startup failure reports all of them.
type parser struct {
	invalid []string
}

func (p *parser) fail(key, value string, err error) {
	p.invalid = append(p.invalid, fmt.Sprintf("%s=%q: %v", key, value, err))
}

func (p *parser) getInt64(key string, fallback int64) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err == nil && n <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return n
}

func (p *parser) getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil && f < 0 {
		err = errors.New("must not be negative")
	}
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return f
}

func (p *parser) getBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return b
}

func (p *parser) getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err == nil && d <= 0 {
		err = errors.New("must be positive")
	}
	if err != nil {
		p.fail(key, v, err)
		return fallback
	}
	return d
}

// provider reads the <prefix>_API_KEY, _URL, _MODEL, _JSON_MODE and _RPS
// variables. It returns nil when no API key is set.
func (p *parser) provider(name, prefix, url, model string, jsonMode bool, timeout time.Duration, maxTokens int) *itinerary.ProviderConfig {
	key := os.Getenv(prefix + "_API_KEY")
	if key == "" {
		return nil
	}
	return &itinerary.ProviderConfig{
		Name:              name,
		Endpoint:          getEnv(prefix+"_URL", url),
		APIKey:            key,
		Model:             getEnv(prefix+"_MODEL", model),
		JSONMode:          p.getBool(prefix+"_JSON_MODE", jsonMode),
		MaxTokens:         maxTokens,
		Temperature:       itinerary.DefaultTemperature,
		Timeout:           timeout,
		RequestsPerSecond: p.getFloat(prefix+"_RPS", 0),
	}
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
