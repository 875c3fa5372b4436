// README: Config loader; env (and bound CLI flags) via viper with defaults for HTTP, AI, flights, DB, Redis, Maps.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const defaultAddr = ":8000"

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

type AIConfig struct {
	Provider    string
	GeminiKey   string
	OpenAIKey   string
	OpenAIBase  string
	Model       string
	Temperature float32
	Timeout     time.Duration
}

// APIKey returns the credential of the selected provider.
func (c AIConfig) APIKey() string {
	if c.Provider == ProviderOpenAI {
		return c.OpenAIKey
	}
	return c.GeminiKey
}

type FlightsConfig struct {
	SerpAPIKey string
	BaseURL    string
	Currency   string
	Language   string
	Timeout    time.Duration
	CacheTTL   time.Duration
}

// CredentialPresence records which credential variables were set, for the health endpoint.
type CredentialPresence struct {
	GeminiAPIKey bool
	GoogleAPIKey bool
	SerpAPIKey   bool
}

type Config struct {
	HTTP struct {
		Addr           string
		ReadTimeout    time.Duration
		WriteTimeout   time.Duration
		IdleTimeout    time.Duration
		AllowedOrigins []string
		GinMode        string
	}
	DB struct {
		DSN string
	}
	Redis struct {
		Addr string
	}
	Maps struct {
		APIKey string
		Region string
	}
	Log struct {
		Level  string
		Format string
	}
	AI          AIConfig
	Flights     FlightsConfig
	Credentials CredentialPresence
}

var envBindings = map[string]string{
	"http.addr":            "PLANNER_HTTP_ADDR",
	"http.port":            "PORT",
	"http.read_timeout":    "PLANNER_HTTP_READ_TIMEOUT",
	"http.write_timeout":   "PLANNER_HTTP_WRITE_TIMEOUT",
	"http.idle_timeout":    "PLANNER_HTTP_IDLE_TIMEOUT",
	"http.allowed_origins": "CORS_ALLOWED_ORIGINS",
	"http.gin_mode":        "GIN_MODE",
	"db.dsn":               "PLANNER_DB_DSN",
	"redis.addr":           "PLANNER_REDIS_ADDR",
	"maps.api_key":         "GOOGLE_MAPS_API_KEY",
	"maps.region":          "MAPS_REGION",
	"log.level":            "LOG_LEVEL",
	"log.format":           "LOG_FORMAT",
	"ai.provider":          "LLM_PROVIDER",
	"ai.gemini_key":        "GEMINI_API_KEY",
	"ai.google_key":        "GOOGLE_API_KEY",
	"ai.openai_key":        "OPENAI_API_KEY",
	"ai.openai_base_url":   "OPENAI_BASE_URL",
	"ai.model":             "LLM_MODEL",
	"ai.temperature":       "LLM_TEMPERATURE",
	"ai.timeout":           "AI_TIMEOUT",
	"flights.serp_api_key": "SERP_API_KEY",
	"flights.base_url":     "SERP_API_BASE_URL",
	"flights.currency":     "FLIGHTS_CURRENCY",
	"flights.language":     "FLIGHTS_LANGUAGE",
	"flights.timeout":      "FLIGHTS_TIMEOUT",
	"flights.cache_ttl":    "FLIGHTS_CACHE_TTL",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.read_timeout", 20*time.Second)
	v.SetDefault("http.write_timeout", 120*time.Second)
	v.SetDefault("http.idle_timeout", 60*time.Second)
	v.SetDefault("http.allowed_origins", "*")
	v.SetDefault("maps.region", "in")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("ai.provider", ProviderGemini)
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.timeout", 60*time.Second)
	v.SetDefault("flights.base_url", "https://serpapi.com")
	v.SetDefault("flights.currency", "INR")
	v.SetDefault("flights.language", "en")
	v.SetDefault("flights.timeout", 10*time.Second)
	v.SetDefault("flights.cache_ttl", 15*time.Minute)
}

// Load reads configuration from the global viper instance, which the CLI binds flags into.
func Load() (Config, error) {
	return LoadFrom(viper.GetViper())
}

// LoadFrom reads configuration from v. Missing credentials are not an error: the
// server still starts and reports them through /health.
func LoadFrom(v *viper.Viper) (Config, error) {
	setDefaults(v)
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return Config{}, fmt.Errorf("bind %s: %w", env, err)
		}
	}

	var cfg Config
	cfg.HTTP.Addr = strings.TrimSpace(v.GetString("http.addr"))
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = defaultAddr
		if port := strings.TrimSpace(v.GetString("http.port")); port != "" {
			cfg.HTTP.Addr = ":" + port
		}
	}
	cfg.HTTP.ReadTimeout = v.GetDuration("http.read_timeout")
	cfg.HTTP.WriteTimeout = v.GetDuration("http.write_timeout")
	cfg.HTTP.IdleTimeout = v.GetDuration("http.idle_timeout")
	cfg.HTTP.AllowedOrigins = splitList(v.GetString("http.allowed_origins"))
	cfg.HTTP.GinMode = v.GetString("http.gin_mode")

	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.Redis.Addr = v.GetString("redis.addr")
	cfg.Maps.APIKey = v.GetString("maps.api_key")
	cfg.Maps.Region = strings.ToLower(strings.TrimSpace(v.GetString("maps.region")))
	cfg.Log.Level = v.GetString("log.level")
	cfg.Log.Format = v.GetString("log.format")

	geminiKey := strings.TrimSpace(v.GetString("ai.gemini_key"))
	googleKey := strings.TrimSpace(v.GetString("ai.google_key"))
	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(v.GetString("ai.provider")))
	cfg.AI.GeminiKey = firstNonEmpty(geminiKey, googleKey)
	cfg.AI.OpenAIKey = strings.TrimSpace(v.GetString("ai.openai_key"))
	cfg.AI.OpenAIBase = v.GetString("ai.openai_base_url")
	cfg.AI.Model = v.GetString("ai.model")
	cfg.AI.Temperature = float32(v.GetFloat64("ai.temperature"))
	cfg.AI.Timeout = v.GetDuration("ai.timeout")

	cfg.Flights.SerpAPIKey = strings.TrimSpace(v.GetString("flights.serp_api_key"))
	cfg.Flights.BaseURL = strings.TrimRight(v.GetString("flights.base_url"), "/")
	cfg.Flights.Currency = v.GetString("flights.currency")
	cfg.Flights.Language = v.GetString("flights.language")
	cfg.Flights.Timeout = v.GetDuration("flights.timeout")
	cfg.Flights.CacheTTL = v.GetDuration("flights.cache_ttl")

	cfg.Credentials = CredentialPresence{
		GeminiAPIKey: geminiKey != "",
		GoogleAPIKey: googleKey != "",
		SerpAPIKey:   cfg.Flights.SerpAPIKey != "",
	}

	switch cfg.AI.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return Config{}, fmt.Errorf("unsupported LLM_PROVIDER %q (want %q or %q)", cfg.AI.Provider, ProviderGemini, ProviderOpenAI)
	}
	return cfg, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
