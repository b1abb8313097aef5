// Package config centralises all environment / file / flag configuration for the API.
// It should be imported only by `cmd/server` (and test code). Business‑logic
// layers receive an already‑built Config instance via dependency‑injection.
package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/ahmednasr/gitscout/internal/logging"
)

// Store backends.
const (
	BackendSQLite   = "sqlite"
	BackendMySQL    = "mysql"
	BackendPostgres = "postgres"
	BackendMongo    = "mongo"
	BackendMemory   = "memory"
)

// AI providers.
const (
	ProviderOpenRouter = "openrouter"
	ProviderVertex     = "vertex"
	ProviderAnthropic  = "anthropic"
)

// Config holds every runtime option the server needs.
// Keep it flat: primitive fields, no embedded structs.
type Config struct {
	// Network
	Port string

	// Server tuning
	ReadTimeout  time.Duration
	WriteTimeout time.Duration

	// GitHub
	GitHubAPIURL  string
	GitHubToken   string // fallback when the user has not saved one
	GitHubRPS     float64
	HTTPTimeout   time.Duration
	SearchSort    string
	SearchPerPage int
	EnrichLimit   int

	// AI scoring
	AIProvider    string
	AIModel       string
	AIBaseURL     string
	AITimeout     time.Duration
	OpenRouterKey string // fallback when the user has not saved one

	// ProjectID, Location and CredentialsFile (vertex provider). An empty
	// CredentialsFile uses application default credentials.
	ProjectID       string
	Location        string
	CredentialsFile string

	// Preference store
	StoreBackend string
	StoreDSN     string
	MongoURI     string
	DBName       string

	// Logging
	LogLevel string
	LogJSON  bool
}

// SetDefaults registers every key with its default on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("READ_TIMEOUT_SEC", 5)
	v.SetDefault("WRITE_TIMEOUT_SEC", 60)
	v.SetDefault("GITHUB_API_URL", "https://api.github.com/")
	v.SetDefault("GITHUB_TOKEN", "")
	v.SetDefault("GITHUB_RPS", 10.0)
	v.SetDefault("HTTP_TIMEOUT_SEC", 10)
	v.SetDefault("SEARCH_SORT", "updated")
	v.SetDefault("SEARCH_PER_PAGE", 30)
	v.SetDefault("ENRICH_LIMIT", 20)
	v.SetDefault("AI_PROVIDER", ProviderOpenRouter)
	v.SetDefault("AI_MODEL", "")
	v.SetDefault("AI_BASE_URL", "")
	v.SetDefault("AI_TIMEOUT_SEC", 60)
	v.SetDefault("OPENROUTER_KEY", "")
	v.SetDefault("GCP_PROJECT_ID", "")
	v.SetDefault("GCP_LOCATION", "us-central1")
	v.SetDefault("GCP_CREDENTIALS_FILE", "")
	v.SetDefault("STORE_BACKEND", BackendSQLite)
	v.SetDefault("STORE_DSN", "gitscout.db")
	v.SetDefault("MONGODB_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGODB_DB", "gitscout")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_JSON", false)
}

// Load parses the environment (and an optional .env file) plus whatever v already
// holds (config file, bound flags) into Config. Invalid values fall back to defaults
// with a warning instead of aborting.
func Load(v *viper.Viper) Config {
	// godotenv.Load() is a no-op when .env is absent.
	_ = godotenv.Load()

	v.AutomaticEnv()
	SetDefaults(v)

	cfg := Config{
		Port:            v.GetString("PORT"),
		ReadTimeout:     getDuration(v, "READ_TIMEOUT_SEC", 5),
		WriteTimeout:    getDuration(v, "WRITE_TIMEOUT_SEC", 60),
		GitHubAPIURL:    v.GetString("GITHUB_API_URL"),
		GitHubToken:     v.GetString("GITHUB_TOKEN"),
		GitHubRPS:       v.GetFloat64("GITHUB_RPS"),
		HTTPTimeout:     getDuration(v, "HTTP_TIMEOUT_SEC", 10),
		SearchSort:      oneOf(v, "SEARCH_SORT", "updated", "created", "updated", "comments"),
		SearchPerPage:   getInt(v, "SEARCH_PER_PAGE", 30, 1, 100),
		EnrichLimit:     getInt(v, "ENRICH_LIMIT", 20, 0, 100),
		AIProvider:      oneOf(v, "AI_PROVIDER", ProviderOpenRouter, ProviderOpenRouter, ProviderVertex, ProviderAnthropic),
		AIModel:         v.GetString("AI_MODEL"),
		AIBaseURL:       v.GetString("AI_BASE_URL"),
		AITimeout:       getDuration(v, "AI_TIMEOUT_SEC", 60),
		OpenRouterKey:   v.GetString("OPENROUTER_KEY"),
		ProjectID:       v.GetString("GCP_PROJECT_ID"),
		Location:        v.GetString("GCP_LOCATION"),
		CredentialsFile: v.GetString("GCP_CREDENTIALS_FILE"),
		StoreBackend:    oneOf(v, "STORE_BACKEND", BackendSQLite, BackendSQLite, BackendMySQL, BackendPostgres, BackendMongo, BackendMemory),
		StoreDSN:        v.GetString("STORE_DSN"),
		MongoURI:        v.GetString("MONGODB_URI"),
		DBName:          v.GetString("MONGODB_DB"),
		LogLevel:        v.GetString("LOG_LEVEL"),
		LogJSON:         v.GetBool("LOG_JSON"),
	}
	if !strings.HasSuffix(cfg.GitHubAPIURL, "/") {
		cfg.GitHubAPIURL += "/"
	}
	if cfg.GitHubRPS < 0 {
		logging.Warn("invalid config value; using default", "key", "GITHUB_RPS", "value", cfg.GitHubRPS)
		cfg.GitHubRPS = 10
	}
	return cfg
}

// getDuration reads an integer (seconds), falling back to defaultSec.
func getDuration(v *viper.Viper, key string, defaultSec int) time.Duration {
	sec := v.GetInt(key)
	if sec <= 0 {
		if raw := v.GetString(key); raw != "" && raw != "0" {
			logging.Warn("invalid config value; using default", "key", key, "value", raw, "default_sec", defaultSec)
		}
		sec = defaultSec
	}
	return time.Duration(sec) * time.Second
}

// getInt reads an integer bounded to [lo, hi], falling back to def.
func getInt(v *viper.Viper, key string, def, lo, hi int) int {
	n := v.GetInt(key)
	if n < lo || n > hi {
		logging.Warn("config value out of range; using default", "key", key, "value", n, "default", def)
		return def
	}
	return n
}

// oneOf reads a lowercase string that must be one of allowed, falling back to def.
func oneOf(v *viper.Viper, key, def string, allowed ...string) string {
	val := strings.ToLower(strings.TrimSpace(v.GetString(key)))
	for _, a := range allowed {
		if val == a {
			return val
		}
	}
	logging.Warn("unsupported config value; using default", "key", key, "value", val, "default", def)
	return def
}
