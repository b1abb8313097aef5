package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load(viper.New())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "updated", cfg.SearchSort)
	assert.Equal(t, 30, cfg.SearchPerPage)
	assert.Equal(t, 20, cfg.EnrichLimit)
	assert.Equal(t, ProviderOpenRouter, cfg.AIProvider)
	assert.Equal(t, BackendSQLite, cfg.StoreBackend)
	assert.Equal(t, 10*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, "https://api.github.com/", cfg.GitHubAPIURL)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SEARCH_SORT", "Created")
	t.Setenv("ENRICH_LIMIT", "5")
	t.Setenv("HTTP_TIMEOUT_SEC", "3")
	t.Setenv("STORE_BACKEND", "memory")
	t.Setenv("GITHUB_API_URL", "http://127.0.0.1:1234")

	cfg := Load(viper.New())

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "created", cfg.SearchSort)
	assert.Equal(t, 5, cfg.EnrichLimit)
	assert.Equal(t, 3*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, BackendMemory, cfg.StoreBackend)
	assert.Equal(t, "http://127.0.0.1:1234/", cfg.GitHubAPIURL)
}

func TestLoadInvalidValuesFallBack(t *testing.T) {
	t.Setenv("SEARCH_SORT", "stars")
	t.Setenv("SEARCH_PER_PAGE", "500")
	t.Setenv("READ_TIMEOUT_SEC", "soon")
	t.Setenv("AI_PROVIDER", "mystery")

	cfg := Load(viper.New())

	assert.Equal(t, "updated", cfg.SearchSort)
	assert.Equal(t, 30, cfg.SearchPerPage)
	assert.Equal(t, 5*time.Second, cfg.ReadTimeout)
	assert.Equal(t, ProviderOpenRouter, cfg.AIProvider)
}
