package ai

import (
	"fmt"
	"strings"
)

// Provider names.
const (
	ProviderOpenRouter = "openrouter"
	ProviderVertex     = "vertex"
	ProviderAnthropic  = "anthropic"
)

// ProviderConfig selects and tunes a Scorer. Empty Model and BaseURL use the
// provider's defaults.
type ProviderConfig struct {
	Provider        string
	Model           string
	BaseURL         string
	ProjectID       string // vertex
	Location        string // vertex
	CredentialsFile string // vertex; empty uses application default credentials
}

// NewScorer builds the Scorer named by cfg.Provider.
func NewScorer(cfg ProviderConfig) (Scorer, error) {
	switch strings.ToLower(cfg.Provider) {
	case "", ProviderOpenRouter:
		return NewOpenRouterScorer(cfg.BaseURL, cfg.Model), nil
	case ProviderVertex:
		if cfg.ProjectID == "" {
			return nil, fmt.Errorf("ai: vertex provider requires a project id")
		}
		return NewVertexScorer(cfg.ProjectID, cfg.Location, cfg.Model, cfg.CredentialsFile), nil
	case ProviderAnthropic:
		return NewAnthropicScorer(cfg.BaseURL, cfg.Model), nil
	default:
		return nil, fmt.Errorf("ai: unknown provider %q", cfg.Provider)
	}
}
