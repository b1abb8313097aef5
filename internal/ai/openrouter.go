package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

const (
	defaultOpenRouterURL   = "https://openrouter.ai/api/v1"
	defaultOpenRouterModel = "google/gemini-2.0-flash-001"
)

// OpenRouterScorer talks to any OpenAI-compatible chat completions endpoint,
// OpenRouter by default. The credential is the bearer API key.
type OpenRouterScorer struct {
	baseURL string
	model   string
}

func NewOpenRouterScorer(baseURL, model string) *OpenRouterScorer {
	if baseURL == "" {
		baseURL = defaultOpenRouterURL
	}
	if model == "" {
		model = defaultOpenRouterModel
	}
	return &OpenRouterScorer{baseURL: baseURL, model: model}
}

func (s *OpenRouterScorer) Name() string { return ProviderOpenRouter }

func (s *OpenRouterScorer) Score(ctx context.Context, credential, prompt string) (string, error) {
	cfg := openai.DefaultConfig(credential)
	cfg.BaseURL = s.baseURL
	client := openai.NewClientWithConfig(cfg)

	resp, err := client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: analysisSchema(),
				Strict: true,
			},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("openrouter: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openrouter: no choices in response")
	}
	return resp.Choices[0].Message.Content, nil
}

// analysisSchema is the strict response schema: {analyses: [record]}.
func analysisSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"analyses": {
				Type:  jsonschema.Array,
				Items: recordSchema(),
			},
		},
		Required:             []string{"analyses"},
		AdditionalProperties: false,
	}
}

func recordSchema() *jsonschema.Definition {
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"id":               {Type: jsonschema.Number},
			"complexity":       {Type: jsonschema.Number},
			"skillMatch":       {Type: jsonschema.Number},
			"summary":          {Type: jsonschema.String},
			"requiredSkills":   {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
			"estimatedHours":   {Type: jsonschema.String},
			"beginnerFriendly": {Type: jsonschema.Boolean},
		},
		Required:             recordFields,
		AdditionalProperties: false,
	}
}

var recordFields = []string{
	"id", "complexity", "skillMatch", "summary", "requiredSkills", "estimatedHours", "beginnerFriendly",
}
