package ai

import (
	"context"
	"fmt"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const (
	defaultAnthropicModel = "claude-3-5-haiku-latest"
	analysisTool          = "record_issue_analysis"
)

// AnthropicScorer forces a single tool call whose input schema is the analysis
// schema; the tool input is the structured content.
type AnthropicScorer struct {
	baseURL string
	model   string
}

func NewAnthropicScorer(baseURL, model string) *AnthropicScorer {
	if model == "" {
		model = defaultAnthropicModel
	}
	return &AnthropicScorer{baseURL: baseURL, model: model}
}

func (s *AnthropicScorer) Name() string { return ProviderAnthropic }

func (s *AnthropicScorer) Score(ctx context.Context, credential, prompt string) (string, error) {
	opts := []option.RequestOption{option.WithAPIKey(credential)}
	if s.baseURL != "" {
		opts = append(opts, option.WithBaseURL(s.baseURL))
	}
	client := anthropic.NewClient(opts...)

	resp, err := client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(s.model),
		MaxTokens:   4096,
		Temperature: anthropic.Float(temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
		Tools: []anthropic.ToolUnionParam{{OfTool: &anthropic.ToolParam{
			Name:        analysisTool,
			Description: anthropic.String("Record the analysis of every issue in the batch."),
			InputSchema: anthropic.ToolInputSchemaParam{
				Properties: map[string]interface{}{
					"analyses": map[string]interface{}{
						"type":  "array",
						"items": anthropicRecordSchema(),
					},
				},
				Required:    []string{"analyses"},
				ExtraFields: map[string]any{"additionalProperties": false},
			},
		}}},
		ToolChoice: anthropic.ToolChoiceUnionParam{
			OfTool: &anthropic.ToolChoiceToolParam{Name: analysisTool},
		},
	})
	if err != nil {
		return "", fmt.Errorf("anthropic API call failed: %w", err)
	}

	for _, block := range resp.Content {
		if toolUse, ok := block.AsAny().(anthropic.ToolUseBlock); ok && toolUse.Name == analysisTool {
			return string(toolUse.Input), nil
		}
	}
	return "", fmt.Errorf("anthropic: response carried no %s tool call", analysisTool)
}

func anthropicRecordSchema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"id":               map[string]interface{}{"type": "number"},
			"complexity":       map[string]interface{}{"type": "number", "description": "1=trivial to 5=expert"},
			"skillMatch":       map[string]interface{}{"type": "number", "description": "0-100"},
			"summary":          map[string]interface{}{"type": "string"},
			"requiredSkills":   map[string]interface{}{"type": "array", "items": map[string]interface{}{"type": "string"}},
			"estimatedHours":   map[string]interface{}{"type": "string"},
			"beginnerFriendly": map[string]interface{}{"type": "boolean"},
		},
		"required":             recordFields,
		"additionalProperties": false,
	}
}
