package ai

import (
	"context"
	"fmt"
	"strings"

	"cloud.google.com/go/vertexai/genai"
	"google.golang.org/api/option"
)

const defaultVertexModel = "gemini-2.0-flash-001"

// VertexScorer implements Scorer using Gemini on Vertex AI. It authenticates
// with server-side credentials only; the per-request credential just enables
// scoring.
type VertexScorer struct {
	projectID       string
	location        string
	model           string
	credentialsFile string
}

// NewVertexScorer creates a Vertex AI scorer for the given project. An empty
// credentialsFile uses application default credentials.
func NewVertexScorer(projectID, location, model, credentialsFile string) *VertexScorer {
	if location == "" {
		location = "us-central1"
	}
	if model == "" {
		model = defaultVertexModel
	}
	return &VertexScorer{projectID: projectID, location: location, model: model, credentialsFile: credentialsFile}
}

func (s *VertexScorer) Name() string { return ProviderVertex }

// Score generates a schema-constrained JSON response.
func (s *VertexScorer) Score(ctx context.Context, _, prompt string) (string, error) {
	client, err := genai.NewClient(ctx, s.projectID, s.location, s.clientOptions()...)
	if err != nil {
		return "", fmt.Errorf("failed to create Vertex AI client: %w", err)
	}
	defer client.Close()

	model := client.GenerativeModel(s.model)
	configureModel(model)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate response: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", fmt.Errorf("no response generated")
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if sb.Len() == 0 {
		return "", fmt.Errorf("unexpected response type")
	}
	return sb.String(), nil
}

func (s *VertexScorer) clientOptions() []option.ClientOption {
	if s.credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(s.credentialsFile)}
}

// configureModel constrains generation to the analysis schema.
func configureModel(model *genai.GenerativeModel) {
	model.SetTemperature(temperature)
	model.ResponseMIMEType = "application/json"
	model.ResponseSchema = vertexSchema()
}

func vertexSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"analyses": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"id":               {Type: genai.TypeNumber},
						"complexity":       {Type: genai.TypeNumber},
						"skillMatch":       {Type: genai.TypeNumber},
						"summary":          {Type: genai.TypeString},
						"requiredSkills":   {Type: genai.TypeArray, Items: &genai.Schema{Type: genai.TypeString}},
						"estimatedHours":   {Type: genai.TypeString},
						"beginnerFriendly": {Type: genai.TypeBoolean},
					},
					Required: recordFields,
				},
			},
		},
		Required: []string{"analyses"},
	}
}
