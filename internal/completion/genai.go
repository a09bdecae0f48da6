package completion

import (
	"context"
	"errors"

	genai "google.golang.org/genai"
)

// ErrMissingAPIKey is returned when no API key is configured
var ErrMissingAPIKey = errors.New("missing API key")

// GenaiBackend is a thin wrapper around the official genai client. It only
// lists models and performs the generation call.
type GenaiBackend struct {
	cli *genai.Client
}

// NewGenaiBackend creates a Gemini API client authenticated with apiKey
func NewGenaiBackend(ctx context.Context, apiKey string) (*GenaiBackend, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, err
	}
	return &GenaiBackend{cli: cli}, nil
}

// ListModels returns every model visible to the API key
func (g *GenaiBackend) ListModels(ctx context.Context) ([]ModelInfo, error) {
	var out []ModelInfo
	for m, err := range g.cli.Models.All(ctx) {
		if err != nil {
			return nil, err
		}
		out = append(out, ModelInfo{
			Name:             m.Name,
			DisplayName:      m.DisplayName,
			SupportedActions: m.SupportedActions,
		})
	}
	return out, nil
}

// GenerateText sends prompt as a single user turn and returns the
// concatenated text of the first candidate
func (g *GenaiBackend) GenerateText(ctx context.Context, model string, prompt string, params Params) (string, error) {
	resp, err := g.cli.Models.GenerateContent(ctx, model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:     genai.Ptr(params.Temperature),
			MaxOutputTokens: params.MaxOutputTokens,
		},
	)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}
