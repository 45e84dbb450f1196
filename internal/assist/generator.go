package assist

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// ErrNoContent marks a completion that came back empty. The dialog
// shows a distinct message for it since retrying usually helps.
var ErrNoContent = errors.New("model returned no content")

// Generator produces a writing suggestion from a free-form prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeminiGenerator backs suggestions with Google's Gemini API.
type GeminiGenerator struct {
	client *genai.Client
	model  string
}

// NewGeminiGenerator creates a generator for the given model.
func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, errors.New("assist API key is required")
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("creating Gemini client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

// Generate runs a single-turn completion for the prompt. An empty
// response is treated as a failure so the dialog never accepts a
// blank suggestion.
func (g *GeminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("generating suggestion: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", ErrNoContent
	}
	return text, nil
}
