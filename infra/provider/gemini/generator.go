// Package gemini implements provider.InsightGenerator with the Gemini API.
package gemini

import (
	"context"
	"fmt"

	"github.com/amirasaad/spendwise/pkg/domain"
	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.5-flash"

type Generator struct {
	client *genai.Client
	model  string
}

// New creates a Gemini API client. baseURL is optional.
func New(ctx context.Context, apiKey, model, baseURL string) (*Generator, error) {
	if model == "" {
		model = DefaultModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		Backend:     genai.BackendGeminiAPI,
		HTTPOptions: genai.HTTPOptions{BaseURL: baseURL},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &Generator{client: client, model: model}, nil
}

func (g *Generator) Name() string { return "gemini" }

// Generate implements provider.InsightGenerator. The response is requested as JSON.
func (g *Generator) Generate(ctx context.Context, system, payload string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(payload), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
		Temperature:       genai.Ptr[float32](0.2),
	})
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", domain.ErrUpstreamUnavailable, err)
	}
	return resp.Text(), nil
}
