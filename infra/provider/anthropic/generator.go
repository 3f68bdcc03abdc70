// Package anthropic implements provider.InsightGenerator with the Claude Messages API.
package anthropic

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const DefaultModel = "claude-sonnet-4-5"

type Generator struct {
	client    anthropic.Client
	model     string
	maxTokens int64
}

// New creates a generator. Extra request options are appended after the API key.
func New(apiKey, model string, maxTokens int64, opts ...option.RequestOption) *Generator {
	if model == "" {
		model = DefaultModel
	}
	if maxTokens <= 0 {
		maxTokens = 1200
	}
	reqOpts := append([]option.RequestOption{option.WithAPIKey(apiKey)}, opts...)
	return &Generator{
		client:    anthropic.NewClient(reqOpts...),
		model:     model,
		maxTokens: maxTokens,
	}
}

func (g *Generator) Name() string { return "anthropic" }

// Generate implements provider.InsightGenerator.
func (g *Generator) Generate(ctx context.Context, system, payload string) (string, error) {
	msg, err := g.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       anthropic.Model(g.model),
		MaxTokens:   g.maxTokens,
		Temperature: anthropic.Float(0.2),
		System:      []anthropic.TextBlockParam{{Text: system}},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(payload)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: anthropic: %v", domain.ErrUpstreamUnavailable, err)
	}
	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	return sb.String(), nil
}
