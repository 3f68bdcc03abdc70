// Package provider wires the external collaborators: the banking provider and
// the language model behind insight synthesis.
package provider

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/amirasaad/spendwise/infra/provider/anthropic"
	"github.com/amirasaad/spendwise/infra/provider/gemini"
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/provider"
)

// Unavailable is the generator used when no model is configured.
// Every call fails, so insight generation falls back to heuristics.
type Unavailable struct{}

func (Unavailable) Name() string { return "none" }

func (Unavailable) Generate(context.Context, string, string) (string, error) {
	return "", provider.ErrGeneratorDisabled
}

// NewInsightGenerator selects the generator named by cfg.Provider.
func NewInsightGenerator(
	ctx context.Context,
	cfg *config.Generator,
	logger *slog.Logger,
) (provider.InsightGenerator, error) {
	name := strings.ToLower(strings.TrimSpace(cfg.Provider))
	if name != "none" && name != "" && cfg.ApiKey == "" {
		logger.Warn("Insight generator has no API key, using heuristics only", "provider", name)
		return Unavailable{}, nil
	}
	switch name {
	case "anthropic":
		return anthropic.New(cfg.ApiKey, cfg.Model, cfg.MaxTokens), nil
	case "gemini":
		return gemini.New(ctx, cfg.ApiKey, cfg.Model, "")
	case "none", "":
		return Unavailable{}, nil
	default:
		return nil, fmt.Errorf("unknown insight generator %q", cfg.Provider)
	}
}
