package provider

import (
	"context"
	"log/slog"
	"testing"

	"github.com/amirasaad/spendwise/infra/provider/anthropic"
	"github.com/amirasaad/spendwise/pkg/config"
	"github.com/amirasaad/spendwise/pkg/domain"
	"github.com/amirasaad/spendwise/pkg/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInsightGenerator(t *testing.T) {
	ctx := context.Background()
	logger := slog.Default()

	g, err := NewInsightGenerator(ctx, &config.Generator{Provider: "none"}, logger)
	require.NoError(t, err)
	assert.Equal(t, "none", g.Name())
	_, err = g.Generate(ctx, "s", "{}")
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, provider.ErrGeneratorDisabled)

	g, err = NewInsightGenerator(ctx, &config.Generator{Provider: "anthropic"}, logger)
	require.NoError(t, err)
	assert.IsType(t, Unavailable{}, g, "missing key falls back")

	g, err = NewInsightGenerator(ctx, &config.Generator{Provider: "Anthropic", ApiKey: "k"}, logger)
	require.NoError(t, err)
	assert.IsType(t, &anthropic.Generator{}, g)

	_, err = NewInsightGenerator(ctx, &config.Generator{Provider: "groq", ApiKey: "k"}, logger)
	assert.Error(t, err)
}
