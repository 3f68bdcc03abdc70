package provider

import (
	"context"
	"fmt"

	"github.com/amirasaad/spendwise/pkg/domain"
)

// ErrGeneratorDisabled is returned when no language model is configured.
// Callers must not retry it.
var ErrGeneratorDisabled = fmt.Errorf("%w: insight generator disabled", domain.ErrUpstreamUnavailable)

// InsightGenerator sends a system instruction and one JSON document to a
// language model and returns the raw text of its answer.
type InsightGenerator interface {
	Generate(ctx context.Context, system, payload string) (string, error)
	Name() string
}
