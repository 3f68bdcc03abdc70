package insight

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/amirasaad/spendwise/pkg/domain/insight"
	"github.com/amirasaad/spendwise/pkg/provider"
	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
)

const systemInstruction = `You are a personal finance insights generator.
Analyze expenses only. Amounts in the document use accounting polarity:
negative = money spent, positive = money received. Never describe an expense
category as income.
Respond with ONLY a JSON array. Each element is an object with:
"type" (one of alert, warning, info, success, tip), "title", "description",
optional "action", optional "amount" (a non-negative number),
optional "category" and "priority" (integer 1-10).`

var errEmptyResult = errors.New("generator returned no usable insights")

// SynthesizerConfig bounds the calls to the language model.
type SynthesizerConfig struct {
	MaxRetries     int
	BaseDelay      time.Duration
	AttemptTimeout time.Duration
}

// Synthesizer turns an analysis payload into candidate insights using an
// external generator.
type Synthesizer struct {
	generator provider.InsightGenerator
	cfg       SynthesizerConfig
	logger    *slog.Logger
}

func NewSynthesizer(
	generator provider.InsightGenerator,
	cfg SynthesizerConfig,
	logger *slog.Logger,
) *Synthesizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Synthesizer{generator: generator, cfg: cfg, logger: logger}
}

// Synthesize calls the generator up to MaxRetries+1 times with exponential
// backoff. Errors, timeouts and unparseable answers are retried; when every
// attempt fails the result is empty and the caller falls back to heuristics.
func (s *Synthesizer) Synthesize(ctx context.Context, payload Payload) []insight.Insight {
	if s.generator == nil {
		return nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Failed to encode insight payload", "error", err)
		return nil
	}

	logger := s.logger.With("generator", s.generator.Name())
	attempt := 0
	var out []insight.Insight
	op := func() error {
		attempt++
		raw, err := s.generate(ctx, string(body))
		if err != nil {
			if errors.Is(err, provider.ErrGeneratorDisabled) {
				return backoff.Permanent(err)
			}
			return err
		}
		candidates, err := ParseCandidates(raw, s.generator.Name())
		if err != nil {
			return err
		}
		if len(candidates) == 0 {
			return errEmptyResult
		}
		out = candidates
		return nil
	}
	notify := func(err error, wait time.Duration) {
		logger.Warn("Insight generation attempt failed", "attempt", attempt, "retry_in", wait, "error", err)
	}

	if err := backoff.RetryNotify(op, s.backOff(ctx), notify); err != nil {
		logger.Warn("Insight generation gave up", "attempts", attempt, "error", err)
		return nil
	}
	logger.Info("Insight generation succeeded", "attempts", attempt, "candidates", len(out))
	return out
}

func (s *Synthesizer) generate(ctx context.Context, body string) (string, error) {
	if s.cfg.AttemptTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.AttemptTimeout)
		defer cancel()
	}
	return s.generator.Generate(ctx, systemInstruction, body)
}

// backOff waits BaseDelay * 2^attempt between attempts.
func (s *Synthesizer) backOff(ctx context.Context) backoff.BackOffContext {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = s.cfg.BaseDelay
	b.Multiplier = 2
	b.RandomizationFactor = 0
	b.MaxInterval = s.cfg.BaseDelay << max(s.cfg.MaxRetries, 0)
	b.MaxElapsedTime = 0
	retries := max(s.cfg.MaxRetries, 0)
	return backoff.WithContext(backoff.WithMaxRetries(b, uint64(retries)), ctx)
}

type rawCandidate = map[string]any

// ParseCandidates decodes a model answer: either a JSON array of candidates
// or an object holding them under "insights". Markdown code fences are
// ignored. Candidates without a title are dropped, types are coerced and
// amounts become magnitudes.
func ParseCandidates(raw, source string) ([]insight.Insight, error) {
	cleaned := stripCodeFences(raw)
	if cleaned == "" {
		return nil, errEmptyResult
	}

	var items []rawCandidate
	switch cleaned[0] {
	case '[':
		if err := json.Unmarshal([]byte(cleaned), &items); err != nil {
			return nil, fmt.Errorf("decode insight array: %w", err)
		}
	case '{':
		var wrapper struct {
			Insights []rawCandidate `json:"insights"`
		}
		if err := json.Unmarshal([]byte(cleaned), &wrapper); err != nil {
			return nil, fmt.Errorf("decode insight object: %w", err)
		}
		items = wrapper.Insights
	default:
		return nil, fmt.Errorf("unexpected generator output shape")
	}

	out := make([]insight.Insight, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		c, ok := candidateFrom(item)
		if !ok {
			continue
		}
		c.Data = map[string]any{"source": source, "raw": item}
		out = append(out, c)
	}
	return out, nil
}

// candidateFrom maps one model object to an insight sized to fit storage.
// Amounts beyond the storable range are dropped.
func candidateFrom(item rawCandidate) (insight.Insight, bool) {
	title := strings.TrimSpace(stringField(item, "title"))
	if title == "" {
		return insight.Insight{}, false
	}
	c := insight.Insight{
		Type:        insight.ParseType(stringField(item, "type")),
		Title:       insight.Truncate(title, insight.MaxTitleLen),
		Description: strings.TrimSpace(stringField(item, "description")),
		Action:      insight.Truncate(strings.TrimSpace(stringField(item, "action")), insight.MaxActionLen),
		Category:    insight.Truncate(strings.TrimSpace(stringField(item, "category")), insight.MaxCategoryLen),
		Priority:    insight.DefaultPriority,
	}
	if amount, ok := decimalField(item, "amount"); ok {
		c.Amount, _ = insight.StorableAmount(amount)
	}
	if p, ok := decimalField(item, "priority"); ok {
		c.Priority = insight.ClampPriority(int(math.Round(p.InexactFloat64())))
	}
	return c, true
}

func stringField(item rawCandidate, key string) string {
	switch v := item[key].(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprint(v)
	}
}

// decimalField accepts JSON numbers and strings such as "$1,234.50".
func decimalField(item rawCandidate, key string) (decimal.Decimal, bool) {
	switch v := item[key].(type) {
	case float64:
		return decimal.NewFromFloat(v), true
	case string:
		cleaned := strings.NewReplacer("$", "", ",", "", " ", "").Replace(strings.TrimSpace(v))
		if cleaned == "" {
			return decimal.Zero, false
		}
		if d, err := decimal.NewFromString(cleaned); err == nil {
			return d, true
		}
	}
	return decimal.Zero, false
}

func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if nl := strings.IndexByte(s, '\n'); nl >= 0 {
		s = s[nl+1:]
	} else {
		s = strings.TrimPrefix(s, "json")
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
