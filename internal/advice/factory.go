package advice

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/model"
)

// NewWithFallback creates the best available advice client. Without an API
// key it returns the offline client; with one, Gemini responses are used and
// API failures fall back to canned output instead of surfacing.
func NewWithFallback(ctx context.Context, cfg GeminiConfig) Client {
	if cfg.APIKey == "" {
		slog.Debug("No Gemini API key configured, using offline advice")
		return NewFallbackClient()
	}

	gemini, err := NewGeminiClient(ctx, cfg)
	if err != nil {
		slog.Warn("Failed to initialize Gemini, using offline advice", "error", err)
		return NewFallbackClient()
	}

	return &resilientClient{
		primary:  gemini,
		fallback: NewFallbackClient(),
		logger:   slog.Default().With("component", "advice"),
	}
}

// resilientClient tries the primary client and falls back on unavailability.
type resilientClient struct {
	primary  Client
	fallback Client
	logger   *slog.Logger
}

func (c *resilientClient) SpendingInsight(ctx context.Context, req InsightRequest) (string, error) {
	text, err := c.primary.SpendingInsight(ctx, req)
	if c.shouldFallBack(err) {
		return c.fallback.SpendingInsight(ctx, req)
	}
	return text, err
}

func (c *resilientClient) CoachReply(ctx context.Context, message string) (string, error) {
	text, err := c.primary.CoachReply(ctx, message)
	if c.shouldFallBack(err) {
		return c.fallback.CoachReply(ctx, message)
	}
	return text, err
}

func (c *resilientClient) AlternativeActivity(ctx context.Context, emotion model.Emotion, category string) (string, error) {
	text, err := c.primary.AlternativeActivity(ctx, emotion, category)
	if c.shouldFallBack(err) {
		return c.fallback.AlternativeActivity(ctx, emotion, category)
	}
	return text, err
}

func (c *resilientClient) DetectEmotion(ctx context.Context, text string) (model.Emotion, float64, error) {
	emotion, confidence, err := c.primary.DetectEmotion(ctx, text)
	if c.shouldFallBack(err) {
		return c.fallback.DetectEmotion(ctx, text)
	}
	return emotion, confidence, err
}

func (c *resilientClient) shouldFallBack(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, common.ErrAdviceUnavailable) {
		c.logger.Warn("Advice API unavailable, using offline response", "error", err)
		return true
	}
	return false
}
