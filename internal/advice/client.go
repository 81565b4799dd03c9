// Package advice generates coaching text and free-text emotion detection
// backed by Gemini, with deterministic offline fallbacks so the rest of
// the application never depends on the API being reachable.
package advice

import (
	"context"

	"github.com/mintality/mintality/internal/model"
)

// InsightRequest carries the aggregates an insight is written from.
type InsightRequest struct {
	TopEmotion       model.Emotion
	TopEmotionSpend  float64
	CategorySpend    map[string]float64
	PotentialSavings float64
}

// Client produces coaching responses.
type Client interface {
	// SpendingInsight writes a short analysis with practical tips based on
	// aggregated spending data.
	SpendingInsight(ctx context.Context, req InsightRequest) (string, error)

	// CoachReply answers a free-form question in the voice of a supportive
	// financial wellness coach.
	CoachReply(ctx context.Context, message string) (string, error)

	// AlternativeActivity suggests a free or low-cost alternative to
	// spending, given the current emotion and the tempting category.
	AlternativeActivity(ctx context.Context, emotion model.Emotion, category string) (string, error)

	// DetectEmotion classifies the primary financial emotion expressed in
	// free text, with a confidence in [0, 1].
	DetectEmotion(ctx context.Context, text string) (model.Emotion, float64, error)
}
