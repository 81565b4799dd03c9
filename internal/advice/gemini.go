package advice

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"google.golang.org/genai"

	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/model"
)

const defaultModel = "gemini-1.5-pro"

const coachSystemPrompt = `You are a supportive financial wellness coach helping people understand the emotional aspects of their spending.
Help the user develop healthier spending habits by identifying emotional triggers, suggesting alternatives to impulse purchases, and offering brief mindfulness exercises when stress is detected.
Keep responses concise, empathetic, and non-judgmental. Prefer free or low-cost alternatives to shopping.`

// GeminiConfig configures the Gemini-backed advice client.
type GeminiConfig struct {
	APIKey string
	Model  string
}

// GeminiClient generates advice with the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *slog.Logger
}

// NewGeminiClient creates a Gemini-backed advice client.
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini API key", common.ErrMissingConfig)
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      cfg.APIKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	modelName := cfg.Model
	if modelName == "" {
		modelName = defaultModel
	}

	return &GeminiClient{
		client: client,
		model:  modelName,
		logger: slog.Default().With("component", "advice"),
	}, nil
}

// SpendingInsight writes a short analysis of the aggregated spending data.
func (c *GeminiClient) SpendingInsight(ctx context.Context, req InsightRequest) (string, error) {
	return c.generate(ctx, buildInsightPrompt(req))
}

// CoachReply answers a free-form question as a financial wellness coach.
func (c *GeminiClient) CoachReply(ctx context.Context, message string) (string, error) {
	prompt := coachSystemPrompt + "\n\nUser: " + message
	return c.generate(ctx, prompt)
}

// AlternativeActivity suggests a no-spend alternative for the moment.
func (c *GeminiClient) AlternativeActivity(ctx context.Context, emotion model.Emotion, category string) (string, error) {
	prompt := fmt.Sprintf(`A person is feeling %s and considering spending money on %s.
Suggest a free or very low-cost alternative activity (under 50 words) that could satisfy the emotional need without spending money. Be specific and practical.`,
		emotion, category)
	return c.generate(ctx, prompt)
}

var (
	emotionLine    = regexp.MustCompile(`(?i)emotion:\s*(\w+)`)
	confidenceLine = regexp.MustCompile(`(?i)confidence:\s*(\d+(?:\.\d+)?)`)
)

// DetectEmotion classifies the primary financial emotion in free text.
// Malformed model output falls back to keyword detection rather than
// failing the check-in.
func (c *GeminiClient) DetectEmotion(ctx context.Context, text string) (model.Emotion, float64, error) {
	prompt := fmt.Sprintf(`Analyze the following text and classify the primary emotion expressed about finances.

Text: %q

Choose EXACTLY ONE of these emotions:
- stressed (feeling overwhelmed by financial pressure)
- anxious (worried about financial future)
- retail_therapy (desire to spend to feel better)
- motivated (positive about financial progress)
- happy (satisfied with financial situation)
- sad (low mood affecting money decisions)
- neutral (no strong emotion about finances)

Respond with ONLY the emotion name and a confidence score from 0.0 to 1.0, in this format:
emotion: [emotion]
confidence: [score]`, text)

	reply, err := c.generate(ctx, prompt)
	if err != nil {
		return model.EmotionUnset, 0, err
	}

	emotionMatch := emotionLine.FindStringSubmatch(reply)
	confidenceMatch := confidenceLine.FindStringSubmatch(reply)
	if emotionMatch == nil || confidenceMatch == nil {
		c.logger.Warn("Unparseable emotion response, using keyword detection", "reply", reply)
		emotion, confidence := detectByKeywords(text)
		return emotion, confidence, nil
	}

	emotion := model.Emotion(strings.ToLower(emotionMatch[1]))
	if !emotion.Valid() || emotion == model.EmotionUnset {
		emotion = model.EmotionNeutral
	}

	confidence, err := strconv.ParseFloat(confidenceMatch[1], 64)
	if err != nil || confidence < 0 || confidence > 1 {
		confidence = 0.5
	}

	return emotion, confidence, nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrAdviceUnavailable, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", common.ErrAdviceUnavailable)
	}
	return text, nil
}

// buildInsightPrompt renders the aggregates into the analysis prompt.
// Categories are listed in descending spend order so the model sees the
// biggest drivers first.
func buildInsightPrompt(req InsightRequest) string {
	type categorySpend struct {
		category string
		amount   float64
	}
	categories := make([]categorySpend, 0, len(req.CategorySpend))
	for category, amount := range req.CategorySpend {
		categories = append(categories, categorySpend{category, amount})
	}
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].amount != categories[j].amount {
			return categories[i].amount > categories[j].amount
		}
		return categories[i].category < categories[j].category
	})

	var b strings.Builder
	b.WriteString("Based on the user's spending data, provide a brief analysis (100 words max) and actionable advice:\n\n")
	fmt.Fprintf(&b, "Top emotional trigger: %s ($%.2f)\n", req.TopEmotion, req.TopEmotionSpend)
	b.WriteString("Category breakdown:\n")
	for _, c := range categories {
		fmt.Fprintf(&b, "- %s: $%.2f\n", c.category, c.amount)
	}
	fmt.Fprintf(&b, "Estimated avoidable emotional spending: $%.2f\n\n", req.PotentialSavings)
	fmt.Fprintf(&b, "Provide 2-3 practical tips to reduce emotional spending, especially when feeling %s.\n", req.TopEmotion)
	b.WriteString("Be empathetic, non-judgmental, and focus on small, achievable changes.")
	return b.String()
}
