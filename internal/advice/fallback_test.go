package advice

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintality/mintality/internal/model"
)

func TestDetectByKeywords(t *testing.T) {
	tests := []struct {
		name           string
		text           string
		wantEmotion    model.Emotion
		wantConfidence float64
	}{
		{
			name:           "stress keywords",
			text:           "I feel so much pressure, this is too much",
			wantEmotion:    model.EmotionStressed,
			wantConfidence: 0.4,
		},
		{
			name:           "retail therapy",
			text:           "I deserve to treat myself to a little shopping",
			wantEmotion:    model.EmotionRetailTherapy,
			wantConfidence: 0.6,
		},
		{
			name:           "no matches defaults to neutral",
			text:           "paid the electricity bill",
			wantEmotion:    model.EmotionNeutral,
			wantConfidence: 0.5,
		},
		{
			name:           "confidence capped",
			text:           "worry anxious anxiety fear afraid uncertain",
			wantEmotion:    model.EmotionAnxious,
			wantConfidence: 0.9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			emotion, confidence := detectByKeywords(tt.text)
			assert.Equal(t, tt.wantEmotion, emotion)
			assert.InDelta(t, tt.wantConfidence, confidence, 1e-9)
		})
	}
}

func TestFallbackSpendingInsight(t *testing.T) {
	client := NewFallbackClient()

	text, err := client.SpendingInsight(context.Background(), InsightRequest{
		TopEmotion:       model.EmotionStressed,
		TopEmotionSpend:  120,
		CategorySpend:    map[string]float64{"food": 120, "shopping": 40},
		PotentialSavings: 60,
	})
	require.NoError(t, err)

	assert.Contains(t, text, "stressed")
	assert.Contains(t, text, "$120.00")
	assert.Contains(t, text, "food")
	assert.Contains(t, text, "$60.00")
}

func TestFallbackSpendingInsightNoTrigger(t *testing.T) {
	client := NewFallbackClient()

	text, err := client.SpendingInsight(context.Background(), InsightRequest{
		TopEmotion: model.EmotionNeutral,
	})
	require.NoError(t, err)
	assert.Contains(t, text, "no strong emotional driver")
}

func TestFallbackAlternativeActivity(t *testing.T) {
	client := NewFallbackClient()

	text, err := client.AlternativeActivity(context.Background(), model.EmotionRetailTherapy, "shopping")
	require.NoError(t, err)
	assert.NotEmpty(t, text)

	generic, err := client.AlternativeActivity(context.Background(), model.EmotionNeutral, "gadgets")
	require.NoError(t, err)
	assert.Contains(t, generic, "gadgets")
}

func TestFallbackCoachReplyMatchesDetectedEmotion(t *testing.T) {
	client := NewFallbackClient()

	reply, err := client.CoachReply(context.Background(), "I'm so stressed about this pressure at work")
	require.NoError(t, err)
	assert.Equal(t, insightTips[model.EmotionStressed], reply)
}

func TestBuildInsightPromptOrdersCategories(t *testing.T) {
	prompt := buildInsightPrompt(InsightRequest{
		TopEmotion:      model.EmotionAnxious,
		TopEmotionSpend: 200,
		CategorySpend:   map[string]float64{"food": 50, "shopping": 150},
	})

	assert.Contains(t, prompt, "anxious")
	shoppingIdx := strings.Index(prompt, "shopping")
	foodIdx := strings.Index(prompt, "food")
	require.NotEqual(t, -1, shoppingIdx)
	require.NotEqual(t, -1, foodIdx)
	assert.Less(t, shoppingIdx, foodIdx)
}
