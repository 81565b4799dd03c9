package advice

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mintality/mintality/internal/model"
)

// FallbackClient produces canned, deterministic coaching responses for
// offline use and for when the API is unavailable.
type FallbackClient struct{}

// NewFallbackClient creates the offline advice client.
func NewFallbackClient() *FallbackClient {
	return &FallbackClient{}
}

var insightTips = map[model.Emotion]string{
	model.EmotionStressed:      "When stress hits, try a ten-minute walk or a short breathing exercise before opening a shopping app. A 24-hour wait on non-essential purchases helps too.",
	model.EmotionAnxious:       "Worry about money often drives spending that makes the worry worse. Writing down the concern, then checking your budget, usually feels better than a purchase.",
	model.EmotionRetailTherapy: "Treating yourself is fine, but try a small ritual first: add the item to a wishlist and revisit it in three days. Most of the urge fades.",
	model.EmotionSad:           "Low moods make purchases feel like comfort. Calling a friend or getting outside tends to lift the mood longer than a delivery box does.",
	model.EmotionHappy:         "Celebration spending adds up quietly. Set a small treat budget so good days stay good for your balance too.",
	model.EmotionMotivated:     "Channel the momentum: move the money you almost spent into savings and watch the progress instead.",
}

// SpendingInsight returns a templated analysis built from the aggregates.
func (c *FallbackClient) SpendingInsight(_ context.Context, req InsightRequest) (string, error) {
	var b strings.Builder

	if req.TopEmotion.Emotional() {
		fmt.Fprintf(&b, "Your biggest emotional spending trigger is feeling %s, which accounts for $%.2f.\n",
			req.TopEmotion, req.TopEmotionSpend)
	} else {
		b.WriteString("Your spending shows no strong emotional driver right now. Keep an eye on new patterns as they form.\n")
	}

	if category, amount, ok := topCategory(req.CategorySpend); ok {
		fmt.Fprintf(&b, "Most of that goes to %s ($%.2f).\n", category, amount)
	}
	if req.PotentialSavings > 0 {
		fmt.Fprintf(&b, "Cutting emotional purchases roughly in half could free up about $%.2f.\n", req.PotentialSavings)
	}
	if tip, ok := insightTips[req.TopEmotion]; ok {
		b.WriteString(tip)
	}

	return strings.TrimSpace(b.String()), nil
}

// CoachReply gives a generic supportive answer.
func (c *FallbackClient) CoachReply(ctx context.Context, message string) (string, error) {
	emotion, _ := detectByKeywords(message)
	if tip, ok := insightTips[emotion]; ok {
		return tip, nil
	}
	return "Take a moment before any purchase today: name what you're feeling, and ask whether the purchase addresses it. Small pauses build better habits.", nil
}

var alternativeActivities = map[model.Emotion]string{
	model.EmotionStressed:      "Step outside for a ten-minute walk and leave your phone in your pocket. Movement burns off stress faster than a checkout page does.",
	model.EmotionAnxious:       "Write the worry down, then list one thing you can do about it this week. Naming it shrinks it.",
	model.EmotionRetailTherapy: "Do a 'closet shop': pick one thing you own but haven't used in months and give it an evening.",
	model.EmotionSad:           "Message a friend you haven't talked to in a while. Connection beats a parcel.",
	model.EmotionHappy:         "Celebrate with something you already love: your favorite playlist, a walk to a nice spot, a meal you cook well.",
	model.EmotionMotivated:     "Move the amount you were about to spend into savings and track the running total.",
}

// AlternativeActivity returns a canned no-spend suggestion.
func (c *FallbackClient) AlternativeActivity(_ context.Context, emotion model.Emotion, category string) (string, error) {
	if activity, ok := alternativeActivities[emotion]; ok {
		return activity, nil
	}
	return fmt.Sprintf("Before spending on %s, consider going for a walk or calling a friend instead.", category), nil
}

// DetectEmotion runs keyword detection.
func (c *FallbackClient) DetectEmotion(_ context.Context, text string) (model.Emotion, float64, error) {
	emotion, confidence := detectByKeywords(text)
	return emotion, confidence, nil
}

var emotionKeywords = map[model.Emotion][]string{
	model.EmotionStressed:      {"overwhelm", "stress", "pressure", "too much", "cant handle", "can't handle"},
	model.EmotionAnxious:       {"worry", "anxious", "anxiety", "fear", "afraid", "uncertain"},
	model.EmotionRetailTherapy: {"treat myself", "deserve", "shopping", "buy something"},
	model.EmotionMotivated:     {"excited", "progress", "control", "achieving", "saving"},
	model.EmotionHappy:         {"happy", "glad", "pleased", "delighted", "joy"},
	model.EmotionSad:           {"sad", "down", "miserable", "lonely"},
	model.EmotionNeutral:       {"regular", "normal", "usual", "typical"},
}

// detectByKeywords scores each emotion by keyword hits. Confidence scales
// with the hit count, capped at 0.9; no hits means neutral at 0.5.
func detectByKeywords(text string) (model.Emotion, float64) {
	text = strings.ToLower(text)

	best := model.EmotionNeutral
	bestScore := 0

	emotions := make([]model.Emotion, 0, len(emotionKeywords))
	for emotion := range emotionKeywords {
		emotions = append(emotions, emotion)
	}
	sort.Slice(emotions, func(i, j int) bool { return emotions[i] < emotions[j] })

	for _, emotion := range emotions {
		score := 0
		for _, keyword := range emotionKeywords[emotion] {
			if strings.Contains(text, keyword) {
				score++
			}
		}
		if score > bestScore {
			best = emotion
			bestScore = score
		}
	}

	if bestScore == 0 {
		return model.EmotionNeutral, 0.5
	}

	confidence := float64(bestScore) * 0.2
	if confidence > 0.9 {
		confidence = 0.9
	}
	return best, confidence
}

func topCategory(spend map[string]float64) (string, float64, bool) {
	best := ""
	bestAmount := 0.0
	categories := make([]string, 0, len(spend))
	for category := range spend {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	for _, category := range categories {
		if spend[category] > bestAmount {
			best = category
			bestAmount = spend[category]
		}
	}
	return best, bestAmount, best != ""
}
