package inference

import "github.com/mintality/mintality/internal/model"

// Factor weights for the fixed weighted vote. Category history is the
// strongest signal, merchant next, time of day weakest.
const (
	categoryWeight  = 0.5
	merchantWeight  = 0.3
	timeOfDayWeight = 0.2
)

// ConfirmationThreshold is the confidence below which a prediction should
// be surfaced to the user for confirmation before being committed.
const ConfirmationThreshold = 0.6

// Predict infers emotion labels for every unlabeled or neutral-tagged
// transaction in the snapshot, using patterns learned from the labeled
// remainder. It is a pure function: running it twice on the same snapshot
// yields identical predictions.
func Predict(txns []model.Transaction) []model.InferredLabel {
	patterns := BuildPatterns(txns)

	var predictions []model.InferredLabel
	for _, txn := range txns {
		if txn.Emotion.Emotional() {
			continue
		}
		emotion, confidence := predictOne(patterns, txn)
		predictions = append(predictions, model.InferredLabel{
			Transaction: txn,
			Emotion:     emotion,
			Confidence:  confidence,
		})
	}

	return predictions
}

// predictOne combines the three factor votes for a single transaction.
// Each distinct emotion accumulates weight x local confidence from every
// factor that voted for it; the output confidence is the winner's share of
// the combined mass. That share can double count when factors agree, so it
// is a ranking signal rather than a true probability.
func predictOne(patterns *Patterns, txn model.Transaction) (model.Emotion, float64) {
	categoryEmotion, categoryConf, categoryFound := patterns.Category.MostCommon(txn.Category)
	merchantEmotion, merchantConf, merchantFound := patterns.Merchant.MostCommon(txn.Merchant)
	timeEmotion, timeConf, timeFound := patterns.TimeOfDay.MostCommon(string(txn.TimeOfDay))

	// No measured evidence from any factor: report the neutral prior
	// itself, not a normalized share of defaults.
	if !categoryFound && !merchantFound && !timeFound {
		return model.EmotionNeutral, neutralPriorConfidence
	}

	votes := []model.EmotionScore{
		{Emotion: categoryEmotion, Score: categoryConf * categoryWeight},
		{Emotion: merchantEmotion, Score: merchantConf * merchantWeight},
		{Emotion: timeEmotion, Score: timeConf * timeOfDayWeight},
	}

	combined := make(map[model.Emotion]float64)
	var order []model.Emotion
	for _, vote := range votes {
		if _, seen := combined[vote.Emotion]; !seen {
			order = append(order, vote.Emotion)
		}
		combined[vote.Emotion] += vote.Score
	}

	scores := make(model.EmotionScores, 0, len(order))
	for _, emotion := range order {
		scores = append(scores, model.EmotionScore{Emotion: emotion, Score: combined[emotion]})
	}

	total := scores.Sum()
	if total == 0 {
		// Cannot happen given the neutral prior, but guard the division.
		return model.EmotionNeutral, neutralPriorConfidence
	}

	top := scores.Top()
	return top.Emotion, top.Score / total
}
