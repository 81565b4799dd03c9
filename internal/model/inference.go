package model

import "sort"

// LabelStatus indicates how a transaction's emotion label was assigned.
type LabelStatus string

// Label status constants.
const (
	StatusUnlabeled        LabelStatus = "UNLABELED"
	StatusLabeledByPattern LabelStatus = "LABELED_BY_PATTERN"
	StatusUserConfirmed    LabelStatus = "USER_CONFIRMED"
)

// InferredLabel is the inferencer's best guess for an unlabeled transaction.
type InferredLabel struct {
	Emotion     Emotion
	Transaction Transaction
	Confidence  float64
}

// EmotionScore pairs an emotion with a combined weighted score.
type EmotionScore struct {
	Emotion Emotion
	Score   float64
}

// EmotionScores is a sortable collection of scored emotions.
type EmotionScores []EmotionScore

// Sort orders scores descending; equal scores fall back to label order so
// results stay deterministic.
func (s EmotionScores) Sort() {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Score != s[j].Score {
			return s[i].Score > s[j].Score
		}
		return s[i].Emotion < s[j].Emotion
	})
}

// Top returns the highest-scoring emotion, or nil if empty.
func (s EmotionScores) Top() *EmotionScore {
	if len(s) == 0 {
		return nil
	}
	s.Sort()
	return &s[0]
}

// Sum adds up all scores.
func (s EmotionScores) Sum() float64 {
	var total float64
	for _, score := range s {
		total += score.Score
	}
	return total
}
