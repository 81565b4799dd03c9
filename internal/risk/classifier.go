// Package risk predicts the day's impulse-spending risk from daily
// check-ins. It learns from history by joining each check-in with the
// emotionally driven purchases made the same day, then classifies new
// check-ins against the observed outcomes.
package risk

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/mintality/mintality/internal/model"
)

// Level is a coarse impulse-spending risk rating.
type Level string

const (
	Low    Level = "low"
	Medium Level = "medium"
	High   Level = "high"
)

// MinSamples is how many joined check-in days are needed before the
// classifier trains. Below that it always answers Medium.
const MinSamples = 5

// MinTransactions is how much spending history must exist alongside the
// check-ins before a prediction is worth attempting.
const MinTransactions = 5

// Ready reports whether there is enough history to train on: at least
// MinSamples check-ins and MinTransactions transactions.
func Ready(checkIns []model.CheckIn, txns []model.Transaction) bool {
	return len(checkIns) >= MinSamples && len(txns) >= MinTransactions
}

// Features is the check-in state the prediction is made from.
type Features struct {
	Mood   string
	Energy string
	Stress string
}

func (f Features) normalized() Features {
	return Features{
		Mood:   strings.ToLower(strings.TrimSpace(f.Mood)),
		Energy: strings.ToLower(strings.TrimSpace(f.Energy)),
		Stress: strings.ToLower(strings.TrimSpace(f.Stress)),
	}
}

// Sample is one training observation: a day's check-in features and how
// many emotionally driven purchases were made that day.
type Sample struct {
	Features     Features
	ImpulseCount int
}

// levelFor buckets a day's impulse count into a risk level.
func levelFor(impulseCount int) Level {
	switch {
	case impulseCount == 0:
		return Low
	case impulseCount == 1:
		return Medium
	default:
		return High
	}
}

// Classifier is the pluggable impulse-risk model. The concrete algorithm
// is an implementation detail behind this interface.
type Classifier interface {
	// Train fits the model; with too little history it stays untrained.
	Train(samples []Sample) error
	// Predict rates the impulse risk for a day's check-in features.
	Predict(features Features) Level
	// Trained reports whether the model has learned from history.
	Trained() bool
}

var _ Classifier = (*TableClassifier)(nil)

// TableClassifier predicts impulse risk with frequency tables over
// observed feature combinations. Unseen combinations back off to the
// stress level alone, then to Medium.
type TableClassifier struct {
	exact   map[Features]map[Level]int
	byStress map[string]map[Level]int
	trained bool
	logger  *slog.Logger
}

// NewClassifier creates an untrained classifier.
func NewClassifier() *TableClassifier {
	return &TableClassifier{
		exact:   make(map[Features]map[Level]int),
		byStress: make(map[string]map[Level]int),
		logger:  slog.Default().With("component", "risk"),
	}
}

// Train fits the classifier. With fewer than MinSamples observations it
// stays untrained and Predict keeps returning Medium.
func (c *TableClassifier) Train(samples []Sample) error {
	c.exact = make(map[Features]map[Level]int)
	c.byStress = make(map[string]map[Level]int)
	c.trained = false

	if len(samples) < MinSamples {
		c.logger.Debug("Not enough history to train risk model",
			"samples", len(samples), "required", MinSamples)
		return nil
	}

	for _, sample := range samples {
		features := sample.Features.normalized()
		if features.Mood == "" || features.Energy == "" || features.Stress == "" {
			return fmt.Errorf("sample has empty features: %+v", sample.Features)
		}

		level := levelFor(sample.ImpulseCount)
		if c.exact[features] == nil {
			c.exact[features] = make(map[Level]int)
		}
		c.exact[features][level]++

		if c.byStress[features.Stress] == nil {
			c.byStress[features.Stress] = make(map[Level]int)
		}
		c.byStress[features.Stress][level]++
	}

	c.trained = true
	c.logger.Info("Trained impulse risk model",
		"samples", len(samples), "feature_combinations", len(c.exact))
	return nil
}

// Trained reports whether the classifier has learned from history.
func (c *TableClassifier) Trained() bool {
	return c.trained
}

// Predict rates the impulse risk for the given check-in features.
func (c *TableClassifier) Predict(features Features) Level {
	if !c.trained {
		return Medium
	}

	normalized := features.normalized()
	if counts, ok := c.exact[normalized]; ok {
		return majority(counts)
	}
	if counts, ok := c.byStress[normalized.Stress]; ok {
		return majority(counts)
	}
	return Medium
}

// majority picks the most frequent level, preferring the higher level on
// ties so warnings err on the cautious side.
func majority(counts map[Level]int) Level {
	order := []Level{High, Medium, Low}
	best := Medium
	bestCount := -1
	for _, level := range order {
		if counts[level] > bestCount {
			best = level
			bestCount = counts[level]
		}
	}
	return best
}

// BuildSamples joins check-ins with transactions by calendar day. A day's
// impulse count is the number of emotionally driven purchases made that
// day; days without spending still count, as zero.
func BuildSamples(checkIns []model.CheckIn, txns []model.Transaction) []Sample {
	impulsesByDay := make(map[string]int)
	for _, txn := range txns {
		if !txn.Emotion.Emotional() {
			continue
		}
		impulsesByDay[txn.Date.Format("2006-01-02")]++
	}

	ordered := make([]model.CheckIn, len(checkIns))
	copy(ordered, checkIns)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	samples := make([]Sample, 0, len(ordered))
	for _, checkIn := range ordered {
		samples = append(samples, Sample{
			Features: Features{
				Mood:   checkIn.Mood,
				Energy: checkIn.Energy,
				Stress: checkIn.Stress,
			},
			ImpulseCount: impulsesByDay[checkIn.Date.Format("2006-01-02")],
		})
	}
	return samples
}
