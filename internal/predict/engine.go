// Package predict estimates the next likely purchase for a user in a given
// emotional state, conditioned on the current time context.
package predict

import (
	"time"

	"github.com/mintality/mintality/internal/model"
)

// Policy constants for the heuristic relevance boost. The boosts are
// independent and multiplicative, so a category can receive both.
const (
	minProbability = 0.3
	shareThreshold = 0.3
	timeBoost      = 1.5
	dayBoost       = 1.3
)

// Context is the present moment, pre-bucketed.
type Context struct {
	DayOfWeek string
	TimeOfDay model.TimeOfDay
}

// ContextAt derives a Context from a timestamp.
func ContextAt(t time.Time) Context {
	bucket, day := model.TimeContext(t)
	return Context{TimeOfDay: bucket, DayOfWeek: day}
}

// CategoryPattern describes one category's history within an emotion bucket.
type CategoryPattern struct {
	Probability float64
	AvgAmount   float64
	Frequency   int
}

// CategoryTimePattern is the most frequent category/time-of-day pairing.
type CategoryTimePattern struct {
	Category    string
	TimeOfDay   model.TimeOfDay
	Count       int
	Probability float64
	AvgAmount   float64
}

// Patterns holds the per-emotion history the prediction draws from.
// CategoryOrder preserves first-encountered order so argmax ties are
// deterministic.
type Patterns struct {
	Categories    map[string]CategoryPattern
	TimeShare     map[model.TimeOfDay]float64
	DayShare      map[string]float64
	TopPattern    *CategoryTimePattern
	CategoryOrder []string
	Total         int
}

// AnalyzePatterns computes spending patterns for one emotion. Returns nil
// when the emotion has no transactions.
func AnalyzePatterns(txns []model.Transaction, emotion model.Emotion) *Patterns {
	var filtered []model.Transaction
	for _, txn := range txns {
		if txn.Emotion == emotion {
			filtered = append(filtered, txn)
		}
	}
	if len(filtered) == 0 {
		return nil
	}

	total := len(filtered)
	p := &Patterns{
		Categories: make(map[string]CategoryPattern),
		TimeShare:  make(map[model.TimeOfDay]float64),
		DayShare:   make(map[string]float64),
		Total:      total,
	}

	counts := make(map[string]int)
	sums := make(map[string]float64)
	timeCounts := make(map[model.TimeOfDay]int)
	dayCounts := make(map[string]int)
	for _, txn := range filtered {
		if _, seen := counts[txn.Category]; !seen {
			p.CategoryOrder = append(p.CategoryOrder, txn.Category)
		}
		counts[txn.Category]++
		sums[txn.Category] += txn.Amount
		timeCounts[txn.TimeOfDay]++
		dayCounts[txn.DayOfWeek]++
	}

	for bucket, count := range timeCounts {
		p.TimeShare[bucket] = float64(count) / float64(total)
	}
	for day, count := range dayCounts {
		p.DayShare[day] = float64(count) / float64(total)
	}

	for _, category := range p.CategoryOrder {
		p.Categories[category] = CategoryPattern{
			Probability: float64(counts[category]) / float64(total),
			AvgAmount:   sums[category] / float64(counts[category]),
			Frequency:   counts[category],
		}
	}

	p.TopPattern = topCategoryTimePattern(filtered, total)

	return p
}

// topCategoryTimePattern finds the most frequent category/time pairing.
func topCategoryTimePattern(txns []model.Transaction, total int) *CategoryTimePattern {
	type key struct {
		category string
		bucket   model.TimeOfDay
	}
	counts := make(map[key]int)
	sums := make(map[key]float64)
	var order []key

	for _, txn := range txns {
		k := key{category: txn.Category, bucket: txn.TimeOfDay}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
		sums[k] += txn.Amount
	}

	var top *CategoryTimePattern
	for _, k := range order {
		if top == nil || counts[k] > top.Count {
			top = &CategoryTimePattern{
				Category:    k.category,
				TimeOfDay:   k.bucket,
				Count:       counts[k],
				Probability: float64(counts[k]) / float64(total),
				AvgAmount:   sums[k] / float64(counts[k]),
			}
		}
	}

	return top
}

// Generate produces the single most likely next purchase for the emotion
// given the current context, or nil when history is too thin to say
// anything. Absence of data is a legitimate no-prediction outcome, not an
// error.
func Generate(txns []model.Transaction, emotion model.Emotion, ctx Context) *model.Prediction {
	patterns := AnalyzePatterns(txns, emotion)
	if patterns == nil || len(patterns.Categories) == 0 {
		return nil
	}

	// A time or day bucket absent from history contributes no boost.
	timeShare := patterns.TimeShare[ctx.TimeOfDay]
	dayShare := patterns.DayShare[ctx.DayOfWeek]

	highestProb := 0.0
	likelyCategory := ""
	likelyAmount := 0.0

	for _, category := range patterns.CategoryOrder {
		pattern := patterns.Categories[category]
		adjusted := pattern.Probability
		if timeShare > shareThreshold {
			adjusted *= timeBoost
		}
		if dayShare > shareThreshold {
			adjusted *= dayBoost
		}

		if adjusted > highestProb {
			highestProb = adjusted
			likelyCategory = category
			likelyAmount = pattern.AvgAmount
		}
	}

	if highestProb < minProbability {
		return nil
	}

	return &model.Prediction{
		Emotion:         emotion,
		Category:        likelyCategory,
		Probability:     highestProb,
		EstimatedAmount: likelyAmount,
		TimeOfDay:       ctx.TimeOfDay,
		DayOfWeek:       ctx.DayOfWeek,
	}
}
