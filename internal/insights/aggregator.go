// Package insights computes aggregate emotion-spending statistics. Every
// function is a pure function of the transaction snapshot it is given;
// empty input produces zeroed results, never errors.
package insights

import (
	"sort"
	"time"

	"github.com/mintality/mintality/internal/model"
)

// DefaultSavingsRatio is the assumed achievable reduction in emotional
// spending. Policy constant, not derived from data.
const DefaultSavingsRatio = 0.5

// EmotionSummary aggregates emotionally driven spend. Neutral and unlabeled
// transactions are excluded: neutral means no emotional driver.
type EmotionSummary struct {
	ByEmotion map[model.Emotion]float64
	Total     float64
}

// Summarize computes total spend per emotion over the snapshot.
func Summarize(txns []model.Transaction) EmotionSummary {
	summary := EmotionSummary{ByEmotion: make(map[model.Emotion]float64)}

	for _, txn := range txns {
		if !txn.Emotion.Emotional() {
			continue
		}
		summary.ByEmotion[txn.Emotion] += txn.Amount
		summary.Total += txn.Amount
	}

	return summary
}

// PotentialSavings estimates the amount saved by reducing emotional
// spending by the default ratio.
func PotentialSavings(summary EmotionSummary) float64 {
	return PotentialSavingsWithRatio(summary, DefaultSavingsRatio)
}

// PotentialSavingsWithRatio is PotentialSavings with a caller-chosen
// reduction ratio.
func PotentialSavingsWithRatio(summary EmotionSummary, ratio float64) float64 {
	return summary.Total * ratio
}

// SpendingByCategoryForEmotion sums spend per category across transactions
// tagged with the given emotion.
func SpendingByCategoryForEmotion(txns []model.Transaction, emotion model.Emotion) map[string]float64 {
	spending := make(map[string]float64)
	for _, txn := range txns {
		if txn.Emotion != emotion {
			continue
		}
		spending[txn.Category] += txn.Amount
	}
	return spending
}

// Trigger is the category and time-of-day combination most associated with
// spending under one emotion. The zero value means the emotion has no
// transactions.
type Trigger struct {
	Category  string
	TimeOfDay model.TimeOfDay
	Amount    float64
}

// TopTriggerForEmotion finds the highest-spend category for an emotion and
// the most frequent time-of-day bucket within it. Ties break in favor of
// the first-encountered category or bucket, so results are deterministic
// for a given snapshot order.
func TopTriggerForEmotion(txns []model.Transaction, emotion model.Emotion) Trigger {
	spending := make(map[string]float64)
	var categoryOrder []string
	for _, txn := range txns {
		if txn.Emotion != emotion {
			continue
		}
		if _, seen := spending[txn.Category]; !seen {
			categoryOrder = append(categoryOrder, txn.Category)
		}
		spending[txn.Category] += txn.Amount
	}

	if len(categoryOrder) == 0 {
		return Trigger{}
	}

	var top Trigger
	for _, category := range categoryOrder {
		if spending[category] > top.Amount {
			top.Category = category
			top.Amount = spending[category]
		}
	}

	timeCounts := make(map[model.TimeOfDay]int)
	var timeOrder []model.TimeOfDay
	for _, txn := range txns {
		if txn.Emotion != emotion || txn.Category != top.Category {
			continue
		}
		if _, seen := timeCounts[txn.TimeOfDay]; !seen {
			timeOrder = append(timeOrder, txn.TimeOfDay)
		}
		timeCounts[txn.TimeOfDay]++
	}

	topCount := 0
	for _, bucket := range timeOrder {
		if timeCounts[bucket] > topCount {
			topCount = timeCounts[bucket]
			top.TimeOfDay = bucket
		}
	}

	return top
}

// SpendingByDayOfWeek sums spend per weekday, optionally restricted to one
// emotion. All seven days are present in the result.
func SpendingByDayOfWeek(txns []model.Transaction, emotion model.Emotion) map[string]float64 {
	spending := make(map[string]float64, len(model.Weekdays))
	for _, day := range model.Weekdays {
		spending[day] = 0
	}

	for _, txn := range txns {
		if emotion != model.EmotionUnset && txn.Emotion != emotion {
			continue
		}
		spending[txn.DayOfWeek] += txn.Amount
	}

	return spending
}

// SpendingByTimeOfDay sums spend per time-of-day bucket, optionally
// restricted to one emotion. All four buckets are present in the result.
func SpendingByTimeOfDay(txns []model.Transaction, emotion model.Emotion) map[model.TimeOfDay]float64 {
	spending := make(map[model.TimeOfDay]float64, len(model.AllTimesOfDay))
	for _, bucket := range model.AllTimesOfDay {
		spending[bucket] = 0
	}

	for _, txn := range txns {
		if emotion != model.EmotionUnset && txn.Emotion != emotion {
			continue
		}
		spending[txn.TimeOfDay] += txn.Amount
	}

	return spending
}

// SpendingTrends sums spend per emotion over the trailing window ending at
// the most recent transaction date. Unlabeled transactions are skipped;
// neutral ones keep their own row.
func SpendingTrends(txns []model.Transaction, days int) map[model.Emotion]float64 {
	trends := make(map[model.Emotion]float64)
	if len(txns) == 0 {
		return trends
	}

	var latest time.Time
	for _, txn := range txns {
		if txn.Date.After(latest) {
			latest = txn.Date
		}
	}
	cutoff := latest.AddDate(0, 0, -days)

	for _, txn := range txns {
		if txn.Date.Before(cutoff) || !txn.Emotion.Labeled() {
			continue
		}
		trends[txn.Emotion] += txn.Amount
	}

	return trends
}

// AverageAmountByEmotion computes the mean transaction amount per emotion.
func AverageAmountByEmotion(txns []model.Transaction) map[model.Emotion]float64 {
	counts := make(map[model.Emotion]int)
	totals := make(map[model.Emotion]float64)

	for _, txn := range txns {
		counts[txn.Emotion]++
		totals[txn.Emotion] += txn.Amount
	}

	averages := make(map[model.Emotion]float64, len(totals))
	for emotion, total := range totals {
		averages[emotion] = total / float64(counts[emotion])
	}

	return averages
}

// MerchantSpend pairs a merchant with its summed spend and purchase count.
type MerchantSpend struct {
	Merchant string
	Amount   float64
	Count    int
}

// TopMerchantsForEmotion returns the highest-spend merchants for an
// emotion, at most limit entries, largest first. Equal amounts keep
// first-encountered order.
func TopMerchantsForEmotion(txns []model.Transaction, emotion model.Emotion, limit int) []MerchantSpend {
	spending := make(map[string]float64)
	counts := make(map[string]int)
	var order []string
	for _, txn := range txns {
		if txn.Emotion != emotion {
			continue
		}
		if _, seen := spending[txn.Merchant]; !seen {
			order = append(order, txn.Merchant)
		}
		spending[txn.Merchant] += txn.Amount
		counts[txn.Merchant]++
	}

	merchants := make([]MerchantSpend, 0, len(order))
	for _, merchant := range order {
		merchants = append(merchants, MerchantSpend{
			Merchant: merchant,
			Amount:   spending[merchant],
			Count:    counts[merchant],
		})
	}

	sort.SliceStable(merchants, func(i, j int) bool {
		return merchants[i].Amount > merchants[j].Amount
	})

	if limit > 0 && len(merchants) > limit {
		merchants = merchants[:limit]
	}
	return merchants
}
