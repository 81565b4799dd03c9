package insights

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/mintality/mintality/internal/model"
)

func txn(emotion model.Emotion, category string, amount float64, bucket model.TimeOfDay, day string) model.Transaction {
	return model.Transaction{
		Date:      time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		Merchant:  "Test Merchant",
		Category:  category,
		Amount:    amount,
		TimeOfDay: bucket,
		DayOfWeek: day,
		Emotion:   emotion,
	}
}

// stressedSet mirrors the canonical stressed-spender snapshot: six evening
// food purchases and two morning shopping trips.
func stressedSet() []model.Transaction {
	var txns []model.Transaction
	for i := 0; i < 6; i++ {
		txns = append(txns, txn(model.EmotionStressed, "food", 20, model.Evening, "Monday"))
	}
	for i := 0; i < 2; i++ {
		txns = append(txns, txn(model.EmotionStressed, "shopping", 50, model.Morning, "Tuesday"))
	}
	return txns
}

func TestSummarize(t *testing.T) {
	txns := []model.Transaction{
		txn(model.EmotionStressed, "food", 20, model.Evening, "Monday"),
		txn(model.EmotionHappy, "entertainment", 35, model.Evening, "Friday"),
		txn(model.EmotionNeutral, "groceries", 80, model.Morning, "Sunday"),
		txn(model.EmotionUnset, "shopping", 15, model.Night, "Saturday"),
		txn(model.EmotionStressed, "shopping", 45, model.Night, "Monday"),
	}

	summary := Summarize(txns)

	assert.InDelta(t, 100.0, summary.Total, 1e-9)
	assert.InDelta(t, 65.0, summary.ByEmotion[model.EmotionStressed], 1e-9)
	assert.InDelta(t, 35.0, summary.ByEmotion[model.EmotionHappy], 1e-9)
	assert.NotContains(t, summary.ByEmotion, model.EmotionNeutral)
	assert.NotContains(t, summary.ByEmotion, model.EmotionUnset)
}

func TestSummarizeCountsEveryDollarOnce(t *testing.T) {
	txns := stressedSet()
	txns = append(txns, txn(model.EmotionAnxious, "food", 12.34, model.Night, "Sunday"))

	summary := Summarize(txns)

	var bucketed, emotional float64
	for _, amount := range summary.ByEmotion {
		bucketed += amount
	}
	for _, tx := range txns {
		if tx.Emotion.Emotional() {
			emotional += tx.Amount
		}
	}
	assert.InDelta(t, emotional, bucketed, 1e-9)
	assert.InDelta(t, emotional, summary.Total, 1e-9)
}

func TestSummarizeEmpty(t *testing.T) {
	summary := Summarize(nil)
	assert.Zero(t, summary.Total)
	assert.Empty(t, summary.ByEmotion)
}

func TestPotentialSavings(t *testing.T) {
	summary := EmotionSummary{Total: 200}
	assert.InDelta(t, 100.0, PotentialSavings(summary), 1e-9)
	assert.InDelta(t, 60.0, PotentialSavingsWithRatio(summary, 0.3), 1e-9)

	// Linear in total for the fixed ratio.
	scaled := EmotionSummary{Total: summary.Total * 3}
	assert.InDelta(t, 3*PotentialSavings(summary), PotentialSavings(scaled), 1e-9)
}

func TestSpendingByCategoryForEmotion(t *testing.T) {
	spending := SpendingByCategoryForEmotion(stressedSet(), model.EmotionStressed)

	assert.InDelta(t, 120.0, spending["food"], 1e-9)
	assert.InDelta(t, 100.0, spending["shopping"], 1e-9)
	assert.Len(t, spending, 2)

	assert.Empty(t, SpendingByCategoryForEmotion(stressedSet(), model.EmotionSad))
}

func TestTopTriggerForEmotion(t *testing.T) {
	trigger := TopTriggerForEmotion(stressedSet(), model.EmotionStressed)

	assert.Equal(t, "food", trigger.Category)
	assert.InDelta(t, 120.0, trigger.Amount, 1e-9)
	assert.Equal(t, model.Evening, trigger.TimeOfDay)
}

func TestTopTriggerForEmotionNoData(t *testing.T) {
	trigger := TopTriggerForEmotion(stressedSet(), model.EmotionHappy)

	assert.Empty(t, trigger.Category)
	assert.Zero(t, trigger.Amount)
	assert.Empty(t, trigger.TimeOfDay)
}

func TestTopTriggerTieBreaksFirstEncountered(t *testing.T) {
	txns := []model.Transaction{
		txn(model.EmotionSad, "books", 30, model.Night, "Friday"),
		txn(model.EmotionSad, "games", 30, model.Morning, "Friday"),
	}

	trigger := TopTriggerForEmotion(txns, model.EmotionSad)
	assert.Equal(t, "books", trigger.Category)
	assert.Equal(t, model.Night, trigger.TimeOfDay)
}

func TestSpendingByDayOfWeek(t *testing.T) {
	spending := SpendingByDayOfWeek(stressedSet(), model.EmotionStressed)

	assert.Len(t, spending, 7)
	assert.InDelta(t, 120.0, spending["Monday"], 1e-9)
	assert.InDelta(t, 100.0, spending["Tuesday"], 1e-9)
	assert.Zero(t, spending["Sunday"])

	// Unset emotion means no filter.
	all := SpendingByDayOfWeek(stressedSet(), model.EmotionUnset)
	assert.InDelta(t, 120.0, all["Monday"], 1e-9)
}

func TestSpendingByTimeOfDay(t *testing.T) {
	spending := SpendingByTimeOfDay(stressedSet(), model.EmotionStressed)

	assert.Len(t, spending, 4)
	assert.InDelta(t, 120.0, spending[model.Evening], 1e-9)
	assert.InDelta(t, 100.0, spending[model.Morning], 1e-9)
	assert.Zero(t, spending[model.Night])
}

func TestSpendingTrends(t *testing.T) {
	old := txn(model.EmotionStressed, "food", 99, model.Evening, "Monday")
	old.Date = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	recent := txn(model.EmotionHappy, "entertainment", 40, model.Evening, "Friday")
	recent.Date = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	trends := SpendingTrends([]model.Transaction{old, recent}, 30)

	assert.InDelta(t, 40.0, trends[model.EmotionHappy], 1e-9)
	assert.NotContains(t, trends, model.EmotionStressed)

	assert.Empty(t, SpendingTrends(nil, 30))
}

func TestSpendingTrendsSkipsUnlabeled(t *testing.T) {
	unset := txn(model.EmotionUnset, "shopping", 15, model.Night, "Saturday")
	neutral := txn(model.EmotionNeutral, "groceries", 60, model.Morning, "Sunday")
	happy := txn(model.EmotionHappy, "entertainment", 40, model.Evening, "Friday")

	trends := SpendingTrends([]model.Transaction{unset, neutral, happy}, 30)

	assert.NotContains(t, trends, model.EmotionUnset)
	assert.InDelta(t, 60.0, trends[model.EmotionNeutral], 1e-9)
	assert.InDelta(t, 40.0, trends[model.EmotionHappy], 1e-9)
}

func TestAverageAmountByEmotion(t *testing.T) {
	averages := AverageAmountByEmotion(stressedSet())

	assert.InDelta(t, 220.0/8, averages[model.EmotionStressed], 1e-9)

	assert.Empty(t, AverageAmountByEmotion(nil))
}

func TestTopMerchantsForEmotion(t *testing.T) {
	a := txn(model.EmotionAnxious, "food", 10, model.Evening, "Monday")
	a.Merchant = "Alpha"
	b := txn(model.EmotionAnxious, "food", 25, model.Evening, "Monday")
	b.Merchant = "Beta"
	c := txn(model.EmotionAnxious, "food", 5, model.Evening, "Monday")
	c.Merchant = "Gamma"

	merchants := TopMerchantsForEmotion([]model.Transaction{a, b, c, a}, model.EmotionAnxious, 2)

	assert.Len(t, merchants, 2)
	assert.Equal(t, "Beta", merchants[0].Merchant)
	assert.InDelta(t, 25.0, merchants[0].Amount, 1e-9)
	assert.Equal(t, 1, merchants[0].Count)
	assert.Equal(t, "Alpha", merchants[1].Merchant)
	assert.InDelta(t, 20.0, merchants[1].Amount, 1e-9)
	assert.Equal(t, 2, merchants[1].Count)
}
