package feed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/mintality/mintality/internal/model"
)

const defaultDemoSeed = 42

// merchantProfile shapes the synthetic data so each merchant has a stable
// category, spend range, preferred hours, and emotional skew. Pattern
// inference and prediction need that structure to have anything to find.
type merchantProfile struct {
	merchant  string
	category  string
	minAmount float64
	maxAmount float64
	hours     []int
	emotions  []model.Emotion
}

var demoProfiles = []merchantProfile{
	{"Corner Cafe", "food", 4, 18, []int{7, 8, 12, 15}, []model.Emotion{model.EmotionStressed, model.EmotionNeutral}},
	{"Fresh Mart", "groceries", 25, 140, []int{10, 17, 18}, []model.Emotion{model.EmotionNeutral, model.EmotionMotivated}},
	{"Midnight Eats", "food", 15, 45, []int{21, 22, 23}, []model.Emotion{model.EmotionStressed, model.EmotionSad}},
	{"Styleline", "shopping", 30, 180, []int{13, 19, 20}, []model.Emotion{model.EmotionRetailTherapy, model.EmotionAnxious}},
	{"Gadget Depot", "shopping", 50, 400, []int{20, 21}, []model.Emotion{model.EmotionRetailTherapy, model.EmotionHappy}},
	{"City Transit", "transportation", 2, 6, []int{8, 9, 18}, []model.Emotion{model.EmotionNeutral}},
	{"Streamflix", "entertainment", 9, 16, []int{19, 20, 21}, []model.Emotion{model.EmotionHappy, model.EmotionSad}},
	{"Pulse Gym", "health", 10, 60, []int{6, 7, 18}, []model.Emotion{model.EmotionMotivated, model.EmotionHappy}},
	{"Vino & Co", "entertainment", 20, 90, []int{19, 20, 22}, []model.Emotion{model.EmotionStressed, model.EmotionAnxious}},
	{"Bookworm", "shopping", 12, 40, []int{14, 15, 16}, []model.Emotion{model.EmotionHappy, model.EmotionMotivated}},
}

// DemoSource generates reproducible synthetic expense transactions. The
// same seed and date range always produce the same data, so demo sessions
// and tests are stable.
type DemoSource struct {
	seed int64
}

// NewDemoSource creates a demo source. A zero seed uses a fixed default.
func NewDemoSource(seed int64) *DemoSource {
	if seed == 0 {
		seed = defaultDemoSeed
	}
	return &DemoSource{seed: seed}
}

// Fetch generates two to four transactions per day in the range. Roughly
// 70% arrive with an emotion already attached; the rest are left for the
// inferencer and labeling flow.
func (s *DemoSource) Fetch(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error) {
	if ctx == nil {
		return nil, fmt.Errorf("context cannot be nil")
	}
	if startDate.After(endDate) {
		return nil, fmt.Errorf("start date must be before end date")
	}

	rng := rand.New(rand.NewSource(s.seed))

	var transactions []model.Transaction
	day := time.Date(startDate.Year(), startDate.Month(), startDate.Day(), 0, 0, 0, 0, time.UTC)
	last := time.Date(endDate.Year(), endDate.Month(), endDate.Day(), 0, 0, 0, 0, time.UTC)

	for !day.After(last) {
		perDay := 2 + rng.Intn(3)
		for i := 0; i < perDay; i++ {
			profile := demoProfiles[rng.Intn(len(demoProfiles))]
			hour := profile.hours[rng.Intn(len(profile.hours))]
			amount := profile.minAmount + rng.Float64()*(profile.maxAmount-profile.minAmount)

			txn := model.Transaction{
				Date:     day.Add(time.Duration(hour)*time.Hour + time.Duration(rng.Intn(60))*time.Minute),
				Merchant: profile.merchant,
				Category: profile.category,
				Amount:   roundCents(amount),
			}
			if rng.Float64() < 0.7 {
				txn.Emotion = profile.emotions[rng.Intn(len(profile.emotions))]
			}
			txn.SetTimeContext()
			txn.ID = txn.GenerateHash()

			transactions = append(transactions, txn)
		}
		day = day.AddDate(0, 0, 1)
	}

	return transactions, nil
}
