// Package inference assigns best-guess emotion labels to unlabeled
// transactions from historical co-occurrence patterns.
package inference

import "github.com/mintality/mintality/internal/model"

// neutralPriorConfidence is returned when a lookup key has no history.
// 0.5 is a policy default, not a measured probability.
const neutralPriorConfidence = 0.5

// PatternTable counts emotion co-occurrences for one factor (category,
// merchant, or time of day). Insertion order of emotions per key is kept so
// argmax ties resolve deterministically.
type PatternTable struct {
	counts map[string]map[model.Emotion]int
	order  map[string][]model.Emotion
}

// NewPatternTable creates an empty table.
func NewPatternTable() *PatternTable {
	return &PatternTable{
		counts: make(map[string]map[model.Emotion]int),
		order:  make(map[string][]model.Emotion),
	}
}

// Add records one observation of key occurring with emotion.
func (t *PatternTable) Add(key string, emotion model.Emotion) {
	if t.counts[key] == nil {
		t.counts[key] = make(map[model.Emotion]int)
	}
	if _, seen := t.counts[key][emotion]; !seen {
		t.order[key] = append(t.order[key], emotion)
	}
	t.counts[key][emotion]++
}

// MostCommon returns the most frequent emotion for key and its local
// confidence (winning count over total count). A missing key falls back to
// the neutral prior with found=false.
func (t *PatternTable) MostCommon(key string) (model.Emotion, float64, bool) {
	emotions := t.counts[key]
	if len(emotions) == 0 {
		return model.EmotionNeutral, neutralPriorConfidence, false
	}

	var winner model.Emotion
	winnerCount := 0
	total := 0
	for _, emotion := range t.order[key] {
		count := emotions[emotion]
		total += count
		if count > winnerCount {
			winnerCount = count
			winner = emotion
		}
	}

	return winner, float64(winnerCount) / float64(total), true
}

// Patterns bundles the three factor tables built from one labeled snapshot.
type Patterns struct {
	Category  *PatternTable
	Merchant  *PatternTable
	TimeOfDay *PatternTable
}

// BuildPatterns constructs the factor tables from the labeled (non-neutral)
// subset of the snapshot. Unlabeled and neutral transactions carry no
// emotional signal and are skipped.
func BuildPatterns(txns []model.Transaction) *Patterns {
	p := &Patterns{
		Category:  NewPatternTable(),
		Merchant:  NewPatternTable(),
		TimeOfDay: NewPatternTable(),
	}

	for _, txn := range txns {
		if !txn.Emotion.Emotional() {
			continue
		}
		p.Category.Add(txn.Category, txn.Emotion)
		p.Merchant.Add(txn.Merchant, txn.Emotion)
		p.TimeOfDay.Add(string(txn.TimeOfDay), txn.Emotion)
	}

	return p
}
