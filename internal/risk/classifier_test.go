package risk

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintality/mintality/internal/model"
)

func calmSample(impulses int) Sample {
	return Sample{
		Features:     Features{Mood: "calm", Energy: "high", Stress: "low"},
		ImpulseCount: impulses,
	}
}

func frazzledSample(impulses int) Sample {
	return Sample{
		Features:     Features{Mood: "down", Energy: "low", Stress: "high"},
		ImpulseCount: impulses,
	}
}

func TestPredictUntrainedReturnsMedium(t *testing.T) {
	c := NewClassifier()
	assert.False(t, c.Trained())
	assert.Equal(t, Medium, c.Predict(Features{Mood: "calm", Energy: "high", Stress: "low"}))
}

func TestTrainRequiresMinimumSamples(t *testing.T) {
	c := NewClassifier()
	require.NoError(t, c.Train([]Sample{calmSample(0), calmSample(0)}))
	assert.False(t, c.Trained())
	assert.Equal(t, Medium, c.Predict(Features{Mood: "calm", Energy: "high", Stress: "low"}))
}

func TestPredictLearnsFromHistory(t *testing.T) {
	c := NewClassifier()
	samples := []Sample{
		calmSample(0), calmSample(0), calmSample(0),
		frazzledSample(3), frazzledSample(2),
	}
	require.NoError(t, c.Train(samples))
	require.True(t, c.Trained())

	assert.Equal(t, Low, c.Predict(Features{Mood: "calm", Energy: "high", Stress: "low"}))
	assert.Equal(t, High, c.Predict(Features{Mood: "down", Energy: "low", Stress: "high"}))
}

func TestPredictBacksOffToStress(t *testing.T) {
	c := NewClassifier()
	samples := []Sample{
		calmSample(0), calmSample(0), calmSample(0),
		frazzledSample(3), frazzledSample(2),
	}
	require.NoError(t, c.Train(samples))

	// Unseen mood/energy combination with a known stress level.
	got := c.Predict(Features{Mood: "fine", Energy: "moderate", Stress: "high"})
	assert.Equal(t, High, got)

	// Entirely unseen features.
	got = c.Predict(Features{Mood: "fine", Energy: "moderate", Stress: "mystery"})
	assert.Equal(t, Medium, got)
}

func TestPredictNormalizesFeatures(t *testing.T) {
	c := NewClassifier()
	samples := []Sample{
		calmSample(0), calmSample(0), calmSample(0), calmSample(0), calmSample(0),
	}
	require.NoError(t, c.Train(samples))

	assert.Equal(t, Low, c.Predict(Features{Mood: " Calm ", Energy: "HIGH", Stress: "Low"}))
}

func TestTrainRejectsEmptyFeatures(t *testing.T) {
	c := NewClassifier()
	samples := []Sample{
		calmSample(0), calmSample(0), calmSample(0), calmSample(0),
		{Features: Features{Mood: "", Energy: "high", Stress: "low"}},
	}
	assert.Error(t, c.Train(samples))
}

func TestMajorityPrefersHigherLevelOnTie(t *testing.T) {
	assert.Equal(t, High, majority(map[Level]int{High: 2, Low: 2}))
	assert.Equal(t, Medium, majority(map[Level]int{Medium: 1, Low: 1}))
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, Low, levelFor(0))
	assert.Equal(t, Medium, levelFor(1))
	assert.Equal(t, High, levelFor(2))
	assert.Equal(t, High, levelFor(7))
}

func TestReady(t *testing.T) {
	day := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	checkIns := make([]model.CheckIn, MinSamples)
	for i := range checkIns {
		checkIns[i] = model.CheckIn{
			ID: "c", Date: day.AddDate(0, 0, i),
			Mood: "calm", Energy: "high", Stress: "low",
		}
	}
	txns := make([]model.Transaction, MinTransactions)
	for i := range txns {
		txns[i] = model.Transaction{ID: "t", Date: day, Amount: 10}
	}

	assert.True(t, Ready(checkIns, txns))
	assert.False(t, Ready(checkIns[:MinSamples-1], txns))
	assert.False(t, Ready(checkIns, txns[:MinTransactions-1]))
	assert.False(t, Ready(nil, nil))
}

func TestBuildSamples(t *testing.T) {
	day1 := time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC)
	day2 := time.Date(2025, 5, 2, 0, 0, 0, 0, time.UTC)

	checkIns := []model.CheckIn{
		{ID: "c1", Date: day1, Mood: "calm", Energy: "high", Stress: "low"},
		{ID: "c2", Date: day2, Mood: "down", Energy: "low", Stress: "high"},
	}
	txns := []model.Transaction{
		{ID: "t1", Date: day1.Add(10 * time.Hour), Emotion: model.EmotionNeutral, Amount: 20},
		{ID: "t2", Date: day2.Add(20 * time.Hour), Emotion: model.EmotionStressed, Amount: 45},
		{ID: "t3", Date: day2.Add(21 * time.Hour), Emotion: model.EmotionStressed, Amount: 30},
		{ID: "t4", Date: day2.Add(22 * time.Hour), Emotion: model.EmotionUnset, Amount: 10},
	}

	samples := BuildSamples(checkIns, txns)
	require.Len(t, samples, 2)

	// Neutral and unlabeled purchases are not impulses.
	assert.Equal(t, 0, samples[0].ImpulseCount)
	assert.Equal(t, "calm", samples[0].Features.Mood)
	assert.Equal(t, 2, samples[1].ImpulseCount)
}
