package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintality/mintality/internal/model"
	"github.com/mintality/mintality/internal/service"
	"github.com/mintality/mintality/internal/testutil"
)

// seedHistory stores a labeled history with strong patterns plus two
// unlabeled transactions: one the patterns clearly explain, one with
// conflicting signals that needs confirmation.
func seedHistory(t *testing.T, store service.Storage) {
	t.Helper()
	ctx := context.Background()

	day := func(d, hour int) time.Time {
		return time.Date(2025, 5, d, hour, 0, 0, 0, time.UTC)
	}

	var txns []model.Transaction
	// Late-night food runs, consistently stressed.
	for i := 0; i < 3; i++ {
		txns = append(txns, testutil.Transaction("", day(i+1, 22), "Midnight Eats", "food", 25, model.EmotionStressed))
	}
	// Evening shopping, consistently retail therapy.
	for i := 0; i < 3; i++ {
		txns = append(txns, testutil.Transaction("", day(i+4, 19), "Styleline", "shopping", 80, model.EmotionRetailTherapy))
	}
	// An evening merchant with happy history.
	for i := 0; i < 2; i++ {
		txns = append(txns, testutil.Transaction("", day(i+7, 19), "Vino & Co", "entertainment", 40, model.EmotionHappy))
	}

	// Clear case: matches the stressed pattern on every factor.
	txns = append(txns, testutil.Transaction("txn-clear", day(10, 22), "Midnight Eats", "food", 30, model.EmotionUnset))
	// Conflicted case: stressed category, happy merchant.
	txns = append(txns, testutil.Transaction("txn-conflicted", day(11, 19), "Vino & Co", "food", 35, model.EmotionUnset))

	require.NoError(t, store.SaveTransactions(ctx, txns))
}

func TestRunAutoLabelsAndPrompts(t *testing.T) {
	store := testutil.SetupTestDB(t)
	seedHistory(t, store)

	prompter := &MockPrompter{
		Answers: []MockAnswer{{Emotion: model.EmotionSad}},
	}
	labeler, err := NewLabeler(store, WithPrompter(prompter))
	require.NoError(t, err)

	stats, err := labeler.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, stats.Total)
	assert.Equal(t, 1, stats.AutoLabeled)
	assert.Equal(t, 1, stats.UserConfirmed)
	assert.Zero(t, stats.Skipped)

	clear, err := store.GetTransactionByID(context.Background(), "txn-clear")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionStressed, clear.Emotion)

	conflicted, err := store.GetTransactionByID(context.Background(), "txn-conflicted")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionSad, conflicted.Emotion)

	require.Len(t, prompter.Calls, 1)
	assert.Equal(t, "txn-conflicted", prompter.Calls[0].Transaction.ID)
	assert.Less(t, prompter.Calls[0].Confidence, 0.6)
}

func TestRunWithoutPrompterSkipsUncertain(t *testing.T) {
	store := testutil.SetupTestDB(t)
	seedHistory(t, store)

	labeler, err := NewLabeler(store)
	require.NoError(t, err)

	stats, err := labeler.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, stats.AutoLabeled)
	assert.Equal(t, 1, stats.Skipped)
	assert.Zero(t, stats.UserConfirmed)

	conflicted, err := store.GetTransactionByID(context.Background(), "txn-conflicted")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionUnset, conflicted.Emotion)
}

func TestRunPrompterSkip(t *testing.T) {
	store := testutil.SetupTestDB(t)
	seedHistory(t, store)

	prompter := &MockPrompter{Answers: []MockAnswer{{Skip: true}}}
	labeler, err := NewLabeler(store, WithPrompter(prompter))
	require.NoError(t, err)

	stats, err := labeler.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Skipped)
}

func TestRunLeavesConfirmedNeutralAlone(t *testing.T) {
	store := testutil.SetupTestDB(t)
	ctx := context.Background()

	// Saved with a label, so it lands as user-confirmed neutral.
	neutral := testutil.Transaction("txn-neutral", time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC),
		"City Transit", "transportation", 3, model.EmotionNeutral)
	require.NoError(t, store.SaveTransactions(ctx, []model.Transaction{neutral}))

	labeler, err := NewLabeler(store, WithPrompter(&MockPrompter{}))
	require.NoError(t, err)

	stats, err := labeler.Run(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.Total)

	got, err := store.GetTransactionByID(ctx, "txn-neutral")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionNeutral, got.Emotion)
}

func TestRunIsIdempotent(t *testing.T) {
	store := testutil.SetupTestDB(t)
	seedHistory(t, store)

	labeler, err := NewLabeler(store)
	require.NoError(t, err)

	first, err := labeler.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, first.AutoLabeled)

	// The auto-labeled transaction now carries an emotional label, so a
	// second pass has nothing new to commit for it.
	second, err := labeler.Run(context.Background())
	require.NoError(t, err)
	assert.Zero(t, second.AutoLabeled)
	assert.Equal(t, 1, second.Skipped)

	clear, err := store.GetTransactionByID(context.Background(), "txn-clear")
	require.NoError(t, err)
	assert.Equal(t, model.EmotionStressed, clear.Emotion)
}

func TestNewLabelerValidation(t *testing.T) {
	_, err := NewLabeler(nil)
	assert.Error(t, err)

	store := testutil.SetupTestDB(t)
	_, err = NewLabeler(store, WithThreshold(1.5))
	assert.Error(t, err)
}
