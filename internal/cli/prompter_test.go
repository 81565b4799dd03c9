package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintality/mintality/internal/model"
)

func testLabel() model.InferredLabel {
	txn := model.Transaction{
		ID:       "txn-1",
		Date:     time.Date(2025, 5, 1, 19, 0, 0, 0, time.UTC),
		Merchant: "Corner Cafe",
		Category: "food",
		Amount:   12.50,
	}
	txn.SetTimeContext()
	return model.InferredLabel{
		Emotion:     model.EmotionStressed,
		Transaction: txn,
		Confidence:  0.55,
	}
}

func TestConfirmLabelAccept(t *testing.T) {
	var out bytes.Buffer
	p := NewLabelPrompter(strings.NewReader("\n"), &out)

	emotion, skipped, err := p.ConfirmLabel(context.Background(), testLabel())
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, model.EmotionStressed, emotion)
	assert.Contains(t, out.String(), "Corner Cafe")
}

func TestConfirmLabelSkip(t *testing.T) {
	var out bytes.Buffer
	p := NewLabelPrompter(strings.NewReader("s\n"), &out)

	emotion, skipped, err := p.ConfirmLabel(context.Background(), testLabel())
	require.NoError(t, err)
	assert.True(t, skipped)
	assert.Equal(t, model.EmotionUnset, emotion)
}

func TestConfirmLabelCorrectByName(t *testing.T) {
	var out bytes.Buffer
	p := NewLabelPrompter(strings.NewReader("happy\n"), &out)

	emotion, skipped, err := p.ConfirmLabel(context.Background(), testLabel())
	require.NoError(t, err)
	assert.False(t, skipped)
	assert.Equal(t, model.EmotionHappy, emotion)
}

func TestConfirmLabelCorrectByNumber(t *testing.T) {
	var out bytes.Buffer
	p := NewLabelPrompter(strings.NewReader("3\n"), &out)

	emotion, _, err := p.ConfirmLabel(context.Background(), testLabel())
	require.NoError(t, err)
	assert.Equal(t, model.AllEmotions[2], emotion)
}

func TestConfirmLabelRetriesOnBadInput(t *testing.T) {
	var out bytes.Buffer
	p := NewLabelPrompter(strings.NewReader("furious\n99\nanxious\n"), &out)

	emotion, _, err := p.ConfirmLabel(context.Background(), testLabel())
	require.NoError(t, err)
	assert.Equal(t, model.EmotionAnxious, emotion)
	assert.Contains(t, out.String(), "Unknown label")
	assert.Contains(t, out.String(), "Pick a number")
}

func TestConfirmLabelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	p := NewLabelPrompter(blockingReader{}, &out)

	_, _, err := p.ConfirmLabel(ctx, testLabel())
	assert.ErrorIs(t, err, ErrInputCancelled)
}

// blockingReader never returns, standing in for a user who walks away.
type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) {
	select {}
}

func TestReadLineTrimsAndHandlesEOF(t *testing.T) {
	r := NewReader(strings.NewReader("  hello  \nworld"))

	line, err := r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "hello", line)

	// Final line without a trailing newline still comes through.
	line, err = r.ReadLine(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "world", line)
}
