package cli

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mintality/mintality/internal/model"
)

// LabelPrompter asks the user to confirm or correct inferred emotion
// labels on the terminal.
type LabelPrompter struct {
	reader *Reader
	out    io.Writer
}

// NewLabelPrompter creates a prompter reading from in and writing to out.
func NewLabelPrompter(in io.Reader, out io.Writer) *LabelPrompter {
	return &LabelPrompter{
		reader: NewReader(in),
		out:    out,
	}
}

// ConfirmLabel shows one suggestion and collects the user's decision.
// Empty input accepts the suggestion, "s" skips the transaction, and a
// label name or list number corrects it. Returns the chosen emotion and
// whether the transaction was skipped.
func (p *LabelPrompter) ConfirmLabel(ctx context.Context, label model.InferredLabel) (model.Emotion, bool, error) {
	txn := label.Transaction

	fmt.Fprintln(p.out)
	fmt.Fprintln(p.out, SubtleStyle.Render(fmt.Sprintf("%s  %s  $%.2f  (%s, %s %s)",
		txn.Date.Format("2006-01-02"),
		txn.Merchant,
		txn.Amount,
		txn.Category,
		txn.DayOfWeek,
		txn.TimeOfDay)))
	fmt.Fprintln(p.out, FormatInfo(fmt.Sprintf("Suggested: %s %s (%.0f%% confident)",
		EmotionIcon(label.Emotion), label.Emotion, label.Confidence*100)))

	for i, emotion := range model.AllEmotions {
		fmt.Fprintf(p.out, "  %d. %s %s\n", i+1, EmotionIcon(emotion), emotion)
	}

	for {
		fmt.Fprint(p.out, FormatPrompt("Enter accepts, s skips, or pick a label"))

		input, err := p.reader.ReadLine(ctx)
		if err != nil {
			return model.EmotionUnset, false, err
		}

		input = strings.ToLower(strings.TrimSpace(input))
		switch input {
		case "":
			return label.Emotion, false, nil
		case "s", "skip":
			return model.EmotionUnset, true, nil
		}

		if index, err := strconv.Atoi(input); err == nil {
			if index >= 1 && index <= len(model.AllEmotions) {
				return model.AllEmotions[index-1], false, nil
			}
			fmt.Fprintln(p.out, FormatWarning(fmt.Sprintf("Pick a number between 1 and %d", len(model.AllEmotions))))
			continue
		}

		emotion := model.Emotion(input)
		if emotion.Valid() && emotion.Labeled() {
			return emotion, false, nil
		}
		fmt.Fprintln(p.out, FormatWarning(fmt.Sprintf("Unknown label %q", input)))
	}
}
