package engine

import (
	"context"

	"github.com/mintality/mintality/internal/model"
)

// MockPrompter replays scripted answers for tests.
type MockPrompter struct {
	// Answers are consumed in order. An unset Emotion with Skip=false
	// accepts the suggestion.
	Answers []MockAnswer
	Calls   []model.InferredLabel
}

// MockAnswer is one scripted prompt response.
type MockAnswer struct {
	Emotion model.Emotion
	Skip    bool
	Err     error
}

// ConfirmLabel pops the next scripted answer.
func (m *MockPrompter) ConfirmLabel(_ context.Context, label model.InferredLabel) (model.Emotion, bool, error) {
	m.Calls = append(m.Calls, label)

	if len(m.Answers) == 0 {
		return label.Emotion, false, nil
	}
	answer := m.Answers[0]
	m.Answers = m.Answers[1:]

	if answer.Err != nil {
		return model.EmotionUnset, false, answer.Err
	}
	if answer.Skip {
		return model.EmotionUnset, true, nil
	}
	if answer.Emotion == model.EmotionUnset {
		return label.Emotion, false, nil
	}
	return answer.Emotion, false, nil
}
