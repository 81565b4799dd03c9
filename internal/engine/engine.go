// Package engine orchestrates the labeling workflow: it learns patterns
// from the labeled history, infers labels for everything else, commits
// confident predictions automatically, and routes uncertain ones through
// an interactive prompter.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/inference"
	"github.com/mintality/mintality/internal/model"
	"github.com/mintality/mintality/internal/service"
)

// Prompter collects the user's decision on an uncertain prediction.
type Prompter interface {
	// ConfirmLabel returns the chosen emotion, or skipped=true when the
	// user declines to label the transaction now.
	ConfirmLabel(ctx context.Context, label model.InferredLabel) (model.Emotion, bool, error)
}

// Labeler runs the labeling workflow against storage.
type Labeler struct {
	storage   service.Storage
	prompter  Prompter
	threshold float64
	logger    *slog.Logger
}

// Option configures a Labeler.
type Option func(*Labeler)

// WithThreshold overrides the auto-commit confidence threshold.
func WithThreshold(threshold float64) Option {
	return func(l *Labeler) {
		l.threshold = threshold
	}
}

// WithPrompter enables interactive confirmation of uncertain predictions.
// Without one, uncertain predictions are skipped.
func WithPrompter(p Prompter) Option {
	return func(l *Labeler) {
		l.prompter = p
	}
}

// NewLabeler creates a labeling workflow.
func NewLabeler(storage service.Storage, opts ...Option) (*Labeler, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage cannot be nil")
	}

	l := &Labeler{
		storage:   storage,
		threshold: inference.ConfirmationThreshold,
		logger:    slog.Default().With("component", "engine"),
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.threshold <= 0 || l.threshold > 1 {
		return nil, fmt.Errorf("threshold must be in (0, 1], got %v", l.threshold)
	}
	return l, nil
}

// Run executes one labeling pass and reports what happened.
func (l *Labeler) Run(ctx context.Context) (*service.LabelingStats, error) {
	start := time.Now()
	stats := &service.LabelingStats{}

	snapshot, err := l.storage.GetTransactions(ctx, service.TransactionFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to load transactions: %w", err)
	}
	if len(snapshot) == 0 {
		return nil, common.ErrNoTransactions
	}

	eligible, err := l.eligibleIDs(ctx)
	if err != nil {
		return nil, err
	}

	predictions := inference.Predict(snapshot)
	l.logger.Info("Inferred labels",
		"snapshot", len(snapshot),
		"predictions", len(predictions),
		"eligible", len(eligible))

	for _, prediction := range predictions {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		if !eligible[prediction.Transaction.ID] {
			continue
		}
		stats.Total++

		if prediction.Confidence >= l.threshold {
			if err := l.commit(ctx, prediction.Transaction.ID, prediction.Emotion, model.StatusLabeledByPattern, stats); err != nil {
				return stats, err
			}
			continue
		}

		if l.prompter == nil {
			stats.Skipped++
			continue
		}

		emotion, skipped, err := l.prompter.ConfirmLabel(ctx, prediction)
		if err != nil {
			return stats, fmt.Errorf("prompt failed: %w", err)
		}
		if skipped {
			stats.Skipped++
			continue
		}
		if err := l.commit(ctx, prediction.Transaction.ID, emotion, model.StatusUserConfirmed, stats); err != nil {
			return stats, err
		}
	}

	stats.Duration = time.Since(start)
	l.logger.Info("Labeling run complete",
		"total", stats.Total,
		"auto_labeled", stats.AutoLabeled,
		"user_confirmed", stats.UserConfirmed,
		"skipped", stats.Skipped,
		"duration", stats.Duration)

	return stats, nil
}

// eligibleIDs returns the IDs storage still allows labels for. The
// inferencer also re-predicts neutral-tagged transactions the user has
// already confirmed; those must not be written back.
func (l *Labeler) eligibleIDs(ctx context.Context) (map[string]bool, error) {
	toLabel, err := l.storage.GetTransactionsToLabel(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlabeled transactions: %w", err)
	}
	eligible := make(map[string]bool, len(toLabel))
	for _, txn := range toLabel {
		eligible[txn.ID] = true
	}
	return eligible, nil
}

func (l *Labeler) commit(ctx context.Context, id string, emotion model.Emotion, status model.LabelStatus, stats *service.LabelingStats) error {
	err := l.storage.UpdateTransactionEmotion(ctx, id, emotion, status)
	if errors.Is(err, common.ErrAlreadyLabeled) {
		l.logger.Debug("Label already confirmed, skipping", "transaction_id", id)
		stats.Skipped++
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to save label for %s: %w", id, err)
	}

	switch status {
	case model.StatusUserConfirmed:
		stats.UserConfirmed++
	default:
		stats.AutoLabeled++
	}
	return nil
}
