package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/model"
)

// Validation errors.
var (
	ErrNilContext    = errors.New("context cannot be nil")
	ErrEmptyString   = errors.New("string parameter cannot be empty")
	ErrNilParameter  = errors.New("parameter cannot be nil")
	ErrEmptySlice    = errors.New("slice cannot be empty")
	ErrInvalidStatus = errors.New("invalid label status")
)

// validateContext ensures the context is not nil.
func validateContext(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	return nil
}

// validateString ensures a string parameter is not empty.
func validateString(s string, paramName string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("%w: %s", ErrEmptyString, paramName)
	}
	return nil
}

// validateTransactions validates a slice of transactions.
func validateTransactions(transactions []model.Transaction) error {
	if transactions == nil {
		return fmt.Errorf("%w: transactions", ErrNilParameter)
	}
	if len(transactions) == 0 {
		return fmt.Errorf("%w: transactions", ErrEmptySlice)
	}

	for i, txn := range transactions {
		if err := validateTransaction(&txn); err != nil {
			return fmt.Errorf("transaction at index %d: %w", i, err)
		}
	}
	return nil
}

// validateTransaction enforces the data-model invariants. Malformed rows
// are rejected here instead of silently skewing statistics downstream.
func validateTransaction(txn *model.Transaction) error {
	if txn == nil {
		return fmt.Errorf("%w: transaction", ErrNilParameter)
	}
	if txn.ID == "" {
		return common.NewInvalidTransactionError("", "id", "missing")
	}
	if txn.Date.IsZero() {
		return common.NewInvalidTransactionError(txn.ID, "date", "missing")
	}
	if txn.Amount <= 0 {
		return common.NewInvalidTransactionError(txn.ID, "amount", "must be positive (expenses only)")
	}
	if strings.TrimSpace(txn.Merchant) == "" {
		return common.NewInvalidTransactionError(txn.ID, "merchant", "missing")
	}
	if strings.TrimSpace(txn.Category) == "" {
		return common.NewInvalidTransactionError(txn.ID, "category", "missing")
	}
	if !txn.TimeOfDay.Valid() {
		return common.NewInvalidTransactionError(txn.ID, "time_of_day", fmt.Sprintf("unknown bucket %q", txn.TimeOfDay))
	}
	if !txn.Emotion.Valid() {
		return common.NewInvalidTransactionError(txn.ID, "emotion", fmt.Sprintf("unknown label %q", txn.Emotion))
	}
	return nil
}

// validateLabelStatus ensures the status is one of the known values.
func validateLabelStatus(status model.LabelStatus) error {
	switch status {
	case model.StatusUnlabeled, model.StatusLabeledByPattern, model.StatusUserConfirmed:
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrInvalidStatus, status)
	}
}

// validateCheckIn validates a daily check-in.
func validateCheckIn(checkIn *model.CheckIn) error {
	if checkIn == nil {
		return fmt.Errorf("%w: checkIn", ErrNilParameter)
	}
	if checkIn.ID == "" {
		return fmt.Errorf("%w: checkIn.ID", ErrEmptyString)
	}
	if checkIn.Date.IsZero() {
		return fmt.Errorf("%w: checkIn.Date", ErrNilParameter)
	}
	if strings.TrimSpace(checkIn.Mood) == "" {
		return fmt.Errorf("%w: checkIn.Mood", ErrEmptyString)
	}
	if strings.TrimSpace(checkIn.Energy) == "" {
		return fmt.Errorf("%w: checkIn.Energy", ErrEmptyString)
	}
	if strings.TrimSpace(checkIn.Stress) == "" {
		return fmt.Errorf("%w: checkIn.Stress", ErrEmptyString)
	}
	return nil
}
