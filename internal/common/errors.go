// Package common provides shared utilities and types used across the application.
package common

import (
	"context"
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Feed errors.
	ErrFeedConnection = errors.New("feed connection failed")
	ErrFeedRateLimit  = errors.New("feed rate limit exceeded")

	// Labeling errors.
	ErrNoTransactions = errors.New("no transactions to label")
	ErrAlreadyLabeled = errors.New("transaction label already confirmed")

	// Advice errors.
	ErrAdviceUnavailable = errors.New("advice service unavailable")

	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Data model errors.
	ErrInvalidTransaction = errors.New("invalid transaction")
)

// InvalidTransactionError describes a transaction that violates the data
// model invariants. Malformed rows fail fast instead of silently skewing
// statistics downstream.
type InvalidTransactionError struct {
	TransactionID string
	Field         string
	Reason        string
}

func (e *InvalidTransactionError) Error() string {
	if e.TransactionID != "" {
		return fmt.Sprintf("invalid transaction %s: %s: %s", e.TransactionID, e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid transaction: %s: %s", e.Field, e.Reason)
}

func (e *InvalidTransactionError) Unwrap() error {
	return ErrInvalidTransaction
}

// NewInvalidTransactionError creates an InvalidTransactionError for a field.
func NewInvalidTransactionError(txnID, field, reason string) error {
	return &InvalidTransactionError{
		TransactionID: txnID,
		Field:         field,
		Reason:        reason,
	}
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// IsRetryable determines if an error should trigger a retry.
func IsRetryable(err error) bool {
	if errors.Is(err, ErrRateLimit) ||
		errors.Is(err, ErrFeedRateLimit) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(err, context.Canceled) {
		return true
	}

	var retryableErr *RetryableError
	if errors.As(err, &retryableErr) {
		return retryableErr.Retryable
	}

	return false
}
