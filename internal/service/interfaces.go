// Package service defines the interfaces for all application services.
package service

import (
	"context"
	"time"

	"github.com/mintality/mintality/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
type TransactionFilter struct {
	StartDate *time.Time
	EndDate   *time.Time
	Emotion   *model.Emotion
	Limit     int
	Offset    int
}

// Storage defines the contract for the persistence layer. It is the
// authoritative transaction store; the analysis packages stay pure and
// operate on snapshots fetched through it.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	GetTransactionsToLabel(ctx context.Context) ([]model.Transaction, error)
	UpdateTransactionEmotion(ctx context.Context, id string, emotion model.Emotion, status model.LabelStatus) error
	CountTransactions(ctx context.Context) (int, error)

	// Check-in operations
	SaveCheckIn(ctx context.Context, checkIn *model.CheckIn) error
	GetCheckIns(ctx context.Context) ([]model.CheckIn, error)
	GetLatestCheckIn(ctx context.Context) (*model.CheckIn, error)

	// Database management
	Migrate(ctx context.Context) error
	BeginTx(ctx context.Context) (Tx, error)
	Close() error
}

// Tx represents a database transaction.
type Tx interface {
	Commit() error
	Rollback() error
	// Include all Storage methods for use within the transaction
	Storage
}

// TransactionSource supplies expense transactions from a feed. Variants
// (live bank feed, OFX files, synthetic demo data) are selected by
// configuration rather than branching at call sites.
type TransactionSource interface {
	Fetch(ctx context.Context, startDate, endDate time.Time) ([]model.Transaction, error)
}

// LabelingStats shows the results of one labeling run.
type LabelingStats struct {
	Total         int
	AutoLabeled   int
	UserConfirmed int
	Skipped       int
	Duration      time.Duration
}

// RetryOptions configures retry behavior for operations.
type RetryOptions struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	Multiplier   float64
}
