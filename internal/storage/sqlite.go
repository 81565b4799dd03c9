// Package storage provides the SQLite persistence layer: the authoritative
// transaction store the analysis packages take snapshots from.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mintality/mintality/internal/model"
	"github.com/mintality/mintality/internal/service"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteStorage implements the service.Storage interface using SQLite.
type SQLiteStorage struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStorage creates a new SQLite storage instance.
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	if err := validateString(dbPath, "dbPath"); err != nil {
		return nil, err
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStorage{
		db:     db,
		dbPath: dbPath,
	}, nil
}

// Close closes the database connection.
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new database transaction.
func (s *SQLiteStorage) BeginTx(ctx context.Context) (service.Tx, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}

	return &sqliteTx{
		tx:      tx,
		storage: s,
	}, nil
}

// sqliteTx wraps sql.Tx to implement service.Tx.
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// Transaction methods delegate to the main storage with the transaction.
func (t *sqliteTx) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}
	return t.storage.saveTransactionsTx(ctx, t.tx, transactions)
}

func (t *sqliteTx) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getTransactionsTx(ctx, t.tx, filter)
}

func (t *sqliteTx) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getTransactionByIDTx(ctx, t.tx, id)
}

func (t *sqliteTx) GetTransactionsToLabel(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getTransactionsToLabelTx(ctx, t.tx)
}

func (t *sqliteTx) UpdateTransactionEmotion(ctx context.Context, id string, emotion model.Emotion, status model.LabelStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return t.storage.updateTransactionEmotionTx(ctx, t.tx, id, emotion, status)
}

func (t *sqliteTx) CountTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return t.storage.countTransactionsTx(ctx, t.tx)
}

func (t *sqliteTx) SaveCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return t.storage.saveCheckInTx(ctx, t.tx, checkIn)
}

func (t *sqliteTx) GetCheckIns(ctx context.Context) ([]model.CheckIn, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getCheckInsTx(ctx, t.tx)
}

func (t *sqliteTx) GetLatestCheckIn(ctx context.Context) (*model.CheckIn, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return t.storage.getLatestCheckInTx(ctx, t.tx)
}

func (t *sqliteTx) Migrate(_ context.Context) error {
	return fmt.Errorf("migrations cannot run inside a transaction")
}

func (t *sqliteTx) BeginTx(_ context.Context) (service.Tx, error) {
	return nil, fmt.Errorf("nested transactions are not supported")
}

func (t *sqliteTx) Close() error {
	return t.Rollback()
}

// querier abstracts *sql.DB and *sql.Tx for shared query code.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// parseTime handles both time.Time and string values coming back from the
// driver depending on column affinity.
func parseTime(v any) (time.Time, error) {
	switch value := v.(type) {
	case time.Time:
		return value, nil
	case string:
		t, err := time.Parse(time.RFC3339, value)
		if err == nil {
			return t, nil
		}
		return time.Parse("2006-01-02 15:04:05", value)
	default:
		return time.Time{}, fmt.Errorf("unsupported time value %T", v)
	}
}
