package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/model"
	"github.com/mintality/mintality/internal/service"
)

// SaveTransactions stores transactions, skipping any whose natural key is
// already present.
func (s *SQLiteStorage) SaveTransactions(ctx context.Context, transactions []model.Transaction) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	if err := validateTransactions(transactions); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := s.saveTransactionsTx(ctx, tx, transactions); err != nil {
		return err
	}

	return tx.Commit()
}

func (s *SQLiteStorage) saveTransactionsTx(ctx context.Context, tx *sql.Tx, transactions []model.Transaction) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR IGNORE INTO transactions
			(id, date, amount, merchant, category, time_of_day, day_of_week, emotion, label_status)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, txn := range transactions {
		status := model.StatusUnlabeled
		if txn.Emotion.Labeled() {
			status = model.StatusUserConfirmed
		}
		_, err := stmt.ExecContext(ctx,
			txn.ID,
			txn.Date,
			txn.Amount,
			txn.Merchant,
			txn.Category,
			string(txn.TimeOfDay),
			txn.DayOfWeek,
			string(txn.Emotion),
			string(status),
		)
		if err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.ID, err)
		}
	}

	return nil
}

const transactionColumns = `id, date, amount, merchant, category, time_of_day, day_of_week, emotion`

// GetTransactions returns transactions matching the filter, oldest first.
func (s *SQLiteStorage) GetTransactions(ctx context.Context, filter service.TransactionFilter) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getTransactionsTx(ctx, s.db, filter)
}

func (s *SQLiteStorage) getTransactionsTx(ctx context.Context, q querier, filter service.TransactionFilter) ([]model.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions`
	var conditions []string
	var args []any

	if filter.StartDate != nil {
		conditions = append(conditions, "date >= ?")
		args = append(args, *filter.StartDate)
	}
	if filter.EndDate != nil {
		conditions = append(conditions, "date <= ?")
		args = append(args, *filter.EndDate)
	}
	if filter.Emotion != nil {
		conditions = append(conditions, "emotion = ?")
		args = append(args, string(*filter.Emotion))
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY date ASC, id ASC"
	if filter.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filter.Limit)
		if filter.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, filter.Offset)
		}
	}

	rows, err := q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// GetTransactionByID fetches a single transaction by natural key.
func (s *SQLiteStorage) GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getTransactionByIDTx(ctx, s.db, id)
}

func (s *SQLiteStorage) getTransactionByIDTx(ctx context.Context, q querier, id string) (*model.Transaction, error) {
	if err := validateString(id, "id"); err != nil {
		return nil, err
	}

	row := q.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE id = ?`, id)

	txn, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// GetTransactionsToLabel returns transactions eligible for emotion
// inference: unlabeled ones, plus neutral-tagged ones the user has not
// explicitly confirmed.
func (s *SQLiteStorage) GetTransactionsToLabel(ctx context.Context) ([]model.Transaction, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getTransactionsToLabelTx(ctx, s.db)
}

func (s *SQLiteStorage) getTransactionsToLabelTx(ctx context.Context, q querier) ([]model.Transaction, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT `+transactionColumns+`
		FROM transactions
		WHERE emotion = ''
		   OR (emotion = ? AND label_status != ?)
		ORDER BY date ASC, id ASC
	`, string(model.EmotionNeutral), string(model.StatusUserConfirmed))
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions to label: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanTransactions(rows)
}

// UpdateTransactionEmotion commits a label. Pattern labels never overwrite
// a user-confirmed label; each transaction's label is overwritten by at
// most one path per session.
func (s *SQLiteStorage) UpdateTransactionEmotion(ctx context.Context, id string, emotion model.Emotion, status model.LabelStatus) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.updateTransactionEmotionTx(ctx, s.db, id, emotion, status)
}

func (s *SQLiteStorage) updateTransactionEmotionTx(ctx context.Context, q querier, id string, emotion model.Emotion, status model.LabelStatus) error {
	if err := validateString(id, "id"); err != nil {
		return err
	}
	if !emotion.Valid() || emotion == model.EmotionUnset {
		return common.NewInvalidTransactionError(id, "emotion", fmt.Sprintf("unknown label %q", emotion))
	}
	if err := validateLabelStatus(status); err != nil {
		return err
	}

	var result sql.Result
	var err error
	if status == model.StatusUserConfirmed {
		result, err = q.ExecContext(ctx,
			`UPDATE transactions SET emotion = ?, label_status = ? WHERE id = ?`,
			string(emotion), string(status), id)
	} else {
		result, err = q.ExecContext(ctx,
			`UPDATE transactions SET emotion = ?, label_status = ? WHERE id = ? AND label_status != ?`,
			string(emotion), string(status), id, string(model.StatusUserConfirmed))
	}
	if err != nil {
		return fmt.Errorf("failed to update emotion for %s: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		exists, existsErr := s.transactionExists(ctx, q, id)
		if existsErr != nil {
			return existsErr
		}
		if !exists {
			return fmt.Errorf("transaction %s: %w", id, common.ErrNotFound)
		}
		return fmt.Errorf("transaction %s: %w", id, common.ErrAlreadyLabeled)
	}

	return nil
}

func (s *SQLiteStorage) transactionExists(ctx context.Context, q querier, id string) (bool, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions WHERE id = ?`, id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check transaction existence: %w", err)
	}
	return count > 0, nil
}

// CountTransactions returns the total number of stored transactions.
func (s *SQLiteStorage) CountTransactions(ctx context.Context) (int, error) {
	if err := validateContext(ctx); err != nil {
		return 0, err
	}
	return s.countTransactionsTx(ctx, s.db)
}

func (s *SQLiteStorage) countTransactionsTx(ctx context.Context, q querier) (int, error) {
	var count int
	err := q.QueryRowContext(ctx, `SELECT COUNT(*) FROM transactions`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count transactions: %w", err)
	}
	return count, nil
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*model.Transaction, error) {
	var txn model.Transaction
	var date any
	var timeOfDay, emotion string

	err := row.Scan(&txn.ID, &date, &txn.Amount, &txn.Merchant, &txn.Category,
		&timeOfDay, &txn.DayOfWeek, &emotion)
	if err != nil {
		return nil, err
	}

	txn.Date, err = parseTime(date)
	if err != nil {
		return nil, fmt.Errorf("failed to parse transaction date: %w", err)
	}
	txn.TimeOfDay = model.TimeOfDay(timeOfDay)
	txn.Emotion = model.Emotion(emotion)

	return &txn, nil
}

func scanTransactions(rows *sql.Rows) ([]model.Transaction, error) {
	var transactions []model.Transaction
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, *txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}
	return transactions, nil
}
