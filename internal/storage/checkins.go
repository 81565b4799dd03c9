package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/mintality/mintality/internal/common"
	"github.com/mintality/mintality/internal/model"
)

// SaveCheckIn stores one daily check-in. A second check-in for the same
// calendar day is a duplicate.
func (s *SQLiteStorage) SaveCheckIn(ctx context.Context, checkIn *model.CheckIn) error {
	if err := validateContext(ctx); err != nil {
		return err
	}
	return s.saveCheckInTx(ctx, s.db, checkIn)
}

func (s *SQLiteStorage) saveCheckInTx(ctx context.Context, q querier, checkIn *model.CheckIn) error {
	if err := validateCheckIn(checkIn); err != nil {
		return err
	}

	_, err := q.ExecContext(ctx, `
		INSERT INTO checkins (id, date, mood, energy, stress, financial_goal, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		checkIn.ID,
		checkIn.Date.Format("2006-01-02"),
		checkIn.Mood,
		checkIn.Energy,
		checkIn.Stress,
		checkIn.FinancialGoal,
		checkIn.Notes,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("check-in for %s: %w", checkIn.Date.Format("2006-01-02"), common.ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to save check-in: %w", err)
	}

	return nil
}

const checkInColumns = `id, date, mood, energy, stress, financial_goal, notes`

// GetCheckIns returns all check-ins, newest first.
func (s *SQLiteStorage) GetCheckIns(ctx context.Context) ([]model.CheckIn, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getCheckInsTx(ctx, s.db)
}

func (s *SQLiteStorage) getCheckInsTx(ctx context.Context, q querier) ([]model.CheckIn, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+checkInColumns+` FROM checkins ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query check-ins: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var checkIns []model.CheckIn
	for rows.Next() {
		checkIn, scanErr := scanCheckIn(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan check-in: %w", scanErr)
		}
		checkIns = append(checkIns, *checkIn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate check-ins: %w", err)
	}

	return checkIns, nil
}

// GetLatestCheckIn returns the most recent check-in, or ErrNotFound when
// none exist.
func (s *SQLiteStorage) GetLatestCheckIn(ctx context.Context) (*model.CheckIn, error) {
	if err := validateContext(ctx); err != nil {
		return nil, err
	}
	return s.getLatestCheckInTx(ctx, s.db)
}

func (s *SQLiteStorage) getLatestCheckInTx(ctx context.Context, q querier) (*model.CheckIn, error) {
	row := q.QueryRowContext(ctx,
		`SELECT `+checkInColumns+` FROM checkins ORDER BY date DESC LIMIT 1`)

	checkIn, err := scanCheckIn(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("latest check-in: %w", common.ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return checkIn, nil
}

func scanCheckIn(row rowScanner) (*model.CheckIn, error) {
	var checkIn model.CheckIn
	var date any

	err := row.Scan(&checkIn.ID, &date, &checkIn.Mood, &checkIn.Energy,
		&checkIn.Stress, &checkIn.FinancialGoal, &checkIn.Notes)
	if err != nil {
		return nil, err
	}

	switch value := date.(type) {
	case string:
		checkIn.Date, err = parseDate(value)
	default:
		checkIn.Date, err = parseTime(date)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse check-in date: %w", err)
	}

	return &checkIn, nil
}

// parseDate handles the bare calendar-date format check-ins are stored with.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
