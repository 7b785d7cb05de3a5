package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/settlements-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type worklogRepositoryImpl struct {
	db *database.DB
}

func NewWorkLogRepository(db *database.DB) worklog.WorkLogRepository {
	return &worklogRepositoryImpl{db: db}
}

func (r *worklogRepositoryImpl) GetAll(ctx context.Context) ([]worklog.WorkLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, created_at
		FROM worklogs
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list worklogs: %w", err)
	}
	defer rows.Close()

	return scanWorkLogs(rows)
}

func (r *worklogRepositoryImpl) GetByUserID(ctx context.Context, userID string) ([]worklog.WorkLog, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, created_at
		FROM worklogs
		WHERE user_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list worklogs for user: %w", err)
	}
	defer rows.Close()

	return scanWorkLogs(rows)
}

// SumSegmentMinutes returns the total minutes across the worklog's time
// segments. An unknown worklog id yields zero, not an error.
func (r *worklogRepositoryImpl) SumSegmentMinutes(ctx context.Context, worklogID string) (int64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(minutes), 0)
		FROM time_segments
		WHERE worklog_id = $1
	`

	var minutes int64
	if err := q.QueryRow(ctx, query, worklogID).Scan(&minutes); err != nil {
		return 0, fmt.Errorf("failed to sum segment minutes: %w", err)
	}

	return minutes, nil
}

// SumAdjustments returns the signed sum of the worklog's adjustments; zero
// when there are none.
func (r *worklogRepositoryImpl) SumAdjustments(ctx context.Context, worklogID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM adjustments
		WHERE worklog_id = $1
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, worklogID).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum adjustments: %w", err)
	}

	return total, nil
}

func scanWorkLogs(rows pgx.Rows) ([]worklog.WorkLog, error) {
	var worklogs []worklog.WorkLog
	for rows.Next() {
		var w worklog.WorkLog
		if err := rows.Scan(&w.ID, &w.UserID, &w.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan worklog: %w", err)
		}
		worklogs = append(worklogs, w)
	}
	return worklogs, rows.Err()
}
