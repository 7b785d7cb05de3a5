package postgresql

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/remittance"
	"github.com/cmlabs-hris/settlements-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type remittanceRepositoryImpl struct {
	db *database.DB
}

func NewRemittanceRepository(db *database.DB) remittance.RemittanceRepository {
	return &remittanceRepositoryImpl{db: db}
}

// Create inserts the remittance header. Inside a transaction the RETURNING
// clause acts as the flush: the generated id is visible to item inserts before
// anything commits.
func (r *remittanceRepositoryImpl) Create(ctx context.Context, rem remittance.Remittance) (remittance.Remittance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO remittances (user_id, period_start, period_end, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, period_start, period_end, status, created_at
	`

	var created remittance.Remittance
	err := q.QueryRow(ctx, query,
		rem.UserID, rem.PeriodStart, rem.PeriodEnd, rem.Status,
	).Scan(
		&created.ID, &created.UserID, &created.PeriodStart, &created.PeriodEnd,
		&created.Status, &created.CreatedAt,
	)
	if err != nil {
		return remittance.Remittance{}, fmt.Errorf("failed to create remittance: %w", err)
	}

	return created, nil
}

func (r *remittanceRepositoryImpl) CreateItem(ctx context.Context, item remittance.RemittanceItem) (remittance.RemittanceItem, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO remittance_items (remittance_id, worklog_id, amount)
		VALUES ($1, $2, $3)
		RETURNING id, remittance_id, worklog_id, amount, created_at
	`

	var created remittance.RemittanceItem
	err := q.QueryRow(ctx, query,
		item.RemittanceID, item.WorkLogID, item.Amount,
	).Scan(
		&created.ID, &created.RemittanceID, &created.WorkLogID,
		&created.Amount, &created.CreatedAt,
	)
	if err != nil {
		return remittance.RemittanceItem{}, fmt.Errorf("failed to create remittance item: %w", err)
	}

	return created, nil
}

func (r *remittanceRepositoryImpl) GetByID(ctx context.Context, id string) (remittance.Remittance, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, period_start, period_end, status, created_at
		FROM remittances
		WHERE id = $1
	`

	var rem remittance.Remittance
	err := q.QueryRow(ctx, query, id).Scan(
		&rem.ID, &rem.UserID, &rem.PeriodStart, &rem.PeriodEnd, &rem.Status, &rem.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return remittance.Remittance{}, remittance.ErrRemittanceNotFound
		}
		return remittance.Remittance{}, fmt.Errorf("failed to get remittance: %w", err)
	}

	itemsQuery := `
		SELECT id, remittance_id, worklog_id, amount, created_at
		FROM remittance_items
		WHERE remittance_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, itemsQuery, id)
	if err != nil {
		return remittance.Remittance{}, fmt.Errorf("failed to list remittance items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var item remittance.RemittanceItem
		if err := rows.Scan(
			&item.ID, &item.RemittanceID, &item.WorkLogID, &item.Amount, &item.CreatedAt,
		); err != nil {
			return remittance.Remittance{}, fmt.Errorf("failed to scan remittance item: %w", err)
		}
		rem.Items = append(rem.Items, item)
	}

	return rem, rows.Err()
}

// SumRemittedByWorkLog counts only items under SUCCESS remittances; FAILED and
// CANCELLED batches never contribute.
func (r *remittanceRepositoryImpl) SumRemittedByWorkLog(ctx context.Context, worklogID string) (decimal.Decimal, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(ri.amount), 0)
		FROM remittance_items ri
		JOIN remittances r ON ri.remittance_id = r.id
		WHERE ri.worklog_id = $1 AND r.status = $2
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, worklogID, remittance.StatusSuccess).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum remitted amount: %w", err)
	}

	return total, nil
}
