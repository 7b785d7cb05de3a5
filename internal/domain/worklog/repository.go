package worklog

import (
	"context"

	"github.com/shopspring/decimal"
)

type WorkLogRepository interface {
	GetAll(ctx context.Context) ([]WorkLog, error)
	GetByUserID(ctx context.Context, userID string) ([]WorkLog, error)

	// Aggregates. Both resolve to zero for unknown worklog IDs: aggregation
	// happens at query level with a COALESCE'd default, never as a
	// lookup-then-branch.
	SumSegmentMinutes(ctx context.Context, worklogID string) (int64, error)
	SumAdjustments(ctx context.Context, worklogID string) (decimal.Decimal, error)
}
