package settlement

import (
	"context"
	"fmt"

	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/remittance"
	"github.com/cmlabs-hris/settlements-backend-go/internal/domain/worklog"
	"github.com/shopspring/decimal"
)

// RatePerMinute is the fixed rate applied to worked minutes. Exact decimal;
// amounts are never computed in binary floating point.
var RatePerMinute = decimal.RequireFromString("0.50")

// Calculator derives earned, remitted and payable balances for a single
// worklog from persisted aggregates. All methods are read-only; a worklog id
// with no backing rows yields zero, not an error.
type Calculator struct {
	worklogRepo    worklog.WorkLogRepository
	remittanceRepo remittance.RemittanceRepository
}

func NewCalculator(worklogRepo worklog.WorkLogRepository, remittanceRepo remittance.RemittanceRepository) *Calculator {
	return &Calculator{
		worklogRepo:    worklogRepo,
		remittanceRepo: remittanceRepo,
	}
}

// TotalEarned is worked minutes times the fixed rate, plus the signed sum of
// manual adjustments.
func (c *Calculator) TotalEarned(ctx context.Context, worklogID string) (decimal.Decimal, error) {
	minutes, err := c.worklogRepo.SumSegmentMinutes(ctx, worklogID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute earned amount: %w", err)
	}

	adjustments, err := c.worklogRepo.SumAdjustments(ctx, worklogID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute earned amount: %w", err)
	}

	return decimal.NewFromInt(minutes).Mul(RatePerMinute).Add(adjustments), nil
}

// TotalRemitted is the sum of item amounts under SUCCESS remittances that
// reference this worklog.
func (c *Calculator) TotalRemitted(ctx context.Context, worklogID string) (decimal.Decimal, error) {
	remitted, err := c.remittanceRepo.SumRemittedByWorkLog(ctx, worklogID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to compute remitted amount: %w", err)
	}

	return remitted, nil
}

// PayableAmount is earned minus remitted. Callers interpret a result <= 0 as
// nothing owed.
func (c *Calculator) PayableAmount(ctx context.Context, worklogID string) (decimal.Decimal, error) {
	earned, err := c.TotalEarned(ctx, worklogID)
	if err != nil {
		return decimal.Zero, err
	}

	remitted, err := c.TotalRemitted(ctx, worklogID)
	if err != nil {
		return decimal.Zero, err
	}

	return earned.Sub(remitted), nil
}
