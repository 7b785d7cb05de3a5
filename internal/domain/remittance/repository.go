package remittance

import (
	"context"

	"github.com/shopspring/decimal"
)

type RemittanceRepository interface {
	// Create inserts a remittance header and returns it with its generated
	// identity, so items can reference it before the surrounding transaction
	// commits.
	Create(ctx context.Context, r Remittance) (Remittance, error)
	CreateItem(ctx context.Context, item RemittanceItem) (RemittanceItem, error)
	GetByID(ctx context.Context, id string) (Remittance, error)

	// SumRemittedByWorkLog sums item amounts for the worklog across
	// remittances with status SUCCESS only; zero when none exist.
	SumRemittedByWorkLog(ctx context.Context, worklogID string) (decimal.Decimal, error)
}
