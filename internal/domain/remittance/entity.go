package remittance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status enum. Only SUCCESS is ever produced by the generator; FAILED and
// CANCELLED exist so that historical records written by payment reconciliation
// are represented and excluded from remitted totals.
type Status string

const (
	StatusSuccess   Status = "SUCCESS"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
)

// Remittance is a payment batch for one user over a period. Immutable once
// created.
type Remittance struct {
	ID          string
	UserID      string
	PeriodStart time.Time
	PeriodEnd   time.Time
	Status      Status
	CreatedAt   time.Time

	// Joined fields
	Items []RemittanceItem
}

// RemittanceItem attributes part of a remittance to one worklog.
type RemittanceItem struct {
	ID           string
	RemittanceID string
	WorkLogID    string
	Amount       decimal.Decimal
	CreatedAt    time.Time
}
