package remittance

import (
	"time"

	"github.com/shopspring/decimal"
)

type GenerateRemittancesResponse struct {
	Status    string `json:"status"`
	Generated int    `json:"generated"`
}

// CreatedEvent is published after a remittance batch commits. EventID is
// assigned at publish time so consumers can deduplicate redeliveries.
type CreatedEvent struct {
	EventID      string          `json:"event_id"`
	RemittanceID string          `json:"remittance_id"`
	UserID       string          `json:"user_id"`
	Total        decimal.Decimal `json:"total"`
	ItemCount    int             `json:"item_count"`
	PeriodStart  string          `json:"period_start"`
	PeriodEnd    string          `json:"period_end"`
	OccurredAt   time.Time       `json:"occurred_at"`
}
