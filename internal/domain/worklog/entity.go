package worklog

import (
	"time"

	"github.com/shopspring/decimal"
)

// WorkLog is one unit of billable work for a user. Worklogs and their child
// entities are created by the time-tracking frontend; this service only
// settles them.
type WorkLog struct {
	ID        string
	UserID    string
	CreatedAt time.Time
}

// TimeSegment contributes minutes worked to a worklog's earned total.
type TimeSegment struct {
	ID        string
	WorkLogID string
	Minutes   int
	CreatedAt time.Time
}

// Adjustment is a signed manual correction to a worklog's earned total.
type Adjustment struct {
	ID        string
	WorkLogID string
	Amount    decimal.Decimal
	Reason    string
	CreatedAt time.Time
}
