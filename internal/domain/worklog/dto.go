package worklog

import (
	"github.com/cmlabs-hris/settlements-backend-go/internal/pkg/validator"
)

// Derived remittance status of a worklog: REMITTED when nothing is payable,
// UNREMITTED otherwise. This is computed, never stored.
const (
	StatusRemitted   = "REMITTED"
	StatusUnremitted = "UNREMITTED"
)

type ListWorkLogsRequest struct {
	// RemittanceStatus filters on the derived status; nil means no filter.
	RemittanceStatus *string
}

func (r *ListWorkLogsRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RemittanceStatus != nil &&
		!validator.IsInSlice(*r.RemittanceStatus, []string{StatusRemitted, StatusUnremitted}) {
		errs = append(errs, validator.ValidationError{
			Field:   "remittanceStatus",
			Message: "must be REMITTED or UNREMITTED",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type WorkLogPublic struct {
	WorkLogID string `json:"worklog_id"`
	UserID    string `json:"user_id"`
	// Amount is the payable balance rendered with fixed two-decimal precision.
	Amount           string `json:"amount"`
	RemittanceStatus string `json:"remittance_status"`
}

type ListWorkLogsResponse struct {
	Data  []WorkLogPublic `json:"data"`
	Count int             `json:"count"`
}
