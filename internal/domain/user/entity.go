package user

import "time"

// User owns zero or more worklogs. Accounts are provisioned by an external
// identity system; this service only reads them.
type User struct {
	ID        string
	Email     string
	FullName  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
