package user

import "context"

type UserRepository interface {
	// GetAll returns every user. The remittance generator reconsiders the
	// full population on each run; there is no pagination.
	GetAll(ctx context.Context) ([]User, error)
	GetByID(ctx context.Context, id string) (User, error)
}
