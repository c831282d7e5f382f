package repository

import (
	"context"

	"caseflow/internal/model"
)

// UserRepository defines data access for users. User management beyond
// registration lives in the auth boundary; this surface stays small.
type UserRepository interface {
	// Create inserts a new user record and returns the stored row.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by its ID.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail returns a user by email.
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// List returns all users, newest first.
	List(ctx context.Context) ([]model.User, error)
}
