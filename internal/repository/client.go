package repository

import (
	"context"

	"caseflow/internal/model"
)

// ClientRepository defines data access for clients.
type ClientRepository interface {
	// Create inserts a new client record and returns the stored row.
	Create(ctx context.Context, c *model.Client) (*model.Client, error)

	// FindByID returns a client by its ID.
	FindByID(ctx context.Context, id string) (*model.Client, error)

	// List returns a page of clients, newest first, and the total row count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.Client], error)

	// Search returns clients whose name, email, or phone matches the query text.
	Search(ctx context.Context, query string) ([]model.Client, error)

	// Update replaces the mutable fields of a client and returns the stored row.
	Update(ctx context.Context, c *model.Client) (*model.Client, error)

	// Delete removes a client by ID. Returns sql.ErrNoRows if no row matched.
	Delete(ctx context.Context, id string) error
}
