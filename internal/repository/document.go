package repository

import (
	"context"

	"caseflow/internal/model"
)

// DocumentRepository defines data access for document metadata using SQL
// queries only. The document bytes live behind storage.Storage, not here.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller should provide required fields (e.g., ID, timestamps) according to the schema defaults.
	// Returns the stored document (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document joined with its case title/number.
	FindByID(ctx context.Context, id string) (*model.DocumentDetail, error)

	// List returns all documents joined with case title/number, newest first.
	List(ctx context.Context) ([]model.DocumentDetail, error)

	// Update replaces the mutable metadata fields and returns the stored row.
	Update(ctx context.Context, doc *model.Document) (*model.Document, error)

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// CountByStatus groups documents by status.
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)
}
