package repository

import (
	"context"

	"caseflow/internal/model"
)

// TaskRepository defines data access for tasks.
type TaskRepository interface {
	// Create inserts a new task record and returns the stored row.
	Create(ctx context.Context, t *model.Task) (*model.Task, error)

	// FindByID returns a task joined with its case and assignee details.
	FindByID(ctx context.Context, id string) (*model.TaskDetail, error)

	// List returns all tasks joined with case and assignee details.
	List(ctx context.Context) ([]model.TaskDetail, error)

	// ListByCase returns all tasks for one case.
	ListByCase(ctx context.Context, caseID string) ([]model.TaskDetail, error)

	// Update replaces the mutable fields of a task and returns the stored row.
	Update(ctx context.Context, t *model.Task) (*model.Task, error)

	// Delete removes a task by ID. Returns sql.ErrNoRows if no row matched.
	Delete(ctx context.Context, id string) error

	// Totals returns total and completed task counters.
	Totals(ctx context.Context) (model.TaskTotals, error)
}
