package repository

import (
	"context"
	"time"

	"caseflow/internal/model"
)

// CaseFilter holds the equality filters a case listing accepts. Zero-value
// fields are not applied.
type CaseFilter struct {
	Status     string
	Priority   string
	CaseType   string
	ClientID   string
	AssignedTo string
}

// CaseRepository defines data access for cases using SQL queries only.
// No business logic here — strictly persistence operations.
type CaseRepository interface {
	// Create inserts a new case record and returns the stored row.
	Create(ctx context.Context, c *model.Case) (*model.Case, error)

	// FindByID returns a case joined with client and assignee details.
	FindByID(ctx context.Context, id string) (*model.CaseDetail, error)

	// List returns a filtered, sorted page of cases joined with client and
	// assignee details, plus the total row count for the filter.
	List(ctx context.Context, f CaseFilter, sort []SortField, pq PageQuery) (*PageResult[model.CaseDetail], error)

	// ListByClient returns all cases for one client, newest first.
	ListByClient(ctx context.Context, clientID string) ([]model.CaseDetail, error)

	// Search returns cases whose title or number matches the query text.
	Search(ctx context.Context, query string) ([]model.CaseDetail, error)

	// Update replaces the mutable fields of a case and returns the stored row.
	Update(ctx context.Context, c *model.Case) (*model.Case, error)

	// Delete removes a case by ID. Returns sql.ErrNoRows if no row matched.
	Delete(ctx context.Context, id string) error

	// CountByStatus groups cases by status.
	CountByStatus(ctx context.Context) ([]model.StatusCount, error)

	// CountByPriority groups cases by priority.
	CountByPriority(ctx context.Context) ([]model.PriorityCount, error)

	// Totals returns the total/open/closed case counters.
	Totals(ctx context.Context) (model.CaseTotals, error)

	// UpcomingHearings returns cases with a hearing date inside [from, to]
	// inclusive, sorted ascending, joined with the client name.
	UpcomingHearings(ctx context.Context, from, to time.Time) ([]model.Hearing, error)

	// Recent returns the most recently created cases joined with client and
	// assignee names.
	Recent(ctx context.Context, limit int) ([]model.CaseDetail, error)
}
