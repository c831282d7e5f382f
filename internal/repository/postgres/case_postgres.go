package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"caseflow/internal/model"
	"caseflow/internal/repository"
)

// CasePostgres is a PostgreSQL implementation of repository.CaseRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CasePostgres struct {
	db *sql.DB
}

// NewCasePostgres creates a new CasePostgres repository.
func NewCasePostgres(db *sql.DB) *CasePostgres {
	return &CasePostgres{db: db}
}

var _ repository.CaseRepository = (*CasePostgres)(nil)

// caseColumns are the bare case columns, selected and scanned in this order.
const caseColumns = `c.id, c.case_title, c.case_number, c.client_id, c.case_type, c.status,
		c.priority, c.description, c.start_date, c.next_hearing_date, c.assigned_to,
		c.created_at, c.updated_at`

// caseDetailSelect joins the reduced client and assignee records onto the case.
const caseDetailSelect = `
	SELECT ` + caseColumns + `,
		cl.name, cl.email, u.name, u.email
	FROM cases c
	JOIN clients cl ON cl.id = c.client_id
	JOIN users u ON u.id = c.assigned_to`

// sortableCaseFields maps external sort field names to ORDER BY columns.
// Anything not in this map is ignored.
var sortableCaseFields = map[string]string{
	"created_at":        "c.created_at",
	"updated_at":        "c.updated_at",
	"start_date":        "c.start_date",
	"next_hearing_date": "c.next_hearing_date",
	"status":            "c.status",
	"priority":          "c.priority",
	"case_title":        "c.case_title",
	"case_number":       "c.case_number",
}

func scanCase(row interface{ Scan(...any) error }, c *model.Case) error {
	var hearing sql.NullTime
	if err := row.Scan(
		&c.ID,
		&c.CaseTitle,
		&c.CaseNumber,
		&c.ClientID,
		&c.CaseType,
		&c.Status,
		&c.Priority,
		&c.Description,
		&c.StartDate,
		&hearing,
		&c.AssignedTo,
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return err
	}
	if hearing.Valid {
		t := hearing.Time
		c.NextHearingDate = &t
	}
	return nil
}

func scanCaseDetail(row interface{ Scan(...any) error }, d *model.CaseDetail) error {
	var hearing sql.NullTime
	if err := row.Scan(
		&d.ID,
		&d.CaseTitle,
		&d.CaseNumber,
		&d.ClientID,
		&d.CaseType,
		&d.Status,
		&d.Priority,
		&d.Description,
		&d.StartDate,
		&hearing,
		&d.AssignedTo,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.Client.Name,
		&d.Client.Email,
		&d.Assignee.Name,
		&d.Assignee.Email,
	); err != nil {
		return err
	}
	if hearing.Valid {
		t := hearing.Time
		d.NextHearingDate = &t
	}
	d.Client.ID = d.ClientID
	d.Assignee.ID = d.AssignedTo
	return nil
}

// caseFilterClause builds the WHERE clause and args for the given filter.
func caseFilterClause(f repository.CaseFilter) (string, []any) {
	var conds []string
	var args []any
	add := func(col, val string) {
		if val != "" {
			args = append(args, val)
			conds = append(conds, fmt.Sprintf("%s = $%d", col, len(args)))
		}
	}
	add("c.status", f.Status)
	add("c.priority", f.Priority)
	add("c.case_type", f.CaseType)
	add("c.client_id", f.ClientID)
	add("c.assigned_to", f.AssignedTo)
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// caseOrderClause builds the ORDER BY clause from whitelisted sort fields.
// Defaults to newest first.
func caseOrderClause(sort []repository.SortField) string {
	var terms []string
	for _, s := range sort {
		col, ok := sortableCaseFields[s.Field]
		if !ok {
			continue
		}
		if s.Desc {
			terms = append(terms, col+" DESC")
		} else {
			terms = append(terms, col+" ASC")
		}
	}
	if len(terms) == 0 {
		return " ORDER BY c.created_at DESC, c.id DESC"
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

// Create inserts a new case row and returns the stored record.
func (r *CasePostgres) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	const q = `
		INSERT INTO cases (id, case_title, case_number, client_id, case_type, status,
			priority, description, start_date, next_hearing_date, assigned_to, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, case_title, case_number, client_id, case_type, status,
			priority, description, start_date, next_hearing_date, assigned_to, created_at, updated_at
	`
	var hearing any
	if c.NextHearingDate != nil {
		hearing = *c.NextHearingDate
	}
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.CaseTitle,
		c.CaseNumber,
		c.ClientID,
		c.CaseType,
		c.Status,
		c.Priority,
		c.Description,
		c.StartDate,
		hearing,
		c.AssignedTo,
		c.CreatedAt,
		c.UpdatedAt,
	)
	var out model.Case
	if err := scanCase(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single case joined with client and assignee details.
func (r *CasePostgres) FindByID(ctx context.Context, id string) (*model.CaseDetail, error) {
	q := caseDetailSelect + ` WHERE c.id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.CaseDetail
	if err := scanCaseDetail(row, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns a filtered, sorted page of cases and the total count for the filter.
func (r *CasePostgres) List(ctx context.Context, f repository.CaseFilter, sort []repository.SortField, pq repository.PageQuery) (*repository.PageResult[model.CaseDetail], error) {
	where, args := caseFilterClause(f)

	var total int
	qCount := `SELECT COUNT(*) FROM cases c` + where
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := caseDetailSelect + where + caseOrderClause(sort) +
		fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
	args = append(args, pq.Limit, pq.Offset)

	items, err := r.queryCaseDetails(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.CaseDetail]{Items: items, Total: total}, nil
}

// ListByClient returns all cases for one client, newest first.
func (r *CasePostgres) ListByClient(ctx context.Context, clientID string) ([]model.CaseDetail, error) {
	q := caseDetailSelect + ` WHERE c.client_id = $1 ORDER BY c.created_at DESC, c.id DESC`
	return r.queryCaseDetails(ctx, q, clientID)
}

// Search matches the query text against case title and number.
func (r *CasePostgres) Search(ctx context.Context, query string) ([]model.CaseDetail, error) {
	q := caseDetailSelect + `
		WHERE c.case_title ILIKE $1 OR c.case_number ILIKE $1
		ORDER BY c.created_at DESC, c.id DESC`
	return r.queryCaseDetails(ctx, q, "%"+escapeLike(query)+"%")
}

// Update replaces the mutable fields of a case and returns the stored row.
func (r *CasePostgres) Update(ctx context.Context, c *model.Case) (*model.Case, error) {
	const q = `
		UPDATE cases
		SET case_title = $2, case_number = $3, client_id = $4, case_type = $5,
			status = $6, priority = $7, description = $8, start_date = $9,
			next_hearing_date = $10, assigned_to = $11, updated_at = $12
		WHERE id = $1
		RETURNING id, case_title, case_number, client_id, case_type, status,
			priority, description, start_date, next_hearing_date, assigned_to, created_at, updated_at
	`
	var hearing any
	if c.NextHearingDate != nil {
		hearing = *c.NextHearingDate
	}
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.CaseTitle,
		c.CaseNumber,
		c.ClientID,
		c.CaseType,
		c.Status,
		c.Priority,
		c.Description,
		c.StartDate,
		hearing,
		c.AssignedTo,
		c.UpdatedAt,
	)
	var out model.Case
	if err := scanCase(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a case by ID. Returns sql.ErrNoRows if nothing matched.
func (r *CasePostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM cases WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CountByStatus groups cases by status.
func (r *CasePostgres) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	const q = `SELECT status, COUNT(*) FROM cases GROUP BY status ORDER BY status`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.StatusCount, 0)
	for rows.Next() {
		var sc model.StatusCount
		if err := rows.Scan(&sc.Status, &sc.Count); err != nil {
			return nil, err
		}
		out = append(out, sc)
	}
	return out, rows.Err()
}

// CountByPriority groups cases by priority.
func (r *CasePostgres) CountByPriority(ctx context.Context) ([]model.PriorityCount, error) {
	const q = `SELECT priority, COUNT(*) FROM cases GROUP BY priority ORDER BY priority`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.PriorityCount, 0)
	for rows.Next() {
		var pc model.PriorityCount
		if err := rows.Scan(&pc.Priority, &pc.Count); err != nil {
			return nil, err
		}
		out = append(out, pc)
	}
	return out, rows.Err()
}

// Totals returns the total/open/closed case counters in one pass.
func (r *CasePostgres) Totals(ctx context.Context) (model.CaseTotals, error) {
	const q = `
		SELECT COUNT(*),
			COUNT(*) FILTER (WHERE status <> 'Closed'),
			COUNT(*) FILTER (WHERE status = 'Closed')
		FROM cases
	`
	var t model.CaseTotals
	err := r.db.QueryRowContext(ctx, q).Scan(&t.Total, &t.Open, &t.Closed)
	return t, err
}

// UpcomingHearings returns cases with a hearing inside [from, to] inclusive,
// soonest first, joined with the client name.
func (r *CasePostgres) UpcomingHearings(ctx context.Context, from, to time.Time) ([]model.Hearing, error) {
	const q = `
		SELECT c.id, c.case_title, c.case_number, c.next_hearing_date, cl.name
		FROM cases c
		JOIN clients cl ON cl.id = c.client_id
		WHERE c.next_hearing_date >= $1 AND c.next_hearing_date <= $2
		ORDER BY c.next_hearing_date ASC
	`
	rows, err := r.db.QueryContext(ctx, q, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]model.Hearing, 0)
	for rows.Next() {
		var h model.Hearing
		if err := rows.Scan(&h.CaseID, &h.CaseTitle, &h.CaseNumber, &h.NextHearingDate, &h.ClientName); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

// Recent returns the most recently created cases with client and assignee names.
func (r *CasePostgres) Recent(ctx context.Context, limit int) ([]model.CaseDetail, error) {
	q := caseDetailSelect + ` ORDER BY c.created_at DESC, c.id DESC LIMIT $1`
	return r.queryCaseDetails(ctx, q, limit)
}

func (r *CasePostgres) queryCaseDetails(ctx context.Context, q string, args ...any) ([]model.CaseDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.CaseDetail, 0)
	for rows.Next() {
		var d model.CaseDetail
		if err := scanCaseDetail(rows, &d); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
