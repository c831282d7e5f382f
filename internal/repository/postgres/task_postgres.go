package postgres

import (
	"context"
	"database/sql"

	"caseflow/internal/model"
	"caseflow/internal/repository"
)

// TaskPostgres is a PostgreSQL implementation of repository.TaskRepository.
type TaskPostgres struct {
	db *sql.DB
}

// NewTaskPostgres creates a new TaskPostgres repository.
func NewTaskPostgres(db *sql.DB) *TaskPostgres {
	return &TaskPostgres{db: db}
}

var _ repository.TaskRepository = (*TaskPostgres)(nil)

const taskDetailSelect = `
	SELECT t.id, t.case_id, t.task_title, t.assigned_to, t.due_date, t.status,
		t.completion_percentage, t.created_at, t.updated_at,
		c.case_title, c.case_number, u.name, u.email
	FROM tasks t
	JOIN cases c ON c.id = t.case_id
	JOIN users u ON u.id = t.assigned_to`

func scanTask(row interface{ Scan(...any) error }, t *model.Task) error {
	return row.Scan(
		&t.ID,
		&t.CaseID,
		&t.TaskTitle,
		&t.AssignedTo,
		&t.DueDate,
		&t.Status,
		&t.CompletionPercentage,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
}

func scanTaskDetail(row interface{ Scan(...any) error }, d *model.TaskDetail) error {
	if err := row.Scan(
		&d.ID,
		&d.CaseID,
		&d.TaskTitle,
		&d.AssignedTo,
		&d.DueDate,
		&d.Status,
		&d.CompletionPercentage,
		&d.CreatedAt,
		&d.UpdatedAt,
		&d.CaseTitle,
		&d.CaseNumber,
		&d.Assignee.Name,
		&d.Assignee.Email,
	); err != nil {
		return err
	}
	d.Assignee.ID = d.AssignedTo
	return nil
}

// Create inserts a new task row and returns the stored record.
func (r *TaskPostgres) Create(ctx context.Context, t *model.Task) (*model.Task, error) {
	const q = `
		INSERT INTO tasks (id, case_id, task_title, assigned_to, due_date, status,
			completion_percentage, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, case_id, task_title, assigned_to, due_date, status,
			completion_percentage, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		t.ID,
		t.CaseID,
		t.TaskTitle,
		t.AssignedTo,
		t.DueDate,
		t.Status,
		t.CompletionPercentage,
		t.CreatedAt,
		t.UpdatedAt,
	)
	var out model.Task
	if err := scanTask(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FindByID fetches a single task joined with case and assignee details.
func (r *TaskPostgres) FindByID(ctx context.Context, id string) (*model.TaskDetail, error) {
	q := taskDetailSelect + ` WHERE t.id = $1`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.TaskDetail
	if err := scanTaskDetail(row, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// List returns all tasks joined with case and assignee details, newest first.
func (r *TaskPostgres) List(ctx context.Context) ([]model.TaskDetail, error) {
	q := taskDetailSelect + ` ORDER BY t.created_at DESC, t.id DESC`
	return r.queryTaskDetails(ctx, q)
}

// ListByCase returns all tasks for one case, soonest due first.
func (r *TaskPostgres) ListByCase(ctx context.Context, caseID string) ([]model.TaskDetail, error) {
	q := taskDetailSelect + ` WHERE t.case_id = $1 ORDER BY t.due_date ASC, t.id ASC`
	return r.queryTaskDetails(ctx, q, caseID)
}

// Update replaces the mutable fields of a task and returns the stored row.
func (r *TaskPostgres) Update(ctx context.Context, t *model.Task) (*model.Task, error) {
	const q = `
		UPDATE tasks
		SET case_id = $2, task_title = $3, assigned_to = $4, due_date = $5,
			status = $6, completion_percentage = $7, updated_at = $8
		WHERE id = $1
		RETURNING id, case_id, task_title, assigned_to, due_date, status,
			completion_percentage, created_at, updated_at
	`
	row := r.db.QueryRowContext(ctx, q,
		t.ID,
		t.CaseID,
		t.TaskTitle,
		t.AssignedTo,
		t.DueDate,
		t.Status,
		t.CompletionPercentage,
		t.UpdatedAt,
	)
	var out model.Task
	if err := scanTask(row, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a task by ID. Returns sql.ErrNoRows if nothing matched.
func (r *TaskPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM tasks WHERE id = $1`
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

// Totals returns total and completed task counters in one pass.
func (r *TaskPostgres) Totals(ctx context.Context) (model.TaskTotals, error) {
	const q = `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE status = 'Completed')
		FROM tasks
	`
	var t model.TaskTotals
	err := r.db.QueryRowContext(ctx, q).Scan(&t.Total, &t.Completed)
	return t, err
}

func (r *TaskPostgres) queryTaskDetails(ctx context.Context, q string, args ...any) ([]model.TaskDetail, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.TaskDetail, 0)
	for rows.Next() {
		var d model.TaskDetail
		if err := scanTaskDetail(rows, &d); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}
