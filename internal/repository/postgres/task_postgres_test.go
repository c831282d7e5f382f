package postgres

import (
	"context"
	"testing"
	"time"

	"caseflow/internal/model"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var taskDetailScanCols = []string{
	"id", "case_id", "task_title", "assigned_to", "due_date", "status",
	"completion_percentage", "created_at", "updated_at",
	"case_title", "case_number", "name", "email",
}

func taskDetailRow(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(taskDetailScanCols).
		AddRow("task-1", "case-1", "Draft infringement analysis", "user-1", now.Add(72*time.Hour),
			"Pending", 40, now, now,
			"Acme Corp vs TechStart Inc", "CASE-2025-001", "John Doe", "john@example.com")
}

func TestTaskPostgres_FindByID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM tasks t").
		WithArgs("task-1").
		WillReturnRows(taskDetailRow(time.Now()))

	d, err := repo.FindByID(context.Background(), "task-1")

	require.NoError(t, err)
	assert.Equal(t, "task-1", d.ID)
	assert.Equal(t, "CASE-2025-001", d.CaseNumber)
	assert.Equal(t, "user-1", d.Assignee.ID)
	assert.Equal(t, "John Doe", d.Assignee.Name)
}

func TestTaskPostgres_ListByCase(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskPostgres(db)

	mock.ExpectQuery("SELECT (.+) FROM tasks t(.+) WHERE t.case_id").
		WithArgs("case-1").
		WillReturnRows(taskDetailRow(time.Now()))

	items, err := repo.ListByCase(context.Background(), "case-1")

	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTaskPostgres_Totals(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskPostgres(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\)").
		WillReturnRows(sqlmock.NewRows([]string{"total", "completed"}).AddRow(8, 5))

	totals, err := repo.Totals(context.Background())

	require.NoError(t, err)
	assert.Equal(t, model.TaskTotals{Total: 8, Completed: 5}, totals)
}

func TestTaskPostgres_Update(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	repo := NewTaskPostgres(db)

	now := time.Now().UTC()
	task := &model.Task{
		ID:                   "task-1",
		CaseID:               "case-1",
		TaskTitle:            "Draft infringement analysis",
		AssignedTo:           "user-1",
		DueDate:              now.Add(72 * time.Hour),
		Status:               model.TaskStatusCompleted,
		CompletionPercentage: 100,
		UpdatedAt:            now,
	}

	rows := sqlmock.NewRows([]string{
		"id", "case_id", "task_title", "assigned_to", "due_date", "status",
		"completion_percentage", "created_at", "updated_at",
	}).AddRow(task.ID, task.CaseID, task.TaskTitle, task.AssignedTo, task.DueDate,
		task.Status, task.CompletionPercentage, now, now)

	mock.ExpectQuery("UPDATE tasks").
		WithArgs(task.ID, task.CaseID, task.TaskTitle, task.AssignedTo, task.DueDate,
			task.Status, task.CompletionPercentage, task.UpdatedAt).
		WillReturnRows(rows)

	result, err := repo.Update(context.Background(), task)

	require.NoError(t, err)
	assert.Equal(t, model.TaskStatusCompleted, result.Status)
	assert.Equal(t, 100, result.CompletionPercentage)
}
