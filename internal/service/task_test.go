package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"caseflow/internal/model"
	repoMocks "caseflow/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func validTaskInput() TaskInput {
	due := time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC)
	return TaskInput{
		CaseID:     "case-1",
		TaskTitle:  "Draft infringement analysis",
		AssignedTo: "user-1",
		DueDate:    &due,
	}
}

func TestTaskService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to pending", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		svc := NewTaskService(mRepo)

		mRepo.On("Create", ctx, mock.MatchedBy(func(task *model.Task) bool {
			return task.Status == model.TaskStatusPending && task.CompletionPercentage == 0
		})).Return(&model.Task{ID: "task-1"}, nil)
		mRepo.On("FindByID", ctx, "task-1").
			Return(&model.TaskDetail{Task: model.Task{ID: "task-1"}}, nil)

		d, err := svc.Create(ctx, validTaskInput())

		require.NoError(t, err)
		assert.Equal(t, "task-1", d.ID)
	})

	t.Run("missing due date", func(t *testing.T) {
		svc := NewTaskService(new(repoMocks.MockTaskRepository))

		in := validTaskInput()
		in.DueDate = nil
		_, err := svc.Create(ctx, in)

		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("completion percentage out of range", func(t *testing.T) {
		svc := NewTaskService(new(repoMocks.MockTaskRepository))

		in := validTaskInput()
		pct := 150
		in.CompletionPercentage = &pct
		_, err := svc.Create(ctx, in)

		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})

	t.Run("unknown case or assignee", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		svc := NewTaskService(mRepo)

		mRepo.On("Create", ctx, mock.Anything).Return(nil, pgError(pgForeignKeyViolation))

		_, err := svc.Create(ctx, validTaskInput())

		assert.ErrorIs(t, err, ErrBadReference)
	})
}

func TestTaskService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("zero completion is applied", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		svc := NewTaskService(mRepo)

		existing := &model.TaskDetail{Task: model.Task{ID: "task-1", CompletionPercentage: 60}}
		mRepo.On("FindByID", ctx, "task-1").Return(existing, nil)
		mRepo.On("Update", ctx, mock.MatchedBy(func(task *model.Task) bool {
			return task.CompletionPercentage == 0
		})).Return(&model.Task{ID: "task-1"}, nil)

		pct := 0
		_, err := svc.Update(ctx, "task-1", TaskInput{CompletionPercentage: &pct})

		require.NoError(t, err)
		mRepo.AssertExpectations(t)
	})

	t.Run("invalid status", func(t *testing.T) {
		mRepo := new(repoMocks.MockTaskRepository)
		svc := NewTaskService(mRepo)

		mRepo.On("FindByID", ctx, "task-1").
			Return(&model.TaskDetail{Task: model.Task{ID: "task-1"}}, nil)

		_, err := svc.Update(ctx, "task-1", TaskInput{Status: "Done"})

		var ve *ValidationError
		assert.ErrorAs(t, err, &ve)
	})
}

func TestTaskService_Delete(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockTaskRepository)
	svc := NewTaskService(mRepo)

	mRepo.On("Delete", ctx, "missing").Return(sql.ErrNoRows)

	assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, ""), ErrIDRequired)
}

func TestTaskService_ListByCase(t *testing.T) {
	ctx := context.Background()

	mRepo := new(repoMocks.MockTaskRepository)
	svc := NewTaskService(mRepo)

	mRepo.On("ListByCase", ctx, "case-1").Return([]model.TaskDetail{{Task: model.Task{ID: "task-1"}}}, nil)

	items, err := svc.ListByCase(ctx, "case-1")

	require.NoError(t, err)
	assert.Len(t, items, 1)

	_, err = svc.ListByCase(ctx, "")
	assert.ErrorIs(t, err, ErrIDRequired)
}
