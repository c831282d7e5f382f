package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"caseflow/internal/model"
	"caseflow/internal/repository"
)

// TaskInput carries the writable task fields for create and update.
// Pointer fields distinguish "absent" from zero on partial updates.
type TaskInput struct {
	CaseID               string     `json:"case_id"`
	TaskTitle            string     `json:"task_title"`
	AssignedTo           string     `json:"assigned_to"`
	DueDate              *time.Time `json:"due_date"`
	Status               string     `json:"status"`
	CompletionPercentage *int       `json:"completion_percentage"`
}

// TaskService defines the use cases for managing tasks.
type TaskService interface {
	Create(ctx context.Context, in TaskInput) (*model.TaskDetail, error)
	Get(ctx context.Context, id string) (*model.TaskDetail, error)
	List(ctx context.Context) ([]model.TaskDetail, error)
	ListByCase(ctx context.Context, caseID string) ([]model.TaskDetail, error)
	Update(ctx context.Context, id string, in TaskInput) (*model.TaskDetail, error)
	Delete(ctx context.Context, id string) error
}

type taskService struct {
	repo repository.TaskRepository
}

// NewTaskService constructs a new TaskService.
func NewTaskService(repo repository.TaskRepository) TaskService {
	return &taskService{repo: repo}
}

func validateTaskInput(in TaskInput) error {
	var fe fieldErrors
	fe.require("case_id", in.CaseID, "case is required")
	fe.require("task_title", in.TaskTitle, "task title is required")
	fe.require("assigned_to", in.AssignedTo, "assigned user is required")
	if in.DueDate == nil {
		fe.add("due_date", "due date is required")
	}
	if in.Status != "" && !model.ValidTaskStatus(in.Status) {
		fe.add("status", "invalid task status")
	}
	if in.CompletionPercentage != nil && (*in.CompletionPercentage < 0 || *in.CompletionPercentage > 100) {
		fe.add("completion_percentage", "completion percentage must be between 0 and 100")
	}
	return fe.err()
}

func (s *taskService) Create(ctx context.Context, in TaskInput) (*model.TaskDetail, error) {
	if err := validateTaskInput(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	t := &model.Task{
		ID:         uuid.New().String(),
		CaseID:     in.CaseID,
		TaskTitle:  in.TaskTitle,
		AssignedTo: in.AssignedTo,
		DueDate:    *in.DueDate,
		Status:     in.Status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if t.Status == "" {
		t.Status = model.TaskStatusPending
	}
	if in.CompletionPercentage != nil {
		t.CompletionPercentage = *in.CompletionPercentage
	}
	stored, err := s.repo.Create(ctx, t)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrBadReference
		}
		return nil, err
	}
	return s.Get(ctx, stored.ID)
}

func (s *taskService) Get(ctx context.Context, id string) (*model.TaskDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (s *taskService) List(ctx context.Context) ([]model.TaskDetail, error) {
	return s.repo.List(ctx)
}

func (s *taskService) ListByCase(ctx context.Context, caseID string) ([]model.TaskDetail, error) {
	if caseID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.ListByCase(ctx, caseID)
}

func (s *taskService) Update(ctx context.Context, id string, in TaskInput) (*model.TaskDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	t := existing.Task
	if in.CaseID != "" {
		t.CaseID = in.CaseID
	}
	if in.TaskTitle != "" {
		t.TaskTitle = in.TaskTitle
	}
	if in.AssignedTo != "" {
		t.AssignedTo = in.AssignedTo
	}
	if in.DueDate != nil {
		t.DueDate = *in.DueDate
	}
	if in.Status != "" {
		if !model.ValidTaskStatus(in.Status) {
			var fe fieldErrors
			fe.add("status", "invalid task status")
			return nil, fe.err()
		}
		t.Status = in.Status
	}
	if in.CompletionPercentage != nil {
		if *in.CompletionPercentage < 0 || *in.CompletionPercentage > 100 {
			var fe fieldErrors
			fe.add("completion_percentage", "completion percentage must be between 0 and 100")
			return nil, fe.err()
		}
		t.CompletionPercentage = *in.CompletionPercentage
	}
	t.UpdatedAt = time.Now().UTC()

	if _, err := s.repo.Update(ctx, &t); err != nil {
		if isForeignKeyViolation(err) {
			return nil, ErrBadReference
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
