package mocks

import (
	"context"

	"caseflow/internal/model"
	"caseflow/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, in service.TaskInput) (*model.TaskDetail, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskDetail), args.Error(1)
}

func (m *MockTaskService) Get(ctx context.Context, id string) (*model.TaskDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskDetail), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context) ([]model.TaskDetail, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskDetail), args.Error(1)
}

func (m *MockTaskService) ListByCase(ctx context.Context, caseID string) ([]model.TaskDetail, error) {
	args := m.Called(ctx, caseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.TaskDetail), args.Error(1)
}

func (m *MockTaskService) Update(ctx context.Context, id string, in service.TaskInput) (*model.TaskDetail, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.TaskDetail), args.Error(1)
}

func (m *MockTaskService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
