package mocks

import (
	"context"

	"caseflow/internal/model"
	"caseflow/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockCaseService struct {
	mock.Mock
}

func (m *MockCaseService) Create(ctx context.Context, in service.CaseInput) (*model.CaseDetail, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseDetail), args.Error(1)
}

func (m *MockCaseService) Get(ctx context.Context, id string) (*model.CaseDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseDetail), args.Error(1)
}

func (m *MockCaseService) List(ctx context.Context, p service.CaseListParams) (*service.CaseListResult, error) {
	args := m.Called(ctx, p)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CaseListResult), args.Error(1)
}

func (m *MockCaseService) ListByClient(ctx context.Context, clientID string) ([]model.CaseDetail, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseDetail), args.Error(1)
}

func (m *MockCaseService) Search(ctx context.Context, query string) ([]model.CaseDetail, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseDetail), args.Error(1)
}

func (m *MockCaseService) Update(ctx context.Context, id string, in service.CaseInput) (*model.CaseDetail, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseDetail), args.Error(1)
}

func (m *MockCaseService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
