package mocks

import (
	"context"
	"time"

	"caseflow/internal/model"
	"caseflow/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockCaseRepository struct {
	mock.Mock
}

func (m *MockCaseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseRepository) FindByID(ctx context.Context, id string) (*model.CaseDetail, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CaseDetail), args.Error(1)
}

func (m *MockCaseRepository) List(ctx context.Context, f repository.CaseFilter, sort []repository.SortField, pq repository.PageQuery) (*repository.PageResult[model.CaseDetail], error) {
	args := m.Called(ctx, f, sort, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.CaseDetail]), args.Error(1)
}

func (m *MockCaseRepository) ListByClient(ctx context.Context, clientID string) ([]model.CaseDetail, error) {
	args := m.Called(ctx, clientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseDetail), args.Error(1)
}

func (m *MockCaseRepository) Search(ctx context.Context, query string) ([]model.CaseDetail, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseDetail), args.Error(1)
}

func (m *MockCaseRepository) Update(ctx context.Context, c *model.Case) (*model.Case, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Case), args.Error(1)
}

func (m *MockCaseRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCaseRepository) CountByStatus(ctx context.Context) ([]model.StatusCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.StatusCount), args.Error(1)
}

func (m *MockCaseRepository) CountByPriority(ctx context.Context) ([]model.PriorityCount, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PriorityCount), args.Error(1)
}

func (m *MockCaseRepository) Totals(ctx context.Context) (model.CaseTotals, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.CaseTotals), args.Error(1)
}

func (m *MockCaseRepository) UpcomingHearings(ctx context.Context, from, to time.Time) ([]model.Hearing, error) {
	args := m.Called(ctx, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Hearing), args.Error(1)
}

func (m *MockCaseRepository) Recent(ctx context.Context, limit int) ([]model.CaseDetail, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.CaseDetail), args.Error(1)
}
