package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"caseflow/internal/model"
	repoMocks "caseflow/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDashboardService_Stats(t *testing.T) {
	ctx := context.Background()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	mCases := new(repoMocks.MockCaseRepository)
	mTasks := new(repoMocks.MockTaskRepository)
	mDocs := new(repoMocks.MockDocumentRepository)

	svc := NewDashboardService(mCases, mTasks, mDocs).(*dashboardService)
	svc.now = func() time.Time { return fixed }

	byStatus := []model.StatusCount{{Status: "Open", Count: 4}, {Status: "Closed", Count: 2}}
	byPriority := []model.PriorityCount{{Priority: "High", Count: 3}}
	docsByStatus := []model.StatusCount{{Status: "Pending", Count: 5}}
	hearings := []model.Hearing{{CaseID: "case-1", CaseTitle: "Acme Corp vs TechStart Inc"}}
	recent := []model.CaseDetail{{Case: model.Case{ID: "case-1"}}}

	mCases.On("CountByStatus", ctx).Return(byStatus, nil)
	mCases.On("CountByPriority", ctx).Return(byPriority, nil)
	mCases.On("Totals", ctx).Return(model.CaseTotals{Total: 6, Open: 4, Closed: 2}, nil)
	mTasks.On("Totals", ctx).Return(model.TaskTotals{Total: 8, Completed: 5}, nil)
	mCases.On("UpcomingHearings", ctx, fixed, fixed.Add(7*24*time.Hour)).Return(hearings, nil)
	mDocs.On("CountByStatus", ctx).Return(docsByStatus, nil)
	mCases.On("Recent", ctx, 5).Return(recent, nil)

	stats, err := svc.Stats(ctx)

	require.NoError(t, err)
	assert.Equal(t, DashboardOverview{
		TotalCases:      6,
		OpenCases:       4,
		ClosedCases:     2,
		TotalTasks:      8,
		TasksCompletion: 63, // round(5/8*100)
	}, stats.Overview)
	assert.Equal(t, byStatus, stats.CasesByStatus)
	assert.Equal(t, byPriority, stats.CasesByPriority)
	assert.Equal(t, docsByStatus, stats.DocumentsByStatus)
	assert.Equal(t, hearings, stats.UpcomingHearings)
	assert.Equal(t, recent, stats.RecentCases)
	mCases.AssertExpectations(t)
}

func TestDashboardService_Stats_Error(t *testing.T) {
	ctx := context.Background()

	mCases := new(repoMocks.MockCaseRepository)
	mTasks := new(repoMocks.MockTaskRepository)
	mDocs := new(repoMocks.MockDocumentRepository)

	svc := NewDashboardService(mCases, mTasks, mDocs)

	mCases.On("CountByStatus", ctx).Return(nil, errors.New("db down"))

	stats, err := svc.Stats(ctx)

	assert.Error(t, err)
	assert.Nil(t, stats)
}

func TestCompletionRate(t *testing.T) {
	tests := []struct {
		name   string
		totals model.TaskTotals
		want   int
	}{
		{"no tasks", model.TaskTotals{}, 0},
		{"all completed", model.TaskTotals{Total: 4, Completed: 4}, 100},
		{"none completed", model.TaskTotals{Total: 4, Completed: 0}, 0},
		{"rounds half up", model.TaskTotals{Total: 8, Completed: 5}, 63},
		{"rounds down", model.TaskTotals{Total: 3, Completed: 1}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, completionRate(tt.totals))
		})
	}
}
