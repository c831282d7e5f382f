package service

import (
	"context"
	"math"
	"time"

	"caseflow/internal/model"
	"caseflow/internal/repository"
)

// hearingWindow is how far ahead the dashboard looks for scheduled hearings.
const hearingWindow = 7 * 24 * time.Hour

// recentCaseLimit is how many recently created cases the dashboard shows.
const recentCaseLimit = 5

// DashboardOverview holds the headline counters.
type DashboardOverview struct {
	TotalCases      int `json:"totalCases"`
	OpenCases       int `json:"openCases"`
	ClosedCases     int `json:"closedCases"`
	TotalTasks      int `json:"totalTasks"`
	TasksCompletion int `json:"tasksCompletion"`
}

// DashboardStats is the consolidated cross-entity summary for the frontend.
type DashboardStats struct {
	Overview          DashboardOverview     `json:"overview"`
	CasesByStatus     []model.StatusCount   `json:"casesByStatus"`
	CasesByPriority   []model.PriorityCount `json:"casesByPriority"`
	DocumentsByStatus []model.StatusCount   `json:"documentsByStatus"`
	UpcomingHearings  []model.Hearing       `json:"upcomingHearings"`
	RecentCases       []model.CaseDetail    `json:"recentCases"`
}

// DashboardService composes the aggregation outputs into one payload.
type DashboardService interface {
	Stats(ctx context.Context) (*DashboardStats, error)
}

type dashboardService struct {
	cases     repository.CaseRepository
	tasks     repository.TaskRepository
	documents repository.DocumentRepository
	now       func() time.Time
}

// NewDashboardService constructs a new DashboardService.
func NewDashboardService(cases repository.CaseRepository, tasks repository.TaskRepository, documents repository.DocumentRepository) DashboardService {
	return &dashboardService{cases: cases, tasks: tasks, documents: documents, now: time.Now}
}

// Stats runs each sub-aggregation independently; the combined payload is not
// a single consistent snapshot of the store.
func (s *dashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	byStatus, err := s.cases.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	byPriority, err := s.cases.CountByPriority(ctx)
	if err != nil {
		return nil, err
	}
	caseTotals, err := s.cases.Totals(ctx)
	if err != nil {
		return nil, err
	}
	taskTotals, err := s.tasks.Totals(ctx)
	if err != nil {
		return nil, err
	}
	today := s.now().UTC()
	hearings, err := s.cases.UpcomingHearings(ctx, today, today.Add(hearingWindow))
	if err != nil {
		return nil, err
	}
	docsByStatus, err := s.documents.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	recent, err := s.cases.Recent(ctx, recentCaseLimit)
	if err != nil {
		return nil, err
	}

	return &DashboardStats{
		Overview: DashboardOverview{
			TotalCases:      caseTotals.Total,
			OpenCases:       caseTotals.Open,
			ClosedCases:     caseTotals.Closed,
			TotalTasks:      taskTotals.Total,
			TasksCompletion: completionRate(taskTotals),
		},
		CasesByStatus:     byStatus,
		CasesByPriority:   byPriority,
		DocumentsByStatus: docsByStatus,
		UpcomingHearings:  hearings,
		RecentCases:       recent,
	}, nil
}

// completionRate is round(completed/total*100), 0 when there are no tasks.
func completionRate(t model.TaskTotals) int {
	if t.Total == 0 {
		return 0
	}
	return int(math.Round(float64(t.Completed) / float64(t.Total) * 100))
}
