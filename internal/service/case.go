package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"caseflow/internal/model"
	"caseflow/internal/repository"
)

// CaseInput carries the writable case fields for create and update.
type CaseInput struct {
	CaseTitle       string     `json:"case_title"`
	CaseNumber      string     `json:"case_number"`
	ClientID        string     `json:"client_id"`
	CaseType        string     `json:"case_type"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	Description     string     `json:"description"`
	StartDate       *time.Time `json:"start_date"`
	NextHearingDate *time.Time `json:"next_hearing_date"`
	AssignedTo      string     `json:"assigned_to"`
}

// CaseListParams carries the listing controls parsed at the boundary.
// Unknown query keys are dropped there; only these filters reach the store.
type CaseListParams struct {
	Filter repository.CaseFilter
	Sort   string
	Page   int
	Limit  int
}

// CaseListResult is the service-level DTO for paginated cases.
type CaseListResult struct {
	Items      []model.CaseDetail `json:"cases"`
	Pagination Pagination         `json:"pagination"`
}

// CaseService defines the use cases for managing cases.
type CaseService interface {
	Create(ctx context.Context, in CaseInput) (*model.CaseDetail, error)
	Get(ctx context.Context, id string) (*model.CaseDetail, error)
	List(ctx context.Context, p CaseListParams) (*CaseListResult, error)
	ListByClient(ctx context.Context, clientID string) ([]model.CaseDetail, error)
	Search(ctx context.Context, query string) ([]model.CaseDetail, error)
	Update(ctx context.Context, id string, in CaseInput) (*model.CaseDetail, error)
	Delete(ctx context.Context, id string) error
}

type caseService struct {
	repo repository.CaseRepository
}

// NewCaseService constructs a new CaseService.
func NewCaseService(repo repository.CaseRepository) CaseService {
	return &caseService{repo: repo}
}

func validateCaseInput(in CaseInput) error {
	var fe fieldErrors
	fe.require("case_title", in.CaseTitle, "case title is required")
	fe.require("case_number", in.CaseNumber, "case number is required")
	fe.require("client_id", in.ClientID, "client is required")
	fe.require("case_type", in.CaseType, "case type is required")
	fe.require("description", in.Description, "description is required")
	fe.require("assigned_to", in.AssignedTo, "assigned attorney is required")
	if in.Status != "" && !model.ValidCaseStatus(in.Status) {
		fe.add("status", "invalid case status")
	}
	if in.Priority != "" && !model.ValidCasePriority(in.Priority) {
		fe.add("priority", "invalid case priority")
	}
	return fe.err()
}

// parseSort turns a comma-separated sort expression ("-created_at,priority")
// into repository sort fields. A leading '-' means descending.
func parseSort(sort string) []repository.SortField {
	if sort == "" {
		return nil
	}
	var out []repository.SortField
	for _, part := range strings.Split(sort, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		f := repository.SortField{Field: part}
		if strings.HasPrefix(part, "-") {
			f.Field = part[1:]
			f.Desc = true
		}
		out = append(out, f)
	}
	return out
}

func (s *caseService) Create(ctx context.Context, in CaseInput) (*model.CaseDetail, error) {
	if err := validateCaseInput(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &model.Case{
		ID:              uuid.New().String(),
		CaseTitle:       in.CaseTitle,
		CaseNumber:      in.CaseNumber,
		ClientID:        in.ClientID,
		CaseType:        in.CaseType,
		Status:          in.Status,
		Priority:        in.Priority,
		Description:     in.Description,
		StartDate:       now,
		NextHearingDate: in.NextHearingDate,
		AssignedTo:      in.AssignedTo,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if c.Status == "" {
		c.Status = model.CaseStatusOpen
	}
	if c.Priority == "" {
		c.Priority = model.CasePriorityMedium
	}
	if in.StartDate != nil {
		c.StartDate = *in.StartDate
	}
	stored, err := s.repo.Create(ctx, c)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateError{Field: "case_number"}
		}
		if isForeignKeyViolation(err) {
			return nil, ErrBadReference
		}
		return nil, err
	}
	// Re-read for the joined client/assignee fields.
	return s.Get(ctx, stored.ID)
}

func (s *caseService) Get(ctx context.Context, id string) (*model.CaseDetail, error) {
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

func (s *caseService) List(ctx context.Context, p CaseListParams) (*CaseListResult, error) {
	page, limit := normalizePage(p.Page, p.Limit)
	res, err := s.repo.List(ctx, p.Filter, parseSort(p.Sort), repository.PageQuery{
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}
	return &CaseListResult{
		Items:      res.Items,
		Pagination: paginate(page, limit, res.Total),
	}, nil
}

func (s *caseService) ListByClient(ctx context.Context, clientID string) ([]model.CaseDetail, error) {
	if clientID == "" {
		return nil, ErrIDRequired
	}
	return s.repo.ListByClient(ctx, clientID)
}

func (s *caseService) Search(ctx context.Context, query string) ([]model.CaseDetail, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		var fe fieldErrors
		fe.add("query", "search query is required")
		return nil, fe.err()
	}
	return s.repo.Search(ctx, query)
}

func (s *caseService) Update(ctx context.Context, id string, in CaseInput) (*model.CaseDetail, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	c := existing.Case
	if in.CaseTitle != "" {
		c.CaseTitle = in.CaseTitle
	}
	if in.CaseNumber != "" {
		c.CaseNumber = in.CaseNumber
	}
	if in.ClientID != "" {
		c.ClientID = in.ClientID
	}
	if in.CaseType != "" {
		c.CaseType = in.CaseType
	}
	if in.Status != "" {
		if !model.ValidCaseStatus(in.Status) {
			var fe fieldErrors
			fe.add("status", "invalid case status")
			return nil, fe.err()
		}
		c.Status = in.Status
	}
	if in.Priority != "" {
		if !model.ValidCasePriority(in.Priority) {
			var fe fieldErrors
			fe.add("priority", "invalid case priority")
			return nil, fe.err()
		}
		c.Priority = in.Priority
	}
	if in.Description != "" {
		c.Description = in.Description
	}
	if in.StartDate != nil {
		c.StartDate = *in.StartDate
	}
	if in.NextHearingDate != nil {
		c.NextHearingDate = in.NextHearingDate
	}
	if in.AssignedTo != "" {
		c.AssignedTo = in.AssignedTo
	}
	c.UpdatedAt = time.Now().UTC()

	if _, err := s.repo.Update(ctx, &c); err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateError{Field: "case_number"}
		}
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

func (s *caseService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		// Cases with tasks or documents still attached cannot be deleted
		if isForeignKeyViolation(err) {
			return ErrBadReference
		}
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
