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

// ClientInput carries the writable client fields for create and update.
type ClientInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// ClientListResult is the service-level DTO for paginated clients.
type ClientListResult struct {
	Items      []model.Client `json:"clients"`
	Pagination Pagination     `json:"pagination"`
}

// ClientService defines the use cases for managing clients.
type ClientService interface {
	Create(ctx context.Context, in ClientInput) (*model.Client, error)
	Get(ctx context.Context, id string) (*model.Client, error)
	List(ctx context.Context, page, limit int) (*ClientListResult, error)
	Search(ctx context.Context, query string) ([]model.Client, error)
	Update(ctx context.Context, id string, in ClientInput) (*model.Client, error)
	Delete(ctx context.Context, id string) error
}

type clientService struct {
	repo repository.ClientRepository
}

// NewClientService constructs a new ClientService.
func NewClientService(repo repository.ClientRepository) ClientService {
	return &clientService{repo: repo}
}

func validateClientInput(in ClientInput) error {
	var fe fieldErrors
	fe.require("name", in.Name, "client name is required")
	fe.require("email", in.Email, "email is required")
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		fe.add("email", "please provide a valid email")
	}
	fe.require("phone", in.Phone, "phone number is required")
	fe.require("address", in.Address, "address is required")
	return fe.err()
}

func (s *clientService) Create(ctx context.Context, in ClientInput) (*model.Client, error) {
	if err := validateClientInput(in); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	c := &model.Client{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Phone:     in.Phone,
		Address:   in.Address,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	stored, err := s.repo.Create(ctx, c)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateError{Field: "email"}
		}
		return nil, err
	}
	return stored, nil
}

func (s *clientService) Get(ctx context.Context, id string) (*model.Client, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *clientService) List(ctx context.Context, page, limit int) (*ClientListResult, error) {
	page, limit = normalizePage(page, limit)
	res, err := s.repo.List(ctx, repository.PageQuery{Limit: limit, Offset: (page - 1) * limit})
	if err != nil {
		return nil, err
	}
	return &ClientListResult{
		Items:      res.Items,
		Pagination: paginate(page, limit, res.Total),
	}, nil
}

func (s *clientService) Search(ctx context.Context, query string) ([]model.Client, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		var fe fieldErrors
		fe.add("query", "search query is required")
		return nil, fe.err()
	}
	return s.repo.Search(ctx, query)
}

func (s *clientService) Update(ctx context.Context, id string, in ClientInput) (*model.Client, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		existing.Name = in.Name
	}
	if in.Email != "" {
		existing.Email = strings.ToLower(strings.TrimSpace(in.Email))
	}
	if in.Phone != "" {
		existing.Phone = in.Phone
	}
	if in.Address != "" {
		existing.Address = in.Address
	}
	if in.Notes != "" {
		existing.Notes = in.Notes
	}
	existing.UpdatedAt = time.Now().UTC()

	stored, err := s.repo.Update(ctx, existing)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateError{Field: "email"}
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return stored, nil
}

func (s *clientService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		// Clients with cases cannot be deleted while the cases reference them
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
