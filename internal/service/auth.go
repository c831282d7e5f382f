package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"caseflow/internal/config"
	"caseflow/internal/model"
	"caseflow/internal/repository"
)

// ErrInvalidCredentials is returned when the email/password pair does not match.
var ErrInvalidCredentials = errors.New("invalid email or password")

// RegisterInput carries the fields for creating a user account.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// LoginInput carries the credential pair.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is a signed token plus the authenticated user.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// AuthService is the thin authentication boundary: registration, login, and
// token issuing. Everything else about identity lives outside this core.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, in LoginInput) (*AuthResult, error)
}

type authService struct {
	users repository.UserRepository
	cfg   config.AuthConfig
	now   func() time.Time
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, cfg config.AuthConfig) AuthService {
	return &authService{users: users, cfg: cfg, now: time.Now}
}

func (s *authService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	var fe fieldErrors
	fe.require("name", in.Name, "name is required")
	fe.require("email", in.Email, "email is required")
	if in.Email != "" && !strings.Contains(in.Email, "@") {
		fe.add("email", "please provide a valid email")
	}
	if len(in.Password) < 6 {
		fe.add("password", "password must be at least 6 characters")
	}
	if in.Role != "" && in.Role != model.RoleAdmin && in.Role != model.RoleAssociate {
		fe.add("role", "invalid role")
	}
	if err := fe.err(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	role := in.Role
	if role == "" {
		role = model.RoleAssociate
	}
	now := s.now().UTC()
	u := &model.User{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, &DuplicateError{Field: "email"}
		}
		return nil, err
	}

	token, err := s.issueToken(stored)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: stored}, nil
}

func (s *authService) Login(ctx context.Context, in LoginInput) (*AuthResult, error) {
	var fe fieldErrors
	fe.require("email", in.Email, "email is required")
	fe.require("password", in.Password, "password is required")
	if err := fe.err(); err != nil {
		return nil, err
	}

	u, err := s.users.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(in.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := s.issueToken(u)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: u}, nil
}

// issueToken signs an HMAC JWT carrying the user id as subject and the role
// as a custom claim.
func (s *authService) issueToken(u *model.User) (string, error) {
	now := s.now().UTC()
	claims := jwt.MapClaims{
		"sub":  u.ID,
		"role": u.Role,
		"iat":  now.Unix(),
		"exp":  now.Add(time.Duration(s.cfg.TokenTTLMin) * time.Minute).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}
