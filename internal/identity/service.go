// Package identity manages users, credentials and access tokens.
package identity

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

// RegisterInput is the payload for creating a user account.
type RegisterInput struct {
	Username    string `json:"username" validate:"required,min=3,max=50"`
	Password    string `json:"password" validate:"required,min=8"`
	Role        string `json:"role" validate:"required"`
	DisplayName string `json:"displayName" validate:"required,min=1,max=100"`
	Email       string `json:"email" validate:"required,email"`
}

// LoginInput is the payload for authenticating.
type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Session is the result of a successful login.
type Session struct {
	User      *domain.SafeUser `json:"user"`
	Token     string           `json:"token"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// Service implements user management and authentication.
type Service struct {
	repo   Repository
	tokens *TokenManager
}

// NewService creates an identity service.
func NewService(repo Repository, tokens *TokenManager) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// Register creates a new user account with a bcrypt password hash.
func (s *Service) Register(ctx context.Context, input RegisterInput) (*domain.SafeUser, error) {
	role := domain.Role(input.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRole, input.Role)
	}

	if _, err := s.repo.GetUserByUsername(ctx, input.Username); err == nil {
		return nil, ErrUsernameExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Username:     input.Username,
		PasswordHash: string(hash),
		Role:         role,
		DisplayName:  input.DisplayName,
		Email:        input.Email,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user.Safe(), nil
}

// Login verifies credentials and issues an access token.
func (s *Service) Login(ctx context.Context, input LoginInput) (*Session, error) {
	user, err := s.repo.GetUserByUsername(ctx, input.Username)
	if err != nil {
		// same error for unknown user and bad password
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.IssueToken(user)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &Session{User: user.Safe(), Token: token, ExpiresAt: expiresAt}, nil
}

// GetUser returns a single user without credentials.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.SafeUser, error) {
	user, err := s.repo.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return user.Safe(), nil
}

// ListUsers returns all users without credentials.
func (s *Service) ListUsers(ctx context.Context) ([]domain.SafeUser, error) {
	users, err := s.repo.ListUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}

	out := make([]domain.SafeUser, 0, len(users))
	for i := range users {
		out = append(out, *users[i].Safe())
	}
	return out, nil
}
