package identity

import (
	"context"

	"github.com/Domikas122/ITSM-System-VIKO/internal/domain"
)

// Repository defines user persistence operations.
type Repository interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUserByID(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}
