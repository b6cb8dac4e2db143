package repository

import (
	"context"

	"github.com/talentbridge/backend/internal/domain"
	"github.com/talentbridge/backend/internal/dto"
)

// UserRepository is the credential store boundary. The auth service composes
// it; nothing in the module inherits persistence behavior.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *domain.User) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, query *dto.UsersQuery) ([]*domain.User, int64, error)
}
