package ports

import (
	"context"

	"github.com/Apurer/cell-tech-api/internal/domains/users/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/users/domain"
)

// Service exposes user bounded context use cases to adapters.
type Service interface {
	Register(ctx context.Context, input types.RegisterInput) (*domain.User, error)
	Login(ctx context.Context, input types.LoginInput) (*types.Session, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	PatchUser(ctx context.Context, input types.PatchUserInput) (*domain.User, error)
	PromoteToAdmin(ctx context.Context, email string) (*domain.User, error)
}
