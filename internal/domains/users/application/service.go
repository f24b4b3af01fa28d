package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/Apurer/cell-tech-api/internal/domains/users/application/types"
	"github.com/Apurer/cell-tech-api/internal/domains/users/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/users/ports"
)

// Service orchestrates account use cases.
type Service struct {
	repo   ports.Repository
	hasher ports.PasswordHasher
	issuer ports.TokenIssuer
}

// NewService wires the users service with its dependencies.
func NewService(repo ports.Repository, hasher ports.PasswordHasher, issuer ports.TokenIssuer) *Service {
	return &Service{repo: repo, hasher: hasher, issuer: issuer}
}

// Register creates an account with the default role. Duplicate emails are rejected.
func (s *Service) Register(ctx context.Context, input types.RegisterInput) (*domain.User, error) {
	user, err := domain.NewUser(input.Name, input.Email)
	if err != nil {
		return nil, mapError(err)
	}
	if err := domain.ValidatePassword(input.Password); err != nil {
		return nil, mapError(err)
	}
	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return nil, ports.ErrDuplicateEmail
	} else if !errors.Is(err, ports.ErrNotFound) {
		return nil, err
	}
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = hash
	return s.repo.Create(ctx, user)
}

// Login checks credentials and issues an access token.
func (s *Service) Login(ctx context.Context, input types.LoginInput) (*types.Session, error) {
	user, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(input.Email))
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			return nil, authError(err)
		}
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, input.Password); err != nil {
		if errors.Is(err, ports.ErrPasswordMismatch) {
			return nil, authError(err)
		}
		return nil, err
	}
	if user.Blocked() {
		return nil, ErrAccountBlocked
	}
	token, expiresAt, err := s.issuer.Issue(ports.Claims{UserID: user.ID, Email: user.Email, Role: user.Role})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &types.Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// ListUsers returns every account.
func (s *Service) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return s.repo.List(ctx)
}

// PatchUser applies a partial update. A new password is re-hashed.
func (s *Service) PatchUser(ctx context.Context, input types.PatchUserInput) (*domain.User, error) {
	user, err := s.repo.GetByID(ctx, input.ID)
	if err != nil {
		return nil, err
	}
	if input.Name != nil {
		if err := user.Rename(*input.Name); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Email != nil {
		if err := user.ChangeEmail(*input.Email); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Role != nil {
		if err := user.AssignRole(domain.Role(*input.Role)); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Status != nil {
		if err := user.UpdateStatus(domain.Status(*input.Status)); err != nil {
			return nil, mapError(err)
		}
	}
	if input.Password != nil {
		if err := domain.ValidatePassword(*input.Password); err != nil {
			return nil, mapError(err)
		}
		hash, err := s.hasher.Hash(*input.Password)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = hash
	}
	return s.repo.Update(ctx, user)
}

// PromoteToAdmin grants the admin role to an existing account.
func (s *Service) PromoteToAdmin(ctx context.Context, email string) (*domain.User, error) {
	user, err := s.repo.GetByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}
	if err := user.AssignRole(domain.RoleAdmin); err != nil {
		return nil, mapError(err)
	}
	return s.repo.Update(ctx, user)
}

var _ ports.Service = (*Service)(nil)
