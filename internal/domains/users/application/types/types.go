package types

import (
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/users/domain"
)

// RegisterInput carries the sign-up form. Role and status are not client controlled.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// LoginInput carries credentials.
type LoginInput struct {
	Email    string
	Password string
}

// Session is returned after a successful login.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// PatchUserInput applies only the non-nil fields.
type PatchUserInput struct {
	ID       uuid.UUID
	Name     *string
	Email    *string
	Password *string
	Role     *string
	Status   *string
}
