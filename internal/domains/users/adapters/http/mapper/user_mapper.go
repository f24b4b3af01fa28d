package mapper

import (
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/users/application/types"
	userdomain "github.com/Apurer/cell-tech-api/internal/domains/users/domain"
)

// User is the public account shape. It has no password field.
type User struct {
	ID        string    `json:"_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse mirrors what the dashboard stores after sign-in.
type LoginResponse struct {
	UserID    string    `json:"userId"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// PatchUserRequest carries optional fields; absent fields are left untouched.
type PatchUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
	Status   *string `json:"status"`
}

func ToRegisterInput(req RegisterRequest) types.RegisterInput {
	return types.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password}
}

func ToLoginInput(req LoginRequest) types.LoginInput {
	return types.LoginInput{Email: req.Email, Password: req.Password}
}

func ToPatchInput(id uuid.UUID, req PatchUserRequest) types.PatchUserInput {
	return types.PatchUserInput{
		ID:       id,
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
		Status:   req.Status,
	}
}

// FromDomainUser converts a domain user to the transport representation.
func FromDomainUser(user *userdomain.User) User {
	if user == nil {
		return User{}
	}
	return User{
		ID:        user.ID.String(),
		Name:      user.Name,
		Email:     user.Email,
		Role:      string(user.Role),
		Status:    string(user.Status),
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

func FromDomainUsers(users []*userdomain.User) []User {
	out := make([]User, 0, len(users))
	for _, user := range users {
		out = append(out, FromDomainUser(user))
	}
	return out
}

func FromSession(session *types.Session) LoginResponse {
	if session == nil || session.User == nil {
		return LoginResponse{}
	}
	return LoginResponse{
		UserID:    session.User.ID.String(),
		Name:      session.User.Name,
		Email:     session.User.Email,
		Role:      string(session.User.Role),
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt,
	}
}
