package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role grants access levels inside the dashboard.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Status marks whether an account may sign in.
type Status string

const (
	StatusActive  Status = "active"
	StatusBlocked Status = "blocked"
)

// MinPasswordLength is the shortest accepted plain-text password.
const MinPasswordLength = 6

var (
	ErrEmptyName     = errors.New("name is required")
	ErrInvalidEmail  = errors.New("email must contain '@'")
	ErrWeakPassword  = errors.New("password must be at least 6 characters")
	ErrInvalidRole   = errors.New("role must be user or admin")
	ErrInvalidStatus = errors.New("status must be active or blocked")
)

// User is an account able to sign in and record sales.
// PasswordHash never leaves the users context.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Role         Role
	Status       Status
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser builds an active user with the default role.
func NewUser(name, email string) (*User, error) {
	user := &User{Role: RoleUser, Status: StatusActive}
	if err := user.Rename(name); err != nil {
		return nil, err
	}
	if err := user.ChangeEmail(email); err != nil {
		return nil, err
	}
	return user, nil
}

// NormalizeEmail trims and lower-cases an address so lookups are case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidatePassword checks the plain-text password before hashing.
func ValidatePassword(password string) error {
	if len(strings.TrimSpace(password)) < MinPasswordLength {
		return ErrWeakPassword
	}
	return nil
}

// Rename trims and validates the display name.
func (u *User) Rename(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	u.Name = name
	return nil
}

// ChangeEmail normalizes and validates the address.
func (u *User) ChangeEmail(email string) error {
	email = NormalizeEmail(email)
	if !strings.Contains(email, "@") || strings.HasPrefix(email, "@") || strings.HasSuffix(email, "@") {
		return ErrInvalidEmail
	}
	u.Email = email
	return nil
}

// AssignRole switches the access level.
func (u *User) AssignRole(role Role) error {
	switch role {
	case RoleUser, RoleAdmin:
		u.Role = role
		return nil
	default:
		return ErrInvalidRole
	}
}

// UpdateStatus activates or blocks the account.
func (u *User) UpdateStatus(status Status) error {
	switch status {
	case StatusActive, StatusBlocked:
		u.Status = status
		return nil
	default:
		return ErrInvalidStatus
	}
}

// Blocked reports whether sign-in is refused.
func (u *User) Blocked() bool {
	return u.Status == StatusBlocked
}

// Validate re-applies core invariants for persistence.
func (u *User) Validate() error {
	if err := u.Rename(u.Name); err != nil {
		return err
	}
	if err := u.ChangeEmail(u.Email); err != nil {
		return err
	}
	if u.Role == "" {
		u.Role = RoleUser
	}
	if err := u.AssignRole(u.Role); err != nil {
		return err
	}
	if u.Status == "" {
		u.Status = StatusActive
	}
	return u.UpdateStatus(u.Status)
}
