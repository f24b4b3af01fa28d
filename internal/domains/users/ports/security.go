package ports

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/users/domain"
)

var (
	ErrPasswordMismatch = errors.New("password is wrong")
	ErrInvalidToken     = errors.New("invalid or expired token")
)

// PasswordHasher is the one-way hashing collaborator.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Compare(hash, plain string) error
}

// Claims is what a verified access token asserts about its bearer.
type Claims struct {
	UserID    uuid.UUID
	Email     string
	Role      domain.Role
	ExpiresAt time.Time
}

// TokenIssuer signs access tokens.
type TokenIssuer interface {
	Issue(claims Claims) (token string, expiresAt time.Time, err error)
}

// TokenVerifier checks bearer tokens.
type TokenVerifier interface {
	Verify(token string) (Claims, error)
}
