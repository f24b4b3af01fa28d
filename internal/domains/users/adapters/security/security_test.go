package security

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Apurer/cell-tech-api/internal/domains/users/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher, err := NewBcryptHasher(bcrypt.MinCost)
	require.NoError(t, err)

	hash, err := hasher.Hash("secret-123")
	require.NoError(t, err)
	require.NotEqual(t, "secret-123", hash)

	require.NoError(t, hasher.Compare(hash, "secret-123"))
	require.ErrorIs(t, hasher.Compare(hash, "secret-124"), ports.ErrPasswordMismatch)
}

func TestNewBcryptHasher_RejectsCost(t *testing.T) {
	_, err := NewBcryptHasher(bcrypt.MaxCost + 1)
	require.Error(t, err)
}

func TestJWTAuthority_IssueAndVerify(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	authority, err := NewJWTAuthority("s3cr3t", time.Hour, "cell-tech")
	require.NoError(t, err)
	authority.WithClock(func() time.Time { return now })

	userID := ref.New()
	token, expiresAt, err := authority.Issue(ports.Claims{UserID: userID, Email: "rahim@celltech.io", Role: domain.RoleAdmin})
	require.NoError(t, err)
	require.Equal(t, now.Add(time.Hour), expiresAt)

	claims, err := authority.Verify(token)
	require.NoError(t, err)
	require.Equal(t, userID, claims.UserID)
	require.Equal(t, "rahim@celltech.io", claims.Email)
	require.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestJWTAuthority_RejectsExpiredAndForeignTokens(t *testing.T) {
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)
	authority, err := NewJWTAuthority("s3cr3t", time.Minute, "cell-tech")
	require.NoError(t, err)
	authority.WithClock(func() time.Time { return now })

	token, _, err := authority.Issue(ports.Claims{UserID: ref.New(), Email: "a@b.c"})
	require.NoError(t, err)

	authority.WithClock(func() time.Time { return now.Add(2 * time.Minute) })
	_, err = authority.Verify(token)
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	other, err := NewJWTAuthority("another-secret", time.Minute, "cell-tech")
	require.NoError(t, err)
	other.WithClock(func() time.Time { return now })
	_, err = other.Verify(token)
	require.ErrorIs(t, err, ports.ErrInvalidToken)

	_, err = authority.Verify("not-a-token")
	require.ErrorIs(t, err, ports.ErrInvalidToken)
}
