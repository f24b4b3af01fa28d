package security

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Apurer/cell-tech-api/internal/domains/users/domain"
	"github.com/Apurer/cell-tech-api/internal/domains/users/ports"
)

var (
	_ ports.TokenIssuer   = (*JWTAuthority)(nil)
	_ ports.TokenVerifier = (*JWTAuthority)(nil)
)

// JWTAuthority issues and verifies HS256 access tokens.
type JWTAuthority struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

type accessClaims struct {
	Email string `json:"email"`
	Role  string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

// NewJWTAuthority requires a non-empty secret and positive ttl.
func NewJWTAuthority(secret string, ttl time.Duration, issuer string) (*JWTAuthority, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is empty")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("jwt ttl must be positive, got %s", ttl)
	}
	return &JWTAuthority{secret: []byte(secret), ttl: ttl, issuer: issuer, now: time.Now}, nil
}

// WithClock overrides the time source, mainly for tests.
func (a *JWTAuthority) WithClock(now func() time.Time) *JWTAuthority {
	if now != nil {
		a.now = now
	}
	return a
}

func (a *JWTAuthority) Issue(claims ports.Claims) (string, time.Time, error) {
	issuedAt := a.now().UTC()
	expiresAt := issuedAt.Add(a.ttl)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims{
		Email: claims.Email,
		Role:  string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   claims.UserID.String(),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})
	signed, err := token.SignedString(a.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (a *JWTAuthority) Verify(raw string) (ports.Claims, error) {
	var claims accessClaims
	parserOpts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		parserOpts = append(parserOpts, jwt.WithIssuer(a.issuer))
	}
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, parserOpts...)
	if err != nil {
		return ports.Claims{}, fmt.Errorf("%w: %w", ports.ErrInvalidToken, err)
	}
	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return ports.Claims{}, fmt.Errorf("%w: subject: %w", ports.ErrInvalidToken, err)
	}
	out := ports.Claims{UserID: userID, Email: claims.Email, Role: domain.Role(claims.Role)}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
