package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/cell-tech-api/internal/domains/users/domain"
)

var (
	// ErrInvalidInput signals the request violated a domain invariant.
	ErrInvalidInput = errors.New("invalid user input")
	// ErrAuthentication wraps login failures (unknown email or wrong password).
	ErrAuthentication = errors.New("authentication failed")
	// ErrAccountBlocked is returned when a blocked user tries to sign in.
	ErrAccountBlocked = errors.New("account is blocked")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyName) ||
		errors.Is(err, domain.ErrInvalidEmail) ||
		errors.Is(err, domain.ErrWeakPassword) ||
		errors.Is(err, domain.ErrInvalidRole) ||
		errors.Is(err, domain.ErrInvalidStatus) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}

func authError(cause error) error {
	if cause == nil {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrAuthentication, cause)
}

