package application

import (
	"errors"
	"fmt"

	"github.com/Apurer/cell-tech-api/internal/domains/sales/domain"
)

// ErrInvalidInput signals the sale request violated a domain invariant.
var ErrInvalidInput = errors.New("invalid sale input")

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrMissingSaleID) ||
		errors.Is(err, domain.ErrMissingProduct) ||
		errors.Is(err, domain.ErrMissingSeller) ||
		errors.Is(err, domain.ErrInvalidQuantity) ||
		errors.Is(err, domain.ErrNegativeAmount) ||
		errors.Is(err, domain.ErrMissingDate) ||
		errors.Is(err, domain.ErrWindowTooLarge) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
