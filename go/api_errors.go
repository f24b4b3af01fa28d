package celltechserver

import (
	"errors"
	"log/slog"

	productsapp "github.com/Apurer/cell-tech-api/internal/domains/products/application"
	productsports "github.com/Apurer/cell-tech-api/internal/domains/products/ports"
	salesapp "github.com/Apurer/cell-tech-api/internal/domains/sales/application"
	salesports "github.com/Apurer/cell-tech-api/internal/domains/sales/ports"
	usersapp "github.com/Apurer/cell-tech-api/internal/domains/users/application"
	usersports "github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	"github.com/Apurer/cell-tech-api/internal/shared/calendar"
	apierrors "github.com/Apurer/cell-tech-api/internal/shared/errors"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

const (
	msgUserExists        = "Already Registered with this Email!"
	msgUserNotFound      = "User not found!"
	msgPasswordWrong     = "Password is wrong!"
	msgProductExists     = "Product name already exists!"
	msgProductNotFound   = "Product not found!"
	msgInsufficientStock = "Quantity sold is more than available stock!"
)

// NewResponder builds the responder shared by every handler.
func NewResponder(logger *slog.Logger) *apierrors.ChainedResponder {
	return apierrors.NewChainedResponder(logger,
		mapUserError,
		mapProductError,
		mapSaleError,
		mapInputError,
	)
}

func mapUserError(err error) (apierrors.APIError, bool) {
	switch {
	case errors.Is(err, usersports.ErrDuplicateEmail):
		return apierrors.ErrConflict.WithMessage(msgUserExists), true
	case errors.Is(err, usersapp.ErrAuthentication) && errors.Is(err, usersports.ErrPasswordMismatch):
		return apierrors.ErrConflict.WithMessage(msgPasswordWrong), true
	case errors.Is(err, usersapp.ErrAuthentication):
		return apierrors.ErrConflict.WithMessage(msgUserNotFound), true
	case errors.Is(err, usersapp.ErrAccountBlocked), errors.Is(err, usersports.ErrInvalidToken):
		return apierrors.ErrForbidden, true
	case errors.Is(err, usersports.ErrNotFound):
		return apierrors.ErrNotFound.WithMessage(msgUserNotFound), true
	case errors.Is(err, usersapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithMessage(err.Error()), true
	}
	return apierrors.APIError{}, false
}

func mapProductError(err error) (apierrors.APIError, bool) {
	switch {
	case errors.Is(err, productsports.ErrDuplicateName):
		return apierrors.ErrConflict.WithMessage(msgProductExists), true
	case errors.Is(err, productsports.ErrNotFound):
		return apierrors.ErrNotFound.WithMessage(msgProductNotFound), true
	case errors.Is(err, productsapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithMessage(err.Error()), true
	}
	return apierrors.APIError{}, false
}

func mapSaleError(err error) (apierrors.APIError, bool) {
	switch {
	case errors.Is(err, salesports.ErrInsufficientStock):
		return apierrors.ErrConflict.WithMessage(msgInsufficientStock), true
	case errors.Is(err, salesports.ErrProductNotFound):
		return apierrors.ErrNotFound.WithMessage(msgProductNotFound), true
	case errors.Is(err, salesapp.ErrInvalidInput):
		return apierrors.ErrValidation.WithMessage(err.Error()), true
	}
	return apierrors.APIError{}, false
}

func mapInputError(err error) (apierrors.APIError, bool) {
	if errors.Is(err, ref.ErrInvalidReference) || errors.Is(err, calendar.ErrInvalidDate) {
		return apierrors.ErrValidation.WithMessage(err.Error()), true
	}
	return apierrors.APIError{}, false
}
