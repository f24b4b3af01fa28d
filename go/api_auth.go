package celltechserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/http/mapper"
	usersports "github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/cell-tech-api/internal/shared/errors"
)

// AuthAPI serves registration and login.
type AuthAPI struct {
	service   usersports.Service
	responder *apierrors.ChainedResponder
}

func NewAuthAPI(service usersports.Service, responder *apierrors.ChainedResponder) AuthAPI {
	return AuthAPI{service: service, responder: responder}
}

// Post /api/v1/auth/register
func (api *AuthAPI) Register(c *gin.Context) {
	var payload userhttpmapper.RegisterRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrValidation.WithCause(err))
		return
	}
	user, err := api.service.Register(c.Request.Context(), userhttpmapper.ToRegisterInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusCreated, "Registered successfully", userhttpmapper.FromDomainUser(user))
}

// Post /api/v1/auth/login
func (api *AuthAPI) Login(c *gin.Context) {
	var payload userhttpmapper.LoginRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrValidation.WithCause(err))
		return
	}
	session, err := api.service.Login(c.Request.Context(), userhttpmapper.ToLoginInput(payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusOK, "Logged in successfully", userhttpmapper.FromSession(session))
}
