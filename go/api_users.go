package celltechserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	userhttpmapper "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/http/mapper"
	usersports "github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/cell-tech-api/internal/shared/errors"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"
)

// UsersAPI serves the account directory.
type UsersAPI struct {
	service   usersports.Service
	responder *apierrors.ChainedResponder
}

func NewUsersAPI(service usersports.Service, responder *apierrors.ChainedResponder) UsersAPI {
	return UsersAPI{service: service, responder: responder}
}

// Get /api/v1/users
func (api *UsersAPI) ListUsers(c *gin.Context) {
	users, err := api.service.ListUsers(c.Request.Context())
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusOK, "Data Found!", userhttpmapper.FromDomainUsers(users))
}

// Patch /api/v1/user/:id
func (api *UsersAPI) PatchUser(c *gin.Context) {
	id, err := ref.Parse(c.Param("id"))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	var payload userhttpmapper.PatchUserRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		api.responder.Respond(c, apierrors.ErrValidation.WithCause(err))
		return
	}
	user, err := api.service.PatchUser(c.Request.Context(), userhttpmapper.ToPatchInput(id, payload))
	if err != nil {
		api.responder.RespondError(c, err)
		return
	}
	api.responder.Success(c, http.StatusOK, "User Updated successfully!", userhttpmapper.FromDomainUser(user))
}
