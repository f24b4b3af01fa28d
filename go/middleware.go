package celltechserver

import (
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	usersports "github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/cell-tech-api/internal/shared/errors"
)

const claimsKey = "celltech.claims"

// Authenticate requires a bearer token. A missing header is 401, a token that fails verification is 403.
func Authenticate(verifier usersports.TokenVerifier, responder *apierrors.ChainedResponder) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		scheme, token, found := strings.Cut(header, " ")
		if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
			responder.Respond(c, apierrors.ErrUnauthorized)
			c.Abort()
			return
		}
		claims, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			responder.Respond(c, apierrors.ErrForbidden.WithCause(err))
			c.Abort()
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

// CallerFrom returns the claims stored by Authenticate.
func CallerFrom(c *gin.Context) (usersports.Claims, bool) {
	value, ok := c.Get(claimsKey)
	if !ok {
		return usersports.Claims{}, false
	}
	claims, ok := value.(usersports.Claims)
	return claims, ok
}

// CORS allows the configured origins and answers preflight requests. "*" or an empty list allows any origin.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	config := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders: []string{"Authorization", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(allowedOrigins) == 0 || slices.Contains(allowedOrigins, "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = allowedOrigins
	}
	return cors.New(config)
}
