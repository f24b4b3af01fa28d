// Package celltechserver is the gin transport of the Cell Tech API.
package celltechserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	usersports "github.com/Apurer/cell-tech-api/internal/domains/users/ports"
	apierrors "github.com/Apurer/cell-tech-api/internal/shared/errors"
)

const basePath = "/api/v1"

// Route is the information for every URI.
type Route struct {
	// Name is the name of this Route.
	Name string
	// Method is the string for the HTTP method. ex) GET, POST etc..
	Method string
	// Pattern is the pattern of the URI, relative to /api/v1.
	Pattern string
	// Public routes skip bearer token verification.
	Public bool
	// HandlerFunc is the handler function of this route.
	HandlerFunc gin.HandlerFunc
}

// ApiHandleFunctions groups the handlers of every API section.
type ApiHandleFunctions struct {
	AuthAPI     AuthAPI
	UsersAPI    UsersAPI
	ProductsAPI ProductsAPI
	SalesAPI    SalesAPI
}

// RouterOptions carries the cross-cutting pieces of the router.
type RouterOptions struct {
	Verifier       usersports.TokenVerifier
	Responder      *apierrors.ChainedResponder
	AllowedOrigins []string
	// Middleware runs before CORS, e.g. tracing and request metrics.
	Middleware []gin.HandlerFunc
	// Extra routes mounted at the root, e.g. /metrics.
	Extra []Route
}

// NewRouter returns a new router.
func NewRouter(handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	return NewRouterWithGinEngine(gin.New(), handleFunctions, opts)
}

// NewRouterWithGinEngine adds the routes to an existing engine.
func NewRouterWithGinEngine(router *gin.Engine, handleFunctions ApiHandleFunctions, opts RouterOptions) *gin.Engine {
	responder := opts.Responder
	if responder == nil {
		responder = NewResponder(nil)
	}
	router.Use(gin.Recovery())
	router.Use(opts.Middleware...)
	router.Use(CORS(opts.AllowedOrigins))
	router.NoRoute(func(c *gin.Context) {
		responder.Respond(c, apierrors.ErrNotFound.WithMessage("Route not found!"))
	})

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to Cell Tech!")
	})
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	for _, route := range opts.Extra {
		router.Handle(route.Method, route.Pattern, route.HandlerFunc)
	}

	api := router.Group(basePath)
	authenticate := Authenticate(opts.Verifier, responder)
	for _, route := range getRoutes(handleFunctions) {
		if route.HandlerFunc == nil {
			route.HandlerFunc = DefaultHandleFunc
		}
		handlers := []gin.HandlerFunc{route.HandlerFunc}
		if !route.Public {
			handlers = append([]gin.HandlerFunc{authenticate}, handlers...)
		}
		api.Handle(route.Method, route.Pattern, handlers...)
	}
	return router
}

// DefaultHandleFunc answers routes that have no handler wired.
func DefaultHandleFunc(c *gin.Context) {
	c.String(http.StatusNotImplemented, "501 not implemented")
}

func getRoutes(handleFunctions ApiHandleFunctions) []Route {
	return []Route{
		{"Register", http.MethodPost, "/auth/register", true, handleFunctions.AuthAPI.Register},
		{"Login", http.MethodPost, "/auth/login", true, handleFunctions.AuthAPI.Login},
		{"ListUsers", http.MethodGet, "/users", false, handleFunctions.UsersAPI.ListUsers},
		{"PatchUser", http.MethodPatch, "/user/:id", false, handleFunctions.UsersAPI.PatchUser},
		{"ListProducts", http.MethodGet, "/products", false, handleFunctions.ProductsAPI.ListProducts},
		{"GetProduct", http.MethodGet, "/product/:id", false, handleFunctions.ProductsAPI.GetProduct},
		{"CreateProduct", http.MethodPost, "/product", false, handleFunctions.ProductsAPI.CreateProduct},
		{"PatchProduct", http.MethodPatch, "/product/:id", false, handleFunctions.ProductsAPI.PatchProduct},
		{"DeleteProduct", http.MethodDelete, "/product/:id", false, handleFunctions.ProductsAPI.DeleteProduct},
		{"DeleteProducts", http.MethodDelete, "/products", false, handleFunctions.ProductsAPI.DeleteProducts},
		{"ListSales", http.MethodGet, "/sales", false, handleFunctions.SalesAPI.ListSales},
		{"RecordSale", http.MethodPost, "/sale", false, handleFunctions.SalesAPI.RecordSale},
		{"SalesStatistics", http.MethodGet, "/statistics/sales", false, handleFunctions.SalesAPI.SalesStatistics},
	}
}
