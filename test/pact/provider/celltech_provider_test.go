//go:build pact
// +build pact

package provider_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	pacttest "github.com/Apurer/cell-tech-api/test/pact"

	celltechserver "github.com/Apurer/cell-tech-api/go"
	productsmemory "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/memory"
	productsobs "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/observability"
	productsapp "github.com/Apurer/cell-tech-api/internal/domains/products/application"
	productdomain "github.com/Apurer/cell-tech-api/internal/domains/products/domain"
	salesmemory "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/memory"
	salesobs "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/observability"
	salesworkflows "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/workflows"
	salesapp "github.com/Apurer/cell-tech-api/internal/domains/sales/application"
	salestypes "github.com/Apurer/cell-tech-api/internal/domains/sales/application/types"
	usersmemory "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/memory"
	usersobs "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/observability"
	"github.com/Apurer/cell-tech-api/internal/domains/users/adapters/security"
	usersapp "github.com/Apurer/cell-tech-api/internal/domains/users/application"
	usertypes "github.com/Apurer/cell-tech-api/internal/domains/users/application/types"
	"github.com/Apurer/cell-tech-api/internal/shared/ref"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/pact-foundation/pact-go/v2/models"
	pactprovider "github.com/pact-foundation/pact-go/v2/provider"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestCellTechProviderPact(t *testing.T) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	app := newContractProviderApp(t)
	pactFile := filepath.ToSlash(pacttest.PactFile(t))
	if _, err := os.Stat(pactFile); errors.Is(err, os.ErrNotExist) {
		t.Fatalf("pact file not found at %s - run the pact consumer tests first", pactFile)
	} else {
		require.NoError(t, err)
	}

	verifier := pactprovider.NewVerifier()
	stateHandlers := models.StateHandlers{
		pacttest.StateSellerExists: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
		pacttest.StateSalesRecorded: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t, pacttest.ProductID, 10)
				app.seedSale(t, pacttest.ProductID, 2, decimal.RequireFromString("1998.00"))
			}
			return nil, nil
		},
		pacttest.StateProductLowOnStock: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			if setup {
				app.seedProduct(t, pacttest.ProductID, 1)
			}
			return nil, nil
		},
		pacttest.StateProductMissing: func(setup bool, _ models.ProviderState) (models.ProviderStateResponse, error) {
			app.reset(t)
			return nil, nil
		},
	}

	err := verifier.VerifyProvider(t, pactprovider.VerifyRequest{
		ProviderBaseURL: app.server.URL,
		Provider:        pacttest.ProviderName,
		PactFiles:       []string{pactFile},
		StateHandlers:   stateHandlers,
		RequestFilter:   app.swapToken,
		BeforeEach: func() error {
			app.reset(t)
			return nil
		},
	})
	require.NoError(t, err)
}

// contractProviderApp serves a fresh in-memory graph per provider state.
type contractProviderApp struct {
	server *httptest.Server

	mu       sync.RWMutex
	handler  http.Handler
	token    string
	sellerID uuid.UUID
	products *productsmemory.Repository
	sales    *salesapp.Service
}

func newContractProviderApp(t testing.TB) *contractProviderApp {
	t.Helper()
	app := &contractProviderApp{}
	app.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		app.mu.RLock()
		h := app.handler
		app.mu.RUnlock()
		h.ServeHTTP(w, r)
	}))
	t.Cleanup(app.server.Close)
	app.reset(t)
	return app
}

func (a *contractProviderApp) reset(t testing.TB) {
	t.Helper()
	ctx := context.Background()

	hasher, err := security.NewBcryptHasher(4)
	require.NoError(t, err)
	authority, err := security.NewJWTAuthority("pact-secret", time.Hour, pacttest.ProviderName)
	require.NoError(t, err)

	userRepo := usersmemory.NewRepository()
	productRepo := productsmemory.NewRepository()
	core := salesapp.NewService(salesmemory.NewRepository(productRepo, userRepo))

	users := usersobs.New(usersapp.NewService(userRepo, hasher, authority))
	products := productsobs.New(productsapp.NewService(productRepo))
	sales := salesobs.New(core)

	_, err = users.Register(ctx, usertypes.RegisterInput{
		Name:     pacttest.SellerName,
		Email:    pacttest.SellerEmail,
		Password: pacttest.SellerPassword,
	})
	require.NoError(t, err)
	session, err := users.Login(ctx, usertypes.LoginInput{Email: pacttest.SellerEmail, Password: pacttest.SellerPassword})
	require.NoError(t, err)

	responder := celltechserver.NewResponder(nil)
	handlers := celltechserver.ApiHandleFunctions{
		AuthAPI:     celltechserver.NewAuthAPI(users, responder),
		UsersAPI:    celltechserver.NewUsersAPI(users, responder),
		ProductsAPI: celltechserver.NewProductsAPI(products, responder),
		SalesAPI:    celltechserver.NewSalesAPI(sales, salesworkflows.NewInlineSaleWorkflows(sales), responder),
	}
	router := celltechserver.NewRouter(handlers, celltechserver.RouterOptions{
		Verifier:  authority,
		Responder: responder,
	})

	a.mu.Lock()
	defer a.mu.Unlock()
	a.handler = router
	a.token = "Bearer " + session.Token
	a.sellerID = session.User.ID
	a.products = productRepo
	a.sales = core
}

func (a *contractProviderApp) seedProduct(t testing.TB, id string, stock int64) {
	t.Helper()
	productID, err := ref.Parse(id)
	require.NoError(t, err)
	product, err := productdomain.NewProduct(pacttest.ProductName, decimal.RequireFromString("999.00"), stock, productdomain.Specs{})
	require.NoError(t, err)
	product.ID = productID

	a.mu.RLock()
	repo := a.products
	a.mu.RUnlock()
	_, err = repo.Create(context.Background(), product)
	require.NoError(t, err)
}

func (a *contractProviderApp) seedSale(t testing.TB, productID string, qty int64, total decimal.Decimal) {
	t.Helper()
	id, err := ref.Parse(productID)
	require.NoError(t, err)

	a.mu.RLock()
	service, seller := a.sales, a.sellerID
	a.mu.RUnlock()
	_, err = service.RecordSale(context.Background(), salestypes.RecordSaleInput{
		SaleID:       ref.New(),
		ProductID:    id,
		SellerID:     seller,
		QuantitySold: qty,
		TotalAmount:  total,
	})
	require.NoError(t, err)
}

// swapToken replaces the consumer's example bearer with one issued for the seeded seller.
func (a *contractProviderApp) swapToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			a.mu.RLock()
			r.Header.Set("Authorization", a.token)
			a.mu.RUnlock()
		}
		next.ServeHTTP(w, r)
	})
}
