package celltechserver

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	productsmemory "github.com/Apurer/cell-tech-api/internal/domains/products/adapters/memory"
	productsapp "github.com/Apurer/cell-tech-api/internal/domains/products/application"
	salesmemory "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/memory"
	salesworkflows "github.com/Apurer/cell-tech-api/internal/domains/sales/adapters/workflows"
	salesapp "github.com/Apurer/cell-tech-api/internal/domains/sales/application"
	usersmemory "github.com/Apurer/cell-tech-api/internal/domains/users/adapters/memory"
	"github.com/Apurer/cell-tech-api/internal/domains/users/adapters/security"
	usersapp "github.com/Apurer/cell-tech-api/internal/domains/users/application"
)

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Content json.RawMessage `json:"content"`
	Summary json.RawMessage `json:"summary"`
}

type harness struct {
	router *gin.Engine
}

func newHarness(t *testing.T) harness {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hasher, err := security.NewBcryptHasher(4)
	require.NoError(t, err)
	authority, err := security.NewJWTAuthority("test-secret", time.Hour, "cell-tech-api")
	require.NoError(t, err)

	userRepo := usersmemory.NewRepository()
	productRepo := productsmemory.NewRepository()
	users := usersapp.NewService(userRepo, hasher, authority)
	products := productsapp.NewService(productRepo)
	sales := salesapp.NewService(salesmemory.NewRepository(productRepo, userRepo))

	responder := NewResponder(nil)
	router := NewRouter(ApiHandleFunctions{
		AuthAPI:     NewAuthAPI(users, responder),
		UsersAPI:    NewUsersAPI(users, responder),
		ProductsAPI: NewProductsAPI(products, responder),
		SalesAPI:    NewSalesAPI(sales, salesworkflows.NewInlineSaleWorkflows(sales), responder),
	}, RouterOptions{Verifier: authority, Responder: responder, AllowedOrigins: []string{"*"}})
	return harness{router: router}
}

func (h harness) do(t *testing.T, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)
	var env envelope
	if rec.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}
	return rec, env
}

// signUp registers and logs in a seller, returning its token and id.
func (h harness) signUp(t *testing.T, email string) (string, string) {
	t.Helper()
	rec, _ := h.do(t, http.MethodPost, "/api/v1/auth/register", "", gin.H{"name": "Seller", "email": email, "password": "secret123"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, env := h.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	var session struct {
		UserID string `json:"userId"`
		Token  string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Content, &session))
	return session.Token, session.UserID
}

func (h harness) addProduct(t *testing.T, token string, body gin.H) string {
	t.Helper()
	rec, env := h.do(t, http.MethodPost, "/api/v1/product", token, body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var product struct {
		ID string `json:"_id"`
	}
	require.NoError(t, json.Unmarshal(env.Content, &product))
	return product.ID
}

func TestRoot_Welcome(t *testing.T) {
	h := newHarness(t)
	rec, _ := h.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Cell Tech!", rec.Body.String())

	rec, _ = h.do(t, http.MethodGet, "/healthz", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuth_RegisterAndLogin(t *testing.T) {
	h := newHarness(t)
	body := gin.H{"name": "Alice", "email": " Alice@CellTech.io ", "password": "secret123"}

	rec, env := h.do(t, http.MethodPost, "/api/v1/auth/register", "", body)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.True(t, env.Success)
	assert.Equal(t, "Registered successfully", env.Message)
	assert.NotContains(t, string(env.Content), "password")
	assert.Contains(t, string(env.Content), `"email":"alice@celltech.io"`)
	assert.Contains(t, string(env.Content), `"role":"user"`)

	rec, env = h.do(t, http.MethodPost, "/api/v1/auth/register", "", body)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.False(t, env.Success)
	assert.Equal(t, "Already Registered with this Email!", env.Message)

	rec, env = h.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "nobody@celltech.io", "password": "secret123"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "User not found!", env.Message)

	rec, env = h.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "alice@celltech.io", "password": "wrong-one"})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Password is wrong!", env.Message)

	rec, env = h.do(t, http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "alice@celltech.io", "password": "secret123"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Logged in successfully", env.Message)
	assert.Contains(t, string(env.Content), `"token":"`)
}

func TestAuth_MissingAndInvalidToken(t *testing.T) {
	h := newHarness(t)

	rec, env := h.do(t, http.MethodGet, "/api/v1/products", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Unauthorized User", env.Message)

	rec, env = h.do(t, http.MethodGet, "/api/v1/products", "not-a-jwt", nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden Access", env.Message)
}

func TestProducts_Lifecycle(t *testing.T) {
	h := newHarness(t)
	token, _ := h.signUp(t, "seller@celltech.io")

	id := h.addProduct(t, token, gin.H{"name": "iPhone 15", "price": 999.5, "stock": 5, "brand": "Apple", "status": false})

	rec, env := h.do(t, http.MethodPost, "/api/v1/product", token, gin.H{"name": "IPHONE 15", "price": 1, "stock": 1})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Product name already exists!", env.Message)

	rec, env = h.do(t, http.MethodGet, "/api/v1/product/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Content), `"status":true`)
	assert.Contains(t, string(env.Content), `"price":999.5`)

	rec, env = h.do(t, http.MethodPatch, "/api/v1/product/"+id, token, gin.H{"stock": 0})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product Updated successfully!", env.Message)
	assert.Contains(t, string(env.Content), `"status":false`)

	rec, _ = h.do(t, http.MethodGet, "/api/v1/products?status=true", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "iPhone 15")

	rec, env = h.do(t, http.MethodGet, "/api/v1/product/not-an-id", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	rec, env = h.do(t, http.MethodDelete, "/api/v1/product/"+id, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Product Deleted successfully!", env.Message)

	rec, env = h.do(t, http.MethodGet, "/api/v1/product/"+id, token, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Product not found!", env.Message)
}

func TestProducts_BulkDeleteRejectsMalformedIDs(t *testing.T) {
	h := newHarness(t)
	token, _ := h.signUp(t, "seller@celltech.io")
	first := h.addProduct(t, token, gin.H{"name": "Galaxy S24", "price": 799, "stock": 3})
	second := h.addProduct(t, token, gin.H{"name": "Pixel 8", "price": 599, "stock": 3})

	rec, _ := h.do(t, http.MethodDelete, "/api/v1/products?ids="+first+",garbage", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = h.do(t, http.MethodGet, "/api/v1/product/"+first, token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env := h.do(t, http.MethodDelete, "/api/v1/products?ids="+first+","+second, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deletedCount":2}`, string(env.Content))
}

func TestSales_RecordListAndStatistics(t *testing.T) {
	h := newHarness(t)
	token, sellerID := h.signUp(t, "seller@celltech.io")
	productID := h.addProduct(t, token, gin.H{"name": "iPhone 15", "price": 1000, "stock": 5})

	rec, env := h.do(t, http.MethodPost, "/api/v1/sale", token, gin.H{"productId": productID, "quantitySold": 2, "totalAmount": 2000})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "Sale added successfully!", env.Message)
	assert.Contains(t, string(env.Content), `"sellerId":"`+sellerID+`"`)

	rec, env = h.do(t, http.MethodPost, "/api/v1/sale", token, gin.H{"productId": productID, "quantitySold": 4, "totalAmount": 4000})
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "Quantity sold is more than available stock!", env.Message)

	rec, env = h.do(t, http.MethodGet, "/api/v1/product/"+productID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, string(env.Content), `"stock":3`)
	assert.Contains(t, string(env.Content), `"sold":2`)

	rec, env = h.do(t, http.MethodPost, "/api/v1/sale", token, gin.H{"productId": "bogus", "quantitySold": 1, "totalAmount": 1})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)

	rec, env = h.do(t, http.MethodGet, "/api/v1/sales?days=7&userId="+sellerID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []struct {
		ProductID string `json:"productId"`
		Seller    map[string]any
		Product   map[string]any
	}
	require.NoError(t, json.Unmarshal(env.Content, &listed))
	require.Len(t, listed, 1)
	assert.Equal(t, productID, listed[0].ProductID)
	assert.NotContains(t, listed[0].Seller, "password")
	assert.Equal(t, "iPhone 15", listed[0].Product["name"])

	rec, env = h.do(t, http.MethodGet, "/api/v1/statistics/sales?days=3", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var series []struct {
		Date            string  `json:"date"`
		TotalAmountSold float64 `json:"totalAmountSold"`
	}
	require.NoError(t, json.Unmarshal(env.Content, &series))
	require.Len(t, series, 3)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), series[0].Date)
	assert.InDelta(t, 2000, series[0].TotalAmountSold, 0.001)
	assert.Zero(t, series[1].TotalAmountSold)
	assert.JSONEq(t, `{"windowSizeInDays":3,"totalAmountSold":2000}`, string(env.Summary))
}

func TestSales_StatisticsDefaultsToOneDay(t *testing.T) {
	h := newHarness(t)
	token, _ := h.signUp(t, "seller@celltech.io")

	rec, env := h.do(t, http.MethodGet, "/api/v1/statistics/sales", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var series []map[string]any
	require.NoError(t, json.Unmarshal(env.Content, &series))
	assert.Len(t, series, 1)
}

func TestSales_StatisticsRejectsOversizedWindow(t *testing.T) {
	h := newHarness(t)
	token, _ := h.signUp(t, "seller@celltech.io")

	rec, env := h.do(t, http.MethodGet, "/api/v1/statistics/sales?days=5000", token, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, env.Success)
	assert.Contains(t, env.Message, "window is too large")
}

func TestCORS_Preflight(t *testing.T) {
	h := newHarness(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/v1/products", nil)
	req.Header.Set("Origin", "https://dashboard.celltech.io")
	rec := httptest.NewRecorder()
	h.router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORS_RestrictedOrigins(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(CORS([]string{"https://dashboard.celltech.io"}))
	router.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	req := httptest.NewRequest(http.MethodOptions, "/ping", nil)
	req.Header.Set("Origin", "https://dashboard.celltech.io")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "https://dashboard.celltech.io", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
