package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	assistantapp "github.com/bayup/backend/internal/application/assistant"
	catalogapp "github.com/bayup/backend/internal/application/catalog"
	financeapp "github.com/bayup/backend/internal/application/finance"
	identityapp "github.com/bayup/backend/internal/application/identity"
	paymentapp "github.com/bayup/backend/internal/application/payment"
	salesapp "github.com/bayup/backend/internal/application/sales"
	studioapp "github.com/bayup/backend/internal/application/studio"
	uploadsapp "github.com/bayup/backend/internal/application/uploads"
	"github.com/bayup/backend/internal/infrastructure/auth"
	"github.com/bayup/backend/internal/infrastructure/cache"
	"github.com/bayup/backend/internal/infrastructure/config"
	"github.com/bayup/backend/internal/infrastructure/llm"
	"github.com/bayup/backend/internal/infrastructure/payment"
	"github.com/bayup/backend/internal/infrastructure/persistence"
	"github.com/bayup/backend/internal/infrastructure/storage"
	"github.com/bayup/backend/internal/interfaces/http/handler"
	"github.com/bayup/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type apiResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

type testAPI struct {
	t      *testing.T
	engine *gin.Engine
}

// newTestAPI wires the full API over an in-memory sqlite database
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	require.NoError(t, middleware.SetupValidator())

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	database, err := persistence.NewDatabase(&config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		SQLitePath:  fmt.Sprintf("file:%s?mode=memory&cache=shared", name),
		AutoMigrate: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close() })
	db := database.DB
	log := zap.NewNop()

	userRepo := persistence.NewGormUserRepository(db)
	planRepo := persistence.NewGormPlanRepository(db)

	productRepo := persistence.NewGormProductRepository(db)
	variantRepo := persistence.NewGormVariantRepository(db)
	collectionRepo := persistence.NewGormCollectionRepository(db)
	productTypeRepo := persistence.NewGormProductTypeRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)

	blacklist := auth.NewInMemoryTokenBlacklist()
	authService := identityapp.NewAuthService(userRepo, planRepo,
		auth.NewJWTService(config.JWTConfig{Secret: "test-secret-at-least-32-bytes-long", AccessTokenExpiration: time.Hour, Issuer: "bayup-test"}),
		log, identityapp.WithTokenBlacklist(blacklist))

	handlers := Handlers{
		Auth: handler.NewAuthHandler(authService),
		Staff: handler.NewStaffHandler(identityapp.NewStaffService(userRepo,
			persistence.NewGormCustomRoleRepository(db), blacklist, nil, nil, log)),
		Admin: handler.NewAdminHandler(identityapp.NewAdminService(planRepo, userRepo, orderRepo, log)),
		Product: handler.NewProductHandler(
			catalogapp.NewProductService(productRepo, variantRepo, collectionRepo, productTypeRepo, nil, log),
			catalogapp.NewCollectionService(collectionRepo, productTypeRepo, productRepo)),
		Sales: handler.NewSalesHandler(
			salesapp.NewOrderService(persistence.NewGormTransactionScope(db), orderRepo, userRepo, log),
			salesapp.NewShipmentService(persistence.NewGormShipmentRepository(db), orderRepo,
				persistence.NewGormCustomerRepository(db), persistence.NewGormActivityLogRepository(db))),
		Finance: handler.NewFinanceHandler(financeapp.NewLedgerService(
			persistence.NewGormExpenseRepository(db), persistence.NewGormIncomeRepository(db),
			persistence.NewGormReceivableRepository(db), persistence.NewGormPayrollRepository(db), log)),
		Settings: handler.NewSettingsHandler(financeapp.NewSettingsService(
			persistence.NewGormTaxRateRepository(db), persistence.NewGormShippingOptionRepository(db))),
		Studio: handler.NewStudioHandler(studioapp.NewStudioService(
			persistence.NewGormShopPageRepository(db), persistence.NewGormPageRepository(db), userRepo, productRepo, log)),
		Payment: handler.NewPaymentHandler(paymentapp.NewPaymentService(
			payment.NewWompiAdapter(&payment.WompiConfig{}, log), orderRepo, userRepo,
			cache.NewInMemoryIdempotencyStore(), nil, "", log)),
		Upload: handler.NewUploadHandler(uploadsapp.NewUploadService(storage.NewStubObjectStorage("https://cdn.test"), log)),
		Assistant: handler.NewAssistantHandler(assistantapp.NewAssistantService(
			llm.NewOpenAIClient(config.AssistantConfig{}, log), orderRepo, productRepo, variantRepo, userRepo, log)),
	}

	engine := gin.New()
	r := NewRouter(engine)
	RegisterAPI(r, handlers, Guards{
		Auth:       middleware.RequireAuth(authService, log),
		SuperAdmin: middleware.RequireSuperAdmin(),
	})
	r.Setup()
	return &testAPI{t: t, engine: engine}
}

func (a *testAPI) do(method, path, token string, body any) (int, apiResponse) {
	a.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(a.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, "/api/v1"+path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.engine.ServeHTTP(w, req)

	var resp apiResponse
	if w.Body.Len() > 0 {
		require.NoError(a.t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	}
	return w.Code, resp
}

func (a *testAPI) data(resp apiResponse, out any) {
	a.t.Helper()
	require.NoError(a.t, json.Unmarshal(resp.Data, out))
}

// signup registers a store and returns its access token
func (a *testAPI) signup(email string) string {
	a.t.Helper()
	status, _ := a.do(http.MethodPost, "/auth/register", "", gin.H{"email": email, "password": "secret123", "full_name": "Tienda " + email})
	require.Equal(a.t, http.StatusCreated, status)

	status, resp := a.do(http.MethodPost, "/auth/login", "", gin.H{"email": email, "password": "secret123"})
	require.Equal(a.t, http.StatusOK, status)
	var token identityapp.TokenResponse
	a.data(resp, &token)
	require.NotEmpty(a.t, token.AccessToken)
	return token.AccessToken
}

func (a *testAPI) createProduct(token string, stock int) catalogapp.ProductResponse {
	a.t.Helper()
	status, resp := a.do(http.MethodPost, "/products", token, gin.H{
		"name":     "Camiseta",
		"price":    "45000",
		"status":   "active",
		"variants": []gin.H{{"name": "M", "sku": "CAM-M", "stock": stock}},
	})
	require.Equal(a.t, http.StatusCreated, status, resp.Error)
	var product catalogapp.ProductResponse
	a.data(resp, &product)
	require.Len(a.t, product.Variants, 1)
	return product
}

func (a *testAPI) stock(token string, productID string) int {
	a.t.Helper()
	status, resp := a.do(http.MethodGet, "/products/"+productID, token, nil)
	require.Equal(a.t, http.StatusOK, status)
	var product catalogapp.ProductResponse
	a.data(resp, &product)
	return product.Variants[0].Stock
}

func TestAPI_OrderLifecycle(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("ana@tienda.co")
	product := api.createProduct(token, 5)
	variantID := product.Variants[0].ID

	status, resp := api.do(http.MethodPost, "/orders", token, gin.H{
		"customer_name":  "Carlos",
		"customer_email": "carlos@cliente.co",
		"items":          []gin.H{{"product_variant_id": variantID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, status, resp.Error)
	var order salesapp.OrderResponse
	api.data(resp, &order)
	assert.Equal(t, "pending", order.Status)
	assert.True(t, order.TotalPrice.Equal(decimal.NewFromInt(90000)), order.TotalPrice.String())
	assert.Equal(t, 3, api.stock(token, product.ID.String()))

	t.Run("insufficient stock leaves inventory untouched", func(t *testing.T) {
		status, resp := api.do(http.MethodPost, "/orders", token, gin.H{
			"items": []gin.H{{"product_variant_id": variantID, "quantity": 10}},
		})
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INSUFFICIENT_STOCK", resp.Error.Code)
		assert.Equal(t, 3, api.stock(token, product.ID.String()))
	})

	t.Run("webhook completes the order and is repeatable", func(t *testing.T) {
		for i := 0; i < 2; i++ {
			status, resp := api.do(http.MethodPost, "/payments/webhook?order_id="+order.ID.String(), "", nil)
			require.Equal(t, http.StatusOK, status, resp.Error)
			var result paymentapp.WebhookResult
			api.data(resp, &result)
			assert.Equal(t, order.ID, result.OrderID)
		}

		status, resp := api.do(http.MethodGet, "/orders/"+order.ID.String(), token, nil)
		require.Equal(t, http.StatusOK, status)
		var got salesapp.OrderResponse
		api.data(resp, &got)
		assert.Equal(t, "completed", got.Status)
	})

	t.Run("webhook for unknown order", func(t *testing.T) {
		status, _ := api.do(http.MethodPost, "/payments/webhook?order_id="+product.ID.String(), "", nil)
		assert.Equal(t, http.StatusNotFound, status)
	})
}

func TestAPI_TenantIsolation(t *testing.T) {
	api := newTestAPI(t)
	ana := api.signup("ana@tienda.co")
	beto := api.signup("beto@tienda.co")
	product := api.createProduct(ana, 4)

	status, _ := api.do(http.MethodGet, "/products/"+product.ID.String(), beto, nil)
	assert.Equal(t, http.StatusNotFound, status)

	status, resp := api.do(http.MethodGet, "/products", beto, nil)
	require.Equal(t, http.StatusOK, status)
	var items []catalogapp.ProductResponse
	api.data(resp, &items)
	assert.Empty(t, items)

	status, resp = api.do(http.MethodPost, "/orders", beto, gin.H{
		"items": []gin.H{{"product_variant_id": product.Variants[0].ID, "quantity": 1}},
	})
	assert.NotEqual(t, http.StatusCreated, status, resp.Error)
	assert.Equal(t, 4, api.stock(ana, product.ID.String()))
}

func TestAPI_Auth(t *testing.T) {
	api := newTestAPI(t)
	token := api.signup("ana@tienda.co")

	t.Run("duplicate email", func(t *testing.T) {
		status, resp := api.do(http.MethodPost, "/auth/register", "", gin.H{"email": "ANA@tienda.co", "password": "secret123"})
		assert.Equal(t, http.StatusBadRequest, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "ALREADY_EXISTS", resp.Error.Code)
	})

	t.Run("wrong password", func(t *testing.T) {
		status, resp := api.do(http.MethodPost, "/auth/login", "", gin.H{"email": "ana@tienda.co", "password": "nope123"})
		assert.Equal(t, http.StatusUnauthorized, status)
		require.NotNil(t, resp.Error)
		assert.Equal(t, "INVALID_CREDENTIALS", resp.Error.Code)
	})

	t.Run("protected routes need a token", func(t *testing.T) {
		status, _ := api.do(http.MethodGet, "/products", "", nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("me then logout revokes the token", func(t *testing.T) {
		status, resp := api.do(http.MethodGet, "/auth/me", token, nil)
		require.Equal(t, http.StatusOK, status)
		var me identityapp.UserResponse
		api.data(resp, &me)
		assert.Equal(t, "ana@tienda.co", me.Email)

		status, _ = api.do(http.MethodPost, "/auth/logout", token, nil)
		require.Equal(t, http.StatusOK, status)

		status, _ = api.do(http.MethodGet, "/auth/me", token, nil)
		assert.Equal(t, http.StatusUnauthorized, status)
	})

	t.Run("admin routes need a super admin", func(t *testing.T) {
		other := api.signup("beto@tienda.co")
		status, _ := api.do(http.MethodGet, "/admin/stats", other, nil)
		assert.Equal(t, http.StatusForbidden, status)
	})
}
