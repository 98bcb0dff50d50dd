package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bayup/backend/internal/application/identity"
	domain "github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/infrastructure/logger"
	"github.com/bayup/backend/internal/interfaces/http/dto"
	"github.com/bayup/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type staticAuthenticator struct {
	user *domain.User
}

func (a staticAuthenticator) Authenticate(_ context.Context, _ string) (*identity.Principal, error) {
	return &identity.Principal{User: a.user}, nil
}

func newTestUser(ownerID *uuid.UUID) *domain.User {
	u := &domain.User{Email: "owner@tienda.co", Role: domain.RoleStoreAdmin, OwnerID: ownerID}
	u.ID = uuid.New()
	return u
}

// authed mounts fn behind RequireAuth with a fixed account
func authed(user *domain.User, fn gin.HandlerFunc) *gin.Engine {
	engine := gin.New()
	engine.Use(middleware.RequireAuth(staticAuthenticator{user: user}, zap.NewNop()))
	engine.Any("/t/*rest", fn)
	return engine
}

func doRequest(engine *gin.Engine, method, target, body string, withToken bool) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set("Authorization", "Bearer token")
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestGetRequestID(t *testing.T) {
	tests := []struct {
		name       string
		setup      func(*gin.Context)
		expectedID string
	}{
		{
			name:       "from context",
			setup:      func(c *gin.Context) { c.Set(logger.GinRequestIDKey, "ctx-id") },
			expectedID: "ctx-id",
		},
		{
			name:       "from header when context empty",
			setup:      func(c *gin.Context) { c.Request.Header.Set(middleware.RequestIDHeader, "header-id") },
			expectedID: "header-id",
		},
		{
			name: "context takes precedence over header",
			setup: func(c *gin.Context) {
				c.Set(logger.GinRequestIDKey, "ctx-id")
				c.Request.Header.Set(middleware.RequestIDHeader, "header-id")
			},
			expectedID: "ctx-id",
		},
		{
			name:       "empty when not set",
			setup:      func(c *gin.Context) {},
			expectedID: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := gin.CreateTestContext(httptest.NewRecorder())
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
			tt.setup(c)
			assert.Equal(t, tt.expectedID, getRequestID(c))
		})
	}
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
		expectedCode   string
	}{
		{"not found", shared.NewDomainError("NOT_FOUND", "Producto no encontrado"), http.StatusNotFound, "NOT_FOUND"},
		{"insufficient stock", shared.NewDomainError("INSUFFICIENT_STOCK", "Stock insuficiente"), http.StatusBadRequest, "INSUFFICIENT_STOCK"},
		{"duplicate", shared.NewDomainError("ALREADY_EXISTS", "El email ya existe"), http.StatusBadRequest, "ALREADY_EXISTS"},
		{"bad credentials", shared.NewDomainError("INVALID_CREDENTIALS", "Credenciales incorrectas"), http.StatusUnauthorized, "INVALID_CREDENTIALS"},
		{"forbidden", shared.NewDomainError("FORBIDDEN", "No autorizado"), http.StatusForbidden, "FORBIDDEN"},
		{"gateway", shared.NewDomainError("GATEWAY_ERROR", "Pasarela caida"), http.StatusBadGateway, "GATEWAY_ERROR"},
		{"wrapped domain error", errors.Join(errors.New("ctx"), shared.NewDomainError("NOT_FOUND", "x")), http.StatusNotFound, "NOT_FOUND"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, dto.ErrCodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

			h := &BaseHandler{}
			h.HandleError(c, tt.err)

			assert.Equal(t, tt.expectedStatus, w.Code)
			resp := decodeResponse(t, w)
			assert.False(t, resp.Success)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.expectedCode, resp.Error.Code)
		})
	}
}

func TestHandleError_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	(&BaseHandler{}).HandleError(c, nil)
	assert.False(t, c.Writer.Written())
}

func TestBindJSON(t *testing.T) {
	type request struct {
		Name string `json:"name" binding:"required"`
	}
	h := &BaseHandler{}
	engine := gin.New()
	engine.POST("/bind", func(c *gin.Context) {
		var req request
		if !h.bindJSON(c, &req) {
			return
		}
		h.Success(c, req.Name)
	})

	t.Run("valid body", func(t *testing.T) {
		w := doRequest(engine, http.MethodPost, "/bind", `{"name":"Camisa"}`, false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "Camisa", decodeResponse(t, w).Data)
	})

	t.Run("missing field reports validation details", func(t *testing.T) {
		w := doRequest(engine, http.MethodPost, "/bind", `{}`, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		resp := decodeResponse(t, w)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.Details)
	})

	t.Run("malformed body", func(t *testing.T) {
		w := doRequest(engine, http.MethodPost, "/bind", `{"name":`, false)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, dto.ErrCodeBadRequest, decodeResponse(t, w).Error.Code)
	})
}

func TestParseID(t *testing.T) {
	h := &BaseHandler{}
	engine := gin.New()
	engine.GET("/items/:id", func(c *gin.Context) {
		id, ok := h.parseID(c, "id")
		if !ok {
			return
		}
		h.Success(c, id.String())
	})

	id := uuid.New()
	w := doRequest(engine, http.MethodGet, "/items/"+id.String(), "", false)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, id.String(), decodeResponse(t, w).Data)

	w = doRequest(engine, http.MethodGet, "/items/not-a-uuid", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Invalid id", decodeResponse(t, w).Error.Message)
}

func TestCurrentUser_Unauthenticated(t *testing.T) {
	h := &BaseHandler{}
	engine := gin.New()
	engine.GET("/me", func(c *gin.Context) {
		if _, ok := h.currentUser(c); !ok {
			return
		}
		h.Success(c, "ok")
	})

	w := doRequest(engine, http.MethodGet, "/me", "", false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, dto.ErrCodeUnauthorized, decodeResponse(t, w).Error.Code)
}

func TestTenantID_StaffActsOnOwnerStore(t *testing.T) {
	h := &BaseHandler{}
	handler := func(c *gin.Context) {
		tenantID, ok := h.tenantID(c)
		if !ok {
			return
		}
		h.Success(c, tenantID.String())
	}

	owner := newTestUser(nil)
	w := doRequest(authed(owner, handler), http.MethodGet, "/t/x", "", true)
	assert.Equal(t, owner.ID.String(), decodeResponse(t, w).Data)

	staff := newTestUser(&owner.ID)
	w = doRequest(authed(staff, handler), http.MethodGet, "/t/x", "", true)
	assert.Equal(t, owner.ID.String(), decodeResponse(t, w).Data)
}

func TestListFilter(t *testing.T) {
	h := &BaseHandler{}
	engine := gin.New()
	engine.GET("/list", func(c *gin.Context) {
		filter, ok := h.listFilter(c, "status")
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{"page": filter.Page, "page_size": filter.PageSize, "filters": filter.Filters})
	})

	w := doRequest(engine, http.MethodGet, "/list?page=2&page_size=5&status=Activo&ignored=x", "", false)
	require.Equal(t, http.StatusOK, w.Code)
	var body struct {
		Page     int               `json:"page"`
		PageSize int               `json:"page_size"`
		Filters  map[string]string `json:"filters"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Page)
	assert.Equal(t, 5, body.PageSize)
	assert.Equal(t, map[string]string{"status": "Activo"}, body.Filters)

	w = doRequest(engine, http.MethodGet, "/list?page_size=1000", "", false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPage(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Page(c, shared.NewPaginated([]string{"a", "b"}, 12, 2, 2))

	resp := decodeResponse(t, w)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(12), resp.Meta.Total)
	assert.Equal(t, 6, resp.Meta.TotalPages)
}
