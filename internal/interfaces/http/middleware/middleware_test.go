package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bayup/backend/internal/application/identity"
	domain "github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/infrastructure/auth"
	"github.com/bayup/backend/internal/infrastructure/config"
	"github.com/bayup/backend/internal/infrastructure/logger"
	"github.com/bayup/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func decode(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func serve(engine *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString(logger.GinRequestIDKey)) })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	generated := w.Header().Get(RequestIDHeader)
	assert.Len(t, generated, 32)
	assert.Equal(t, generated, w.Body.String())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w = serve(r, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestCORS(t *testing.T) {
	cfg := DefaultCORSConfig()
	cfg.AllowOrigins = []string{"https://bayup.com.co"}
	r := gin.New()
	r.Use(CORS(cfg))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	t.Run("allowed origin is reflected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://bayup.com.co")
		w := serve(r, req)
		assert.Equal(t, "https://bayup.com.co", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
	})

	t.Run("other origins get no headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Origin", "https://evil.example")
		w := serve(r, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("preflight answers 204", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/", nil)
		req.Header.Set("Origin", "https://bayup.com.co")
		w := serve(r, req)
		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PATCH")
	})
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(8))
	r.POST("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("0123456789")))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	w = serve(r, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("ok")))
	assert.Equal(t, http.StatusOK, w.Code)
}

type fakeAuthenticator struct {
	principal *identity.Principal
	err       error
	token     string
}

func (f *fakeAuthenticator) Authenticate(_ context.Context, token string) (*identity.Principal, error) {
	f.token = token
	return f.principal, f.err
}

func staffPrincipal(role string) *identity.Principal {
	owner := uuid.New()
	user := &domain.User{Email: "staff@example.com", Role: role, Status: domain.UserStatusActive, OwnerID: &owner}
	user.ID = uuid.New()
	return &identity.Principal{User: user, Claims: &auth.Claims{}}
}

func authEngine(authn Authenticator, extra ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(RequestID())
	handlers := append([]gin.HandlerFunc{RequireAuth(authn, zap.NewNop())}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"email":  GetUser(c).Email,
			"tenant": c.GetString(logger.GinTenantIDKey),
		})
	})
	r.GET("/", handlers...)
	return r
}

func bearer(token string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return req
}

func TestRequireAuth(t *testing.T) {
	t.Run("missing header", func(t *testing.T) {
		w := serve(authEngine(&fakeAuthenticator{}), bearer(""))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		resp := decode(t, w)
		assert.Equal(t, dto.ErrCodeUnauthorized, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)
	})

	t.Run("staff resolves to owner tenant", func(t *testing.T) {
		p := staffPrincipal(domain.RoleStaff)
		authn := &fakeAuthenticator{principal: p}
		w := serve(authEngine(authn), bearer("tok"))

		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "tok", authn.token)
		var body map[string]string
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, p.User.OwnerID.String(), body["tenant"])
		assert.Equal(t, "staff@example.com", body["email"])
	})

	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"expired", auth.ErrExpiredToken, http.StatusUnauthorized},
		{"revoked", auth.ErrTokenBlacklisted, http.StatusUnauthorized},
		{"unknown subject", auth.ErrInvalidClaims, http.StatusUnauthorized},
		{"inactive", identity.ErrAccountInactive, http.StatusForbidden},
		{"storage failure", shared.NewDomainError("DEFAULT_PLAN_MISSING", "x"), http.StatusInternalServerError},
		{"plain error", errors.New("boom"), http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(authEngine(&fakeAuthenticator{err: tt.err}), bearer("tok"))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestRequireSuperAdmin(t *testing.T) {
	w := serve(authEngine(&fakeAuthenticator{principal: staffPrincipal(domain.RoleStaff)}, RequireSuperAdmin()), bearer("tok"))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(authEngine(&fakeAuthenticator{principal: staffPrincipal(domain.RoleSuperAdmin)}, RequireSuperAdmin()), bearer("tok"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRateLimit(t *testing.T) {
	rl := NewRateLimiter(2, time.Minute)
	t.Cleanup(rl.Stop)

	r := gin.New()
	r.Use(RateLimit(rl))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)
	assert.Equal(t, http.StatusOK, serve(r, httptest.NewRequest(http.MethodGet, "/", nil)).Code)

	w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, dto.ErrCodeRateLimited, decode(t, w).Error.Code)

	other := httptest.NewRequest(http.MethodGet, "/", nil)
	other.RemoteAddr = "10.0.0.9:1234"
	assert.Equal(t, http.StatusOK, serve(r, other).Code)
}

func TestRateLimiter_StopIsIdempotent(t *testing.T) {
	rl := NewRateLimiter(1, time.Second)
	rl.Stop()
	rl.Stop()
}

func TestSetupValidator_Slug(t *testing.T) {
	require.NoError(t, SetupValidator())

	type body struct {
		Slug string `json:"shop_slug" binding:"omitempty,slug"`
	}
	validate := func(s string) error {
		return binding.Validator.ValidateStruct(body{Slug: s})
	}

	assert.NoError(t, validate("tienda-ana"))
	assert.NoError(t, validate(""))

	err := validate("Tienda Ana")
	require.Error(t, err)
	details := ValidationDetails(err)
	require.Len(t, details, 1)
	assert.Equal(t, "shop_slug", details[0].Field)
}

func TestSwaggerProtection(t *testing.T) {
	build := func(cfg config.SwaggerConfig) *gin.Engine {
		r := gin.New()
		r.GET("/swagger", SwaggerProtection(cfg, nil), func(c *gin.Context) { c.Status(http.StatusOK) })
		return r
	}

	w := serve(build(config.SwaggerConfig{}), httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(build(config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"10.0.0.0/8"}}), httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = serve(build(config.SwaggerConfig{Enabled: true, AllowedIPs: []string{"192.0.2.1"}}), httptest.NewRequest(http.MethodGet, "/swagger", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
