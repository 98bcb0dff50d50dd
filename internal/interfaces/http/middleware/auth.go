package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/bayup/backend/internal/application/identity"
	domain "github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/infrastructure/auth"
	"github.com/bayup/backend/internal/infrastructure/logger"
	"github.com/bayup/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	principalKey = "principal"
	bearerPrefix = "Bearer "
)

// Authenticator resolves a bearer token into the calling account
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*identity.Principal, error)
}

// RequireAuth rejects requests without a valid, unrevoked bearer token and
// stores the principal for handlers
func RequireAuth(authn Authenticator, log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Not authenticated")
			return
		}

		principal, err := authn.Authenticate(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			status, code, message := authFailure(err)
			log.Warn("Authentication failed",
				zap.String("path", c.Request.URL.Path),
				zap.Error(err))
			abort(c, status, code, message)
			return
		}

		tenantID := principal.User.TenantID().String()
		c.Set(principalKey, principal)
		c.Set(logger.GinUserIDKey, principal.User.ID.String())
		c.Set(logger.GinTenantIDKey, tenantID)

		ctx := logger.WithTenantID(c.Request.Context(), tenantID)
		ctx = logger.WithUserID(ctx, principal.User.ID.String())
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func authFailure(err error) (int, string, string) {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Token has expired"
	case errors.Is(err, auth.ErrTokenBlacklisted):
		return http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Token has been revoked"
	case errors.Is(err, identity.ErrAccountInactive):
		return http.StatusForbidden, dto.ErrCodeForbidden, identity.ErrAccountInactive.Message
	}
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) && dto.GetHTTPStatus(domainErr.Code) >= http.StatusInternalServerError {
		return http.StatusInternalServerError, dto.ErrCodeInternal, "Could not validate credentials"
	}
	return http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Could not validate credentials"
}

// RequireSuperAdmin lets only platform super admins through. It must run
// after RequireAuth.
func RequireSuperAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		p := GetPrincipal(c)
		if p == nil {
			abort(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Not authenticated")
			return
		}
		if !p.User.IsSuperAdmin() {
			abort(c, http.StatusForbidden, dto.ErrCodeForbidden, "Super admin access required")
			return
		}
		c.Next()
	}
}

// GetPrincipal returns the authenticated caller, or nil on public routes
func GetPrincipal(c *gin.Context) *identity.Principal {
	v, ok := c.Get(principalKey)
	if !ok {
		return nil
	}
	p, _ := v.(*identity.Principal)
	return p
}

// GetUser returns the authenticated account, or nil
func GetUser(c *gin.Context) *domain.User {
	if p := GetPrincipal(c); p != nil {
		return p.User
	}
	return nil
}
