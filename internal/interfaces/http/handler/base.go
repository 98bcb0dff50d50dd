package handler

import (
	"errors"
	"net/http"

	domain "github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/infrastructure/logger"
	"github.com/bayup/backend/internal/interfaces/http/dto"
	"github.com/bayup/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := c.GetString(logger.GinRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(middleware.RequestIDHeader)
}

// currentUser returns the authenticated account or writes a 401
func (h *BaseHandler) currentUser(c *gin.Context) (*domain.User, bool) {
	user := middleware.GetUser(c)
	if user == nil {
		h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, "Not authenticated")
		return nil, false
	}
	return user, true
}

// tenantID resolves the store the caller acts on. Staff accounts act on
// their owner's store.
func (h *BaseHandler) tenantID(c *gin.Context) (uuid.UUID, bool) {
	user, ok := h.currentUser(c)
	if !ok {
		return uuid.Nil, false
	}
	return user.TenantID(), true
}

// actorID returns the caller's id for audit fields, or nil on public routes
func actorID(c *gin.Context) *uuid.UUID {
	if user := middleware.GetUser(c); user != nil {
		id := user.ID
		return &id
	}
	return nil
}

// parseID reads a UUID path parameter or writes a 400
func (h *BaseHandler) parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		h.BadRequest(c, "Invalid "+param)
		return uuid.Nil, false
	}
	return id, true
}

// bindJSON decodes the body and reports field errors as a validation response
func (h *BaseHandler) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		if details := middleware.ValidationDetails(err); len(details) > 0 {
			h.ValidationError(c, details)
			return false
		}
		h.BadRequest(c, "Invalid request body")
		return false
	}
	return true
}

// listFilter binds the common pagination query plus the named exact-match
// filters
func (h *BaseHandler) listFilter(c *gin.Context, keys ...string) (shared.Filter, bool) {
	var req dto.ListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		if details := middleware.ValidationDetails(err); len(details) > 0 {
			h.ValidationError(c, details)
			return shared.Filter{}, false
		}
		h.BadRequest(c, "Invalid query parameters")
		return shared.Filter{}, false
	}
	filter := req.Filter()
	for _, key := range keys {
		if v := c.Query(key); v != "" {
			if filter.Filters == nil {
				filter.Filters = make(map[string]interface{})
			}
			filter.Filters[key] = v
		}
	}
	return filter, true
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Page sends a page of items with pagination meta
func Page[T any](c *gin.Context, page shared.Paginated[T]) {
	c.JSON(http.StatusOK, dto.NewPageResponse(page))
}

// Created sends a 201 created response
func (h *BaseHandler) Created(c *gin.Context, data any) {
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(data))
}

// NoContent sends a 204 no content response
func (h *BaseHandler) NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// Error sends an error response with the given status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponse(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// ValidationError sends a 400 validation error response with details
func (h *BaseHandler) ValidationError(c *gin.Context, details []dto.ValidationDetail) {
	c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
		"Request validation failed",
		getRequestID(c),
		details,
	))
}

// HandleError converts domain errors to their mapped status and anything
// else to a 500
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		h.Error(c, dto.GetHTTPStatus(domainErr.Code), domainErr.Code, domainErr.Message)
		return
	}

	_ = c.Error(err)
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, err.Error())
}
