package dto

import (
	"net/http"
	"testing"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{"NOT_FOUND", http.StatusNotFound},
		{"ALREADY_EXISTS", http.StatusBadRequest},
		{"INSUFFICIENT_STOCK", http.StatusBadRequest},
		{"INVALID_INPUT", http.StatusBadRequest},
		{"VALIDATION_ERROR", http.StatusBadRequest},
		{"UNAUTHORIZED", http.StatusUnauthorized},
		{"INVALID_CREDENTIALS", http.StatusUnauthorized},
		{"FORBIDDEN", http.StatusForbidden},
		{"NOT_CONFIGURED", http.StatusServiceUnavailable},
		{"INVALID_QUANTITY", http.StatusBadRequest},
		{"INVALID_EMAIL", http.StatusBadRequest},
		{"DEFAULT_PLAN_MISSING", http.StatusInternalServerError},
		{"PASSWORD_HASH_ERROR", http.StatusInternalServerError},
		{"", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestSharedSentinelsHaveStatuses(t *testing.T) {
	for _, err := range []*shared.DomainError{
		shared.ErrNotFound,
		shared.ErrAlreadyExists,
		shared.ErrInvalidInput,
		shared.ErrUnauthorized,
		shared.ErrForbidden,
		shared.ErrInsufficientStock,
		shared.ErrNotConfigured,
		shared.ErrConcurrencyConflict,
		shared.ErrInvalidState,
	} {
		_, ok := ErrorCodeHTTPStatus[err.Code]
		assert.True(t, ok, "%s has no status mapping", err.Code)
	}
}

func TestNewPageResponse(t *testing.T) {
	page := shared.NewPaginated([]string{"a", "b"}, 5, 1, 2)
	resp := NewPageResponse(page)

	assert.True(t, resp.Success)
	assert.Equal(t, []string{"a", "b"}, resp.Data)
	assert.Equal(t, &Meta{Total: 5, Page: 1, PageSize: 2, TotalPages: 3}, resp.Meta)
}

func TestListRequest_Filter(t *testing.T) {
	f := ListRequest{}.Filter()
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 20, f.PageSize)
	assert.Equal(t, "created_at", f.OrderBy)

	f = ListRequest{Page: 3, PageSize: 50, OrderDir: "asc", Search: "camisa"}.Filter()
	assert.Equal(t, 3, f.Page)
	assert.Equal(t, 50, f.PageSize)
	assert.Equal(t, "asc", f.OrderDir)
	assert.Equal(t, "camisa", f.Search)
}

func TestNewValidationErrorResponse(t *testing.T) {
	resp := NewValidationErrorResponse("Request validation failed", "req-1",
		[]ValidationDetail{{Field: "email", Message: "Invalid email format"}})

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-1", resp.Error.RequestID)
	assert.Len(t, resp.Error.Details, 1)
}
