package persistence

import (
	"fmt"
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TenantScope applies tenant filtering to GORM queries
func TenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// paginate applies the whitelisted ordering and page window of a filter
func paginate(filter shared.Filter, fields SortFields) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = db.Order(orderClause(filter.OrderBy, filter.OrderDir, fields))
		if filter.PageSize > 0 {
			db = db.Offset(filter.Offset()).Limit(filter.PageSize)
		}
		return db
	}
}

// filterString returns a non-empty string filter value
func filterString(filter shared.Filter, key string) (string, bool) {
	if filter.Filters == nil {
		return "", false
	}
	v, ok := filter.Filters[key]
	if !ok {
		return "", false
	}
	switch s := v.(type) {
	case string:
		return s, s != ""
	case fmt.Stringer:
		return s.String(), s.String() != ""
	default:
		return "", false
	}
}

// applyEquals adds "column = value" for every string filter present in keys
func applyEquals(db *gorm.DB, filter shared.Filter, keys ...string) *gorm.DB {
	for _, key := range keys {
		if v, ok := filterString(filter, key); ok {
			db = db.Where(key+" = ?", v)
		}
	}
	return db
}

// likePattern builds a case-insensitive substring pattern
func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}
