package persistence

import (
	"context"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormTenantRepository is the CRUD repository shared by tenant-owned rows
// that have no behaviour of their own in the store
type GormTenantRepository[T any] struct {
	db       *gorm.DB
	sortable SortFields
	// filterKeys are the shared.Filter keys matched as column equality
	filterKeys []string
	// searchColumn is matched with LIKE when filter.Search is set
	searchColumn string
}

// NewGormTenantRepository creates a GormTenantRepository
func NewGormTenantRepository[T any](db *gorm.DB, fields SortFields, searchColumn string, filterKeys ...string) *GormTenantRepository[T] {
	return &GormTenantRepository[T]{
		db:           db,
		sortable:     fields,
		filterKeys:   filterKeys,
		searchColumn: searchColumn,
	}
}

// Create inserts the entity
func (r *GormTenantRepository[T]) Create(ctx context.Context, entity *T) error {
	return translateError(r.db.WithContext(ctx).Create(entity).Error)
}

// Update saves every column of the entity
func (r *GormTenantRepository[T]) Update(ctx context.Context, entity *T) error {
	return translateError(r.db.WithContext(ctx).Save(entity).Error)
}

// Delete deletes a row of the tenant
func (r *GormTenantRepository[T]) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(new(T))
	return requireAffected(result)
}

// FindByID finds a row of the tenant
func (r *GormTenantRepository[T]) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*T, error) {
	var entity T
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&entity).Error; err != nil {
		return nil, translateError(err)
	}
	return &entity, nil
}

// FindAll lists rows of the tenant with the total count before paging
func (r *GormTenantRepository[T]) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]T, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(new(T)).Scopes(TenantScope(tenantID))
		q = applyEquals(q, filter, r.filterKeys...)
		if filter.Search != "" && r.searchColumn != "" {
			q = q.Where("LOWER("+r.searchColumn+") LIKE ?", likePattern(filter.Search))
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	items := make([]T, 0)
	if err := query().Scopes(paginate(filter, r.sortable)).Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (r *GormTenantRepository[T]) sum(ctx context.Context, tenantID uuid.UUID, status string) (sumResult, error) {
	q := r.db.WithContext(ctx).Model(new(T)).Scopes(TenantScope(tenantID))
	if status != "" {
		q = q.Where("status = ?", status)
	}
	var out sumResult
	err := q.Select("COALESCE(SUM(amount), 0) AS total").Scan(&out).Error
	return out, err
}

var _ shared.TenantRepository[struct{}] = (*GormTenantRepository[struct{}])(nil)
