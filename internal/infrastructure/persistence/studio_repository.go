package persistence

import (
	"context"
	"errors"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/domain/studio"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormShopPageRepository implements ShopPageRepository using GORM
type GormShopPageRepository struct {
	db *gorm.DB
}

// NewGormShopPageRepository creates a new GormShopPageRepository
func NewGormShopPageRepository(db *gorm.DB) *GormShopPageRepository {
	return &GormShopPageRepository{db: db}
}

// FindByKey finds the builder document of a page
func (r *GormShopPageRepository) FindByKey(ctx context.Context, tenantID uuid.UUID, pageKey string) (*studio.ShopPage, error) {
	var page studio.ShopPage
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND page_key = ?", tenantID, pageKey).
		First(&page).Error; err != nil {
		return nil, translateError(err)
	}
	return &page, nil
}

// Save inserts the document or replaces the stored one for the same key
func (r *GormShopPageRepository) Save(ctx context.Context, page *studio.ShopPage) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing studio.ShopPage
		err := tx.Where("tenant_id = ? AND page_key = ?", page.TenantID, page.PageKey).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if page.ID == uuid.Nil {
				page.TenantEntity = shared.NewTenantEntity(page.TenantID)
			}
			return translateError(tx.Create(page).Error)
		case err != nil:
			return err
		}
		page.ID = existing.ID
		page.CreatedAt = existing.CreatedAt
		return tx.Model(&existing).Select("schema_data", "updated_at").Updates(page).Error
	})
}

// ListKeys lists the saved page keys of a tenant
func (r *GormShopPageRepository) ListKeys(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	keys := make([]string, 0)
	err := r.db.WithContext(ctx).Model(&studio.ShopPage{}).
		Scopes(TenantScope(tenantID)).
		Order("page_key ASC").
		Pluck("page_key", &keys).Error
	return keys, err
}

// GormPageRepository implements PageRepository using GORM
type GormPageRepository struct {
	*GormTenantRepository[studio.Page]
}

// NewGormPageRepository creates a new GormPageRepository
func NewGormPageRepository(db *gorm.DB) *GormPageRepository {
	return &GormPageRepository{
		GormTenantRepository: NewGormTenantRepository[studio.Page](db, PageSortFields, "title"),
	}
}

// FindBySlug finds a content page by slug
func (r *GormPageRepository) FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*studio.Page, error) {
	var page studio.Page
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND slug = ?", tenantID, slug).
		First(&page).Error; err != nil {
		return nil, translateError(err)
	}
	return &page, nil
}

var (
	_ studio.ShopPageRepository = (*GormShopPageRepository)(nil)
	_ studio.PageRepository     = (*GormPageRepository)(nil)
)
