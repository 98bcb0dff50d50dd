package persistence

import (
	"context"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormProductRepository implements ProductRepository using GORM
type GormProductRepository struct {
	db *gorm.DB
}

// NewGormProductRepository creates a new GormProductRepository
func NewGormProductRepository(db *gorm.DB) *GormProductRepository {
	return &GormProductRepository{db: db}
}

// Create saves a product together with its variants
func (r *GormProductRepository) Create(ctx context.Context, product *catalog.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(product).Error; err != nil {
			return translateError(err)
		}
		return createVariants(tx, product)
	})
}

// Update saves product fields and optionally replaces the variant set
func (r *GormProductRepository) Update(ctx context.Context, product *catalog.Product, replaceVariants bool) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(product).Error; err != nil {
			return translateError(err)
		}
		if !replaceVariants {
			return nil
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&catalog.ProductVariant{}).Error; err != nil {
			return err
		}
		return createVariants(tx, product)
	})
}

func createVariants(tx *gorm.DB, product *catalog.Product) error {
	if len(product.Variants) == 0 {
		return nil
	}
	for i := range product.Variants {
		product.Variants[i].ProductID = product.ID
		product.Variants[i].TenantID = product.TenantID
	}
	return translateError(tx.Omit(clause.Associations).Create(&product.Variants).Error)
}

// Delete deletes a product and its variants
func (r *GormProductRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tenant_id = ? AND product_id = ?", tenantID, id).
			Delete(&catalog.ProductVariant{}).Error; err != nil {
			return err
		}
		return requireAffected(tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&catalog.Product{}))
	})
}

// FindByID finds a product with variants within the tenant
func (r *GormProductRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*catalog.Product, error) {
	var product catalog.Product
	if err := r.db.WithContext(ctx).
		Preload("Variants", orderVariants).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&product).Error; err != nil {
		return nil, translateError(err)
	}
	return &product, nil
}

func orderVariants(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC")
}

// FindAll lists products of a tenant
func (r *GormProductRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]catalog.Product, int64, error) {
	query := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&catalog.Product{}).Scopes(TenantScope(tenantID))
		q = applyEquals(q, filter, "status", "collection_id")
		if filter.Search != "" {
			pattern := likePattern(filter.Search)
			q = q.Where("LOWER(name) LIKE ? OR LOWER(sku) LIKE ?", pattern, pattern)
		}
		return q
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, 0, err
	}
	products := make([]catalog.Product, 0)
	if err := query().
		Preload("Variants", orderVariants).
		Scopes(paginate(filter, ProductSortFields)).
		Find(&products).Error; err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

// CountByTenant counts products of a tenant
func (r *GormProductRepository) CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.Product{}).Scopes(TenantScope(tenantID)).Count(&count).Error
	return count, err
}

// CountByCollection counts products per collection within the tenant
func (r *GormProductRepository) CountByCollection(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error) {
	var rows []struct {
		CollectionID uuid.UUID
		Count        int64
	}
	if err := r.db.WithContext(ctx).Model(&catalog.Product{}).
		Select("collection_id, COUNT(*) AS count").
		Scopes(TenantScope(tenantID)).
		Where("collection_id IS NOT NULL").
		Group("collection_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	counts := make(map[uuid.UUID]int64, len(rows))
	for _, row := range rows {
		counts[row.CollectionID] = row.Count
	}
	return counts, nil
}

// GormVariantRepository implements VariantRepository using GORM
type GormVariantRepository struct {
	db *gorm.DB
}

// NewGormVariantRepository creates a new GormVariantRepository
func NewGormVariantRepository(db *gorm.DB) *GormVariantRepository {
	return &GormVariantRepository{db: db}
}

// FindByID finds a variant by id with its product loaded
func (r *GormVariantRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.ProductVariant, error) {
	var variant catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Preload("Product").
		First(&variant, "id = ?", id).Error; err != nil {
		return nil, translateError(err)
	}
	return &variant, nil
}

// FindByIDForTenant finds a variant within a tenant
func (r *GormVariantRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*catalog.ProductVariant, error) {
	var variant catalog.ProductVariant
	if err := r.db.WithContext(ctx).
		Preload("Product").
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&variant).Error; err != nil {
		return nil, translateError(err)
	}
	return &variant, nil
}

// DecrementStock subtracts quantity in a single guarded UPDATE so two
// concurrent orders can never drive stock below zero
func (r *GormVariantRepository) DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	result := r.db.WithContext(ctx).
		Model(&catalog.ProductVariant{}).
		Where("id = ? AND stock >= ?", id, quantity).
		Update("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrInsufficientStock
	}
	return nil
}

// SetStock overwrites the stock level
func (r *GormVariantRepository) SetStock(ctx context.Context, tenantID, id uuid.UUID, stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	return requireAffected(r.db.WithContext(ctx).
		Model(&catalog.ProductVariant{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("stock", stock))
}

// CountLowStock counts variants at or below the threshold
func (r *GormVariantRepository) CountLowStock(ctx context.Context, tenantID uuid.UUID, threshold int) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&catalog.ProductVariant{}).
		Scopes(TenantScope(tenantID)).
		Where("stock <= ?", threshold).
		Count(&count).Error
	return count, err
}

// GormCollectionRepository implements CollectionRepository using GORM
type GormCollectionRepository struct {
	*GormTenantRepository[catalog.Collection]
}

// NewGormCollectionRepository creates a new GormCollectionRepository
func NewGormCollectionRepository(db *gorm.DB) *GormCollectionRepository {
	return &GormCollectionRepository{
		GormTenantRepository: NewGormTenantRepository[catalog.Collection](db, CommonSortFields, "title"),
	}
}

// FindAll lists the collections of a tenant by title
func (r *GormCollectionRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]catalog.Collection, error) {
	collections := make([]catalog.Collection, 0)
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).Order("title ASC").Find(&collections).Error
	return collections, err
}

// Delete detaches products from the collection before removing it
func (r *GormCollectionRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&catalog.Product{}).
			Where("tenant_id = ? AND collection_id = ?", tenantID, id).
			Update("collection_id", nil).Error; err != nil {
			return err
		}
		return requireAffected(tx.Where("tenant_id = ? AND id = ?", tenantID, id).Delete(&catalog.Collection{}))
	})
}

// GormProductTypeRepository implements ProductTypeRepository using GORM
type GormProductTypeRepository struct {
	*GormTenantRepository[catalog.ProductType]
}

// NewGormProductTypeRepository creates a new GormProductTypeRepository
func NewGormProductTypeRepository(db *gorm.DB) *GormProductTypeRepository {
	return &GormProductTypeRepository{
		GormTenantRepository: NewGormTenantRepository[catalog.ProductType](db, CommonSortFields, "name"),
	}
}

// FindAll lists the product types of a tenant by name
func (r *GormProductTypeRepository) FindAll(ctx context.Context, tenantID uuid.UUID) ([]catalog.ProductType, error) {
	types := make([]catalog.ProductType, 0)
	err := r.db.WithContext(ctx).Scopes(TenantScope(tenantID)).Order("name ASC").Find(&types).Error
	return types, err
}

var (
	_ catalog.ProductRepository     = (*GormProductRepository)(nil)
	_ catalog.VariantRepository     = (*GormVariantRepository)(nil)
	_ catalog.CollectionRepository  = (*GormCollectionRepository)(nil)
	_ catalog.ProductTypeRepository = (*GormProductTypeRepository)(nil)
)
