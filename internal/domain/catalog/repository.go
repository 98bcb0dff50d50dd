package catalog

import (
	"context"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ProductRepository defines the interface for product persistence
type ProductRepository interface {
	// Create saves a product together with its variants
	Create(ctx context.Context, product *Product) error

	// Update saves product fields; when replaceVariants is true the stored
	// variants are deleted and the product's current variants inserted
	Update(ctx context.Context, product *Product, replaceVariants bool) error

	// Delete deletes a product and its variants
	Delete(ctx context.Context, tenantID, id uuid.UUID) error

	// FindByID finds a product with variants within the tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Product, error)

	// FindAll lists products of a tenant. Supported filters: status, collection_id
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Product, int64, error)

	// CountByTenant counts products of a tenant
	CountByTenant(ctx context.Context, tenantID uuid.UUID) (int64, error)

	// CountByCollection counts products per collection id within the tenant
	CountByCollection(ctx context.Context, tenantID uuid.UUID) (map[uuid.UUID]int64, error)
}

// VariantRepository defines the interface for variant persistence
type VariantRepository interface {
	// FindByID finds a variant by id with its product loaded
	FindByID(ctx context.Context, id uuid.UUID) (*ProductVariant, error)

	// FindByIDForTenant finds a variant within a tenant
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ProductVariant, error)

	// DecrementStock subtracts quantity only when enough stock remains.
	// Returns shared.ErrInsufficientStock when the guard fails.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int) error

	// SetStock overwrites the stock level
	SetStock(ctx context.Context, tenantID, id uuid.UUID, stock int) error

	// CountLowStock counts variants at or below the threshold
	CountLowStock(ctx context.Context, tenantID uuid.UUID, threshold int) (int64, error)
}

// CollectionRepository defines the interface for collection persistence
type CollectionRepository interface {
	Create(ctx context.Context, c *Collection) error
	Update(ctx context.Context, c *Collection) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*Collection, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]Collection, error)
}

// ProductTypeRepository defines the interface for product type persistence
type ProductTypeRepository interface {
	Create(ctx context.Context, pt *ProductType) error
	Update(ctx context.Context, pt *ProductType) error
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductType, error)
	FindAll(ctx context.Context, tenantID uuid.UUID) ([]ProductType, error)
}
