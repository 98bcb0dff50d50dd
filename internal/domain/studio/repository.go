package studio

import (
	"context"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ShopPageRepository defines the interface for builder documents
type ShopPageRepository interface {
	// FindByKey returns shared.ErrNotFound when the page was never saved
	FindByKey(ctx context.Context, tenantID uuid.UUID, pageKey string) (*ShopPage, error)

	// Save inserts or updates the document for (tenant, page key)
	Save(ctx context.Context, page *ShopPage) error

	// ListKeys lists the saved page keys of a tenant
	ListKeys(ctx context.Context, tenantID uuid.UUID) ([]string, error)
}

// PageRepository defines the interface for content pages
type PageRepository interface {
	shared.TenantRepository[Page]

	FindBySlug(ctx context.Context, tenantID uuid.UUID, slug string) (*Page, error)
}
