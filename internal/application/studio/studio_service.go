package studio

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appcatalog "github.com/bayup/backend/internal/application/catalog"
	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/identity"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/bayup/backend/internal/domain/studio"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// storefrontPageSize caps the products returned by the public store
const storefrontPageSize = 200

// ErrStoreNotFound is returned for an unknown storefront slug
var ErrStoreNotFound = shared.NewDomainError("NOT_FOUND", "Store not found")

// StudioService serves the page builder and the public storefront
type StudioService struct {
	shopPageRepo studio.ShopPageRepository
	pageRepo     studio.PageRepository
	userRepo     identity.UserRepository
	productRepo  catalog.ProductRepository
	logger       *zap.Logger
}

// NewStudioService creates a new StudioService
func NewStudioService(
	shopPageRepo studio.ShopPageRepository,
	pageRepo studio.PageRepository,
	userRepo identity.UserRepository,
	productRepo catalog.ProductRepository,
	logger *zap.Logger,
) *StudioService {
	return &StudioService{
		shopPageRepo: shopPageRepo,
		pageRepo:     pageRepo,
		userRepo:     userRepo,
		productRepo:  productRepo,
		logger:       logger,
	}
}

// GetShopPage returns the builder document, or an empty one when the page
// was never saved
func (s *StudioService) GetShopPage(ctx context.Context, tenantID uuid.UUID, pageKey string) (*ShopPageResponse, error) {
	page, err := s.shopPageRepo.FindByKey(ctx, tenantID, strings.ToLower(strings.TrimSpace(pageKey)))
	if errors.Is(err, shared.ErrNotFound) {
		page = studio.EmptyShopPage(tenantID, pageKey)
	} else if err != nil {
		return nil, err
	}
	resp := ToShopPageResponse(page)
	return &resp, nil
}

// SaveShopPage upserts the builder document of a page
func (s *StudioService) SaveShopPage(ctx context.Context, tenantID uuid.UUID, pageKey string, req SaveShopPageRequest) (*ShopPageResponse, error) {
	page, err := studio.NewShopPage(tenantID, pageKey, req.SchemaData)
	if err != nil {
		return nil, err
	}

	existing, err := s.shopPageRepo.FindByKey(ctx, tenantID, page.PageKey)
	switch {
	case err == nil:
		existing.Replace(req.SchemaData)
		page = existing
	case !errors.Is(err, shared.ErrNotFound):
		return nil, err
	}

	if err := s.shopPageRepo.Save(ctx, page); err != nil {
		return nil, fmt.Errorf("save shop page: %w", err)
	}
	s.logger.Debug("shop page saved", zap.String("tenant_id", tenantID.String()), zap.String("page_key", page.PageKey))
	resp := ToShopPageResponse(page)
	return &resp, nil
}

// ListShopPages lists the saved page keys
func (s *StudioService) ListShopPages(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	return s.shopPageRepo.ListKeys(ctx, tenantID)
}

// PublicShopPage returns a builder document by storefront slug
func (s *StudioService) PublicShopPage(ctx context.Context, shopSlug, pageKey string) (*ShopPageResponse, error) {
	owner, err := s.findStore(ctx, shopSlug)
	if err != nil {
		return nil, err
	}
	return s.GetShopPage(ctx, owner.ID, pageKey)
}

// PublicStore returns the store name and its active products
func (s *StudioService) PublicStore(ctx context.Context, shopSlug string) (*PublicStoreResponse, error) {
	owner, err := s.findStore(ctx, shopSlug)
	if err != nil {
		return nil, err
	}

	filter := shared.DefaultFilter()
	filter.PageSize = storefrontPageSize
	filter.Filters["status"] = string(catalog.ProductStatusActive)
	products, _, err := s.productRepo.FindAll(ctx, owner.ID, filter)
	if err != nil {
		return nil, fmt.Errorf("list storefront products: %w", err)
	}

	items := make([]appcatalog.ProductResponse, 0, len(products))
	for i := range products {
		if products[i].IsActive() {
			items = append(items, appcatalog.ToProductResponse(&products[i]))
		}
	}
	return &PublicStoreResponse{
		StoreID:     owner.ID,
		StoreName:   owner.DisplayName(),
		ShopSlug:    shopSlug,
		SocialLinks: owner.SocialLinks,
		Products:    items,
	}, nil
}

func (s *StudioService) findStore(ctx context.Context, shopSlug string) (*identity.User, error) {
	owner, err := s.userRepo.FindByShopSlug(ctx, strings.ToLower(strings.TrimSpace(shopSlug)))
	if errors.Is(err, shared.ErrNotFound) {
		return nil, ErrStoreNotFound
	}
	if err != nil {
		return nil, err
	}
	if !owner.IsActive() {
		return nil, ErrStoreNotFound
	}
	return owner, nil
}

// ===================== Pages =====================

// ListPages lists the content pages of a store
func (s *StudioService) ListPages(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[PageResponse], error) {
	rows, total, err := s.pageRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[PageResponse]{}, err
	}
	items := make([]PageResponse, len(rows))
	for i := range rows {
		items[i] = ToPageResponse(&rows[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// GetPage returns a content page by id
func (s *StudioService) GetPage(ctx context.Context, tenantID, id uuid.UUID) (*PageResponse, error) {
	p, err := s.pageRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToPageResponse(p)
	return &resp, nil
}

// CreatePage creates a content page; slugs are unique per store
func (s *StudioService) CreatePage(ctx context.Context, tenantID uuid.UUID, req PageRequest) (*PageResponse, error) {
	p, err := studio.NewPage(tenantID, req.Slug, req.Title, req.Content)
	if err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, tenantID, p.Slug, uuid.Nil); err != nil {
		return nil, err
	}
	if err := s.pageRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	resp := ToPageResponse(p)
	return &resp, nil
}

// UpdatePage replaces a content page
func (s *StudioService) UpdatePage(ctx context.Context, tenantID, id uuid.UUID, req PageRequest) (*PageResponse, error) {
	p, err := s.pageRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := p.Update(req.Slug, req.Title, req.Content); err != nil {
		return nil, err
	}
	if err := s.ensureSlugFree(ctx, tenantID, p.Slug, p.ID); err != nil {
		return nil, err
	}
	if err := s.pageRepo.Update(ctx, p); err != nil {
		return nil, fmt.Errorf("update page: %w", err)
	}
	resp := ToPageResponse(p)
	return &resp, nil
}

// DeletePage deletes a content page
func (s *StudioService) DeletePage(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.pageRepo.Delete(ctx, tenantID, id)
}

func (s *StudioService) ensureSlugFree(ctx context.Context, tenantID uuid.UUID, slug string, selfID uuid.UUID) error {
	other, err := s.pageRepo.FindBySlug(ctx, tenantID, slug)
	if errors.Is(err, shared.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if other.ID != selfID {
		return shared.NewDomainErrorf("ALREADY_EXISTS", "A page with slug %q already exists", slug)
	}
	return nil
}
