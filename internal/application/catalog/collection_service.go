package catalog

import (
	"context"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/google/uuid"
)

// CollectionService manages collections and product types
type CollectionService struct {
	collectionRepo  catalog.CollectionRepository
	productTypeRepo catalog.ProductTypeRepository
	productRepo     catalog.ProductRepository
}

// NewCollectionService creates a new CollectionService
func NewCollectionService(
	collectionRepo catalog.CollectionRepository,
	productTypeRepo catalog.ProductTypeRepository,
	productRepo catalog.ProductRepository,
) *CollectionService {
	return &CollectionService{
		collectionRepo:  collectionRepo,
		productTypeRepo: productTypeRepo,
		productRepo:     productRepo,
	}
}

// ListCollections lists collections with their product counts
func (s *CollectionService) ListCollections(ctx context.Context, tenantID uuid.UUID) ([]CollectionResponse, error) {
	collections, err := s.collectionRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	counts, err := s.productRepo.CountByCollection(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	resp := make([]CollectionResponse, len(collections))
	for i := range collections {
		resp[i] = ToCollectionResponse(&collections[i], counts[collections[i].ID])
	}
	return resp, nil
}

// GetCollection returns a collection of the store
func (s *CollectionService) GetCollection(ctx context.Context, tenantID, id uuid.UUID) (*CollectionResponse, error) {
	c, err := s.collectionRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	counts, err := s.productRepo.CountByCollection(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	resp := ToCollectionResponse(c, counts[c.ID])
	return &resp, nil
}

// CreateCollection creates a collection
func (s *CollectionService) CreateCollection(ctx context.Context, tenantID uuid.UUID, req CollectionRequest) (*CollectionResponse, error) {
	c, err := catalog.NewCollection(tenantID, req.Title)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Title, req.Description, req.ImageURL, req.Status); err != nil {
		return nil, err
	}
	if err := s.collectionRepo.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCollectionResponse(c, 0)
	return &resp, nil
}

// UpdateCollection replaces a collection's fields
func (s *CollectionService) UpdateCollection(ctx context.Context, tenantID, id uuid.UUID, req CollectionRequest) (*CollectionResponse, error) {
	c, err := s.collectionRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := c.Update(req.Title, req.Description, req.ImageURL, req.Status); err != nil {
		return nil, err
	}
	if err := s.collectionRepo.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := ToCollectionResponse(c, 0)
	return &resp, nil
}

// DeleteCollection deletes a collection
func (s *CollectionService) DeleteCollection(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.collectionRepo.Delete(ctx, tenantID, id)
}

// ListProductTypes lists product types
func (s *CollectionService) ListProductTypes(ctx context.Context, tenantID uuid.UUID) ([]ProductTypeResponse, error) {
	types, err := s.productTypeRepo.FindAll(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	resp := make([]ProductTypeResponse, len(types))
	for i := range types {
		resp[i] = ToProductTypeResponse(&types[i])
	}
	return resp, nil
}

// CreateProductType creates a product type
func (s *CollectionService) CreateProductType(ctx context.Context, tenantID uuid.UUID, req ProductTypeRequest) (*ProductTypeResponse, error) {
	pt, err := catalog.NewProductType(tenantID, req.Name, req.Attributes)
	if err != nil {
		return nil, err
	}
	pt.Description = req.Description
	if err := s.productTypeRepo.Create(ctx, pt); err != nil {
		return nil, err
	}
	resp := ToProductTypeResponse(pt)
	return &resp, nil
}

// UpdateProductType replaces a product type's fields
func (s *CollectionService) UpdateProductType(ctx context.Context, tenantID, id uuid.UUID, req ProductTypeRequest) (*ProductTypeResponse, error) {
	pt, err := s.productTypeRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := pt.Update(req.Name, req.Description, req.Attributes); err != nil {
		return nil, err
	}
	if err := s.productTypeRepo.Update(ctx, pt); err != nil {
		return nil, err
	}
	resp := ToProductTypeResponse(pt)
	return &resp, nil
}

// DeleteProductType deletes a product type
func (s *CollectionService) DeleteProductType(ctx context.Context, tenantID, id uuid.UUID) error {
	return s.productTypeRepo.Delete(ctx, tenantID, id)
}
