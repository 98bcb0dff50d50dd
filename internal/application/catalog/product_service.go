package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles product-related business operations
type ProductService struct {
	productRepo     catalog.ProductRepository
	variantRepo     catalog.VariantRepository
	collectionRepo  catalog.CollectionRepository
	productTypeRepo catalog.ProductTypeRepository
	publisher       shared.EventPublisher
	logger          *zap.Logger
}

// NewProductService creates a new ProductService. publisher may be nil.
func NewProductService(
	productRepo catalog.ProductRepository,
	variantRepo catalog.VariantRepository,
	collectionRepo catalog.CollectionRepository,
	productTypeRepo catalog.ProductTypeRepository,
	publisher shared.EventPublisher,
	logger *zap.Logger,
) *ProductService {
	return &ProductService{
		productRepo:     productRepo,
		variantRepo:     variantRepo,
		collectionRepo:  collectionRepo,
		productTypeRepo: productTypeRepo,
		publisher:       publisher,
		logger:          logger,
	}
}

// Create creates a product together with its variants
func (s *ProductService) Create(ctx context.Context, tenantID uuid.UUID, req CreateProductRequest) (*ProductResponse, error) {
	if err := s.checkReferences(ctx, tenantID, req.CollectionID, req.ProductTypeID); err != nil {
		return nil, err
	}

	product, err := catalog.NewProduct(tenantID, req.Name, req.Price)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Description, req.SKU); err != nil {
		return nil, err
	}
	if err := product.SetPrices(req.Price, valueOr(req.WholesalePrice), valueOr(req.Cost)); err != nil {
		return nil, err
	}
	if req.Status != "" {
		if err := product.SetStatus(catalog.ProductStatus(req.Status)); err != nil {
			return nil, err
		}
	}
	product.AddGatewayFee = req.AddGatewayFee
	if req.ImageURLs != nil {
		product.ImageURLs = req.ImageURLs
	}
	product.CollectionID = req.CollectionID
	product.ProductTypeID = req.ProductTypeID

	if err := addVariants(product, req.Variants); err != nil {
		return nil, err
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	events := product.PullEvents()
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, events...); err != nil {
			s.logger.Warn("publish product events", zap.Error(err))
		}
	}

	resp := ToProductResponse(product)
	return &resp, nil
}

// GetByID returns a product of the store
func (s *ProductService) GetByID(ctx context.Context, tenantID, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// List lists products with optional search, status and collection filters
func (s *ProductService) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (shared.Paginated[ProductResponse], error) {
	products, total, err := s.productRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return shared.Paginated[ProductResponse]{}, err
	}
	items := make([]ProductResponse, len(products))
	for i := range products {
		items[i] = ToProductResponse(&products[i])
	}
	return shared.NewPaginated(items, total, filter.Page, filter.PageSize), nil
}

// Update applies the non-nil fields and replaces the variants when given
func (s *ProductService) Update(ctx context.Context, tenantID, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.productRepo.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, tenantID, req.CollectionID, req.ProductTypeID); err != nil {
		return nil, err
	}

	name, description, sku := product.Name, product.Description, product.SKU
	if req.Name != nil {
		name = *req.Name
	}
	if req.Description != nil {
		description = *req.Description
	}
	if req.SKU != nil {
		sku = *req.SKU
	}
	if err := product.Update(name, description, sku); err != nil {
		return nil, err
	}

	price, wholesale, cost := product.Price, product.WholesalePrice, product.Cost
	if req.Price != nil {
		price = *req.Price
	}
	if req.WholesalePrice != nil {
		wholesale = *req.WholesalePrice
	}
	if req.Cost != nil {
		cost = *req.Cost
	}
	if err := product.SetPrices(price, wholesale, cost); err != nil {
		return nil, err
	}

	if req.Status != nil {
		if err := product.SetStatus(catalog.ProductStatus(*req.Status)); err != nil {
			return nil, err
		}
	}
	if req.AddGatewayFee != nil {
		product.AddGatewayFee = *req.AddGatewayFee
	}
	if req.ImageURLs != nil {
		product.ImageURLs = req.ImageURLs
	}
	if req.CollectionID != nil {
		product.CollectionID = req.CollectionID
	}
	if req.ProductTypeID != nil {
		product.ProductTypeID = req.ProductTypeID
	}

	replace := req.Variants != nil
	if replace {
		product.ClearVariants()
		if err := addVariants(product, req.Variants); err != nil {
			return nil, err
		}
	}

	if err := s.productRepo.Update(ctx, product, replace); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}
	resp := ToProductResponse(product)
	return &resp, nil
}

// Delete deletes a product and its variants
func (s *ProductService) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, tenantID, id); err != nil {
		return err
	}
	return s.productRepo.Delete(ctx, tenantID, id)
}

// AdjustStock overwrites a variant's stock level
func (s *ProductService) AdjustStock(ctx context.Context, tenantID, variantID uuid.UUID, req AdjustStockRequest) (*VariantResponse, error) {
	if req.Stock == nil {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock is required")
	}
	variant, err := s.variantRepo.FindByIDForTenant(ctx, tenantID, variantID)
	if err != nil {
		return nil, err
	}
	if err := variant.SetStock(*req.Stock); err != nil {
		return nil, err
	}
	if err := s.variantRepo.SetStock(ctx, tenantID, variantID, variant.Stock); err != nil {
		return nil, err
	}

	base := decimal.Zero
	if variant.Product != nil {
		base = variant.Product.Price
	}
	resp := toVariantResponse(variant, base)
	return &resp, nil
}

func (s *ProductService) checkReferences(ctx context.Context, tenantID uuid.UUID, collectionID, productTypeID *uuid.UUID) error {
	if collectionID != nil {
		if _, err := s.collectionRepo.FindByID(ctx, tenantID, *collectionID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_COLLECTION", "Collection not found")
			}
			return err
		}
	}
	if productTypeID != nil {
		if _, err := s.productTypeRepo.FindByID(ctx, tenantID, *productTypeID); err != nil {
			if errors.Is(err, shared.ErrNotFound) {
				return shared.NewDomainError("INVALID_PRODUCT_TYPE", "Product type not found")
			}
			return err
		}
	}
	return nil
}

func addVariants(product *catalog.Product, inputs []VariantInput) error {
	for _, in := range inputs {
		v, err := product.AddVariant(in.Name, in.SKU, in.PriceAdjustment, in.Stock)
		if err != nil {
			return err
		}
		v.ImageURL = in.ImageURL
		if in.Attributes != nil {
			v.Attributes = in.Attributes
		}
	}
	return nil
}

func valueOr(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
