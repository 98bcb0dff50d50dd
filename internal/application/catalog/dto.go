package catalog

import (
	"time"

	"github.com/bayup/backend/internal/domain/catalog"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// VariantInput describes a variant in a product create or update request
type VariantInput struct {
	Name            string                 `json:"name" binding:"required,max=200"`
	SKU             string                 `json:"sku" binding:"max=80"`
	PriceAdjustment decimal.Decimal        `json:"price_adjustment"`
	Stock           int                    `json:"stock" binding:"min=0"`
	ImageURL        string                 `json:"image_url" binding:"omitempty,max=500"`
	Attributes      map[string]interface{} `json:"attributes"`
}

// CreateProductRequest represents a request to create a product with its variants
type CreateProductRequest struct {
	Name           string           `json:"name" binding:"required,min=1,max=200"`
	Description    string           `json:"description"`
	Price          decimal.Decimal  `json:"price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	Cost           *decimal.Decimal `json:"cost"`
	SKU            string           `json:"sku" binding:"max=80"`
	Status         string           `json:"status" binding:"omitempty,oneof=active draft archived"`
	AddGatewayFee  bool             `json:"add_gateway_fee"`
	ImageURLs      []string         `json:"image_url"`
	CollectionID   *uuid.UUID       `json:"collection_id"`
	ProductTypeID  *uuid.UUID       `json:"product_type_id"`
	Variants       []VariantInput   `json:"variants" binding:"dive"`
}

// UpdateProductRequest updates a product. Nil fields are left unchanged;
// a non-nil Variants replaces every variant.
type UpdateProductRequest struct {
	Name           *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Description    *string          `json:"description"`
	Price          *decimal.Decimal `json:"price"`
	WholesalePrice *decimal.Decimal `json:"wholesale_price"`
	Cost           *decimal.Decimal `json:"cost"`
	SKU            *string          `json:"sku" binding:"omitempty,max=80"`
	Status         *string          `json:"status" binding:"omitempty,oneof=active draft archived"`
	AddGatewayFee  *bool            `json:"add_gateway_fee"`
	ImageURLs      []string         `json:"image_url"`
	CollectionID   *uuid.UUID       `json:"collection_id"`
	ProductTypeID  *uuid.UUID       `json:"product_type_id"`
	Variants       []VariantInput   `json:"variants" binding:"omitempty,dive"`
}

// AdjustStockRequest sets a variant's stock level
type AdjustStockRequest struct {
	Stock *int `json:"stock" binding:"required,min=0"`
}

// VariantResponse represents a variant in API responses
type VariantResponse struct {
	ID              uuid.UUID              `json:"id"`
	ProductID       uuid.UUID              `json:"product_id"`
	Name            string                 `json:"name"`
	SKU             string                 `json:"sku"`
	PriceAdjustment decimal.Decimal        `json:"price_adjustment"`
	Price           decimal.Decimal        `json:"price"`
	Stock           int                    `json:"stock"`
	ImageURL        string                 `json:"image_url"`
	Attributes      map[string]interface{} `json:"attributes"`
}

// ProductResponse represents a product in API responses
type ProductResponse struct {
	ID             uuid.UUID         `json:"id"`
	TenantID       uuid.UUID         `json:"tenant_id"`
	Name           string            `json:"name"`
	Description    string            `json:"description"`
	Price          decimal.Decimal   `json:"price"`
	WholesalePrice decimal.Decimal   `json:"wholesale_price"`
	Cost           decimal.Decimal   `json:"cost"`
	SKU            string            `json:"sku"`
	Status         string            `json:"status"`
	AddGatewayFee  bool              `json:"add_gateway_fee"`
	ImageURLs      []string          `json:"image_url"`
	CollectionID   *uuid.UUID        `json:"collection_id,omitempty"`
	ProductTypeID  *uuid.UUID        `json:"product_type_id,omitempty"`
	TotalStock     int               `json:"total_stock"`
	Variants       []VariantResponse `json:"variants"`
	CreatedAt      time.Time         `json:"created_at"`
	UpdatedAt      time.Time         `json:"updated_at"`
}

// ToProductResponse converts a domain Product to ProductResponse
func ToProductResponse(p *catalog.Product) ProductResponse {
	variants := make([]VariantResponse, len(p.Variants))
	for i := range p.Variants {
		variants[i] = toVariantResponse(&p.Variants[i], p.Price)
	}
	return ProductResponse{
		ID:             p.ID,
		TenantID:       p.TenantID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		WholesalePrice: p.WholesalePrice,
		Cost:           p.Cost,
		SKU:            p.SKU,
		Status:         string(p.Status),
		AddGatewayFee:  p.AddGatewayFee,
		ImageURLs:      p.ImageURLs,
		CollectionID:   p.CollectionID,
		ProductTypeID:  p.ProductTypeID,
		TotalStock:     p.TotalStock(),
		Variants:       variants,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func toVariantResponse(v *catalog.ProductVariant, basePrice decimal.Decimal) VariantResponse {
	return VariantResponse{
		ID:              v.ID,
		ProductID:       v.ProductID,
		Name:            v.Name,
		SKU:             v.SKU,
		PriceAdjustment: v.PriceAdjustment,
		Price:           v.UnitPrice(basePrice),
		Stock:           v.Stock,
		ImageURL:        v.ImageURL,
		Attributes:      v.Attributes,
	}
}

// CollectionRequest creates or updates a collection
type CollectionRequest struct {
	Title       string `json:"title" binding:"required,max=200"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url" binding:"omitempty,max=500"`
	Status      string `json:"status" binding:"omitempty,max=20"`
}

// CollectionResponse represents a collection with its product count
type CollectionResponse struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ImageURL     string    `json:"image_url"`
	Status       string    `json:"status"`
	ProductCount int64     `json:"product_count"`
	CreatedAt    time.Time `json:"created_at"`
}

// ToCollectionResponse converts a domain Collection to CollectionResponse
func ToCollectionResponse(c *catalog.Collection, count int64) CollectionResponse {
	return CollectionResponse{
		ID:           c.ID,
		Title:        c.Title,
		Description:  c.Description,
		ImageURL:     c.ImageURL,
		Status:       c.Status,
		ProductCount: count,
		CreatedAt:    c.CreatedAt,
	}
}

// ProductTypeRequest creates or updates a product type
type ProductTypeRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Description string   `json:"description"`
	Attributes  []string `json:"attributes"`
}

// ProductTypeResponse represents a product type
type ProductTypeResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Attributes  []string  `json:"attributes"`
}

// ToProductTypeResponse converts a domain ProductType to ProductTypeResponse
func ToProductTypeResponse(pt *catalog.ProductType) ProductTypeResponse {
	return ProductTypeResponse{
		ID:          pt.ID,
		Name:        pt.Name,
		Description: pt.Description,
		Attributes:  pt.Attributes,
	}
}
