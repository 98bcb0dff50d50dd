package catalog

import (
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductStatus represents the status of a product
type ProductStatus string

const (
	ProductStatusActive   ProductStatus = "active"
	ProductStatusDraft    ProductStatus = "draft"
	ProductStatusArchived ProductStatus = "archived"
)

// IsValid checks if the status is a known ProductStatus
func (s ProductStatus) IsValid() bool {
	switch s {
	case ProductStatusActive, ProductStatusDraft, ProductStatusArchived:
		return true
	}
	return false
}

// LowStockThreshold is the stock level at or below which a variant counts as low
const LowStockThreshold = 5

// Product is a sellable item in a store's catalog.
// It is the aggregate root for its variants.
type Product struct {
	shared.TenantAggregateRoot
	Name           string           `gorm:"type:varchar(200);not null;index"`
	Description    string           `gorm:"type:text"`
	Price          decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	WholesalePrice decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Cost           decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	SKU            string           `gorm:"column:sku;type:varchar(80);index"`
	Status         ProductStatus    `gorm:"type:varchar(20);not null;default:'active'"`
	AddGatewayFee  bool             `gorm:"not null;default:false"`
	ImageURLs      []string         `gorm:"column:image_url;serializer:json"`
	CollectionID   *uuid.UUID       `gorm:"type:uuid;index"`
	ProductTypeID  *uuid.UUID       `gorm:"type:uuid;index"`
	Variants       []ProductVariant `gorm:"foreignKey:ProductID"`
}

// TableName returns the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(tenantID uuid.UUID, name string, price decimal.Decimal) (*Product, error) {
	if tenantID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TENANT", "Tenant ID cannot be empty")
	}
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Price cannot be negative")
	}

	product := &Product{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                name,
		Price:               price,
		WholesalePrice:      decimal.Zero,
		Cost:                decimal.Zero,
		Status:              ProductStatusActive,
		ImageURLs:           []string{},
		Variants:            []ProductVariant{},
	}

	product.Record(NewProductCreatedEvent(product))

	return product, nil
}

// Update updates the product's descriptive fields
func (p *Product) Update(name, description, sku string) error {
	name = strings.TrimSpace(name)
	if err := validateProductName(name); err != nil {
		return err
	}
	p.Name = name
	p.Description = description
	p.SKU = strings.TrimSpace(sku)
	p.MarkModified()
	return nil
}

// SetPrices sets the retail, wholesale and cost prices
func (p *Product) SetPrices(price, wholesale, cost decimal.Decimal) error {
	if price.IsNegative() || wholesale.IsNegative() || cost.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Prices cannot be negative")
	}
	p.Price = price
	p.WholesalePrice = wholesale
	p.Cost = cost
	p.Touch()
	return nil
}

// SetStatus changes the product status
func (p *Product) SetStatus(status ProductStatus) error {
	if !status.IsValid() {
		return shared.NewDomainErrorf("INVALID_STATUS", "Unknown product status %q", status)
	}
	p.Status = status
	p.Touch()
	return nil
}

// AddVariant appends a variant to the product
func (p *Product) AddVariant(name, sku string, priceAdjustment decimal.Decimal, stock int) (*ProductVariant, error) {
	v, err := NewProductVariant(p.TenantID, p.ID, name, sku, priceAdjustment, stock)
	if err != nil {
		return nil, err
	}
	p.Variants = append(p.Variants, *v)
	p.Touch()
	return &p.Variants[len(p.Variants)-1], nil
}

// ClearVariants drops all variants so they can be replaced
func (p *Product) ClearVariants() {
	p.Variants = []ProductVariant{}
	p.Touch()
}

// TotalStock sums the stock of every variant
func (p *Product) TotalStock() int {
	total := 0
	for _, v := range p.Variants {
		total += v.Stock
	}
	return total
}

// IsActive reports whether the product is shown in the storefront
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

func validateProductName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot exceed 200 characters")
	}
	return nil
}
