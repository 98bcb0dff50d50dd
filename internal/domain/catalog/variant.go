package catalog

import (
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductVariant is a purchasable SKU under a product with its own stock
// and a price adjustment over the product's base price
type ProductVariant struct {
	shared.TenantEntity
	ProductID       uuid.UUID              `gorm:"type:uuid;not null;index"`
	Product         *Product               `gorm:"foreignKey:ProductID"`
	Name            string                 `gorm:"type:varchar(200);not null"`
	SKU             string                 `gorm:"column:sku;type:varchar(80)"`
	PriceAdjustment decimal.Decimal        `gorm:"type:decimal(18,2);not null;default:0"`
	Stock           int                    `gorm:"not null;default:0"`
	ImageURL        string                 `gorm:"type:varchar(500)"`
	Attributes      map[string]interface{} `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (ProductVariant) TableName() string {
	return "product_variants"
}

// NewProductVariant creates a new variant
func NewProductVariant(tenantID, productID uuid.UUID, name, sku string, priceAdjustment decimal.Decimal, stock int) (*ProductVariant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Variant name cannot be empty")
	}
	if stock < 0 {
		return nil, shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	return &ProductVariant{
		TenantEntity:    shared.NewTenantEntity(tenantID),
		ProductID:       productID,
		Name:            name,
		SKU:             strings.TrimSpace(sku),
		PriceAdjustment: priceAdjustment,
		Stock:           stock,
		Attributes:      map[string]interface{}{},
	}, nil
}

// UnitPrice returns base price plus the variant adjustment
func (v *ProductVariant) UnitPrice(basePrice decimal.Decimal) decimal.Decimal {
	return basePrice.Add(v.PriceAdjustment)
}

// CanFulfill reports whether the variant has enough stock for quantity
func (v *ProductVariant) CanFulfill(quantity int) bool {
	return quantity > 0 && quantity <= v.Stock
}

// SetStock sets the stock level
func (v *ProductVariant) SetStock(stock int) error {
	if stock < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock cannot be negative")
	}
	v.Stock = stock
	v.Touch()
	return nil
}

// Decrease removes quantity from stock
func (v *ProductVariant) Decrease(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if quantity > v.Stock {
		return shared.NewDomainErrorf("INSUFFICIENT_STOCK", "Insufficient stock for %s", v.Name)
	}
	v.Stock -= quantity
	v.Touch()
	return nil
}

// IsLowStock reports whether the variant is at or below LowStockThreshold
func (v *ProductVariant) IsLowStock() bool {
	return v.Stock <= LowStockThreshold
}
