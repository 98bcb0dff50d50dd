package catalog

import (
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Collection groups products for the storefront
type Collection struct {
	shared.TenantEntity
	Title       string `gorm:"type:varchar(200);not null"`
	Description string `gorm:"type:text"`
	ImageURL    string `gorm:"type:varchar(500)"`
	Status      string `gorm:"type:varchar(20);not null;default:'active'"`
}

// TableName returns the table name for GORM
func (Collection) TableName() string {
	return "collections"
}

// NewCollection creates a new collection
func NewCollection(tenantID uuid.UUID, title string) (*Collection, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Collection title cannot be empty")
	}
	return &Collection{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Title:        title,
		Status:       "active",
	}, nil
}

// Update replaces the descriptive fields of the collection
func (c *Collection) Update(title, description, imageURL, status string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Collection title cannot be empty")
	}
	c.Title = title
	c.Description = description
	c.ImageURL = imageURL
	if status != "" {
		c.Status = status
	}
	c.Touch()
	return nil
}

// ProductType describes a kind of product and the attributes its variants take
type ProductType struct {
	shared.TenantEntity
	Name        string   `gorm:"type:varchar(100);not null"`
	Description string   `gorm:"type:text"`
	Attributes  []string `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (ProductType) TableName() string {
	return "product_types"
}

// NewProductType creates a new product type
func NewProductType(tenantID uuid.UUID, name string, attributes []string) (*ProductType, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product type name cannot be empty")
	}
	if attributes == nil {
		attributes = []string{}
	}
	return &ProductType{
		TenantEntity: shared.NewTenantEntity(tenantID),
		Name:         name,
		Attributes:   attributes,
	}, nil
}

// Update replaces the name, description and attribute list
func (pt *ProductType) Update(name, description string, attributes []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product type name cannot be empty")
	}
	pt.Name = name
	pt.Description = description
	if attributes != nil {
		pt.Attributes = attributes
	}
	pt.Touch()
	return nil
}
