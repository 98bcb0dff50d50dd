package studio

import (
	"regexp"
	"strings"

	"github.com/bayup/backend/internal/domain/shared"
	"github.com/google/uuid"
)

var keyRegex = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

// Schema is the visual builder document. Its shape belongs to the frontend.
type Schema map[string]interface{}

// ShopPage is the builder document of one storefront page. page_key is
// unique per store.
type ShopPage struct {
	shared.TenantEntity
	PageKey    string `gorm:"type:varchar(100);not null;index"`
	SchemaData Schema `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (ShopPage) TableName() string {
	return "shop_pages"
}

// NewShopPage creates a builder document for a page key
func NewShopPage(tenantID uuid.UUID, pageKey string, schema Schema) (*ShopPage, error) {
	pageKey, err := normalizeKey(pageKey)
	if err != nil {
		return nil, err
	}
	if schema == nil {
		schema = Schema{}
	}
	return &ShopPage{
		TenantEntity: shared.NewTenantEntity(tenantID),
		PageKey:      pageKey,
		SchemaData:   schema,
	}, nil
}

// EmptyShopPage is what a store sees before saving a page for the first time
func EmptyShopPage(tenantID uuid.UUID, pageKey string) *ShopPage {
	return &ShopPage{
		TenantEntity: shared.TenantEntity{TenantID: tenantID},
		PageKey:      pageKey,
		SchemaData:   Schema{},
	}
}

// Replace swaps the builder document
func (p *ShopPage) Replace(schema Schema) {
	if schema == nil {
		schema = Schema{}
	}
	p.SchemaData = schema
	p.Touch()
}

// Page is a content page of the store, addressed by slug
type Page struct {
	shared.TenantEntity
	Slug    string                 `gorm:"type:varchar(100);not null;index"`
	Title   string                 `gorm:"type:varchar(200);not null"`
	Content map[string]interface{} `gorm:"serializer:json"`
}

// TableName returns the table name for GORM
func (Page) TableName() string {
	return "pages"
}

// NewPage creates a content page
func NewPage(tenantID uuid.UUID, slug, title string, content map[string]interface{}) (*Page, error) {
	p := &Page{TenantEntity: shared.NewTenantEntity(tenantID)}
	if err := p.Update(slug, title, content); err != nil {
		return nil, err
	}
	return p, nil
}

// Update replaces the page fields
func (p *Page) Update(slug, title string, content map[string]interface{}) error {
	slug, err := normalizeKey(slug)
	if err != nil {
		return err
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return shared.NewDomainError("INVALID_TITLE", "Page title cannot be empty")
	}
	if content == nil {
		content = map[string]interface{}{}
	}
	p.Slug = slug
	p.Title = title
	p.Content = content
	p.Touch()
	return nil
}

func normalizeKey(key string) (string, error) {
	key = strings.ToLower(strings.TrimSpace(key))
	if !keyRegex.MatchString(key) {
		return "", shared.NewDomainErrorf("INVALID_KEY", "Invalid page key %q", key)
	}
	return key, nil
}
