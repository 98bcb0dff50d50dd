package studio

import (
	"time"

	appcatalog "github.com/bayup/backend/internal/application/catalog"
	"github.com/bayup/backend/internal/domain/studio"
	"github.com/google/uuid"
)

// SaveShopPageRequest replaces the builder document of a page
type SaveShopPageRequest struct {
	SchemaData studio.Schema `json:"schema_data" binding:"required"`
}

// ShopPageResponse is a builder document
type ShopPageResponse struct {
	PageKey    string        `json:"page_key"`
	SchemaData studio.Schema `json:"schema_data"`
	UpdatedAt  *time.Time    `json:"updated_at,omitempty"`
}

// ToShopPageResponse converts a builder document to its response
func ToShopPageResponse(p *studio.ShopPage) ShopPageResponse {
	resp := ShopPageResponse{PageKey: p.PageKey, SchemaData: p.SchemaData}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}

// PageRequest creates or updates a content page
type PageRequest struct {
	Slug    string                 `json:"slug" binding:"required,max=100"`
	Title   string                 `json:"title" binding:"required,max=200"`
	Content map[string]interface{} `json:"content"`
}

// PageResponse is a content page
type PageResponse struct {
	ID        uuid.UUID              `json:"id"`
	Slug      string                 `json:"slug"`
	Title     string                 `json:"title"`
	Content   map[string]interface{} `json:"content"`
	CreatedAt time.Time              `json:"created_at"`
	UpdatedAt time.Time              `json:"updated_at"`
}

// ToPageResponse converts a content page to its response
func ToPageResponse(p *studio.Page) PageResponse {
	return PageResponse{
		ID:        p.ID,
		Slug:      p.Slug,
		Title:     p.Title,
		Content:   p.Content,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

// PublicStoreResponse is the storefront view of a store
type PublicStoreResponse struct {
	StoreID     uuid.UUID                    `json:"store_id"`
	StoreName   string                       `json:"store_name"`
	ShopSlug    string                       `json:"shop_slug"`
	SocialLinks map[string]interface{}       `json:"social_links,omitempty"`
	Products    []appcatalog.ProductResponse `json:"products"`
}
