package handler

import (
	"github.com/bayup/backend/internal/application/studio"
	"github.com/gin-gonic/gin"
)

// StudioHandler serves the page builder and the public storefront reads
type StudioHandler struct {
	BaseHandler
	studioService *studio.StudioService
}

// NewStudioHandler creates a new StudioHandler
func NewStudioHandler(studioService *studio.StudioService) *StudioHandler {
	return &StudioHandler{studioService: studioService}
}

// ListShopPages godoc
// @ID           listShopPage
// @Summary      List saved builder page keys
// @Tags         studio
// @Produce      json
// @Success      200 {object} APIResponse[[]string]
// @Security     BearerAuth
// @Router       /shop-pages [get]
func (h *StudioHandler) ListShopPages(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	keys, err := h.studioService.ListShopPages(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, keys)
}

// GetShopPage godoc
// @ID           getShopPage
// @Summary      Get a builder page
// @Description  Returns the saved schema, or an empty schema when the page was never saved
// @Tags         studio
// @Produce      json
// @Param        key path string true "Page key"
// @Success      200 {object} APIResponse[studio.ShopPageResponse]
// @Security     BearerAuth
// @Router       /shop-pages/{key} [get]
func (h *StudioHandler) GetShopPage(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	page, err := h.studioService.GetShopPage(c.Request.Context(), tenantID, c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// SaveShopPage godoc
// @ID           saveShopPage
// @Summary      Save a builder page
// @Tags         studio
// @Accept       json
// @Produce      json
// @Param        key     path string                     true "Page key"
// @Param        request body studio.SaveShopPageRequest true "Schema"
// @Success      200 {object} APIResponse[studio.ShopPageResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shop-pages/{key} [put]
func (h *StudioHandler) SaveShopPage(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req studio.SaveShopPageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	page, err := h.studioService.SaveShopPage(c.Request.Context(), tenantID, c.Param("key"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// ListPages godoc
// @ID           listPage
// @Summary      List content pages
// @Tags         studio
// @Produce      json
// @Param        page      query int false "Page number" default(1)
// @Param        page_size query int false "Page size"   default(20)
// @Success      200 {object} APIResponse[[]studio.PageResponse]
// @Security     BearerAuth
// @Router       /pages [get]
func (h *StudioHandler) ListPages(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c)
	if !ok {
		return
	}
	page, err := h.studioService.ListPages(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// GetPage godoc
// @ID           getPage
// @Summary      Get a content page
// @Tags         studio
// @Produce      json
// @Param        id path string true "Page ID"
// @Success      200 {object} APIResponse[studio.PageResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /pages/{id} [get]
func (h *StudioHandler) GetPage(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	page, err := h.studioService.GetPage(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// CreatePage godoc
// @ID           createPage
// @Summary      Create a content page
// @Tags         studio
// @Accept       json
// @Produce      json
// @Param        request body studio.PageRequest true "Page"
// @Success      201 {object} APIResponse[studio.PageResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /pages [post]
func (h *StudioHandler) CreatePage(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req studio.PageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	page, err := h.studioService.CreatePage(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, page)
}

// UpdatePage godoc
// @ID           updatePage
// @Summary      Update a content page
// @Tags         studio
// @Accept       json
// @Produce      json
// @Param        id      path string             true "Page ID"
// @Param        request body studio.PageRequest true "Page"
// @Success      200 {object} APIResponse[studio.PageResponse]
// @Security     BearerAuth
// @Router       /pages/{id} [put]
func (h *StudioHandler) UpdatePage(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req studio.PageRequest
	if !h.bindJSON(c, &req) {
		return
	}
	page, err := h.studioService.UpdatePage(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}

// DeletePage godoc
// @ID           deletePage
// @Summary      Delete a content page
// @Tags         studio
// @Param        id path string true "Page ID"
// @Success      204
// @Security     BearerAuth
// @Router       /pages/{id} [delete]
func (h *StudioHandler) DeletePage(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.studioService.DeletePage(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// PublicStore godoc
// @ID           getPublicStore
// @Summary      Public storefront
// @Description  Store identity and its active products, resolved by slug
// @Tags         public
// @Produce      json
// @Param        slug path string true "Store slug"
// @Success      200 {object} APIResponse[studio.PublicStoreResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /public/stores/{slug} [get]
func (h *StudioHandler) PublicStore(c *gin.Context) {
	store, err := h.studioService.PublicStore(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, store)
}

// PublicShopPage godoc
// @ID           getPublicShopPage
// @Summary      Public builder page
// @Tags         public
// @Produce      json
// @Param        slug path string true "Store slug"
// @Param        key  path string true "Page key"
// @Success      200 {object} APIResponse[studio.ShopPageResponse]
// @Failure      404 {object} ErrorResponse
// @Router       /public/stores/{slug}/pages/{key} [get]
func (h *StudioHandler) PublicShopPage(c *gin.Context) {
	page, err := h.studioService.PublicShopPage(c.Request.Context(), c.Param("slug"), c.Param("key"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, page)
}
