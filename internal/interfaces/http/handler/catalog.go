package handler

import (
	"github.com/bayup/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler handles product, variant stock, collection and product
// type endpoints
type ProductHandler struct {
	BaseHandler
	productService    *catalog.ProductService
	collectionService *catalog.CollectionService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(productService *catalog.ProductService, collectionService *catalog.CollectionService) *ProductHandler {
	return &ProductHandler{
		productService:    productService,
		collectionService: collectionService,
	}
}

// List godoc
// @ID           listProduct
// @Summary      List products
// @Description  Paginated products of the caller's store with their variants. Filters: status, collection_id.
// @Tags         products
// @Produce      json
// @Param        page          query int    false "Page number" default(1)
// @Param        page_size     query int    false "Page size"   default(20)
// @Param        search        query string false "Name search"
// @Param        status        query string false "Status"
// @Param        collection_id query string false "Collection ID"
// @Success      200 {object} APIResponse[[]catalog.ProductResponse]
// @Security     BearerAuth
// @Router       /products [get]
func (h *ProductHandler) List(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c, "status", "collection_id")
	if !ok {
		return
	}
	page, err := h.productService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// Create godoc
// @ID           createProduct
// @Summary      Create a product
// @Description  Creates a product together with its variants
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request body catalog.CreateProductRequest true "Product"
// @Success      201 {object} APIResponse[catalog.ProductResponse]
// @Failure      400 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products [post]
func (h *ProductHandler) Create(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req catalog.CreateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Get godoc
// @ID           getProduct
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id path string true "Product ID"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [get]
func (h *ProductHandler) Get(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	product, err := h.productService.GetByID(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Update godoc
// @ID           updateProduct
// @Summary      Update a product
// @Description  Partial update. When variants are sent they replace the current set.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                       true "Product ID"
// @Param        request body catalog.UpdateProductRequest true "Changes"
// @Success      200 {object} APIResponse[catalog.ProductResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [put]
func (h *ProductHandler) Update(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalog.UpdateProductRequest
	if !h.bindJSON(c, &req) {
		return
	}
	product, err := h.productService.Update(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete godoc
// @ID           deleteProduct
// @Summary      Delete a product
// @Tags         products
// @Param        id path string true "Product ID"
// @Success      204
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /products/{id} [delete]
func (h *ProductHandler) Delete(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.productService.Delete(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// AdjustStock godoc
// @ID           adjustStockVariant
// @Summary      Set a variant's stock
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Variant ID"
// @Param        request body catalog.AdjustStockRequest true "Stock"
// @Success      200 {object} APIResponse[catalog.VariantResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /variants/{id}/stock [put]
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalog.AdjustStockRequest
	if !h.bindJSON(c, &req) {
		return
	}
	variant, err := h.productService.AdjustStock(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, variant)
}

// ListCollections godoc
// @ID           listCollection
// @Summary      List collections
// @Tags         collections
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.CollectionResponse]
// @Security     BearerAuth
// @Router       /collections [get]
func (h *ProductHandler) ListCollections(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	items, err := h.collectionService.ListCollections(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// GetCollection godoc
// @ID           getCollection
// @Summary      Get a collection
// @Tags         collections
// @Produce      json
// @Param        id path string true "Collection ID"
// @Success      200 {object} APIResponse[catalog.CollectionResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /collections/{id} [get]
func (h *ProductHandler) GetCollection(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	item, err := h.collectionService.GetCollection(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// CreateCollection godoc
// @ID           createCollection
// @Summary      Create a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        request body catalog.CollectionRequest true "Collection"
// @Success      201 {object} APIResponse[catalog.CollectionResponse]
// @Security     BearerAuth
// @Router       /collections [post]
func (h *ProductHandler) CreateCollection(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req catalog.CollectionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.collectionService.CreateCollection(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateCollection godoc
// @ID           updateCollection
// @Summary      Update a collection
// @Tags         collections
// @Accept       json
// @Produce      json
// @Param        id      path string                    true "Collection ID"
// @Param        request body catalog.CollectionRequest true "Collection"
// @Success      200 {object} APIResponse[catalog.CollectionResponse]
// @Security     BearerAuth
// @Router       /collections/{id} [put]
func (h *ProductHandler) UpdateCollection(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalog.CollectionRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.collectionService.UpdateCollection(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteCollection godoc
// @ID           deleteCollection
// @Summary      Delete a collection
// @Tags         collections
// @Param        id path string true "Collection ID"
// @Success      204
// @Security     BearerAuth
// @Router       /collections/{id} [delete]
func (h *ProductHandler) DeleteCollection(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.collectionService.DeleteCollection(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListProductTypes godoc
// @ID           listProductType
// @Summary      List product types
// @Tags         product-types
// @Produce      json
// @Success      200 {object} APIResponse[[]catalog.ProductTypeResponse]
// @Security     BearerAuth
// @Router       /product-types [get]
func (h *ProductHandler) ListProductTypes(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	items, err := h.collectionService.ListProductTypes(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// CreateProductType godoc
// @ID           createProductType
// @Summary      Create a product type
// @Tags         product-types
// @Accept       json
// @Produce      json
// @Param        request body catalog.ProductTypeRequest true "Product type"
// @Success      201 {object} APIResponse[catalog.ProductTypeResponse]
// @Security     BearerAuth
// @Router       /product-types [post]
func (h *ProductHandler) CreateProductType(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req catalog.ProductTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.collectionService.CreateProductType(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, item)
}

// UpdateProductType godoc
// @ID           updateProductType
// @Summary      Update a product type
// @Tags         product-types
// @Accept       json
// @Produce      json
// @Param        id      path string                     true "Product type ID"
// @Param        request body catalog.ProductTypeRequest true "Product type"
// @Success      200 {object} APIResponse[catalog.ProductTypeResponse]
// @Security     BearerAuth
// @Router       /product-types/{id} [put]
func (h *ProductHandler) UpdateProductType(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req catalog.ProductTypeRequest
	if !h.bindJSON(c, &req) {
		return
	}
	item, err := h.collectionService.UpdateProductType(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, item)
}

// DeleteProductType godoc
// @ID           deleteProductType
// @Summary      Delete a product type
// @Tags         product-types
// @Param        id path string true "Product type ID"
// @Success      204
// @Security     BearerAuth
// @Router       /product-types/{id} [delete]
func (h *ProductHandler) DeleteProductType(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	if err := h.collectionService.DeleteProductType(c.Request.Context(), tenantID, id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
