package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/bayup/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
)

// SalesHandler handles orders, shipments, customers and the activity feed
type SalesHandler struct {
	BaseHandler
	orderService    *sales.OrderService
	shipmentService *sales.ShipmentService
}

// NewSalesHandler creates a new SalesHandler
func NewSalesHandler(orderService *sales.OrderService, shipmentService *sales.ShipmentService) *SalesHandler {
	return &SalesHandler{
		orderService:    orderService,
		shipmentService: shipmentService,
	}
}

// CreateShipmentRequest asks for a shipment on an existing order
type CreateShipmentRequest struct {
	Address string `json:"address" binding:"max=500"`
}

// ListOrders godoc
// @ID           listOrder
// @Summary      List orders
// @Description  Paginated orders of the caller's store. Filters: status, source.
// @Tags         orders
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size"   default(20)
// @Param        status    query string false "Status"
// @Param        source    query string false "Source"
// @Success      200 {object} APIResponse[[]sales.OrderResponse]
// @Security     BearerAuth
// @Router       /orders [get]
func (h *SalesHandler) ListOrders(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c, "status", "source")
	if !ok {
		return
	}
	page, err := h.orderService.ListOrders(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// CreateOrder godoc
// @ID           createOrder
// @Summary      Create an order
// @Description  Prices the items, decrements stock, and records the customer, shipment, income and activity in one transaction
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        request body sales.CreateOrderRequest true "Order"
// @Success      201 {object} APIResponse[sales.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders [post]
func (h *SalesHandler) CreateOrder(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req sales.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.CreateOrder(c.Request.Context(), tenantID, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// CreateStorefrontOrder godoc
// @ID           createStorefrontOrder
// @Summary      Place an order on a public storefront
// @Tags         public
// @Accept       json
// @Produce      json
// @Param        slug    path string                   true "Store slug"
// @Param        request body sales.CreateOrderRequest true "Order"
// @Success      201 {object} APIResponse[sales.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /public/stores/{slug}/orders [post]
func (h *SalesHandler) CreateStorefrontOrder(c *gin.Context) {
	var req sales.CreateOrderRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.CreateStorefrontOrder(c.Request.Context(), c.Param("slug"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// GetOrder godoc
// @ID           getOrder
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Param        id path string true "Order ID"
// @Success      200 {object} APIResponse[sales.OrderResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id} [get]
func (h *SalesHandler) GetOrder(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	order, err := h.orderService.GetOrder(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateOrderStatus godoc
// @ID           updateStatusOrder
// @Summary      Change an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id      path string                         true "Order ID"
// @Param        request body sales.UpdateOrderStatusRequest true "Status"
// @Success      200 {object} APIResponse[sales.OrderResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/status [patch]
func (h *SalesHandler) UpdateOrderStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req sales.UpdateOrderStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	order, err := h.orderService.UpdateOrderStatus(c.Request.Context(), tenantID, id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Receipt godoc
// @ID           receiptOrder
// @Summary      Download the order receipt
// @Tags         orders
// @Produce      application/pdf
// @Param        id path string true "Order ID"
// @Success      200 {file} binary
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/receipt [get]
func (h *SalesHandler) Receipt(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	pdf, err := h.orderService.Receipt(c.Request.Context(), tenantID, id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`inline; filename="receipt-%s.pdf"`, id))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// CreateShipment godoc
// @ID           createShipmentOrder
// @Summary      Open a shipment for an order
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id      path string                true "Order ID"
// @Param        request body CreateShipmentRequest true "Address"
// @Success      201 {object} APIResponse[sales.ShipmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /orders/{id}/shipments [post]
func (h *SalesHandler) CreateShipment(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req CreateShipmentRequest
	if !h.bindJSON(c, &req) {
		return
	}
	shipment, err := h.shipmentService.CreateShipmentForOrder(c.Request.Context(), tenantID, id, req.Address)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, shipment)
}

// ListShipments godoc
// @ID           listShipment
// @Summary      List shipments
// @Tags         shipments
// @Produce      json
// @Param        page      query int    false "Page number" default(1)
// @Param        page_size query int    false "Page size"   default(20)
// @Param        status    query string false "Status"
// @Success      200 {object} APIResponse[[]sales.ShipmentResponse]
// @Security     BearerAuth
// @Router       /shipments [get]
func (h *SalesHandler) ListShipments(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c, "status")
	if !ok {
		return
	}
	page, err := h.shipmentService.ListShipments(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// UpdateShipmentStatus godoc
// @ID           updateStatusShipment
// @Summary      Change a shipment's status
// @Tags         shipments
// @Accept       json
// @Produce      json
// @Param        id      path string                            true "Shipment ID"
// @Param        request body sales.UpdateShipmentStatusRequest true "Status"
// @Success      200 {object} APIResponse[sales.ShipmentResponse]
// @Failure      404 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /shipments/{id}/status [patch]
func (h *SalesHandler) UpdateShipmentStatus(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	id, ok := h.parseID(c, "id")
	if !ok {
		return
	}
	var req sales.UpdateShipmentStatusRequest
	if !h.bindJSON(c, &req) {
		return
	}
	shipment, err := h.shipmentService.UpdateShipmentStatus(c.Request.Context(), tenantID, id, actorID(c), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, shipment)
}

// ListCustomers godoc
// @ID           listCustomer
// @Summary      List customers
// @Description  Customers recorded by the order pipeline. Filters: customer_type, city.
// @Tags         customers
// @Produce      json
// @Param        page          query int    false "Page number" default(1)
// @Param        page_size     query int    false "Page size"   default(20)
// @Param        customer_type query string false "final or mayorista"
// @Param        city          query string false "City"
// @Success      200 {object} APIResponse[[]sales.CustomerResponse]
// @Security     BearerAuth
// @Router       /customers [get]
func (h *SalesHandler) ListCustomers(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	filter, ok := h.listFilter(c, "customer_type", "city")
	if !ok {
		return
	}
	page, err := h.shipmentService.ListCustomers(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	Page(c, page)
}

// ListActivity godoc
// @ID           listActivityLog
// @Summary      Recent store activity
// @Tags         activity
// @Produce      json
// @Param        limit query int false "Max entries" default(50)
// @Success      200 {object} APIResponse[[]sales.ActivityLogResponse]
// @Security     BearerAuth
// @Router       /activity-logs [get]
func (h *SalesHandler) ListActivity(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	logs, err := h.shipmentService.ListActivity(c.Request.Context(), tenantID, limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, logs)
}
