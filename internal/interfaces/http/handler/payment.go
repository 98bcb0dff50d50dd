package handler

import (
	"io"
	"net/http"

	"github.com/bayup/backend/internal/application/payment"
	"github.com/bayup/backend/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Gateway events are small JSON documents
const maxWebhookPayloadSize = 65536

// PaymentHandler handles checkout preferences, the gateway webhook and
// transaction lookups
type PaymentHandler struct {
	BaseHandler
	paymentService *payment.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *payment.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// PreferenceRequest asks for a hosted checkout of one order
type PreferenceRequest struct {
	OrderID string `json:"order_id" binding:"required,uuid"`
	payment.CreatePreferenceRequest
}

// CreatePreference godoc
// @ID           createPreferencePayment
// @Summary      Start a hosted checkout
// @Description  Builds the gateway checkout for an order, signed with the integrity secret
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        request body PreferenceRequest true "Order to pay"
// @Success      201 {object} APIResponse[finance.CheckoutSession]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      503 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/preference [post]
func (h *PaymentHandler) CreatePreference(c *gin.Context) {
	tenantID, ok := h.tenantID(c)
	if !ok {
		return
	}
	var req PreferenceRequest
	if !h.bindJSON(c, &req) {
		return
	}
	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		h.BadRequest(c, "Invalid order_id")
		return
	}
	session, err := h.paymentService.CreatePreference(c.Request.Context(), tenantID, orderID, req.CreatePreferenceRequest)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, session)
}

// Webhook godoc
// @ID           webhookPayment
// @Summary      Payment gateway notification
// @Description  Marks the referenced order completed. Repeated notifications leave the same final state.
// @Tags         payments
// @Accept       json
// @Produce      json
// @Param        order_id query string false "Order ID, when the gateway event carries no reference"
// @Success      200 {object} APIResponse[payment.WebhookResult]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      413 {object} ErrorResponse
// @Router       /payments/webhook [post]
func (h *PaymentHandler) Webhook(c *gin.Context) {
	payload, err := io.ReadAll(io.LimitReader(c.Request.Body, maxWebhookPayloadSize+1))
	if err != nil {
		h.BadRequest(c, "Failed to read request body")
		return
	}
	if len(payload) > maxWebhookPayloadSize {
		h.Error(c, http.StatusRequestEntityTooLarge, dto.ErrCodeBadRequest, "Payload too large")
		return
	}

	result, err := h.paymentService.HandleWebhook(c.Request.Context(), payload, c.Query("order_id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// GetTransaction godoc
// @ID           getTransactionPayment
// @Summary      Look up a gateway transaction
// @Tags         payments
// @Produce      json
// @Param        id path string true "Gateway transaction ID"
// @Success      200 {object} APIResponse[finance.GatewayTransaction]
// @Failure      502 {object} ErrorResponse
// @Security     BearerAuth
// @Router       /payments/transactions/{id} [get]
func (h *PaymentHandler) GetTransaction(c *gin.Context) {
	if _, ok := h.currentUser(c); !ok {
		return
	}
	tx, err := h.paymentService.GetTransaction(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, tx)
}
